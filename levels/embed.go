package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/collision"
	"github.com/milk9111/climbing/common"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultLevel is loaded when no level is named.
const DefaultLevel = "ledges.json"

type Level struct {
	Name      string     `json:"name"`
	Spawn     Spawn      `json:"spawn"`
	Colliders []Collider `json:"colliders"`
}

type Spawn struct {
	Position [3]float64     `json:"position"`
	Rotation common.Rotator `json:"rotation"`
}

type Collider struct {
	Name        string     `json:"name"`
	Center      [3]float64 `json:"center"`
	HalfExtents [3]float64 `json:"half_extents"`
	Profiles    []string   `json:"profiles"`
}

func (s Spawn) Vec3() mgl64.Vec3 {
	return mgl64.Vec3(s.Position)
}

// Collider converts the level entry to a collision world collider.
func (c Collider) Collider() collision.Collider {
	return collision.Collider{
		Name:        c.Name,
		Center:      mgl64.Vec3(c.Center),
		HalfExtents: mgl64.Vec3(c.HalfExtents),
		Profiles:    c.Profiles,
	}
}

// LoadLevel reads a level from levels/ on disk, falling back to the embedded
// copy. The .json extension is optional.
func LoadLevel(name string) (*Level, error) {
	if name == "" {
		name = DefaultLevel
	}
	name = filepath.ToSlash(name)
	name = strings.TrimPrefix(name, "levels/")
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}

	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(name)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, name)
		if err != nil {
			return nil, fmt.Errorf("read level: %w", err)
		}
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	return &lvl, nil
}

// Build registers every collider of the level in world.
func (l *Level) Build(world *collision.World) error {
	if l == nil {
		return nil
	}
	for _, c := range l.Colliders {
		if err := world.AddCollider(c.Collider()); err != nil {
			return fmt.Errorf("level %s: %w", l.Name, err)
		}
	}
	return nil
}
