package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Load reads a prefab from disk when present so edits apply without a
// rebuild, falling back to the embedded copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// Exists reports whether a prefab can be loaded.
func Exists(name string) bool {
	clean := cleanPrefabPath(name)
	if clean == "" {
		return false
	}
	if _, err := os.Stat(diskPrefabPath(clean)); err == nil {
		return true
	}
	_, err := PrefabsFS.Open(clean)
	return err == nil
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "prefabs/") {
		return strings.TrimPrefix(s, "prefabs/")
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
