package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/prefabs"
)

// ThirdPersonCharacterPrefab is the pawn prefab the game mode looks for.
const ThirdPersonCharacterPrefab = "third_person_character.yaml"

// PawnClass is a spawnable pawn: the character spec and the prefab it came
// from, empty for the built-in pawn.
type PawnClass struct {
	Prefab string
	Spec   *prefabs.CharacterSpec
}

func (p *PawnClass) Name() string {
	if p == nil || p.Spec == nil {
		return ""
	}
	return p.Spec.Name
}

func DefaultPawnClass() *PawnClass {
	return &PawnClass{Spec: DefaultCharacterSpec()}
}

type PawnClassFinder interface {
	FindPawnClass(path string) (*PawnClass, error)
}

type PrefabPawnFinder struct{}

func (PrefabPawnFinder) FindPawnClass(path string) (*PawnClass, error) {
	if !prefabs.Exists(path) {
		return nil, fmt.Errorf("game mode: pawn prefab %q not found", path)
	}
	spec, err := prefabs.LoadCharacterSpec(path)
	if err != nil {
		return nil, err
	}
	return &PawnClass{Prefab: path, Spec: spec}, nil
}

type GameMode struct {
	Name        string
	DefaultPawn *PawnClass
}

// NewGameMode selects the third person character as the default pawn. When
// the lookup fails the built-in pawn is kept.
func NewGameMode(finder PawnClassFinder) *GameMode {
	return newGameMode("GameMode", ThirdPersonCharacterPrefab, finder)
}

// NewGameModeFromSpec is NewGameMode with the name and pawn prefab taken from
// a game mode prefab.
func NewGameModeFromSpec(spec *prefabs.GameModeSpec, finder PawnClassFinder) *GameMode {
	if spec == nil {
		return NewGameMode(finder)
	}
	pawn := spec.DefaultPawn
	if pawn == "" {
		pawn = ThirdPersonCharacterPrefab
	}
	return newGameMode(spec.Name, pawn, finder)
}

func newGameMode(name, pawn string, finder PawnClassFinder) *GameMode {
	g := &GameMode{Name: name, DefaultPawn: DefaultPawnClass()}
	if finder == nil {
		return g
	}
	if class, err := finder.FindPawnClass(pawn); err == nil && class != nil && class.Spec != nil {
		g.DefaultPawn = class
	}
	return g
}

// SpawnDefaultPawn builds the default pawn at pos facing rot.
func (g *GameMode) SpawnDefaultPawn(w *ecs.World, pos mgl64.Vec3, rot common.Rotator) (ecs.Entity, error) {
	if g == nil || g.DefaultPawn == nil || g.DefaultPawn.Spec == nil {
		return 0, fmt.Errorf("game mode: no default pawn")
	}
	return NewCharacterAt(w, g.DefaultPawn.Spec, g.DefaultPawn.Prefab, pos, rot)
}
