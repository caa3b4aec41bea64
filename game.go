package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/climbing/collision"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/entity"
	"github.com/milk9111/climbing/ecs/system"
	"github.com/milk9111/climbing/input"
	"github.com/milk9111/climbing/levels"
	"github.com/milk9111/climbing/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	defaultMappingContext = "input_mapping.yaml"
	prefabDir             = "prefabs"
)

type Game struct {
	cfg    Config
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	collision *collision.World
	level     *levels.Level

	gameMode    *entity.GameMode
	player      ecs.Entity
	inputPlayer *input.Player
	mapping     *input.MappingContext
	mappingFile string

	overlay *system.DebugOverlay
	watcher *prefabs.Watcher
}

func NewGame(cfg Config) (*Game, error) {
	lvl, err := levels.LoadLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	cw := collision.NewWorld(nil)
	if err := lvl.Build(cw); err != nil {
		return nil, fmt.Errorf("game: build level %s: %w", lvl.Name, err)
	}

	gmSpec, err := prefabs.LoadGameModeSpec()
	if err != nil {
		log.Printf("Game: no game mode prefab, using defaults: %v", err)
		gmSpec = nil
	}
	gameMode := entity.NewGameModeFromSpec(gmSpec, entity.PrefabPawnFinder{})

	w := ecs.NewWorld()
	player, err := gameMode.SpawnDefaultPawn(w, lvl.Spawn.Vec3(), lvl.Spawn.Rotation)
	if err != nil {
		return nil, fmt.Errorf("game: spawn pawn: %w", err)
	}

	mappingFile := defaultMappingContext
	if gmSpec != nil && gmSpec.MappingContext != "" {
		mappingFile = gmSpec.MappingContext
	}
	mapping, err := prefabs.LoadMappingContext(mappingFile)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	inputPlayer := input.NewPlayer()
	inputPlayer.AddMappingContext(mapping, 0)

	overlay := system.NewDebugOverlay()
	overlay.SetTimeStep(time.Second / time.Duration(cfg.TPS))

	detector := system.NewLedgeDetector(cw, overlay)
	detector.DrawDebug = cfg.DrawTraces

	movement := system.NewMovementSystem(cw)
	movement.SetTimeStep(1 / float64(cfg.TPS))

	scheduler := ecs.NewScheduler(
		system.NewInputSystem(inputPlayer, input.NewEbitenSource()),
		system.NewCharacterInputSystem(),
		system.NewControllerSystem(),
		movement,
		system.NewCameraSystem(cw),
		system.NewLedgeDetectionSystem(detector),
		overlay,
	)

	g := &Game{
		cfg:         cfg,
		world:       w,
		scheduler:   scheduler,
		collision:   cw,
		level:       lvl,
		gameMode:    gameMode,
		player:      player,
		inputPlayer: inputPlayer,
		mapping:     mapping,
		mappingFile: mappingFile,
		overlay:     overlay,
	}

	if cfg.Debug {
		watcher, err := prefabs.NewWatcher(prefabDir)
		if err != nil {
			log.Printf("Game: prefab hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	log.Printf("Game: %s spawned %s in %s", gameMode.Name, gameMode.DefaultPawn.Name(), lvl.Name)
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	g.collision.ClearDebugTraces()
	g.reloadPrefabs()
	g.scheduler.Update(g.world)

	return nil
}

// reloadPrefabs applies prefab files changed on disk since the last frame.
func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}

	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			log.Printf("Game: prefab watcher: %v", err)
		}
	default:
	}

	for _, name := range g.watcher.Poll() {
		switch name {
		case g.gameMode.DefaultPawn.Prefab:
			spec, err := prefabs.LoadCharacterSpec(name)
			if err != nil {
				log.Printf("Game: reload %s: %v", name, err)
				continue
			}
			if err := entity.ApplyCharacterSpec(g.world, g.player, spec); err != nil {
				log.Printf("Game: reload %s: %v", name, err)
				continue
			}
			g.gameMode.DefaultPawn.Spec = spec
		case g.mappingFile:
			ctx, err := prefabs.LoadMappingContext(name)
			if err != nil {
				log.Printf("Game: reload %s: %v", name, err)
				continue
			}
			g.inputPlayer.RemoveMappingContext(g.mapping)
			g.inputPlayer.AddMappingContext(ctx, 0)
			g.mapping = ctx
		default:
			continue
		}
		log.Printf("Game: reloaded %s", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	system.DrawPhysicsDebug(g.collision, g.world, screen)

	if g.cfg.Debug {
		system.DrawPlayerStateDebug(g.world, screen)
	}
	g.overlay.Draw(screen, 0, baseHeight/2)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 10, baseHeight-20)
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
