package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/automoto/illuyanka/arena"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/view"
)

// LocalScene runs an arena in-process, one simulation step per frame.
type LocalScene struct {
	arena    *arena.Arena
	newArena func() *arena.Arena
	settings *sound.SettingsStore
	log      *zap.Logger
}

// NewLocalScene builds an arena with newArena; R rebuilds it after the
// player dies. settings may be nil when persistence is unavailable.
func NewLocalScene(newArena func() *arena.Arena, settings *sound.SettingsStore, log *zap.Logger) *LocalScene {
	ls := &LocalScene{newArena: newArena, settings: settings, log: log}
	ls.reset()
	return ls
}

func (ls *LocalScene) reset() {
	ls.arena = ls.newArena()
	ls.arena.ECS.AddRenderer(cfg.Default, ls.render)

	if ls.settings == nil {
		return
	}
	vol, ok, err := ls.settings.Load()
	if err != nil {
		ls.log.Warn("could not load volume settings", zap.Error(err))
		return
	}
	if ok {
		ls.arena.Runtime().Sound.SetVolumes(vol)
	}
}

func (ls *LocalScene) Update() {
	if ls.arena.PlayerDead() && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ls.log.Info("restarting arena")
		ls.reset()
		return
	}

	dispatcher := ls.arena.Runtime().Sound
	if vol, changed := volumeControl(dispatcher.Volumes()); changed {
		dispatcher.SetVolumes(vol)
		if ls.settings != nil {
			if err := ls.settings.Save(vol); err != nil {
				ls.log.Warn("could not save volume settings", zap.Error(err))
			}
		}
	}

	ls.arena.SetInput(readInput())
	ls.arena.Step()
}

func (ls *LocalScene) Draw(screen *ebiten.Image) {
	ls.arena.ECS.Draw(screen)
}

func (ls *LocalScene) render(e *ecs.ECS, screen *ebiten.Image) {
	f := view.FromSim(e.World)
	drawFrame(screen, f)

	var extra []string
	if f.PlayerDead {
		extra = append(extra, "press R to restart")
	}
	drawHUD(screen, f, ls.arena.Runtime().Sound.Volumes(), extra...)
}
