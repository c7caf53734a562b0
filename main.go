package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/automoto/illuyanka/arena"
	"github.com/automoto/illuyanka/assets"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/network"
	"github.com/automoto/illuyanka/observability"
	"github.com/automoto/illuyanka/playback"
	"github.com/automoto/illuyanka/scenes"
	"github.com/automoto/illuyanka/shared/protocol"
	"github.com/automoto/illuyanka/sound"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	sampleRate   = 44100
	appName      = "illuyanka"
)

type Game struct {
	scene scenes.Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(scenes.Scene)
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	configPath := flag.String("config", "", "YAML config file (ILLUYANKA_* env vars also apply)")
	levelPath := flag.String("level", "", "Level file (.tmx or .yaml); defaults to the embedded arena")
	connect := flag.String("connect", "", "Server address (host:port); empty runs the arena locally")
	name := flag.String("name", "player", "Player name sent to the server")
	spectate := flag.Bool("spectate", false, "Join the server as a spectator")
	soundDir := flag.String("sounds", "assets", "Directory the sound bank's clip paths are relative to")
	flag.Parse()

	if err := run(*configPath, *levelPath, *connect, *name, *spectate, *soundDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, levelPath, connect, name string, spectate bool, soundDir string) error {
	if _, err := cfg.Load(configPath); err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("registering components: %w", err)
	}

	settings, err := sound.OpenSettings(appName)
	if err != nil {
		logger.Warn("volume settings will not persist", zap.Error(err))
		settings = nil
	}

	bank := assets.SoundBank()
	sink := playback.NewAudioSink(audio.NewContext(sampleRate), os.DirFS(soundDir), logger.Named("audio"))
	sink.Preload(bank)

	game := &Game{}
	if connect != "" {
		client := network.NewClient(logger.Named("net"))
		client.Connect(connect, name, spectate)
		defer client.Disconnect()
		game.ChangeScene(scenes.NewRemoteScene(client, sink, settings, logger))
	} else {
		level, err := assets.LoadLevel(levelPath, cfg.Arena.Level)
		if err != nil {
			return err
		}
		newArena := func() *arena.Arena {
			return arena.New(arena.Options{
				Level: level,
				Log:   logger.Named("arena"),
				Sink:  sink,
				Bank:  bank,
			})
		}
		game.ChangeScene(scenes.NewLocalScene(newArena, settings, logger))
	}

	ebiten.SetTPS(cfg.Sim.TickRate)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Illuyanka")

	return ebiten.RunGame(game)
}
