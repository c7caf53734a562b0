package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/automoto/illuyanka/assets"
	cfg "github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/observability"
	"github.com/automoto/illuyanka/server/core"
	"github.com/automoto/illuyanka/shared/protocol"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (ILLUYANKA_* env vars also apply)")
	levelPath := flag.String("level", "", "Level file (.tmx or .yaml); defaults to the embedded arena")
	port := flag.Uint("port", 0, "Server port (overrides config)")
	tickRate := flag.Int("tickrate", 0, "Network tick rate (overrides config)")
	seed := flag.Uint64("seed", 0, "Arena random seed (overrides config)")
	name := flag.String("name", "", "Server display name (overrides config)")
	flag.Parse()

	if err := run(*configPath, *levelPath, *port, *tickRate, *seed, *name); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, levelPath string, port uint, tickRate int, seed uint64, name string) error {
	if _, err := cfg.Load(configPath); err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if tickRate > 0 {
		cfg.Server.TickRate = tickRate
	}
	if seed != 0 {
		cfg.Sim.Seed = seed
	}
	if name != "" {
		cfg.Server.Name = name
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	level, err := assets.LoadLevel(levelPath, cfg.Arena.Level)
	if err != nil {
		return err
	}

	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("registering components: %w", err)
	}

	server, err := core.NewServer(core.Options{
		Name:       cfg.Server.Name,
		TickRate:   cfg.Server.TickRate,
		MaxClients: cfg.Server.MaxClients,
		Level:      level,
		Seed:       cfg.Sim.Seed,
		Bank:       assets.SoundBank(),
		Log:        logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("shutting down", zap.Stringer("signal", sig))
		server.Stop()
		_ = logger.Sync()
		os.Exit(0)
	}()

	logger.Info("starting server",
		zap.String("name", cfg.Server.Name),
		zap.Uint("port", cfg.Server.Port),
		zap.Int("tick_rate", cfg.Server.TickRate),
		zap.String("level", level.Name))
	return server.Start(cfg.Server.Port)
}
