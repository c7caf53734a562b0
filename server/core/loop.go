package core

import (
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
	"go.uber.org/zap"
)

type GameLoop struct {
	server   *Server
	tickRate int
	log      *zap.Logger
	stopChan chan struct{}
}

func NewGameLoop(server *Server, tickRate int, log *zap.Logger) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		log:      log,
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.log.Info("game loop started", zap.Int("tick_rate", g.tickRate), zap.Int("sim_steps", g.server.steps))

	for {
		select {
		case <-g.stopChan:
			g.log.Info("game loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

func (g *GameLoop) tick() {
	events := g.server.Tick()

	if err := srvsync.DoSync(); err != nil {
		g.log.Warn("sync error", zap.Error(err))
	}

	for _, evt := range events {
		g.server.Broadcast(evt)
	}
}
