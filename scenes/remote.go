package scenes

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/network"
	"github.com/automoto/illuyanka/shared/messages"
	"github.com/automoto/illuyanka/shared/netconfig"
	"github.com/automoto/illuyanka/sound"
	"github.com/automoto/illuyanka/view"
)

// RemoteScene shows an arena running on a dedicated server. A controller
// sends its input; spectators only watch.
type RemoteScene struct {
	client   *network.Client
	remote   *view.Remote
	sink     sound.Sink
	settings *sound.SettingsStore
	log      *zap.Logger

	volumes  sound.Volumes
	lastSnap time.Time
	interval time.Duration
	lastCmd  messages.PlayerCommand
	seq      uint32
	over     *messages.ArenaOverEvent
}

func NewRemoteScene(client *network.Client, sink sound.Sink, settings *sound.SettingsStore, log *zap.Logger) *RemoteScene {
	rs := &RemoteScene{
		client:   client,
		sink:     sink,
		settings: settings,
		log:      log,
		volumes:  sound.Volumes{Master: config.Audio.MasterVolume, Music: config.Audio.MusicVolume, SFX: config.Audio.SFXVolume, UI: config.Audio.UIVolume}.Clamped(),
	}
	if settings != nil {
		if vol, ok, err := settings.Load(); err != nil {
			log.Warn("could not load volume settings", zap.Error(err))
		} else if ok {
			rs.volumes = vol
		}
	}
	return rs
}

func (rs *RemoteScene) Update() {
	if vol, changed := volumeControl(rs.volumes); changed {
		rs.volumes = vol
		if rs.settings != nil {
			if err := rs.settings.Save(vol); err != nil {
				rs.log.Warn("could not save volume settings", zap.Error(err))
			}
		}
	}

	if rs.client.State() != network.StateJoined {
		return
	}
	join := rs.client.Joined()
	if rs.remote == nil {
		rs.remote = view.NewRemote(join)
		rs.interval = time.Second / time.Duration(max(join.TickRate, 1))
	}

	if snap := rs.client.LatestSnapshot(); snap != nil {
		rs.remote.Apply(*snap)
		rs.lastSnap = time.Now()
	}

	gain := rs.volumes.Effective(config.BusSFX)
	for _, evt := range rs.client.DrainSounds() {
		if gain <= 0 {
			continue
		}
		rs.sink.Play(sound.Cue{
			Archetype: evt.Archetype,
			Clip:      evt.Clip,
			Volume:    evt.Volume * gain,
		})
	}
	for _, evt := range rs.client.DrainDeaths() {
		rs.log.Debug("death", zap.String("kind", evt.Kind), zap.Uint("victim", evt.VictimID))
	}
	if evt, ok := rs.client.ArenaOver(); ok {
		rs.over = &evt
	}

	if join.Role == netconfig.RoleController {
		rs.sendInput()
	}
}

// sendInput sends a command when the input changed since the last one.
func (rs *RemoteScene) sendInput() {
	cmd := toCommand(readInput(), rs.seq+1)
	if rs.seq > 0 && sameMove(rs.lastCmd, cmd) {
		return
	}
	if err := rs.client.SendMessage(cmd); err != nil {
		if !errors.Is(err, network.ErrNotConnected) {
			rs.log.Warn("sending command", zap.Error(err))
		}
		return
	}
	rs.seq = cmd.Sequence
	rs.lastCmd = cmd
}

func (rs *RemoteScene) Draw(screen *ebiten.Image) {
	if rs.remote == nil {
		screen.Fill(colorBackdrop)
		drawHUD(screen, view.Frame{}, rs.volumes, rs.connectionLine())
		return
	}

	t := 1.0
	if rs.interval > 0 && !rs.lastSnap.IsZero() {
		t = float64(time.Since(rs.lastSnap)) / float64(rs.interval)
	}
	f := rs.remote.Frame(t)
	drawFrame(screen, f)

	extra := []string{rs.connectionLine()}
	if rs.over != nil {
		extra = append(extra, fmt.Sprintf("survived %.1fs, %d enemies left", rs.over.Survived, rs.over.Remaining))
	}
	drawHUD(screen, f, rs.volumes, extra...)
}

func (rs *RemoteScene) connectionLine() string {
	switch rs.client.State() {
	case network.StateConnecting, network.StateConnected:
		return "connecting..."
	case network.StateJoined:
		j := rs.client.Joined()
		return fmt.Sprintf("%s (%s)", j.ServerName, j.Role)
	case network.StateError:
		return fmt.Sprintf("error: %v", rs.client.LastError())
	default:
		return "disconnected"
	}
}
