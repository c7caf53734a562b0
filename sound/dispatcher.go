// Package sound decides which clip plays for a gameplay event and how loud.
// Mixing and playback belong to whatever Sink receives the cues.
package sound

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/automoto/illuyanka/config"
	"github.com/automoto/illuyanka/shared/gamemath"
)

// RandomIndex asks the dispatcher to pick a clip at random.
const RandomIndex = -1

// Cue is one clip the playback layer should start.
type Cue struct {
	ID        config.SoundID
	Archetype string
	Clip      string
	Volume    float64
	Position  gamemath.Vector
	Spatial   bool
}

// Sink receives cues. Implementations must not block the simulation.
type Sink interface {
	Play(c Cue)
}

// Request describes a sound an actor wants to make.
type Request struct {
	ID        config.SoundID
	Archetype string // empty for player and world sounds
	Index     int    // clip index, clamped; RandomIndex picks one
	Position  gamemath.Vector
	Spatial   bool
	Bus       config.Bus
}

// Dispatcher resolves requests against a clip bank and the volume settings.
// One dispatcher is shared by every actor of an arena and handed to each of
// them when they are created.
type Dispatcher struct {
	bank     *Bank
	sink     Sink
	rng      *rand.Rand
	log      *zap.Logger
	volumes  Volumes
	listener gamemath.Vector
	minDist  float64
	maxDist  float64
}

func NewDispatcher(bank *Bank, sink Sink, rng *rand.Rand, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		bank: bank,
		sink: sink,
		rng:  rng,
		log:  log,
		volumes: Volumes{
			Master: config.Audio.MasterVolume,
			Music:  config.Audio.MusicVolume,
			SFX:    config.Audio.SFXVolume,
			UI:     config.Audio.UIVolume,
		}.Clamped(),
		minDist: config.Audio.MinDistance,
		maxDist: config.Audio.MaxDistance,
	}
}

// SetListener moves the point spatial cues are attenuated against.
func (d *Dispatcher) SetListener(pos gamemath.Vector) { d.listener = pos }

func (d *Dispatcher) Volumes() Volumes { return d.volumes }

// SetVolumes replaces every slider, clamping each to [0, 1].
func (d *Dispatcher) SetVolumes(v Volumes) { d.volumes = v.Clamped() }

// Play resolves and emits a cue. Missing clips are skipped.
func (d *Dispatcher) Play(req Request) (Cue, bool) {
	if d == nil {
		return Cue{}, false
	}
	clips := d.bank.Clips(req.Archetype, req.ID)
	if len(clips) == 0 {
		d.log.Debug("no clip for sound",
			zap.Stringer("sound", req.ID),
			zap.String("archetype", req.Archetype))
		return Cue{}, false
	}

	idx := req.Index
	if idx == RandomIndex {
		idx = d.rng.IntN(len(clips))
	}
	idx = int(gamemath.Clamp(float64(idx), 0, float64(len(clips)-1)))

	vol := d.volumes.Effective(req.Bus)
	if req.Spatial {
		vol *= Attenuation(d.listener.Dist(req.Position), d.minDist, d.maxDist)
	}
	if vol <= 0 {
		return Cue{}, false
	}

	cue := Cue{
		ID:        req.ID,
		Archetype: req.Archetype,
		Clip:      clips[idx],
		Volume:    vol,
		Position:  req.Position,
		Spatial:   req.Spatial,
	}
	if d.sink != nil {
		d.sink.Play(cue)
	}
	return cue, true
}

// Attenuation is the logarithmic rolloff gain of a source dist away: full
// volume inside minDist, minDist/dist beyond it, flat past maxDist.
func Attenuation(dist, minDist, maxDist float64) float64 {
	if minDist <= 0 || dist <= minDist {
		return 1
	}
	if maxDist > 0 && dist > maxDist {
		dist = maxDist
	}
	return minDist / dist
}

// Recorder is a Sink that keeps every cue, for tests and headless runs.
type Recorder struct {
	Cues []Cue
}

func (r *Recorder) Play(c Cue) { r.Cues = append(r.Cues, c) }

// Drain returns and clears the recorded cues.
func (r *Recorder) Drain() []Cue {
	out := r.Cues
	r.Cues = nil
	return out
}

// LogSink writes cues to a logger at debug level.
type LogSink struct {
	Log *zap.Logger
}

func (s LogSink) Play(c Cue) {
	s.Log.Debug("sound",
		zap.Stringer("sound", c.ID),
		zap.String("clip", c.Clip),
		zap.Float64("volume", c.Volume))
}
