// Package playback mixes sound cues through an ebiten audio context.
// Only the viewer opens an audio device.
package playback

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"go.uber.org/zap"

	"github.com/automoto/illuyanka/sound"
)

// AudioSink plays cues through an ebiten audio context. Clips are read from
// fsys and cached as decoded PCM; clips that fail to load are logged once
// and then skipped.
type AudioSink struct {
	context *audio.Context
	fsys    fs.FS
	log     *zap.Logger
	cache   map[string][]byte
	missing map[string]bool
}

func NewAudioSink(ctx *audio.Context, fsys fs.FS, log *zap.Logger) *AudioSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &AudioSink{
		context: ctx,
		fsys:    fsys,
		log:     log,
		cache:   make(map[string][]byte),
		missing: make(map[string]bool),
	}
}

// Preload decodes every clip of the bank so the first play does not stall.
func (s *AudioSink) Preload(bank *sound.Bank) {
	groups := []map[string][]string{bank.Player, bank.World}
	for _, m := range bank.Enemies {
		groups = append(groups, m)
	}
	for _, g := range groups {
		for _, clips := range g {
			for _, clip := range clips {
				_, _ = s.decoded(clip)
			}
		}
	}
}

func (s *AudioSink) Play(c sound.Cue) {
	data, ok := s.decoded(c.Clip)
	if !ok {
		return
	}
	player := s.context.NewPlayerFromBytes(data)
	player.SetVolume(c.Volume)
	player.Play()
}

func (s *AudioSink) decoded(clip string) ([]byte, bool) {
	if data, ok := s.cache[clip]; ok {
		return data, true
	}
	if s.missing[clip] {
		return nil, false
	}
	data, err := s.decode(clip)
	if err != nil {
		s.missing[clip] = true
		s.log.Warn("audio clip unavailable", zap.String("clip", clip), zap.Error(err))
		return nil, false
	}
	s.cache[clip] = data
	return data, true
}

func (s *AudioSink) decode(clip string) ([]byte, error) {
	raw, err := fs.ReadFile(s.fsys, clip)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", clip, err)
	}

	var stream io.Reader
	switch ext := strings.ToLower(filepath.Ext(clip)); ext {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(s.context.SampleRate(), bytes.NewReader(raw))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(s.context.SampleRate(), bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", clip, err)
	}

	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio %s: %w", clip, err)
	}
	return decoded, nil
}
