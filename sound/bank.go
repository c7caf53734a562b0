package sound

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/automoto/illuyanka/config"
)

// Bank maps sound categories to the clips that can play for them. Player and
// world categories are keyed by SoundID name; enemy categories are keyed by
// archetype name and then SoundID name.
type Bank struct {
	Player  map[string][]string            `yaml:"player"`
	World   map[string][]string            `yaml:"world"`
	Enemies map[string]map[string][]string `yaml:"enemies"`
}

// ReadBank decodes a YAML clip bank.
func ReadBank(r io.Reader) (*Bank, error) {
	var b Bank
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding sound bank: %w", err)
	}
	b.normalize()
	return &b, nil
}

// LoadBank reads the YAML clip bank at path.
func LoadBank(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sound bank: %w", err)
	}
	defer f.Close()
	return ReadBank(f)
}

func (b *Bank) normalize() {
	lower := func(m map[string][]string) map[string][]string {
		out := make(map[string][]string, len(m))
		for k, v := range m {
			out[strings.ToLower(k)] = v
		}
		return out
	}
	b.Player = lower(b.Player)
	b.World = lower(b.World)
	enemies := make(map[string]map[string][]string, len(b.Enemies))
	for k, v := range b.Enemies {
		enemies[strings.ToLower(k)] = lower(v)
	}
	b.Enemies = enemies
}

// Clips returns the clip list for a category; archetype is empty for player
// and world sounds.
func (b *Bank) Clips(archetype string, id config.SoundID) []string {
	if b == nil {
		return nil
	}
	key := id.String()
	if archetype != "" {
		return b.Enemies[strings.ToLower(archetype)][key]
	}
	if clips, ok := b.Player[key]; ok {
		return clips
	}
	return b.World[key]
}

// DefaultBank lists the clips shipped with the game.
func DefaultBank() *Bank {
	enemy := func(name string, attacks, hits, deaths, idles, specials int) map[string][]string {
		m := map[string][]string{}
		add := func(id config.SoundID, n int) {
			for i := 1; i <= n; i++ {
				m[id.String()] = append(m[id.String()], fmt.Sprintf("audio/%s/%s_%d.wav", name, id, i))
			}
		}
		add(config.SoundEnemyAttack, attacks)
		add(config.SoundEnemyHit, hits)
		add(config.SoundEnemyDeath, deaths)
		add(config.SoundEnemyIdle, idles)
		add(config.SoundEnemySpecial, specials)
		return m
	}
	return &Bank{
		Player: map[string][]string{
			config.SoundPlayerAttack.String(): {
				"audio/player/attack_1.wav", "audio/player/attack_2.wav", "audio/player/attack_3.wav",
				"audio/player/attack_4.wav", "audio/player/attack_5.wav",
			},
			config.SoundPlayerHit.String():   {"audio/player/hit_light.wav", "audio/player/hit_heavy.wav"},
			config.SoundPlayerDeath.String(): {"audio/player/death_1.wav", "audio/player/death_2.wav"},
			config.SoundDashStart.String():   {"audio/player/dash_start.wav"},
			config.SoundDashImpact.String():  {"audio/player/dash_impact.wav"},
		},
		World: map[string][]string{
			config.SoundExplosion.String():      {"audio/world/explosion.wav"},
			config.SoundFireballImpact.String(): {"audio/world/fireball_impact.wav"},
		},
		Enemies: map[string]map[string][]string{
			"skeleton": enemy("skeleton", 2, 2, 1, 2, 0),
			"mutant":   enemy("mutant", 2, 2, 1, 2, 1),
			"wizard":   enemy("wizard", 2, 2, 1, 2, 1),
			"dragon":   enemy("dragon", 1, 2, 1, 2, 1),
		},
	}
}
