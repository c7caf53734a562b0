package config

// SoundID represents a logical sound category
type SoundID int

const (
	SoundNone SoundID = iota
	// Player
	SoundPlayerAttack
	SoundPlayerHit
	SoundPlayerDeath
	SoundDashStart
	SoundDashImpact
	// Per-archetype enemy categories
	SoundEnemyAttack
	SoundEnemyHit
	SoundEnemyDeath
	SoundEnemyIdle
	SoundEnemySpecial
	// World
	SoundExplosion
	SoundFireballImpact
)

var soundNames = map[SoundID]string{
	SoundPlayerAttack:   "player_attack",
	SoundPlayerHit:      "player_hit",
	SoundPlayerDeath:    "player_death",
	SoundDashStart:      "dash_start",
	SoundDashImpact:     "dash_impact",
	SoundEnemyAttack:    "enemy_attack",
	SoundEnemyHit:       "enemy_hit",
	SoundEnemyDeath:     "enemy_death",
	SoundEnemyIdle:      "enemy_idle",
	SoundEnemySpecial:   "enemy_special",
	SoundExplosion:      "explosion",
	SoundFireballImpact: "fireball_impact",
}

func (s SoundID) String() string {
	if n, ok := soundNames[s]; ok {
		return n
	}
	return "none"
}

// Bus groups sounds that share a volume slider.
type Bus int

const (
	BusSFX Bus = iota
	BusMusic
	BusUI
)

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	MasterVolume float64 `mapstructure:"master_volume"`
	MusicVolume  float64 `mapstructure:"music_volume"`
	SFXVolume    float64 `mapstructure:"sfx_volume"`
	UIVolume     float64 `mapstructure:"ui_volume"`

	// 3D attenuation of actor voices
	MinDistance float64 `mapstructure:"min_distance"`
	MaxDistance float64 `mapstructure:"max_distance"`

	// Bank is an optional YAML clip bank; empty uses the built-in one.
	Bank string `mapstructure:"bank"`
	// SettingsApp names the gdata store that persists volume settings.
	SettingsApp string `mapstructure:"settings_app"`
}

var Audio AudioConfig

func resetAudio() {
	Audio = AudioConfig{
		MasterVolume: 1,
		MusicVolume:  0.7,
		SFXVolume:    1,
		UIVolume:     1,
		MinDistance:  1,
		MaxDistance:  20,
		SettingsApp:  "illuyanka",
	}
}
