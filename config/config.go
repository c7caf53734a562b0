package config

import "time"

// Default is the ECS layer every arena entity lives on.
const Default = 0

// SimConfig controls the fixed-step clock and seeding.
type SimConfig struct {
	TickRate int    `mapstructure:"tick_rate"`
	Seed     uint64 `mapstructure:"seed"`
}

// ArenaConfig describes the ground-plane rectangle actors move in.
type ArenaConfig struct {
	Width    float64 `mapstructure:"width"`
	Height   float64 `mapstructure:"height"`
	CellSize int     `mapstructure:"cell_size"`
	Level    string  `mapstructure:"level"`
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	MaxHealth float64 `mapstructure:"max_health"`
	MoveSpeed float64 `mapstructure:"move_speed"`
	Radius    float64 `mapstructure:"radius"`

	// Melee
	AttackDamage   float64 `mapstructure:"attack_damage"`
	AttackRange    float64 `mapstructure:"attack_range"`  // overlap radius around the strike point
	StrikeOffset   float64 `mapstructure:"strike_offset"` // strike point distance in front of the player
	KnockbackForce float64 `mapstructure:"knockback_force"`
	AirKnockback   float64 `mapstructure:"air_knockback"`
	AttackSounds   int     `mapstructure:"attack_sounds"`

	// Approach moves
	QuickStopDistance float64       `mapstructure:"quick_stop_distance"`
	HeavyStopDistance float64       `mapstructure:"heavy_stop_distance"`
	ReachTime         time.Duration `mapstructure:"reach_time"`
	CloseStopDistance float64       `mapstructure:"close_stop_distance"`
	CloseTime         time.Duration `mapstructure:"close_time"`

	// Targeting
	DetectionRange float64 `mapstructure:"detection_range"`
	AutoTarget     bool    `mapstructure:"auto_target"`
}

// DashConfig contains the dash maneuver tuning.
type DashConfig struct {
	Distance       float64       `mapstructure:"distance"`
	Duration       time.Duration `mapstructure:"duration"`
	Cooldown       time.Duration `mapstructure:"cooldown"`
	ObstacleMargin float64       `mapstructure:"obstacle_margin"`
}

// ProjectileConfig contains fireball tuning shared by every caster.
type ProjectileConfig struct {
	Speed    float64       `mapstructure:"speed"`
	Lifetime time.Duration `mapstructure:"lifetime"`
	Radius   float64       `mapstructure:"radius"`
}

// DeathConfig drives the ragdoll and dissolve sequence.
type DeathConfig struct {
	RagdollWait     time.Duration `mapstructure:"ragdoll_wait"`
	DissolveTime    time.Duration `mapstructure:"dissolve_time"`
	FinalWait       time.Duration `mapstructure:"final_wait"`
	FallbackRemoval time.Duration `mapstructure:"fallback_removal"`
	StartHeight     float64       `mapstructure:"start_height"` // added to the actor elevation
	EndHeight       float64       `mapstructure:"end_height"`
	StartNoise      float64       `mapstructure:"start_noise"`
	EndNoise        float64       `mapstructure:"end_noise"`
	Ease            string        `mapstructure:"ease"`
	RagdollMass     float64       `mapstructure:"ragdoll_mass"`
	RagdollDamping  float64       `mapstructure:"ragdoll_damping"`
}

// EffectsConfig holds lifetimes and shapes of the transient visual cues.
type EffectsConfig struct {
	HitLifetime       time.Duration `mapstructure:"hit_lifetime"`
	DeathLifetime     time.Duration `mapstructure:"death_lifetime"`
	LandingLifetime   time.Duration `mapstructure:"landing_lifetime"`
	ImpactLifetime    time.Duration `mapstructure:"impact_lifetime"`
	ImpactMaxScale    float64       `mapstructure:"impact_max_scale"`
	ImpactLightBoost  float64       `mapstructure:"impact_light_boost"`
	TrailDuration     time.Duration `mapstructure:"trail_duration"`
	TrailFadeSpeed    float64       `mapstructure:"trail_fade_speed"`
	ExplosionLifetime time.Duration `mapstructure:"explosion_lifetime"`
	WarningPulseSpeed float64       `mapstructure:"warning_pulse_speed"`
	WarningMinScale   float64       `mapstructure:"warning_min_scale"`
	WarningMaxScale   float64       `mapstructure:"warning_max_scale"`
	WarningMinAlpha   float64       `mapstructure:"warning_min_alpha"`
	WarningMaxAlpha   float64       `mapstructure:"warning_max_alpha"`
}

// KnockbackConfig controls how fast knocked-back actors slow down.
type KnockbackConfig struct {
	Friction float64 `mapstructure:"friction"` // velocity lost per second
	MaxSpeed float64 `mapstructure:"max_speed"`
}

// ServerConfig contains network settings for the headless server.
type ServerConfig struct {
	Port       uint   `mapstructure:"port"`
	TickRate   int    `mapstructure:"tick_rate"`
	Name       string `mapstructure:"name"`
	MaxClients int    `mapstructure:"max_clients"` // controller plus spectators
}

// Config groups every tunable section so it can be loaded as one document.
type Config struct {
	Sim        SimConfig        `mapstructure:"sim"`
	Arena      ArenaConfig      `mapstructure:"arena"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Player     PlayerConfig     `mapstructure:"player"`
	Dash       DashConfig       `mapstructure:"dash"`
	Enemy      EnemyConfig      `mapstructure:"enemy"`
	Projectile ProjectileConfig `mapstructure:"projectile"`
	Death      DeathConfig      `mapstructure:"death"`
	Effects    EffectsConfig    `mapstructure:"effects"`
	Knockback  KnockbackConfig  `mapstructure:"knockback"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Animation  AnimationConfig  `mapstructure:"animation"`
	Server     ServerConfig     `mapstructure:"server"`
}

var Sim SimConfig
var Arena ArenaConfig
var Player PlayerConfig
var Dash DashConfig
var Projectile ProjectileConfig
var Death DeathConfig
var Effects EffectsConfig
var Knockback KnockbackConfig
var Server ServerConfig

func init() {
	Reset()
}

// Reset restores every section to its built-in defaults.
func Reset() {
	Sim = SimConfig{TickRate: 60, Seed: 1}
	Arena = ArenaConfig{Width: 60, Height: 60, CellSize: 2}
	Logging = LoggingConfig{Level: "info", Format: "console"}

	Player = PlayerConfig{
		MaxHealth: 100,
		MoveSpeed: 5,
		Radius:    0.4,

		AttackDamage:   25,
		AttackRange:    1,
		StrikeOffset:   1,
		KnockbackForce: 10,
		AirKnockback:   10,
		AttackSounds:   5,

		QuickStopDistance: 1,
		HeavyStopDistance: 1.2,
		ReachTime:         300 * time.Millisecond,
		CloseStopDistance: 1.4,
		CloseTime:         200 * time.Millisecond,

		DetectionRange: 15,
		AutoTarget:     true,
	}

	Dash = DashConfig{
		Distance:       5,
		Duration:       300 * time.Millisecond,
		Cooldown:       time.Second,
		ObstacleMargin: 0.5,
	}

	Projectile = ProjectileConfig{
		Speed:    15,
		Lifetime: 5 * time.Second,
		Radius:   0.3,
	}

	Death = DeathConfig{
		RagdollWait:     time.Second,
		DissolveTime:    3 * time.Second,
		FinalWait:       500 * time.Millisecond,
		FallbackRemoval: 5 * time.Second,
		StartHeight:     2,
		EndHeight:       -30,
		StartNoise:      0,
		EndNoise:        50,
		Ease:            "InOutCubic",
		RagdollMass:     1,
		RagdollDamping:  0.3,
	}

	Effects = EffectsConfig{
		HitLifetime:       time.Second,
		DeathLifetime:     2 * time.Second,
		LandingLifetime:   time.Second,
		ImpactLifetime:    time.Second,
		ImpactMaxScale:    1.5,
		ImpactLightBoost:  3,
		TrailDuration:     300 * time.Millisecond,
		TrailFadeSpeed:    2,
		ExplosionLifetime: 3 * time.Second,
		WarningPulseSpeed: 2,
		WarningMinScale:   0.8,
		WarningMaxScale:   1.2,
		WarningMinAlpha:   0.3,
		WarningMaxAlpha:   0.7,
	}

	Knockback = KnockbackConfig{Friction: 25, MaxSpeed: 20}

	Server = ServerConfig{Port: 7373, TickRate: 20, Name: "Illuyanka Arena", MaxClients: 8}

	resetEnemies()
	resetAudio()
	resetAnimation()
}

// Snapshot returns the current values of every section.
func Snapshot() Config {
	return Config{
		Sim:        Sim,
		Arena:      Arena,
		Logging:    Logging,
		Player:     Player,
		Dash:       Dash,
		Enemy:      cloneEnemy(Enemy),
		Projectile: Projectile,
		Death:      Death,
		Effects:    Effects,
		Knockback:  Knockback,
		Audio:      Audio,
		Animation:  Animation,
		Server:     Server,
	}
}

// Apply replaces every section with the values in c.
func Apply(c Config) {
	Sim = c.Sim
	Arena = c.Arena
	Logging = c.Logging
	Player = c.Player
	Dash = c.Dash
	Enemy = c.Enemy
	Projectile = c.Projectile
	Death = c.Death
	Effects = c.Effects
	Knockback = c.Knockback
	Audio = c.Audio
	Animation = c.Animation
	Server = c.Server
}
