package config

import (
	"fmt"
	"strings"
	"time"
)

// Archetype selects the behaviour strategy an enemy runs.
type Archetype int

const (
	ArchetypeSkeleton Archetype = iota
	ArchetypeMutant
	ArchetypeWizard
	ArchetypeDragon
)

var archetypeNames = map[Archetype]string{
	ArchetypeSkeleton: "skeleton",
	ArchetypeMutant:   "mutant",
	ArchetypeWizard:   "wizard",
	ArchetypeDragon:   "dragon",
}

func (a Archetype) String() string {
	if name, ok := archetypeNames[a]; ok {
		return name
	}
	return fmt.Sprintf("archetype(%d)", int(a))
}

// ParseArchetype maps a level or config name onto an Archetype.
func ParseArchetype(name string) (Archetype, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range archetypeNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown enemy archetype %q", name)
}

// Archetypes lists every archetype in a stable order.
func Archetypes() []Archetype {
	return []Archetype{ArchetypeSkeleton, ArchetypeMutant, ArchetypeWizard, ArchetypeDragon}
}

// JumpAttackConfig tunes the mutant leap.
type JumpAttackConfig struct {
	Range    float64       `mapstructure:"range"`
	Damage   float64       `mapstructure:"damage"`
	Cooldown time.Duration `mapstructure:"cooldown"`
	Height   float64       `mapstructure:"height"`
	Duration time.Duration `mapstructure:"duration"`
}

// MeleeVariantConfig tunes normal/heavy melee swings.
type MeleeVariantConfig struct {
	NormalDamage     float64 `mapstructure:"normal_damage"`
	HeavyDamage      float64 `mapstructure:"heavy_damage"`
	HeavyAttackRange float64 `mapstructure:"heavy_attack_range"`
}

// KiteConfig tunes how a ranged enemy keeps its distance.
type KiteConfig struct {
	RetreatDistance float64 `mapstructure:"retreat_distance"`
	RetreatSpeed    float64 `mapstructure:"retreat_speed"`
	ReengageRatio   float64 `mapstructure:"reengage_ratio"`
	TurnRate        float64 `mapstructure:"turn_rate"`
}

// CastConfig tunes ranged casts.
type CastConfig struct {
	NormalDamage   float64       `mapstructure:"normal_damage"`
	HeavyDamage    float64       `mapstructure:"heavy_damage"`
	NormalCooldown time.Duration `mapstructure:"normal_cooldown"`
	HeavyCooldown  time.Duration `mapstructure:"heavy_cooldown"`
	HeavyChance    float64       `mapstructure:"heavy_chance"`
	PreDelay       time.Duration `mapstructure:"pre_delay"`
	PostDelay      time.Duration `mapstructure:"post_delay"`
	AimHeight      float64       `mapstructure:"aim_height"`
	SpawnOffset    float64       `mapstructure:"spawn_offset"`
}

// BombardConfig tunes the dragon area attack.
type BombardConfig struct {
	WarningTime    time.Duration `mapstructure:"warning_time"`
	Damage         float64       `mapstructure:"damage"`
	Radius         float64       `mapstructure:"radius"`
	Count          int           `mapstructure:"count"`
	UseAll         bool          `mapstructure:"use_all"`
	RandomSpread   float64       `mapstructure:"random_spread"`
	DamageDelay    time.Duration `mapstructure:"damage_delay"`
	WarningMarkers bool          `mapstructure:"warning_markers"`
	Explosions     bool          `mapstructure:"explosions"`
}

// EnemyTypeConfig contains configuration for one enemy archetype
type EnemyTypeConfig struct {
	Name           string        `mapstructure:"name"`
	MaxHealth      float64       `mapstructure:"max_health"`
	AttackDamage   float64       `mapstructure:"attack_damage"`
	AttackRange    float64       `mapstructure:"attack_range"`
	AttackCooldown time.Duration `mapstructure:"attack_cooldown"`
	DetectionRange float64       `mapstructure:"detection_range"`
	MoveSpeed      float64       `mapstructure:"move_speed"`
	Radius         float64       `mapstructure:"radius"`

	IdleSoundMin     time.Duration `mapstructure:"idle_sound_min"`
	IdleSoundMax     time.Duration `mapstructure:"idle_sound_max"`
	IdleSoundInitial time.Duration `mapstructure:"idle_sound_initial"`

	UseDissolve  bool `mapstructure:"use_dissolve"`
	RagdollParts int  `mapstructure:"ragdoll_parts"`

	Melee   MeleeVariantConfig `mapstructure:"melee"`
	Jump    JumpAttackConfig   `mapstructure:"jump"`
	Kite    KiteConfig         `mapstructure:"kite"`
	Cast    CastConfig         `mapstructure:"cast"`
	Bombard BombardConfig      `mapstructure:"bombard"`
}

// EnemyConfig holds one entry per archetype, keyed by Archetype.String().
type EnemyConfig struct {
	Types map[string]*EnemyTypeConfig `mapstructure:"types"`
}

var Enemy EnemyConfig

// EnemyType returns the tuning for an archetype, or nil if none is configured.
func EnemyType(a Archetype) *EnemyTypeConfig {
	return Enemy.Types[a.String()]
}

func resetEnemies() {
	Enemy = EnemyConfig{Types: map[string]*EnemyTypeConfig{
		"skeleton": {
			Name:           "Skeleton",
			MaxHealth:      100,
			AttackDamage:   20,
			AttackRange:    2,
			AttackCooldown: 2 * time.Second,
			DetectionRange: 10,
			MoveSpeed:      3,
			Radius:         0.5,
			IdleSoundMin:   8 * time.Second,
			IdleSoundMax:   15 * time.Second,
			UseDissolve:    true,
			RagdollParts:   6,
		},
		"mutant": {
			Name:           "Mutant",
			MaxHealth:      150,
			AttackDamage:   25,
			AttackRange:    2.5,
			AttackCooldown: 2500 * time.Millisecond,
			DetectionRange: 12,
			MoveSpeed:      2,
			Radius:         0.8,
			IdleSoundMin:   8 * time.Second,
			IdleSoundMax:   15 * time.Second,
			UseDissolve:    true,
			RagdollParts:   8,
			Melee: MeleeVariantConfig{
				NormalDamage:     25,
				HeavyDamage:      35,
				HeavyAttackRange: 3,
			},
			Jump: JumpAttackConfig{
				Range:    8,
				Damage:   40,
				Cooldown: 5 * time.Second,
				Height:   3,
				Duration: time.Second,
			},
		},
		"wizard": {
			Name:           "Wizard",
			MaxHealth:      100,
			AttackDamage:   15,
			AttackRange:    12,
			AttackCooldown: 2 * time.Second,
			DetectionRange: 10,
			MoveSpeed:      3,
			Radius:         0.5,
			IdleSoundMin:   10 * time.Second,
			IdleSoundMax:   18 * time.Second,
			UseDissolve:    true,
			RagdollParts:   6,
			Kite: KiteConfig{
				RetreatDistance: 8,
				RetreatSpeed:    4,
				ReengageRatio:   0.8,
				TurnRate:        5,
			},
			Cast: CastConfig{
				NormalDamage:   15,
				HeavyDamage:    25,
				NormalCooldown: 2 * time.Second,
				HeavyCooldown:  4 * time.Second,
				HeavyChance:    0.3,
				PreDelay:       500 * time.Millisecond,
				PostDelay:      500 * time.Millisecond,
				AimHeight:      1.5,
				SpawnOffset:    0.8,
			},
		},
		"dragon": {
			Name:             "Dragon",
			MaxHealth:        300,
			AttackDamage:     30,
			AttackRange:      20,
			AttackCooldown:   5 * time.Second,
			DetectionRange:   20,
			MoveSpeed:        0,
			Radius:           2,
			IdleSoundMin:     6 * time.Second,
			IdleSoundMax:     12 * time.Second,
			IdleSoundInitial: 8 * time.Second,
			UseDissolve:      true,
			RagdollParts:     10,
			Bombard: BombardConfig{
				WarningTime:    2 * time.Second,
				Damage:         30,
				Radius:         5,
				Count:          3,
				UseAll:         true,
				RandomSpread:   8,
				DamageDelay:    100 * time.Millisecond,
				WarningMarkers: true,
				Explosions:     true,
			},
		},
	}}
}

func cloneEnemy(e EnemyConfig) EnemyConfig {
	out := EnemyConfig{Types: make(map[string]*EnemyTypeConfig, len(e.Types))}
	for k, v := range e.Types {
		if v == nil {
			continue
		}
		c := *v
		out.Types[k] = &c
	}
	return out
}
