package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. ILLUYANKA_DASH_DISTANCE.
const EnvPrefix = "ILLUYANKA"

// Load overlays the YAML file at path and ILLUYANKA_* environment variables
// on top of the current values, validates the result and applies it.
// An empty path only applies environment overrides.
//
// Postcondition: on error the package-level sections are left unchanged.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	current := Snapshot()
	setDefaults(v, "", reflect.ValueOf(current))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	Apply(cfg)
	return cfg, nil
}

// setDefaults registers every leaf of val under its mapstructure key so that
// file values and environment variables only need to name what they change.
func setDefaults(v *viper.Viper, prefix string, val reflect.Value) {
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !val.IsNil() {
			setDefaults(v, prefix, val.Elem())
		}
	case reflect.Struct:
		t := val.Type()
		for i := 0; i < t.NumField(); i++ {
			key := t.Field(i).Tag.Get("mapstructure")
			if key == "" || key == "-" {
				continue
			}
			setDefaults(v, joinKey(prefix, key), val.Field(i))
		}
	case reflect.Map:
		for _, k := range val.MapKeys() {
			setDefaults(v, joinKey(prefix, strings.ToLower(fmt.Sprint(k.Interface()))), val.MapIndex(k))
		}
	default:
		v.SetDefault(prefix, val.Interface())
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Validate checks every section and reports all problems at once.
func (c Config) Validate() error {
	var errs []string

	if c.Sim.TickRate <= 0 {
		errs = append(errs, "sim.tick_rate must be > 0")
	}
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, "arena width and height must be > 0")
	}
	if c.Arena.CellSize <= 0 {
		errs = append(errs, "arena.cell_size must be > 0")
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Player.MaxHealth <= 0 {
		errs = append(errs, "player.max_health must be > 0")
	}
	if c.Player.AttackRange <= 0 {
		errs = append(errs, "player.attack_range must be > 0")
	}
	if c.Dash.Distance <= 0 || c.Dash.Duration <= 0 {
		errs = append(errs, "dash distance and duration must be > 0")
	}
	if c.Dash.ObstacleMargin < 0 {
		errs = append(errs, "dash.obstacle_margin must be >= 0")
	}
	if c.Projectile.Speed <= 0 || c.Projectile.Lifetime <= 0 {
		errs = append(errs, "projectile speed and lifetime must be > 0")
	}
	if c.Death.DissolveTime <= 0 {
		errs = append(errs, "death.dissolve_time must be > 0")
	}
	for name, t := range c.Enemy.Types {
		if _, err := ParseArchetype(name); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if t == nil {
			continue
		}
		errs = append(errs, validateEnemyType(name, t)...)
	}
	for _, vol := range []float64{c.Audio.MasterVolume, c.Audio.MusicVolume, c.Audio.SFXVolume, c.Audio.UIVolume} {
		if vol < 0 || vol > 1 {
			errs = append(errs, fmt.Sprintf("audio volume %v outside [0, 1]", vol))
			break
		}
	}
	if c.Server.TickRate <= 0 || c.Server.MaxClients <= 0 {
		errs = append(errs, "server tick_rate and max_clients must be > 0")
	}
	if c.Audio.MaxDistance < c.Audio.MinDistance {
		errs = append(errs, "audio.max_distance must be >= audio.min_distance")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateEnemyType(name string, t *EnemyTypeConfig) []string {
	var errs []string
	if t.MaxHealth <= 0 {
		errs = append(errs, fmt.Sprintf("enemy.types.%s.max_health must be > 0", name))
	}
	if t.DetectionRange < 0 || t.AttackRange < 0 {
		errs = append(errs, fmt.Sprintf("enemy.types.%s ranges must be >= 0", name))
	}
	if t.IdleSoundMax < t.IdleSoundMin {
		errs = append(errs, fmt.Sprintf("enemy.types.%s.idle_sound_max must be >= idle_sound_min", name))
	}
	if t.Cast.HeavyChance < 0 || t.Cast.HeavyChance > 1 {
		errs = append(errs, fmt.Sprintf("enemy.types.%s.cast.heavy_chance outside [0, 1]", name))
	}
	if t.Bombard.Count < 0 {
		errs = append(errs, fmt.Sprintf("enemy.types.%s.bombard.count must be >= 0", name))
	}
	return errs
}

func validateLogging(l LoggingConfig) error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", l.Level)
	}
	switch l.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q must be json or console", l.Format)
	}
	return nil
}
