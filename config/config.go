package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/spacejam/parameter"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfigName is looked up in the working directory when --config is not given
const DefaultConfigName = "spacejam"

// MissileConfig holds the fire solution settings
type MissileConfig struct {
	Distance       float64       `mapstructure:"distance"`
	SpawnOffset    float64       `mapstructure:"spawnOffset"`
	Duration       time.Duration `mapstructure:"duration"`
	Scale          float64       `mapstructure:"scale"`
	ColliderRadius float64       `mapstructure:"colliderRadius"`
}

// WeaponConfig holds the missile bay settings
type WeaponConfig struct {
	ReloadTime  time.Duration `mapstructure:"reloadTime"`
	AutoReload  bool          `mapstructure:"autoReload"`
	BayCapacity int           `mapstructure:"bayCapacity"`
}

// ShipConfig holds per-frame handling
type ShipConfig struct {
	MoveRate   float64 `mapstructure:"moveRate"`
	TurnRate   float64 `mapstructure:"turnRate"`
	PitchLimit float64 `mapstructure:"pitchLimit"`
}

// PlacementConfig bounds planet scatter, the scene manifest owns the geometry
type PlacementConfig struct {
	MaxAttempts int `mapstructure:"maxAttempts"` // 0 retries forever
}

// Config is the decoded game configuration
type Config struct {
	Debug    bool   `mapstructure:"debug"`
	Mute     bool   `mapstructure:"mute"`
	Seed     uint64 `mapstructure:"seed"` // 0 seeds from the clock
	FPS      int    `mapstructure:"fps"`
	Manifest string `mapstructure:"manifest"` // Empty uses the embedded scene
	LogDir   string `mapstructure:"logDir"`

	Missile   MissileConfig   `mapstructure:"missile"`
	Weapon    WeaponConfig    `mapstructure:"weapon"`
	Ship      ShipConfig      `mapstructure:"ship"`
	Placement PlacementConfig `mapstructure:"placement"`

	// Keys overrides terminal key bindings, key → bus event name
	Keys map[string]string `mapstructure:"keys"`

	// File is the config file actually read, empty when running on defaults
	File string `mapstructure:"-"`
}

// Flags returns the command line flags understood by Load
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("spacejam", pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (TOML)")
	fs.StringP("manifest", "m", "", "scene manifest (YAML), embedded scene when empty")
	fs.BoolP("debug", "d", false, "write debug log to the log directory")
	fs.Uint64("seed", 0, "world seed, 0 seeds from the clock")
	fs.Bool("mute", false, "disable audio")
	fs.Int("fps", parameter.FrameRate, "frame rate")
	fs.Bool("auto-reload", false, "reload right after the bay empties")
	return fs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("mute", false)
	v.SetDefault("seed", 0)
	v.SetDefault("fps", parameter.FrameRate)
	v.SetDefault("manifest", "")
	v.SetDefault("logDir", parameter.LogDir)

	v.SetDefault("missile.distance", parameter.MissileDistance)
	v.SetDefault("missile.spawnOffset", parameter.MissileSpawnOffset)
	v.SetDefault("missile.duration", parameter.MissileTravelDuration)
	v.SetDefault("missile.scale", parameter.MissileScale)
	v.SetDefault("missile.colliderRadius", parameter.MissileColliderRadius)

	v.SetDefault("weapon.reloadTime", parameter.ReloadTime)
	v.SetDefault("weapon.autoReload", false)
	v.SetDefault("weapon.bayCapacity", parameter.MissileBayCapacity)

	v.SetDefault("ship.moveRate", parameter.ShipMoveRate)
	v.SetDefault("ship.turnRate", parameter.ShipTurnRate)
	v.SetDefault("ship.pitchLimit", parameter.ShipPitchLimit)

	v.SetDefault("placement.maxAttempts", parameter.MaxPlacementAttempts)
}

// Default returns the built-in configuration, no file or flags
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("decoding defaults: %v", err))
	}
	return cfg
}

// Load resolves defaults, the optional config file and flags, in increasing precedence
// fs may be nil; a missing default config file is not an error, a missing explicit one is
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	path := ""
	if fs != nil {
		binds := map[string]string{
			"debug":             "debug",
			"mute":              "mute",
			"seed":              "seed",
			"fps":               "fps",
			"manifest":          "manifest",
			"weapon.autoReload": "auto-reload",
		}
		for key, name := range binds {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
		path, _ = fs.GetString("config")
	}

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the game loop cannot run with
func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	case c.Missile.Distance <= 0:
		return fmt.Errorf("%w: missile.distance must be positive", ErrInvalidConfig)
	case c.Missile.SpawnOffset < 0 || c.Missile.SpawnOffset >= c.Missile.Distance:
		return fmt.Errorf("%w: missile.spawnOffset must be in [0, distance)", ErrInvalidConfig)
	case c.Missile.Duration <= 0:
		return fmt.Errorf("%w: missile.duration must be positive", ErrInvalidConfig)
	case c.Missile.ColliderRadius <= 0:
		return fmt.Errorf("%w: missile.colliderRadius must be positive", ErrInvalidConfig)
	case c.Weapon.ReloadTime < 0:
		return fmt.Errorf("%w: weapon.reloadTime must not be negative", ErrInvalidConfig)
	case c.Weapon.BayCapacity <= 0:
		return fmt.Errorf("%w: weapon.bayCapacity must be positive", ErrInvalidConfig)
	case c.Ship.MoveRate <= 0 || c.Ship.TurnRate <= 0:
		return fmt.Errorf("%w: ship rates must be positive", ErrInvalidConfig)
	case c.Ship.PitchLimit <= 0 || c.Ship.PitchLimit > parameter.ShipPitchLimit:
		return fmt.Errorf("%w: ship.pitchLimit must be in (0, %g]", ErrInvalidConfig, float64(parameter.ShipPitchLimit))
	case c.Placement.MaxAttempts < 0:
		return fmt.Errorf("%w: placement.maxAttempts must not be negative", ErrInvalidConfig)
	}
	return nil
}

// FrameInterval is the wall clock frame delta at the configured FPS
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
