package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/imageforge/imageforge/pkg/pipeline"
	"github.com/imageforge/imageforge/pkg/script"
	"github.com/imageforge/imageforge/pkg/source"
)

const (
	configFileName = "config.toml"
	defaultListen  = ":8080"
)

// Config holds settings read from config.toml. Command-line flags override
// these values.
type Config struct {
	OutputDir       string        `toml:"output_dir"`
	Scale           float64       `toml:"scale"`
	PollInterval    time.Duration `toml:"poll_interval"`
	Cache           string        `toml:"cache"`
	RedisURL        string        `toml:"redis_url"`
	Listen          string        `toml:"listen"`
	MaxProgramBytes int           `toml:"max_program_bytes"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		OutputDir:       ".",
		Scale:           pipeline.DefaultScale,
		PollInterval:    source.DefaultPollInterval,
		Cache:           cacheFile,
		RedisURL:        "redis://localhost:6379/0",
		Listen:          defaultListen,
		MaxProgramBytes: script.DefaultMaxProgramBytes,
	}
}

// LoadConfig reads the config file at path on top of the defaults. An empty
// path means the XDG location, which may be absent; an explicit path must
// exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache {
	case cacheFile, cacheRedis, cacheNone:
	default:
		return fmt.Errorf("cache must be one of file, redis, none (got %q)", c.Cache)
	}
	if c.Scale <= 0 || c.Scale > pipeline.MaxScale {
		return fmt.Errorf("scale must be in (0, %v]", pipeline.MaxScale)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	if c.MaxProgramBytes <= 0 {
		return fmt.Errorf("max_program_bytes must be positive")
	}
	return nil
}
