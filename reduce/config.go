package reduce

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the file form of the reduction options.
type Config struct {
	Preserve     []string `yaml:"preserve"`
	Tries        int      `yaml:"tries"`
	Threads      int      `yaml:"threads"`
	Best         int      `yaml:"best"`
	Seed         int64    `yaml:"seed"`
	Tau          int      `yaml:"tau"`
	LatticeDepth int      `yaml:"lattice_depth"`
	MaxChain     int      `yaml:"max_chain"`
}

// DefaultConfig mirrors DefaultOptions.
func DefaultConfig() Config {
	o := DefaultOptions()

	return Config{
		Preserve:     o.Preserve,
		Tries:        o.Tries,
		Threads:      o.Threads,
		Best:         o.Best,
		Seed:         o.Seed,
		Tau:          o.Tau,
		LatticeDepth: o.LatticeDepth,
		MaxChain:     o.MaxChain,
	}
}

// LoadConfig starts from DefaultConfig, overlays the YAML file at path (an
// empty path or a missing file is skipped), then the TILEREDUCE_TRIES,
// TILEREDUCE_THREADS, TILEREDUCE_SEED and TILEREDUCE_PRESERVE environment
// variables, and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	loadConfigFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func loadConfigFromEnv(cfg *Config) {
	if v := os.Getenv("TILEREDUCE_TRIES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Tries = i
		}
	}
	if v := os.Getenv("TILEREDUCE_THREADS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Threads = i
		}
	}
	if v := os.Getenv("TILEREDUCE_SEED"); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = i
		}
	}
	if v := os.Getenv("TILEREDUCE_PRESERVE"); v != "" {
		cfg.Preserve = strings.Split(v, ",")
	}
}

// Validate applies the same range checks as the reduction entry points.
func (c Config) Validate() error {
	o := Options{}
	for _, opt := range c.Options() {
		opt(&o)
	}
	_, err := o.validate()

	return err
}

// Options converts c into reduction options.
func (c Config) Options() []Option {
	return []Option{
		WithPreserve(c.Preserve...),
		WithTries(c.Tries),
		WithThreads(c.Threads),
		WithBest(c.Best),
		WithSeed(c.Seed),
		WithTau(c.Tau),
		WithLatticeDepth(c.LatticeDepth),
		WithMaxChain(c.MaxChain),
	}
}
