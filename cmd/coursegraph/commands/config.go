package commands

import (
	"coursegraph/internal/components/telemetry"
	"coursegraph/lib/configutil"
	"errors"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
)

const config_name = "coursegraph.json5"

type Config struct {
	BaseUrl           string           `json:"base_url"`
	Output            string           `json:"output"`
	TimeoutSeconds    int              `json:"timeout_seconds"`
	RequestsPerSecond float64          `json:"requests_per_second"`
	UserAgent         string           `json:"user_agent"`
	Debug             bool             `json:"debug"`
	HttpDumpDir       string           `json:"http_dump_dir"`
	Telemetry         telemetry.Config `json:"telemetry"`
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func defaultConfig() Config {
	return Config{
		BaseUrl:           "https://wl11gp.neu.edu/udcprod8/",
		Output:            "courses.gv",
		TimeoutSeconds:    30,
		RequestsPerSecond: 2,
	}
}

// withDefaults fills every zero field of the config with its default.
func withDefaults(cfg Config) (Config, error) {
	err := mergo.Merge(&cfg, defaultConfig())
	return cfg, err
}

// loadConfig reads coursegraph.json5 from the working directory or one of
// its parents, running without one is fine.
func loadConfig() (Config, error) {
	cfg, err := configutil.ReadRecursively[Config](config_name)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	cfg, err = withDefaults(cfg)
	if err != nil {
		return Config{}, err
	}
	err = cfg.validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate rejects values that defaults cannot fix, zero values are
// replaced by withDefaults before this runs.
func (c Config) validate() error {
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if !(c.RequestsPerSecond > 0) {
		return fmt.Errorf("requests_per_second must be positive, got %v", c.RequestsPerSecond)
	}
	return nil
}
