package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// Defaults applied after load.
const (
	DefaultPort        = 16181
	DefaultTickMS      = 1000
	DefaultProducerRef = "FLEET"
)

// LoadAppConfig loads and validates the application configuration. The file
// is optional (environment variables and defaults are enough to run); a path
// that is explicitly given but unreadable is an error.
func LoadAppConfig(path string) error {
	var cfg AppConfig

	paths := []string{"config.yml"}
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		if path != "" || !errors.Is(err, os.ErrNotExist) {
			return err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	if err := env.Parse(&cfg); err != nil {
		return err
	}

	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return err
	}
	if err := v.Struct(cfg.Replay); err != nil {
		return err
	}

	Config = cfg
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Replay.TickMS == 0 {
		cfg.Replay.TickMS = DefaultTickMS
	}
	if cfg.Replay.FrameIntervalMS == 0 {
		cfg.Replay.FrameIntervalMS = cfg.Replay.TickMS
	}
	if cfg.Replay.ProducerRef == "" {
		cfg.Replay.ProducerRef = DefaultProducerRef
	}
}
