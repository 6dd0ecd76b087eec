package commands

import (
	"fmt"

	"github.com/wangyifan349/resolvboot/internal/config"
	"github.com/wangyifan349/resolvboot/internal/log"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
}

// loadAndValidateConfigOrFail loads configuration from file and validates it.
// A missing file yields the built-in defaults, so every command works on a
// host that has never seen a config file.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	if cfg.General.Verbose {
		log.SetVerbose(true)
	}

	return cfg, nil
}
