package app

import (
	"github.com/zonekit/zonekit/internal/config"
	"github.com/zonekit/zonekit/internal/db"
	"github.com/zonekit/zonekit/internal/logger"
	"github.com/zonekit/zonekit/internal/store"
)

var (
	configPath string // Path to the configuration file

	cfg config.Config
	err error
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration directory")
}

// setup loads the configuration and initializes the logger. Offline
// commands run fine on built-in defaults when no config file is present;
// commands that need the database or the update channel require one.
func setup(requireFile bool) error {
	cfg, err = config.ReadConfig(configPath)
	if err != nil {
		if requireFile {
			return err
		}

		cfg = config.Default()
	}

	return logger.Init(cfg.Log)
}

// openStore builds the configured snapshot store.
func openStore() (store.Store, error) {
	if cfg.Store.Backend == "db" {
		gdb, err := db.Open(&cfg)
		if err != nil {
			return nil, err
		}

		return store.NewDBStore(gdb), nil
	}

	return store.NewFileStore(cfg.Store.Path), nil
}
