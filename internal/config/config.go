// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv("ZONEKIT_CONFIG_JSON")

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	applyDefaults(&c)

	return c, validate(c)
}

// Default returns the configuration used when no config file is present:
// console logging and the file snapshot store, enough for the offline
// fmt/diff commands.
func Default() Config {
	c := Config{}
	c.Title = "zonekit"
	c.Log.LogLevel = "info"
	c.Log.ServiceName = "zonekit"
	c.Log.Console.Enabled = true
	c.Log.Console.UseConsoleWriter = true

	applyDefaults(&c)

	return c
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// applyDefaults fills the settings that have a sensible fallback.
func applyDefaults(c *Config) {
	if c.Store.Backend == "" {
		c.Store.Backend = "file"
	}

	if c.Store.Path == "" {
		c.Store.Path = "./zones"
	}

	if c.Updates.Timeout == 0 {
		c.Updates.Timeout = 30 // seconds
	}

	if c.Updates.TSIGAlgorithm == "" {
		c.Updates.TSIGAlgorithm = "hmac-sha256."
	}

	if c.DB.Engine == "" {
		c.DB.Engine = "sqlite"
	}

	if c.DB.Path == "" {
		c.DB.Path = "./zonekit.db"
	}
}

// validate minimal config settings for zonekit. Structural constraints are
// checked with validator tags, cross-field requirements by hand.
func validate(c Config) error {
	invalidErrMessage := "invalid config"

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	switch c.DB.Engine {
	case "sqlite", "mysql", "postgres":
	default:
		return errors.Wrap(ErrUnknownDBEngine, invalidErrMessage)
	}

	switch c.Updates.Mode {
	case "pdns":
		if c.PDNS.URL == "" {
			return errors.Wrap(ErrPDNSURLEmpty, invalidErrMessage)
		}
	case "rfc2136":
		if c.Updates.Server == "" {
			return errors.Wrap(ErrUpdateServerEmpty, invalidErrMessage)
		}
	}

	return nil
}
