package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config selects and parameterizes the storage backend.
type Config struct {
	Storage struct {
		// Backend is one of: memory, sqlite, redis, postgres.
		Backend string `yaml:"backend"`
		// Path is the SQLite database file, for the sqlite backend.
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Default is the zero-configuration setup: a SQLite file next to the data
// the user already has.
func Default() Config {
	cfg := Config{}
	cfg.Storage.Backend = "sqlite"
	cfg.Storage.Path = "quiz-practice.db"
	return cfg
}

// Load reads YAML config from path. A missing file yields the defaults so
// the CLI works without any setup.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
