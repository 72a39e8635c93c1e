package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envDefaults are flag defaults read from the environment.
type envDefaults struct {
	DBPath     string `env:"DICETRIX_DB" envDefault:"~/.dicetrix/runs.db"`
	Seed       int64  `env:"DICETRIX_SEED" envDefault:"0"`
	ConfigPath string `env:"DICETRIX_CONFIG"`
	LogLevel   string `env:"DICETRIX_LOG_LEVEL" envDefault:"warn"`
	FPS        int    `env:"DICETRIX_FPS" envDefault:"60"`
}

func loadEnv() (envDefaults, error) {
	var d envDefaults
	if err := env.Parse(&d); err != nil {
		return envDefaults{
			DBPath:   "~/.dicetrix/runs.db",
			LogLevel: "warn",
			FPS:      60,
		}, fmt.Errorf("parse env: %w", err)
	}
	return d, nil
}
