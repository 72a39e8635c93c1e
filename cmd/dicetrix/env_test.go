package main

import (
	"testing"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/config"
)

func TestLoadEnvDefaults(t *testing.T) {
	d, err := loadEnv()
	if err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	if d.FPS != 60 {
		t.Errorf("FPS = %d, want 60", d.FPS)
	}
	if d.DBPath != "~/.dicetrix/runs.db" {
		t.Errorf("DBPath = %q", d.DBPath)
	}
	if d.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", d.LogLevel)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DICETRIX_DB", "/tmp/runs.db")
	t.Setenv("DICETRIX_SEED", "42")
	t.Setenv("DICETRIX_FPS", "30")
	t.Setenv("DICETRIX_CONFIG", "./modes.yaml")

	d, err := loadEnv()
	if err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	if d.DBPath != "/tmp/runs.db" || d.Seed != 42 || d.FPS != 30 || d.ConfigPath != "./modes.yaml" {
		t.Errorf("overrides not applied: %+v", d)
	}
}

func TestLoadEnvBadValue(t *testing.T) {
	t.Setenv("DICETRIX_FPS", "fast")

	d, err := loadEnv()
	if err == nil {
		t.Fatal("expected error for non-numeric DICETRIX_FPS")
	}
	if d.FPS != 60 {
		t.Errorf("fallback FPS = %d, want 60", d.FPS)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    config.DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"easy", config.DifficultyEasy, false},
		{"fixed", config.DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePreset(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
