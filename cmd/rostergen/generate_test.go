package main

import (
	"testing"

	"github.com/rosterforge/rostergen/config"
)

func TestApplyGenerateFlags_TemperatureZero(t *testing.T) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatal(err)
	}

	// Untouched flag leaves the configured default in place.
	applyGenerateFlags(generateCmd, cfg)
	if got := cfg.Generator.SamplingTemperature(); got != 0.7 {
		t.Fatalf("temperature = %v, want default 0.7 before any flag", got)
	}

	// An explicit --temperature 0 must win over the default.
	if err := generateCmd.Flags().Set("temperature", "0"); err != nil {
		t.Fatal(err)
	}
	applyGenerateFlags(generateCmd, cfg)
	if got := cfg.Generator.SamplingTemperature(); got != 0 {
		t.Errorf("temperature = %v, want explicit 0 from flag", got)
	}
}

func TestApplyGenerateFlags_Overrides(t *testing.T) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatal(err)
	}

	genDistricts = 4
	genIDMode = "alphanumeric"
	defer func() { genDistricts = 0; genIDMode = "" }()

	applyGenerateFlags(generateCmd, cfg)
	if cfg.Run.Districts != 4 {
		t.Errorf("districts = %d, want 4", cfg.Run.Districts)
	}
	if cfg.Run.IDMode != "alphanumeric" {
		t.Errorf("id mode = %s", cfg.Run.IDMode)
	}
}
