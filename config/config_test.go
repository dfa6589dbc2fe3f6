package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rosterforge/rostergen/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rostergen.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.Output != "out" {
		t.Errorf("output = %s", cfg.Output)
	}
	if cfg.Generator.BaseURL != "https://generativelanguage.googleapis.com" {
		t.Errorf("base url = %s", cfg.Generator.BaseURL)
	}
	if cfg.Generator.Model != "gemini-2.5-flash" {
		t.Errorf("model = %s", cfg.Generator.Model)
	}
	if got := cfg.Generator.SamplingTemperature(); got != 0.7 {
		t.Errorf("temperature = %v", got)
	}
	if cfg.Generator.Timeout != 2*time.Minute {
		t.Errorf("timeout = %v", cfg.Generator.Timeout)
	}
	if cfg.Run.IDMode != "sequential" {
		t.Errorf("id mode = %s", cfg.Run.IDMode)
	}
	if cfg.Run.Districts != 1 || cfg.Run.SchoolsPerDistrict != 3 {
		t.Errorf("districts/schools = %d/%d", cfg.Run.Districts, cfg.Run.SchoolsPerDistrict)
	}
	if cfg.Run.TeachersPerSchool != 10 || cfg.Run.StaffPerSchool != 10 {
		t.Errorf("teachers/staff = %d/%d", cfg.Run.TeachersPerSchool, cfg.Run.StaffPerSchool)
	}
	if cfg.Run.SectionsPerSchool != 10 || cfg.Run.StudentsPerSection != 12 {
		t.Errorf("sections/students = %d/%d", cfg.Run.SectionsPerSchool, cfg.Run.StudentsPerSection)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
output: /tmp/roster-out
generator:
  model: gemini-2.5-pro
  temperature: 1.2
  timeout: 30s
run:
  id_mode: alphanumeric
  districts: 2
  states: [TX, OH]
  schools_per_district: 4
logging:
  level: debug
  format: console
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output != "/tmp/roster-out" {
		t.Errorf("output = %s", cfg.Output)
	}
	if cfg.Generator.Model != "gemini-2.5-pro" || cfg.Generator.SamplingTemperature() != 1.2 {
		t.Errorf("generator = %s/%v", cfg.Generator.Model, cfg.Generator.SamplingTemperature())
	}
	if cfg.Generator.Timeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.Generator.Timeout)
	}
	if cfg.Run.IDMode != "alphanumeric" || cfg.Run.Districts != 2 {
		t.Errorf("run = %s/%d", cfg.Run.IDMode, cfg.Run.Districts)
	}
	if len(cfg.Run.States) != 2 || cfg.Run.States[0] != "TX" {
		t.Errorf("states = %v", cfg.Run.States)
	}
	if cfg.Run.SchoolsPerDistrict != 4 {
		t.Errorf("schools = %d", cfg.Run.SchoolsPerDistrict)
	}
	// Unset fields still get defaults.
	if cfg.Run.TeachersPerSchool != 10 {
		t.Errorf("teachers = %d, want default", cfg.Run.TeachersPerSchool)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
run:
  districts: 2
`)
	t.Setenv("ROSTERGEN_DISTRICTS", "5")
	t.Setenv("ROSTERGEN_ID_MODE", "alphanumeric")
	t.Setenv("ROSTERGEN_GENERATOR_TEMPERATURE", "0.3")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Run.Districts != 5 {
		t.Errorf("districts = %d, want env override 5", cfg.Run.Districts)
	}
	if cfg.Run.IDMode != "alphanumeric" {
		t.Errorf("id mode = %s", cfg.Run.IDMode)
	}
	if got := cfg.Generator.SamplingTemperature(); got != 0.3 {
		t.Errorf("temperature = %v", got)
	}
}

func TestLoad_TemperatureZeroPreserved(t *testing.T) {
	path := writeConfig(t, "generator:\n  temperature: 0\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.Generator.SamplingTemperature(); got != 0 {
		t.Errorf("temperature = %v, want explicit 0 kept", got)
	}
}

func TestLoad_TemperatureZeroFromEnv(t *testing.T) {
	t.Setenv("ROSTERGEN_GENERATOR_TEMPERATURE", "0")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if got := cfg.Generator.SamplingTemperature(); got != 0 {
		t.Errorf("temperature = %v, want explicit 0 kept", got)
	}
}

func TestLoad_ExpandsEnvInFile(t *testing.T) {
	t.Setenv("ROSTER_OUT", "/data/rosters")
	path := writeConfig(t, "output: ${ROSTER_OUT}\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output != "/data/rosters" {
		t.Errorf("output = %s", cfg.Output)
	}
}

func TestLoadWithFallback_MissingFile(t *testing.T) {
	cfg, err := config.LoadWithFallback(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadWithFallback failed: %v", err)
	}
	if cfg.Output != "out" {
		t.Errorf("output = %s, want defaults", cfg.Output)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad id mode", "run:\n  id_mode: random\n", "id mode"},
		{"one teacher", "run:\n  teachers_per_school: 1\n", "teachers_per_school"},
		{"one section", "run:\n  sections_per_school: 1\n", "sections_per_school"},
		{"too many states", "run:\n  districts: 1\n  states: [TX, OH]\n", "states"},
		{"unknown state", "run:\n  states: [ZZ]\n", "unknown state"},
		{"temperature out of range", "generator:\n  temperature: 3.5\n", "temperature"},
		{"bad log level", "logging:\n  level: verbose\n", "logging.level"},
		{"bad log format", "logging:\n  format: xml\n", "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidate_AfterFlagOverride(t *testing.T) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatal(err)
	}

	cfg.Run.Districts = 0
	if err := config.Validate(cfg); err == nil {
		t.Error("expected validation error for zero districts")
	}
}
