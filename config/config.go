// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rosterforge/rostergen/domain/identity"
)

// Config is the root configuration structure.
type Config struct {
	Output    string          `yaml:"output"`
	Generator GeneratorConfig `yaml:"generator"`
	Run       RunConfig       `yaml:"run"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GeneratorConfig configures the external generative model call.
// Temperature is a pointer so an explicit 0 (deterministic sampling) is
// distinguishable from unset.
type GeneratorConfig struct {
	BaseURL         string        `yaml:"base_url"`
	Model           string        `yaml:"model"`
	Temperature     *float64      `yaml:"temperature"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
}

// SamplingTemperature returns the configured temperature, defaulting when
// the field was never set.
func (g GeneratorConfig) SamplingTemperature() float64 {
	if g.Temperature == nil {
		return defaultTemperature
	}
	return *g.Temperature
}

const defaultTemperature = 0.7

// RunConfig configures ID allocation and rostering density.
type RunConfig struct {
	IDMode             string   `yaml:"id_mode"` // "sequential" or "alphanumeric"
	Districts          int      `yaml:"districts"`
	States             []string `yaml:"states,omitempty"` // optional explicit state per district
	SchoolsPerDistrict int      `yaml:"schools_per_district"`
	TeachersPerSchool  int      `yaml:"teachers_per_school"`
	StaffPerSchool     int      `yaml:"staff_per_school"`
	SectionsPerSchool  int      `yaml:"sections_per_school"`
	StudentsPerSection int      `yaml:"students_per_section"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// EnvAPIKey is the only source for the generator API key; it never lives
// in the config file.
const EnvAPIKey = "ROSTERGEN_API_KEY"

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables,
// for runs with no config file.
//
// Environment variables:
//
//	ROSTERGEN_OUTPUT               - Output root directory (default: out)
//	ROSTERGEN_GENERATOR_BASE_URL   - Model API base URL
//	ROSTERGEN_GENERATOR_MODEL      - Model name
//	ROSTERGEN_GENERATOR_TEMPERATURE- Sampling temperature (default: 0.7)
//	ROSTERGEN_ID_MODE              - sequential or alphanumeric
//	ROSTERGEN_DISTRICTS            - Number of districts
//	ROSTERGEN_SCHOOLS_PER_DISTRICT - Schools per district
//	ROSTERGEN_TEACHERS_PER_SCHOOL  - Teachers per school
//	ROSTERGEN_STAFF_PER_SCHOOL     - Staff per school
//	ROSTERGEN_SECTIONS_PER_SCHOOL  - Sections per school
//	ROSTERGEN_STUDENTS_PER_SECTION - Students per section
//	ROSTERGEN_LOG_LEVEL            - debug, info, warn, error
//	ROSTERGEN_LOG_FORMAT           - json or console
func LoadFromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback tries to load from file, falls back to environment
// variables when the file does not exist.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

// Validate re-checks a configuration after programmatic changes, such as
// command-line flag overrides.
func Validate(cfg *Config) error {
	return validate(cfg)
}

// applyEnvOverrides applies ROSTERGEN_* environment variables to the
// config. Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ROSTERGEN_OUTPUT"); v != "" {
		cfg.Output = v
	}

	if v := os.Getenv("ROSTERGEN_GENERATOR_BASE_URL"); v != "" {
		cfg.Generator.BaseURL = v
	}
	if v := os.Getenv("ROSTERGEN_GENERATOR_MODEL"); v != "" {
		cfg.Generator.Model = v
	}
	if v := os.Getenv("ROSTERGEN_GENERATOR_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Generator.Temperature = &f
		}
	}
	if v := os.Getenv("ROSTERGEN_GENERATOR_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Generator.Timeout = d
		}
	}
	if v := os.Getenv("ROSTERGEN_GENERATOR_MAX_OUTPUT_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generator.MaxOutputTokens = n
		}
	}

	if v := os.Getenv("ROSTERGEN_ID_MODE"); v != "" {
		cfg.Run.IDMode = v
	}
	envInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	envInt("ROSTERGEN_DISTRICTS", &cfg.Run.Districts)
	envInt("ROSTERGEN_SCHOOLS_PER_DISTRICT", &cfg.Run.SchoolsPerDistrict)
	envInt("ROSTERGEN_TEACHERS_PER_SCHOOL", &cfg.Run.TeachersPerSchool)
	envInt("ROSTERGEN_STAFF_PER_SCHOOL", &cfg.Run.StaffPerSchool)
	envInt("ROSTERGEN_SECTIONS_PER_SCHOOL", &cfg.Run.SectionsPerSchool)
	envInt("ROSTERGEN_STUDENTS_PER_SECTION", &cfg.Run.StudentsPerSection)

	if v := os.Getenv("ROSTERGEN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ROSTERGEN_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Output == "" {
		cfg.Output = "out"
	}

	if cfg.Generator.BaseURL == "" {
		cfg.Generator.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = "gemini-2.5-flash"
	}
	if cfg.Generator.Temperature == nil {
		t := defaultTemperature
		cfg.Generator.Temperature = &t
	}
	if cfg.Generator.Timeout == 0 {
		cfg.Generator.Timeout = 2 * time.Minute
	}

	if cfg.Run.IDMode == "" {
		cfg.Run.IDMode = string(identity.ModeSequential)
	}
	if cfg.Run.Districts == 0 {
		cfg.Run.Districts = 1
	}
	if cfg.Run.SchoolsPerDistrict == 0 {
		cfg.Run.SchoolsPerDistrict = 3
	}
	if cfg.Run.TeachersPerSchool == 0 {
		cfg.Run.TeachersPerSchool = 10
	}
	if cfg.Run.StaffPerSchool == 0 {
		cfg.Run.StaffPerSchool = 10
	}
	if cfg.Run.SectionsPerSchool == 0 {
		cfg.Run.SectionsPerSchool = 10
	}
	if cfg.Run.StudentsPerSection == 0 {
		cfg.Run.StudentsPerSection = 12
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validate(cfg *Config) error {
	if _, err := identity.ParseMode(cfg.Run.IDMode); err != nil {
		return err
	}

	if cfg.Run.Districts < 1 {
		return fmt.Errorf("run.districts must be at least 1")
	}
	if cfg.Run.SchoolsPerDistrict < 1 {
		return fmt.Errorf("run.schools_per_district must be at least 1")
	}
	// Co-teaching needs two distinct teachers; the multi-section student
	// rule needs a second section to enroll into.
	if cfg.Run.TeachersPerSchool < 2 {
		return fmt.Errorf("run.teachers_per_school must be at least 2")
	}
	if cfg.Run.SectionsPerSchool < 2 {
		return fmt.Errorf("run.sections_per_school must be at least 2")
	}
	if cfg.Run.StaffPerSchool < 1 {
		return fmt.Errorf("run.staff_per_school must be at least 1")
	}
	if cfg.Run.StudentsPerSection < 1 {
		return fmt.Errorf("run.students_per_section must be at least 1")
	}
	if len(cfg.Run.States) > cfg.Run.Districts {
		return fmt.Errorf("run.states lists %d states for %d districts", len(cfg.Run.States), cfg.Run.Districts)
	}
	for i, s := range cfg.Run.States {
		if !identity.ValidState(s) {
			return fmt.Errorf("run.states[%d]: unknown state %q", i, s)
		}
	}

	if t := cfg.Generator.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("generator.temperature must be between 0 and 2, got %v", *t)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", cfg.Logging.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}

	return nil
}
