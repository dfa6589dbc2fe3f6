// Package bootstrap wires configuration into a runnable application:
// logger, generator client, ID registry, writer, and pipeline.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rosterforge/rostergen/adapters/clock"
	"github.com/rosterforge/rostergen/adapters/csvfile"
	"github.com/rosterforge/rostergen/adapters/genai"
	"github.com/rosterforge/rostergen/adapters/random"
	"github.com/rosterforge/rostergen/app"
	"github.com/rosterforge/rostergen/config"
	"github.com/rosterforge/rostergen/domain/identity"
)

// App is the wired application.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Pipeline *app.Pipeline

	runID string
}

// New creates an application from configuration. The generator API key is
// read from the environment only.
func New(cfg *config.Config) (*App, error) {
	apiKey := os.Getenv(config.EnvAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%s is not set", config.EnvAPIKey)
	}

	runID := uuid.New().String()
	logger := setupLogger(cfg.Logging).With().Str("run_id", runID).Logger()

	gen := genai.NewClient(genai.Config{
		BaseURL:         cfg.Generator.BaseURL,
		APIKey:          apiKey,
		Model:           cfg.Generator.Model,
		Temperature:     cfg.Generator.SamplingTemperature(),
		MaxOutputTokens: cfg.Generator.MaxOutputTokens,
		Timeout:         cfg.Generator.Timeout,
	})

	mode, err := identity.ParseMode(cfg.Run.IDMode)
	if err != nil {
		return nil, err
	}
	registry := identity.NewRegistry(mode, random.Real{})

	pipeline := app.New(
		gen,
		csvfile.NewWriter(cfg.Output),
		registry,
		clock.Real{},
		logger,
		app.Params{
			Districts:          cfg.Run.Districts,
			States:             cfg.Run.States,
			SchoolsPerDistrict: cfg.Run.SchoolsPerDistrict,
			TeachersPerSchool:  cfg.Run.TeachersPerSchool,
			StaffPerSchool:     cfg.Run.StaffPerSchool,
			SectionsPerSchool:  cfg.Run.SectionsPerSchool,
			StudentsPerSection: cfg.Run.StudentsPerSection,
		},
	)

	return &App{Config: cfg, Logger: logger, Pipeline: pipeline, runID: runID}, nil
}

// Run executes the generation run and logs a per-unit summary. The
// returned report carries every district and school outcome; err is
// non-nil only when the run itself could not proceed.
func (a *App) Run(ctx context.Context) (app.Report, error) {
	a.Logger.Info().
		Str("id_mode", a.Config.Run.IDMode).
		Int("districts", a.Config.Run.Districts).
		Str("model", a.Config.Generator.Model).
		Msg("generation run starting")

	report, err := a.Pipeline.Run(ctx)
	report.RunID = a.runID
	if err != nil {
		return report, err
	}

	for _, d := range report.Districts {
		if d.Err != nil {
			a.Logger.Error().Int("district_index", d.Index).Err(d.Err).Msg("district failed")
			continue
		}
		failed := 0
		for _, s := range d.Schools {
			if s.Err != nil {
				failed++
			}
		}
		a.Logger.Info().
			Str("district", d.Name).
			Str("dir", d.OutputDir).
			Int("schools", len(d.Schools)).
			Int("schools_failed", failed).
			Msg("district complete")
	}
	return report, nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
