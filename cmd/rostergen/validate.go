package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterforge/rostergen/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadWithFallback(cfgFile)
		if err != nil {
			return fmt.Errorf("configuration invalid: %w", err)
		}
		fmt.Printf("Configuration valid\n")
		fmt.Printf("  Output:    %s\n", cfg.Output)
		fmt.Printf("  Model:     %s (temperature %.2f)\n", cfg.Generator.Model, cfg.Generator.SamplingTemperature())
		fmt.Printf("  ID mode:   %s\n", cfg.Run.IDMode)
		fmt.Printf("  Districts: %d (%d schools each)\n", cfg.Run.Districts, cfg.Run.SchoolsPerDistrict)
		fmt.Printf("  Density:   %d teachers, %d staff, %d sections x %d students per school\n",
			cfg.Run.TeachersPerSchool, cfg.Run.StaffPerSchool,
			cfg.Run.SectionsPerSchool, cfg.Run.StudentsPerSection)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
