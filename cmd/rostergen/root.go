package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rostergen",
	Short: "Synthetic school-district rostering data generator",
	Long: `Rostergen produces referentially-consistent rostering datasets
(schools, teachers, staff, students, sections, enrollments) as per-district
CSV file sets, for exercising rostering-integration pipelines.

Record content comes from an external generative model; rostergen owns ID
allocation, cross-table referential integrity, and the deliberate special
cases (dual-role users, co-taught sections, multi-section students).

Quick start:
  rostergen init       # Write a starter config file
  rostergen generate   # Run the generation pipeline

Checks:
  rostergen validate   # Validate configuration
  rostergen verify     # Re-check written CSV directories`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "rostergen.yaml", "config file path")
}
