package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rosterforge/rostergen/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a starter rostergen.yaml with the default run parameters.

The generator API key is never stored in the file; set ` + config.EnvAPIKey + `
in the environment before running "rostergen generate".`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

const starterConfig = `# rostergen configuration
output: out

generator:
  base_url: https://generativelanguage.googleapis.com
  model: gemini-2.5-flash
  temperature: 0.7
  timeout: 2m

run:
  # sequential: district k owns the integer block starting at (k+1)*100000
  # alphanumeric: state-aware codes with random, non-pattern suffixes
  id_mode: sequential
  districts: 1
  # states: [TX, OH]   # optional; assigned round-robin when omitted
  schools_per_district: 3
  teachers_per_school: 10
  staff_per_school: 10
  sections_per_school: 10
  students_per_section: 12

logging:
  level: info
  format: console
`

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(cfgFile); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile)
	}
	if err := os.WriteFile(cfgFile, []byte(starterConfig), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", cfgFile)
	fmt.Printf("Set %s and run: rostergen generate\n", config.EnvAPIKey)
	return nil
}
