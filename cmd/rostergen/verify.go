package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterforge/rostergen/adapters/csvfile"
	"github.com/rosterforge/rostergen/adapters/sqlite"
	"github.com/rosterforge/rostergen/domain/roster"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <district-dir>...",
	Short: "Re-check written district directories",
	Long: `Verify reads previously written district CSV directories back and
cross-checks referential integrity two ways: the pure in-process check used
at assembly time, and an in-memory SQLite database with enforced foreign
keys. Any violation is reported with the failing table and value.

Examples:
  rostergen verify "out/Maple Valley USD_Data"
  rostergen verify out/*_Data`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, dir := range args {
		problems, err := verifyDir(dir)
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
		if len(problems) == 0 {
			fmt.Printf("%s: ok\n", dir)
			continue
		}
		failed++
		fmt.Printf("%s: %d problem(s)\n", dir, len(problems))
		for _, p := range problems {
			fmt.Printf("  %s\n", p)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d directories failed verification", failed, len(args))
	}
	return nil
}

func verifyDir(dir string) ([]string, error) {
	tables, err := csvfile.ReadDistrict(dir)
	if err != nil {
		return nil, err
	}

	var problems []string
	for _, v := range roster.CheckIntegrity(tables) {
		problems = append(problems, v.String())
	}

	findings, err := sqlite.Verify(tables)
	if err != nil {
		return nil, err
	}
	for _, f := range findings {
		problems = append(problems, f.String())
	}
	return problems, nil
}
