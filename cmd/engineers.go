package cmd

import (
	"fmt"

	"github.com/fileandclaim/fcidash/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagEngineer      string
	flagEngineerField string
)

var engineersCmd = &cobra.Command{
	Use:   "engineers",
	Short: "Deals per engineer, or one column of an engineer's deals",
	Example: `  fcidash engineers
  fcidash engineers --engineer "Dana" --field stage`,
	RunE: runEngineers,
}

func init() {
	engineersCmd.Flags().StringVar(&flagEngineer, "engineer", "", "Engineer to drill into (exact name)")
	engineersCmd.Flags().StringVar(&flagEngineerField, "field", "", `Column to list: "Deal Stage" or "Deal Title"`)
	rootCmd.AddCommand(engineersCmd)
}

func runEngineers(cmd *cobra.Command, _ []string) error {
	field, err := parseField(flagEngineerField, pipeline.EngineerFields)
	if err != nil {
		return err
	}

	result, err := loadData(cmd.Context())
	if err != nil {
		return err
	}

	if flagEngineer == "" {
		fmt.Println()
		fmt.Print(engineersChart(pipeline.CountByEngineer(result.Deals)))
		return nil
	}

	// An engineer with no deals is an empty list, not an error.
	values := pipeline.SelectEngineerField(result.Deals, flagEngineer, field)
	printList(fmt.Sprintf("%s · %s (%d)", flagEngineer, field, len(values)), values)
	return nil
}
