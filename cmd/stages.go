package cmd

import (
	"fmt"
	"strings"

	"github.com/fileandclaim/fcidash/internal/cli"
	"github.com/fileandclaim/fcidash/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagStage      string
	flagStageField string
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Deals per stage, or one column of the deals in a stage",
	Example: `  fcidash stages
  fcidash stages --stage "CRA Processing" --field value`,
	RunE: runStages,
}

func init() {
	stagesCmd.Flags().StringVar(&flagStage, "stage", "", "Stage to drill into (exact name)")
	stagesCmd.Flags().StringVar(&flagStageField, "field", "", `Column to list: "Deal Title" or "Deal Value"`)
	rootCmd.AddCommand(stagesCmd)
}

func runStages(cmd *cobra.Command, _ []string) error {
	field, err := parseField(flagStageField, pipeline.StageFields)
	if err != nil {
		return err
	}
	if flagStage != "" && !pipeline.IsKnownStage(flagStage) {
		return fmt.Errorf("unknown stage %q (want one of: %s)", flagStage, strings.Join(pipeline.Stages, ", "))
	}

	result, err := loadData(cmd.Context())
	if err != nil {
		return err
	}

	if flagStage == "" {
		stages := pipeline.CountStages(result.Deals)
		fmt.Println()
		fmt.Print(stagesTable(stages))

		bars := make([]cli.Bar, len(stages))
		for i, s := range stages {
			bars[i] = cli.Bar{Label: s.Stage, Value: float64(s.Count), Note: cli.FormatCompact(s.TotalValue)}
		}
		fmt.Println()
		fmt.Print(cli.RenderBarChart("", bars, barWidth, cli.ColorAccent))
		printWarnings(result)
		return nil
	}

	values := pipeline.SelectStageField(result.Deals, flagStage, field)
	printList(fmt.Sprintf("%s · %s (%d)", flagStage, field, len(values)), values)
	return nil
}
