package cmd

import (
	"fmt"
	"strings"

	"github.com/fileandclaim/fcidash/internal/cli"
	"github.com/fileandclaim/fcidash/internal/model"
	"github.com/fileandclaim/fcidash/internal/pipeline"
	"github.com/fileandclaim/fcidash/internal/report"

	"github.com/spf13/cobra"
)

const barWidth = 30

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "All three views: stages, engineers, file status",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	result, err := loadData(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(report.Title))
	fmt.Println()

	fmt.Print(stagesTable(pipeline.CountStages(result.Deals)))
	fmt.Println()
	fmt.Print(engineersChart(pipeline.CountByEngineer(result.Deals)))
	fmt.Println()
	fmt.Print(statusTable(pipeline.Summarize(result.Tracking)))

	printWarnings(result)
	return nil
}

func stagesTable(stages []model.StageCount) string {
	rows := make([][]string, 0, len(stages)+2)
	total := 0
	var totalValue float64
	for _, s := range stages {
		median := cli.NoValue
		if s.ValuedDeals > 0 {
			median = cli.FormatMoney(s.MedianValue)
		}
		rows = append(rows, []string{
			s.Stage,
			cli.FormatNumber(int64(s.Count)),
			cli.FormatMoney(s.TotalValue),
			median,
		})
		total += s.Count
		totalValue += s.TotalValue
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Total", cli.FormatNumber(int64(total)), cli.FormatMoney(totalValue), ""},
	)

	return cli.RenderTable(cli.Table{
		Title:   "Deals per Stage",
		Headers: []string{"Stage", "Deals", "Total Value", "Median"},
		Rows:    rows,
	})
}

func engineersChart(engineers []model.EngineerCount) string {
	bars := make([]cli.Bar, len(engineers))
	for i, e := range engineers {
		bars[i] = cli.Bar{Label: e.Engineer, Value: float64(e.Count)}
	}
	return cli.RenderBarChart("Deals per Engineer", bars, barWidth, cli.ColorBlue)
}

func statusTable(statuses []model.StatusSummary) string {
	if len(statuses) == 0 {
		return "  " + cli.RenderMuted("No files in a tracked status.") + "\n"
	}

	rows := make([][]string, 0, len(statuses))
	labels := make([]string, len(statuses))
	counts := make([]float64, len(statuses))
	for i, s := range statuses {
		rows = append(rows, []string{
			s.Display,
			cli.FormatNumber(int64(s.CompanyCount)),
			cli.FormatMoney(s.TotalInvoiceAmount),
		})
		labels[i] = s.Display
		counts[i] = float64(s.CompanyCount)
	}

	return cli.RenderTable(cli.Table{
		Title:   "File Tracking Status",
		Headers: []string{"Status", "Companies", "Invoice Total"},
		Rows:    rows,
	}) + "\n" + cli.RenderShareBar(labels, counts, barWidth*2)
}

// printList prints one drill-down column, numbered, under a heading.
func printList(title string, values []string) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	if len(values) == 0 {
		fmt.Println("  " + cli.RenderMuted("no rows"))
		return
	}
	for i, v := range values {
		if v == "" {
			v = cli.NoValue
		}
		fmt.Printf("  %3d. %s\n", i+1, v)
	}
}

// parseField resolves --field against the columns a view allows. An empty
// value selects the first.
func parseField(s string, allowed []model.DealField) (model.DealField, error) {
	if s == "" {
		return allowed[0], nil
	}
	f, ok := pipeline.ParseDealField(s)
	if ok {
		for _, a := range allowed {
			if a == f {
				return f, nil
			}
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = fmt.Sprintf("%q", a.String())
	}
	return 0, fmt.Errorf("unknown field %q (want one of %s)", s, strings.Join(names, ", "))
}
