package cmd

import (
	"fmt"
	"strings"

	"github.com/fileandclaim/fcidash/internal/cli"
	"github.com/fileandclaim/fcidash/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagShowStatus string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Files per tracking status, or the companies in one status",
	Example: `  fcidash status
  fcidash status --show "CRA review"`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&flagShowStatus, "show", "", "Display status to list companies for")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	display := ""
	if flagShowStatus != "" {
		var ok bool
		display, ok = pipeline.ResolveDisplayStatus(flagShowStatus)
		if !ok {
			return fmt.Errorf("unknown status %q (want one of: %s)",
				flagShowStatus, strings.Join(pipeline.DisplayStatuses(), ", "))
		}
	}

	result, err := loadData(cmd.Context())
	if err != nil {
		return err
	}

	if display == "" {
		fmt.Println()
		fmt.Print(statusTable(pipeline.Summarize(result.Tracking)))
		printWarnings(result)
		return nil
	}

	companies := pipeline.FilterByDisplayStatus(result.Tracking, display)
	rows := make([][]string, len(companies))
	var total float64
	for i, c := range companies {
		rows[i] = []string{c.Company, cli.FormatAmount(c.InvoiceAmount)}
		if c.InvoiceAmount != nil {
			total += *c.InvoiceAmount
		}
	}
	rows = append(rows, []string{"---"}, []string{"Total", cli.FormatMoney(total)})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%s (%d)", display, len(companies)),
		Headers: []string{"Company", "Invoice Amount"},
		Rows:    rows,
	}))
	return nil
}
