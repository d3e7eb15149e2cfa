package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fileandclaim/fcidash/internal/report"

	"github.com/spf13/cobra"
)

var flagReportHTML bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the meeting report as Markdown (or HTML) on stdout",
	Example: `  fcidash report > meeting.md
  fcidash report --html > meeting.html`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagReportHTML, "html", false, "Render a complete HTML page")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	result, err := loadData(cmd.Context())
	if err != nil {
		return err
	}

	r := report.Build(result, time.Now())
	if flagReportHTML {
		_, err = os.Stdout.Write(r.HTML())
	} else {
		_, err = fmt.Fprint(os.Stdout, r.Markdown())
	}
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
