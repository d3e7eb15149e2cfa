package cmd

import (
	"os"
	"testing"

	"github.com/fileandclaim/fcidash/internal/model"
	"github.com/fileandclaim/fcidash/internal/pipeline"
	"github.com/fileandclaim/fcidash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree with args against an empty config dir.
func run(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdir(t, t.TempDir()) // no stray .env

	flagDeals, flagTracking = "", ""
	flagStage, flagStageField = "", ""
	flagEngineer, flagEngineerField = "", ""
	flagShowStatus = ""
	flagReportHTML = false

	rootCmd.SetArgs(append(args, "--quiet"))
	_, err := rootCmd.ExecuteC()
	return err
}

func sampleFiles(t *testing.T) []string {
	t.Helper()
	return []string{
		"--deals", testkit.WriteWorkbook(t, "deals.xlsx", "", testkit.SampleDeals()),
		"--tracking", testkit.WriteWorkbook(t, "tracking.xlsx", "", testkit.SampleTracking()),
	}
}

func TestParseField(t *testing.T) {
	f, err := parseField("", pipeline.StageFields)
	require.NoError(t, err)
	assert.Equal(t, model.FieldDealTitle, f)

	f, err = parseField("value", pipeline.StageFields)
	require.NoError(t, err)
	assert.Equal(t, model.FieldDealValue, f)

	f, err = parseField("Deal Stage", pipeline.EngineerFields)
	require.NoError(t, err)
	assert.Equal(t, model.FieldDealStage, f)

	_, err = parseField("stage", pipeline.StageFields)
	assert.ErrorContains(t, err, `"Deal Title", "Deal Value"`)
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"summary", nil},
		{"stages", []string{"stages"}},
		{"stage drill-down", []string{"stages", "--stage", "CRA Processing", "--field", "value"}},
		{"engineers", []string{"engineers"}},
		{"engineer drill-down", []string{"engineers", "--engineer", "Dana", "--field", "stage"}},
		{"unknown engineer", []string{"engineers", "--engineer", "Nobody"}},
		{"status", []string{"status"}},
		{"status drill-down", []string{"status", "--show", " cra REVIEW "}},
		{"report", []string{"report"}},
		{"report html", []string{"report", "--html"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, sampleFiles(t)...)
			assert.NoError(t, run(t, args...))
		})
	}
}

func TestCommandErrors(t *testing.T) {
	files := sampleFiles(t)

	err := run(t, append([]string{"stages", "--stage", "Negotiation"}, files...)...)
	assert.ErrorContains(t, err, `unknown stage "Negotiation"`)

	err = run(t, append([]string{"status", "--show", "Other"}, files...)...)
	assert.ErrorContains(t, err, `unknown status "Other"`)

	err = run(t, "stages", "--deals", "missing.xlsx", "--tracking", files[3])
	assert.ErrorContains(t, err, "missing.xlsx")
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
