//go:build !integration

package console

import (
	"testing"

	"github.com/charmbracelet/x/exp/golden"
	"github.com/stretchr/testify/assert"
)

func TestFormatMessages(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		marker string
	}{
		{name: "error", format: FormatErrorMessage, marker: "✗"},
		{name: "success", format: FormatSuccessMessage, marker: "✓"},
		{name: "warning", format: FormatWarningMessage, marker: "⚠"},
		{name: "info", format: FormatInfoMessage, marker: "ℹ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.format("check failed for jobs.build")
			assert.Contains(t, output, tt.marker)
			assert.Contains(t, output, "check failed for jobs.build")
		})
	}
}

func TestGolden_RenderTable(t *testing.T) {
	tests := []struct {
		name   string
		config TableConfig
	}{
		{
			name: "check_report",
			config: TableConfig{
				Headers: []string{"Check", "Subject", "Result"},
				Rows: [][]string{
					{"step-order", `job "build" step ordering`, "pass"},
					{"field-equals", "jobs.build.runs-on", "fail"},
				},
			},
		},
		{
			name: "report_with_title",
			config: TableConfig{
				Title:   "Validation Report",
				Headers: []string{"Check", "Result"},
				Rows: [][]string{
					{"step-order", "pass"},
				},
			},
		},
		{
			name: "report_with_total",
			config: TableConfig{
				Headers: []string{"File", "Failed"},
				Rows: [][]string{
					{"ci.yml", "0"},
					{"release.yml", "2"},
				},
				ShowTotal: true,
				TotalRow:  []string{"TOTAL", "2"},
			},
		},
		{
			name:   "empty_table",
			config: TableConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := RenderTable(tt.config)
			golden.RequireEqual(t, []byte(output))
		})
	}
}

func TestRenderTableRaggedRows(t *testing.T) {
	output := RenderTable(TableConfig{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"only-a"}},
	})
	assert.Contains(t, output, "only-a")
	assert.NotContains(t, output, "  \n", "lines are right-trimmed")
}
