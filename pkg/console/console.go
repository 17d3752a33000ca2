// Package console provides styled terminal output: status message
// formatting and a plain-text table renderer for validation reports.
//
// Message styling degrades to plain text when the output is not a terminal,
// so formatted messages are safe to capture in logs. Tables are always plain
// text; callers style whole lines if they want color.
package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// FormatErrorMessage formats an error message with a failure marker.
func FormatErrorMessage(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

// FormatSuccessMessage formats a success message with a pass marker.
func FormatSuccessMessage(msg string) string {
	return successStyle.Render("✓ " + msg)
}

// FormatWarningMessage formats a warning message.
func FormatWarningMessage(msg string) string {
	return warningStyle.Render("⚠ " + msg)
}

// FormatInfoMessage formats an informational message.
func FormatInfoMessage(msg string) string {
	return infoStyle.Render("ℹ " + msg)
}

// TableConfig describes a table to render.
type TableConfig struct {
	Title     string
	Headers   []string
	Rows      [][]string
	ShowTotal bool
	TotalRow  []string
}

// RenderTable renders a table as plain aligned text. Columns are sized to
// their widest cell, separated by two spaces, and every line is
// right-trimmed so output diffs cleanly.
func RenderTable(config TableConfig) string {
	var out strings.Builder
	if config.Title != "" {
		out.WriteString(config.Title + "\n\n")
	}
	if len(config.Headers) == 0 && len(config.Rows) == 0 {
		return out.String()
	}

	widths := columnWidths(config)

	writeRow(&out, config.Headers, widths)
	writeSeparator(&out, widths)
	for _, row := range config.Rows {
		writeRow(&out, row, widths)
	}
	if config.ShowTotal && len(config.TotalRow) > 0 {
		writeSeparator(&out, widths)
		writeRow(&out, config.TotalRow, widths)
	}
	return out.String()
}

// columnWidths sizes each column to its widest header or cell.
func columnWidths(config TableConfig) []int {
	columns := len(config.Headers)
	for _, row := range config.Rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	if config.ShowTotal && len(config.TotalRow) > columns {
		columns = len(config.TotalRow)
	}

	widths := make([]int, columns)
	measure := func(row []string) {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	measure(config.Headers)
	for _, row := range config.Rows {
		measure(row)
	}
	if config.ShowTotal {
		measure(config.TotalRow)
	}
	return widths
}

func writeRow(out *strings.Builder, row []string, widths []int) {
	cells := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
	}
	line := strings.TrimRight(strings.Join(cells, "  "), " ")
	out.WriteString(line + "\n")
}

func writeSeparator(out *strings.Builder, widths []int) {
	cells := make([]string, len(widths))
	for i, width := range widths {
		cells[i] = strings.Repeat("-", width)
	}
	out.WriteString(strings.Join(cells, "  ") + "\n")
}
