package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	accent  = lipgloss.Color("#2563EB")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
	info    = lipgloss.Color("#38BDF8")
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	successStyle = lipgloss.NewStyle().Foreground(success)
	errorStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)

	statusColors = map[string]lipgloss.Color{
		"Pending":   warning,
		"Shipped":   info,
		"Delivered": success,
		"Cancelled": danger,
		"Returned":  dim,
	}
)

// renderTable рисует таблицу; колонка statusCol (если >= 0) раскрашивается по статусу заказа.
func renderTable(headers []string, rows [][]string, statusCol int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == statusCol && row >= 0 && row < len(rows) {
				if color, ok := statusColors[rows[row][col]]; ok {
					return cellStyle.Foreground(color)
				}
			}
			return cellStyle
		})
	return t.String() + "\n"
}

func renderStatus(status string) string {
	if color, ok := statusColors[status]; ok {
		return lipgloss.NewStyle().Foreground(color).Bold(true).Render(status)
	}
	return status
}

func renderSuccess(message string) string {
	return successStyle.Render("✓ "+message) + "\n"
}

func renderError(err error) string {
	return errorStyle.Render("✗ "+err.Error()) + "\n"
}

// renderKeyValues выводит пары «поле: значение» с выровненными метками.
func renderKeyValues(title string, pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
	}
	for _, p := range pairs {
		label := dimStyle.Render(fmt.Sprintf("%-*s", width, p[0]))
		fmt.Fprintf(&b, "  %s  %s\n", label, p[1])
	}
	return b.String()
}

func writeCSV(w io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
