package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/hacheck/hacheck/pkg/tty"
)

var tableLog = logger.New("console:table")

// TableConfig describes a table to render.
type TableConfig struct {
	Title     string
	Headers   []string
	Rows      [][]string
	ShowTotal bool
	TotalRow  []string
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableTotalStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#6272A4"})
	tableTitleStyle  = lipgloss.NewStyle().Bold(true)
)

// isTableStyled is swapped in tests.
var isTableStyled = tty.IsStdoutTerminal

// RenderTable renders config as a bordered table followed by a newline. An
// empty header list renders nothing.
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 {
		return ""
	}
	tableLog.Printf("Rendering table: title=%q, columns=%d, rows=%d", config.Title, len(config.Headers), len(config.Rows))

	styled := isTableStyled()
	totalIndex := -1
	rows := config.Rows
	if config.ShowTotal && len(config.TotalRow) > 0 {
		rows = append(rows[:len(rows):len(rows)], config.TotalRow)
		totalIndex = len(rows) - 1
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(config.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if !styled {
				return tableCellStyle
			}
			switch row {
			case table.HeaderRow:
				return tableHeaderStyle
			case totalIndex:
				return tableTotalStyle
			default:
				return tableCellStyle
			}
		})
	if styled {
		t = t.BorderStyle(tableBorderStyle)
	}

	var sb strings.Builder
	if config.Title != "" {
		if styled {
			sb.WriteString(tableTitleStyle.Render(config.Title))
		} else {
			sb.WriteString(config.Title)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(t.String())
	sb.WriteString("\n")
	return sb.String()
}
