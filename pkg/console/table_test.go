//go:build !integration

package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	plainOutput(t)

	tests := []struct {
		name     string
		config   TableConfig
		contains []string
		lines    int
	}{
		{
			name: "simple table",
			config: TableConfig{
				Headers: []string{"Location", "Message"},
				Rows: [][]string{
					{"automations.yaml:12:16", "script.old_script_name is called but not defined"},
					{"scripts.yaml:4:7", "script.gone is referenced but not defined"},
				},
			},
			contains: []string{"Location", "Message", "automations.yaml:12:16", "script.gone is referenced"},
			// top border, header, separator, two rows, bottom border
			lines: 6,
		},
		{
			name: "table with title",
			config: TableConfig{
				Title:   "Script references",
				Headers: []string{"Severity", "Message"},
				Rows:    [][]string{{"error", "missing"}},
			},
			contains: []string{"Script references\n", "Severity", "missing"},
			lines:    6,
		},
		{
			name: "table with total",
			config: TableConfig{
				Headers:   []string{"Check", "Findings"},
				Rows:      [][]string{{"script-references", "1"}, {"ungrouped-helpers", "2"}},
				ShowTotal: true,
				TotalRow:  []string{"TOTAL", "3"},
			},
			contains: []string{"TOTAL", "ungrouped-helpers"},
			lines:    7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := RenderTable(tt.config)
			require.True(t, strings.HasSuffix(output, "\n"), "Table output should end with a newline")
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
			assert.Len(t, strings.Split(strings.TrimSuffix(output, "\n"), "\n"), tt.lines)
			assert.NotContains(t, output, "\x1b[", "Non-terminal output should carry no ANSI sequences")
		})
	}
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(TableConfig{Rows: [][]string{{"a"}}}))
}

func TestRenderTable_TotalRowDoesNotAliasRows(t *testing.T) {
	plainOutput(t)

	rows := make([][]string, 1, 4)
	rows[0] = []string{"a", "1"}
	RenderTable(TableConfig{Headers: []string{"x", "y"}, Rows: rows, ShowTotal: true, TotalRow: []string{"TOTAL", "1"}})

	assert.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "1"}, rows[:cap(rows)][0])
	assert.Nil(t, rows[:2][1], "Total row should not be written into the caller's backing array")
}
