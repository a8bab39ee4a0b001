package ui

import (
	"strconv"

	"xlsx-rescaler/internal/model"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderChanges renders the rescaled cells as a console table.
// At most limit rows are listed (limit <= 0 lists all); the remainder is summarized in the footer.
func RenderChanges(changes []model.CellChange, limit int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"Cell", "Before", "After"})

	shown := changes
	if limit > 0 && len(changes) > limit {
		shown = changes[:limit]
	}
	for _, c := range shown {
		tw.AppendRow(table.Row{c.Cell, formatNumber(c.Before), formatNumber(c.After)})
	}

	footer := strconv.Itoa(len(changes)) + " cells"
	if hidden := len(changes) - len(shown); hidden > 0 {
		footer += " (" + strconv.Itoa(hidden) + " more not shown)"
	}
	tw.AppendFooter(table.Row{"Total", footer, ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
