package format

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// minColumnWidth keeps every delimiter cell valid, including ":-:".
const minColumnWidth = 3

// table renders every cell first, then pads each column to its widest cell.
func (r *renderer) table(n *mdast.Node, rc RenderContext) ([]string, error) {
	var align []mdast.Align
	if n.Block != nil && n.Block.Table != nil {
		align = n.Block.Table.Align
	}

	r.singleLine, r.inTable = true, true
	defer func() { r.singleLine, r.inTable = false, false }()

	var rows [][]string
	columns := len(align)
	for row := n.FirstChild; row != nil; row = row.Next {
		if row.Kind != mdast.NodeTableRow {
			return nil, unsupported(row)
		}
		var cells []string
		for cell := row.FirstChild; cell != nil; cell = cell.Next {
			if cell.Kind != mdast.NodeTableCell {
				return nil, unsupported(cell)
			}
			text, err := r.inlines(cell, rc)
			if err != nil {
				return nil, err
			}
			cells = append(cells, strings.TrimSpace(text))
		}
		columns = max(columns, len(cells))
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	widths := make([]int, columns)
	for i := range widths {
		widths[i] = minColumnWidth
	}
	for _, cells := range rows {
		for i, cell := range cells {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	out := make([]string, 0, len(rows)+1)
	out = append(out, tableRow(rows[0], widths))
	out = append(out, delimiterRow(align, widths))
	for _, cells := range rows[1:] {
		out = append(out, tableRow(cells, widths))
	}
	return out, nil
}

func tableRow(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteString("|")
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(cell)))
		b.WriteString(" |")
	}
	return b.String()
}

func delimiterRow(align []mdast.Align, widths []int) string {
	var b strings.Builder
	b.WriteString("|")
	for i, width := range widths {
		a := mdast.AlignNone
		if i < len(align) {
			a = align[i]
		}
		b.WriteString(" ")
		switch a {
		case mdast.AlignLeft:
			b.WriteString(":" + strings.Repeat("-", width-1))
		case mdast.AlignRight:
			b.WriteString(strings.Repeat("-", width-1) + ":")
		case mdast.AlignCenter:
			b.WriteString(":" + strings.Repeat("-", width-2) + ":")
		default:
			b.WriteString(strings.Repeat("-", width))
		}
		b.WriteString(" |")
	}
	return b.String()
}
