package main

import (
	"strings"
	"unicode/utf8"
)

const tableCellMaxWidth = 60
const tableCellEllipsis = "..."

func formatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = utf8.RuneCountInString(header)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		normalized := make([]string, len(row))
		for i, cell := range row {
			normalized[i] = normalizeTableCell(cell)
			if i < len(widths) {
				if n := utf8.RuneCountInString(normalized[i]); n > widths[i] {
					widths[i] = n
				}
			}
		}
		cells = append(cells, normalized)
	}

	var builder strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				builder.WriteByte('\n')
				continue
			}
			padding := 0
			if i < len(widths) {
				padding = widths[i] - utf8.RuneCountInString(cell)
			}
			builder.WriteString(strings.Repeat(" ", padding+2))
		}
	}

	writeRow(headers)
	for _, row := range cells {
		writeRow(row)
	}
	return builder.String()
}

func normalizeTableCell(cell string) string {
	cell = strings.Join(strings.Fields(cell), " ")
	if utf8.RuneCountInString(cell) <= tableCellMaxWidth {
		return cell
	}
	runes := []rune(cell)
	return string(runes[:tableCellMaxWidth-len(tableCellEllipsis)]) + tableCellEllipsis
}
