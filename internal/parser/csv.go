package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/plainrfc/internal/doctree"
)

// csvBatchSize is the number of data rows per section.
const csvBatchSize = 20

// CSVParser renders CSV rows as verbatim tables, one section per batch.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree := &doctree.DocTree{Title: baseTitle(filename, ".csv")}
	if len(records) == 0 {
		return tree, nil
	}

	headers := records[0]
	dataRows := records[1:]
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))
		rows := append([][]string{headers}, dataRows[i:end]...)
		tree.Children = append(tree.Children, &doctree.DocNode{
			Title:  fmt.Sprintf("Rows %d-%d", i+2, end+1), // 1-indexed, skip header
			Blocks: []doctree.Block{doctree.Figure(formatTable(rows))},
		})
	}
	return tree, nil
}

// formatTable pads cells into aligned columns separated by " | ".
func formatTable(rows [][]string) []string {
	var widths []int
	for _, row := range rows {
		for j, cell := range row {
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			widths[j] = max(widths[j], len(cell))
		}
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cell + strings.Repeat(" ", widths[j]-len(cell))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " | "), " "))
	}
	return lines
}
