package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVExtractor handles CSV files. The first row is treated as headers
// and each data row becomes one "header: value" line.
type CSVExtractor struct{}

func (e *CSVExtractor) Extract(r io.Reader, filename string) (*Content, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	content := &Content{Title: stem(filename)}
	if len(records) == 0 {
		return content, nil
	}

	headers := records[0]
	var lines []string
	lines = append(lines, "Headers: "+strings.Join(headers, ", "))

	for _, row := range records[1:] {
		var fields []string
		for j, cell := range row {
			if j < len(headers) {
				fields = append(fields, headers[j]+": "+cell)
			} else {
				fields = append(fields, cell)
			}
		}
		lines = append(lines, strings.Join(fields, ", "))
	}

	content.Body = strings.Join(lines, "\n")
	return content, nil
}
