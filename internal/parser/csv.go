package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/prelabel/internal/docpart"
)

// CSVParser handles CSV files. Each data row becomes one part so entity
// offsets stay local to the row they were found in.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*docpart.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &docpart.Document{Title: titleFromFilename(filename)}
	if len(records) == 0 {
		return doc, nil
	}

	headers := records[0]
	for _, row := range records[1:] {
		var text strings.Builder
		for j, cell := range row {
			if j > 0 {
				text.WriteString(", ")
			}
			if j < len(headers) {
				text.WriteString(headers[j] + ": " + cell)
			} else {
				text.WriteString(cell)
			}
		}
		doc.Parts = append(doc.Parts, docpart.Part{Text: text.String()})
	}

	return doc, nil
}
