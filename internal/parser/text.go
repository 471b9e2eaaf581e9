package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/prelabel/internal/docpart"
)

// TextParser handles plain text files. Blank lines separate parts.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*docpart.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &docpart.Document{Title: titleFromFilename(filename)}

	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			doc.Parts = append(doc.Parts, docpart.Part{Text: current.String()})
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}
