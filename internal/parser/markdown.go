package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/prelabel/internal/docpart"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings become
// heading parts, the blocks between them become text parts.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*docpart.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	doc := &docpart.Document{Title: titleFromFilename(filename)}

	var currentText bytes.Buffer
	flushText := func() {
		t := strings.TrimSpace(currentText.String())
		if t != "" {
			doc.Parts = append(doc.Parts, docpart.Part{Text: t})
		}
		currentText.Reset()
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flushText()
			doc.Parts = append(doc.Parts, docpart.Part{Title: string(node.Text(src))})
		default:
			t := extractText(n, src)
			if t != "" {
				if currentText.Len() > 0 {
					currentText.WriteString("\n\n")
				}
				currentText.WriteString(t)
			}
		}
	}
	flushText()

	return doc, nil
}

// extractText gets the text content of a goldmark AST node. Blocks with
// inline children (paragraphs) are read through those children; only leaf
// blocks like fenced code use the raw source lines, so text is never
// collected twice.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
