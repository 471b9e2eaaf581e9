// Package docpart models a local document as a flat, ordered list of text
// parts and renders it as tagtog-style plain.html, where every content
// element carries an id the annotation service can anchor offsets to.
package docpart

import (
	"fmt"
	"html"
	"strings"
)

// Document is a parsed local document ready for upload.
type Document struct {
	Title string
	Parts []Part
}

// Part is one block of content. Title marks it as a heading part.
type Part struct {
	Title string
	Text  string
}

// RenderPlainHTML renders the document with sequential part ids (p1, p2,
// ...). Extracting segments from the result yields the same parts in the
// same order, so offsets recognized later line up with what was uploaded.
func (d *Document) RenderPlainHTML() []byte {
	var buf strings.Builder
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString("<meta charset=\"utf-8\"/>\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(d.Title))
	buf.WriteString("</head>\n<body>\n")

	n := 0
	nextID := func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
	for _, part := range d.Parts {
		if part.Title != "" {
			fmt.Fprintf(&buf, "<h2 id=\"%s\">%s</h2>\n", nextID(), html.EscapeString(part.Title))
		}
		if part.Text != "" || part.Title == "" {
			fmt.Fprintf(&buf, "<p id=\"%s\">%s</p>\n", nextID(), html.EscapeString(part.Text))
		}
	}

	buf.WriteString("</body>\n</html>\n")
	return []byte(buf.String())
}
