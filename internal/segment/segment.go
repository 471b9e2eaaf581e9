// Package segment extracts identified text parts from a tagtog plain.html
// document.
package segment

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Segment is one identified block of text in a document: an element in the
// body carrying an id attribute, with its descendant text flattened.
type Segment struct {
	ID   string
	Text string
}

// Extract parses plain.html and returns its identified parts in document
// order. Nested identified elements are all yielded, and segments with empty
// text are kept: the recognizer simply finds nothing in them.
func Extract(r io.Reader) ([]Segment, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	root := findBody(doc)
	if root == nil {
		root = doc
	}

	var segments []Segment
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id, ok := attrValue(n, "id"); ok {
				segments = append(segments, Segment{ID: id, Text: textContent(n)})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	// Only descendants of the body qualify; an id on the body element
	// itself is not a part.
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	return segments, nil
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// textContent concatenates all descendant text without trimming. Offsets
// reported against this text must match the part's rendered content exactly.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
