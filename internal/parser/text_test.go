package parser

import (
	"strings"
	"testing"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if len(doc.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(doc.Parts))
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		if doc.Parts[i].Text != w {
			t.Errorf("part[%d]: expected %q, got %q", i, w, doc.Parts[i].Text)
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Parts) != 0 {
		t.Errorf("expected 0 parts for empty input, got %d", len(doc.Parts))
	}
}

func TestTextParser_SingleLine(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("Hello world"), "single.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(doc.Parts))
	}
	if doc.Parts[0].Text != "Hello world" {
		t.Errorf("unexpected text %q", doc.Parts[0].Text)
	}
}

func TestForFile(t *testing.T) {
	for _, name := range []string{"a.txt", "b.md", "c.html", "d.csv", "e.pdf", "f.docx"} {
		if _, err := ForFile(name); err != nil {
			t.Errorf("expected parser for %s, got error: %v", name, err)
		}
	}
	if _, err := ForFile("a.xlsx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("a.xlsx") {
		t.Error("xlsx should not be supported")
	}
	if !IsSupportedExtension("a.MD") {
		t.Error("extension check should be case-insensitive")
	}
}
