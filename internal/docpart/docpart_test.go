package docpart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/prelabel/internal/segment"
)

func TestRenderPlainHTML_RoundTripsThroughSegmentExtraction(t *testing.T) {
	doc := &Document{
		Title: "Report",
		Parts: []Part{
			{Title: "Summary"},
			{Text: "Alice works at Acme."},
			{Text: "Second paragraph."},
		},
	}

	rendered := doc.RenderPlainHTML()
	segments, err := segment.Extract(bytes.NewReader(rendered))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []segment.Segment{
		{ID: "p1", Text: "Summary"},
		{ID: "p2", Text: "Alice works at Acme."},
		{ID: "p3", Text: "Second paragraph."},
	}
	if len(segments) != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), len(segments))
	}
	for i, w := range want {
		if segments[i] != w {
			t.Errorf("segment[%d]: expected %+v, got %+v", i, w, segments[i])
		}
	}
}

func TestRenderPlainHTML_EscapesContent(t *testing.T) {
	doc := &Document{
		Title: "T",
		Parts: []Part{{Text: `a < b & "c"`}},
	}

	rendered := string(doc.RenderPlainHTML())
	if strings.Contains(rendered, `a < b`) {
		t.Errorf("expected escaped text, got %s", rendered)
	}

	segments, err := segment.Extract(strings.NewReader(rendered))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 || segments[0].Text != `a < b & "c"` {
		t.Errorf("expected text to survive escaping round trip, got %+v", segments)
	}
}

func TestRenderPlainHTML_HeadingWithText(t *testing.T) {
	doc := &Document{
		Title: "T",
		Parts: []Part{{Title: "Heading", Text: "Body under heading."}},
	}

	segments, err := segment.Extract(bytes.NewReader(doc.RenderPlainHTML()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected heading and body segments, got %d", len(segments))
	}
	if segments[0].Text != "Heading" || segments[1].Text != "Body under heading." {
		t.Errorf("unexpected segments %+v", segments)
	}
}
