package ner

import "context"

// Span is one named entity recognized in a piece of text. Start and End are
// character offsets (not byte offsets) into the text the span came from; the
// annotation format needs character-accurate offsets to reconstruct
// highlights.
type Span struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Recognizer finds named entities in text. Implementations must be safe for
// concurrent use once constructed.
type Recognizer interface {
	// Recognize returns the entities found in text, in order of appearance.
	Recognize(ctx context.Context, text string) ([]Span, error)
	// Model names the pipeline producing the spans, e.g. "en_core_web_sm".
	Model() string
}
