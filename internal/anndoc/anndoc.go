// Package anndoc builds tagtog ann.json pre-annotation documents from
// recognized entity spans. See https://docs.tagtog.net/anndoc.html#ann-json.
package anndoc

import (
	"github.com/dgallion1/prelabel/internal/ner"
)

// StatePreAdded marks a machine suggestion pending human review. Documents
// produced here are never auto-confirmed.
const StatePreAdded = "pre-added"

// Offset is one contiguous run of an entity: its character start within the
// part's text plus the literal text.
type Offset struct {
	Start int    `json:"start"`
	Text  string `json:"text"`
}

// Confidence records annotation status, who produced it, and a probability.
type Confidence struct {
	State string   `json:"state"`
	Who   []string `json:"who"`
	Prob  float64  `json:"prob"`
}

// Entity is one pre-annotation: an entity class anchored at an offset within
// a document part.
type Entity struct {
	ClassID        string         `json:"classId"`
	Part           string         `json:"part"`
	Offsets        []Offset       `json:"offsets"`
	Confidence     Confidence     `json:"confidence"`
	Fields         map[string]any `json:"fields"`
	Normalizations map[string]any `json:"normalizations"`
}

// Document is a full ann.json bundle for one document.
type Document struct {
	AnnComplete bool           `json:"anncomplete"`
	Metas       map[string]any `json:"metas"`
	Relations   []any          `json:"relations"`
	Entities    []Entity       `json:"entities"`
}

// NewDocument returns an empty, unconfirmed annotation document. Collections
// are initialized so they serialize as {} and [] rather than null.
func NewDocument() *Document {
	return &Document{
		AnnComplete: false,
		Metas:       map[string]any{},
		Relations:   []any{},
		Entities:    []Entity{},
	}
}

// Assembler converts recognized spans into tagtog entities. Spans whose
// label has no class mapping are dropped: the recognizer's vocabulary is
// open, and not every category is part of the target project's schema.
type Assembler struct {
	resolver *Resolver
	who      []string
}

// NewAssembler builds an assembler attributing annotations to the given
// pipeline, e.g. "ml:en_core_web_sm".
func NewAssembler(resolver *Resolver, model string) *Assembler {
	return &Assembler{
		resolver: resolver,
		who:      []string{"ml:" + model},
	}
}

// Append converts spans recognized in the part with the given id and adds
// the resulting entities to doc, preserving span order. The recognizer never
// produces multi-run entities, so each entity carries exactly one offset.
func (a *Assembler) Append(doc *Document, partID string, spans []ner.Span) {
	for _, span := range spans {
		classID, ok := a.resolver.ClassID(span.Label)
		if !ok {
			continue
		}
		doc.Entities = append(doc.Entities, Entity{
			ClassID: classID,
			Part:    partID,
			Offsets: []Offset{{Start: span.Start, Text: span.Text}},
			Confidence: Confidence{
				State: StatePreAdded,
				Who:   a.who,
				// The service exposes no per-entity score, so a neutral
				// constant is used rather than fabricating one.
				Prob: 1,
			},
			Fields:         map[string]any{},
			Normalizations: map[string]any{},
		})
	}
}
