// Package pipeline runs the fetch, recognize, assemble, import sequence for
// one document. Processing is fully synchronous: each trigger is handled
// start to finish on its caller's goroutine, with no queueing and no retries.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgallion1/prelabel/internal/anndoc"
	"github.com/dgallion1/prelabel/internal/metrics"
	"github.com/dgallion1/prelabel/internal/ner"
	"github.com/dgallion1/prelabel/internal/segment"
	"github.com/dgallion1/prelabel/internal/tagtog"
)

// Pipeline wires the tagtog client, the recognizer, and the assembler. All
// fields are read-only after construction, so one Pipeline serves concurrent
// requests.
type Pipeline struct {
	tagtog     *tagtog.Client
	recognizer ner.Recognizer
	assembler  *anndoc.Assembler
	log        *slog.Logger
}

func New(tt *tagtog.Client, recognizer ner.Recognizer, assembler *anndoc.Assembler, log *slog.Logger) *Pipeline {
	return &Pipeline{
		tagtog:     tt,
		recognizer: recognizer,
		assembler:  assembler,
		log:        log,
	}
}

// Process fetches the document with the given id and pre-annotates it.
func (p *Pipeline) Process(ctx context.Context, docID string) error {
	docHTML, err := p.tagtog.FetchDocument(ctx, docID)
	if err != nil {
		metrics.DocumentsTotal.WithLabelValues("fetch_error").Inc()
		return fmt.Errorf("fetch document: %w", err)
	}
	return p.Annotate(ctx, docID, docHTML)
}

// Annotate extracts the identified parts of docHTML, recognizes entities in
// each, assembles the ann.json document, and imports it alongside the
// original content.
func (p *Pipeline) Annotate(ctx context.Context, docID string, docHTML []byte) error {
	segments, err := segment.Extract(bytes.NewReader(docHTML))
	if err != nil {
		metrics.DocumentsTotal.WithLabelValues("parse_error").Inc()
		return fmt.Errorf("extract segments: %w", err)
	}

	doc := anndoc.NewDocument()
	for _, seg := range segments {
		spans, err := p.recognizer.Recognize(ctx, seg.Text)
		if err != nil {
			metrics.DocumentsTotal.WithLabelValues("recognize_error").Inc()
			return fmt.Errorf("recognize part %s: %w", seg.ID, err)
		}
		p.assembler.Append(doc, seg.ID, spans)
	}

	annJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal ann.json: %w", err)
	}

	respBody, err := p.tagtog.ImportAnnotated(ctx, docID, docHTML, annJSON)
	if err != nil {
		metrics.ImportsTotal.WithLabelValues("error").Inc()
		metrics.DocumentsTotal.WithLabelValues("import_error").Inc()
		return fmt.Errorf("import annotated document: %w", err)
	}

	metrics.ImportsTotal.WithLabelValues("ok").Inc()
	metrics.DocumentsTotal.WithLabelValues("ok").Inc()
	metrics.EntitiesTotal.Add(float64(len(doc.Entities)))

	p.log.Info("document pre-annotated",
		"doc_id", docID,
		"parts", len(segments),
		"entities", len(doc.Entities),
	)
	p.log.Debug("import response", "doc_id", docID, "body", respBody)

	return nil
}
