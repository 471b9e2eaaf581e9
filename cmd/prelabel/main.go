// Command prelabel pre-annotates a local document and imports it into a
// tagtog project in one shot: parse the file into identified parts, render
// plain.html, run the NER pipeline over each part, and upload content plus
// ann.json together.
//
// Usage:
//
//	prelabel [-id docid] [-pdftotext] file
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/prelabel/internal/anndoc"
	"github.com/dgallion1/prelabel/internal/config"
	"github.com/dgallion1/prelabel/internal/ner"
	"github.com/dgallion1/prelabel/internal/parser"
	"github.com/dgallion1/prelabel/internal/pipeline"
	"github.com/dgallion1/prelabel/internal/tagtog"
)

func main() {
	docID := flag.String("id", "", "document id to import as (default: derived from filename)")
	pdftotext := flag.Bool("pdftotext", false, "fall back to the pdftotext binary for PDFs")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: prelabel [-id docid] [-pdftotext] file")
		os.Exit(2)
	}
	filename := flag.Arg(0)

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, log, filename, *docID, *pdftotext); err != nil {
		log.Error("pre-annotation failed", "file", filename, "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger, filename, docID string, pdftotext bool) error {
	p, err := parser.ForFile(filename)
	if err != nil {
		return err
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = pdftotext
	}

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	doc, err := p.Parse(f, filepath.Base(filename))
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	if len(doc.Parts) == 0 {
		return fmt.Errorf("%s has no content", filename)
	}

	if docID == "" {
		docID = docIDFromFilename(filename)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tt := tagtog.NewClient(cfg.TagtogDomain, cfg.TagtogOwner, cfg.TagtogProject,
		cfg.TagtogUsername, cfg.TagtogPassword, cfg.VerifyTLS())
	defer tt.Close()

	legend, err := tt.AnnotationsLegend(ctx)
	if err != nil {
		return fmt.Errorf("fetch annotations legend: %w", err)
	}
	resolver := anndoc.NewResolver(legend)

	recognizer := ner.NewClient(cfg.NERServiceURL, cfg.NERModel)
	if err := recognizer.Check(ctx); err != nil {
		return fmt.Errorf("ner service: %w", err)
	}

	pl := pipeline.New(tt, recognizer, anndoc.NewAssembler(resolver, recognizer.Model()), log)
	if err := pl.Annotate(ctx, docID, doc.RenderPlainHTML()); err != nil {
		return err
	}

	log.Info("imported", "doc_id", docID, "parts", len(doc.Parts))
	return nil
}

func docIDFromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	// tagtog ids are restricted; keep it conservative.
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
