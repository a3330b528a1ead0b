package ingest

import (
	"github.com/cognicore/lexis/pkg/lexis/freq"
)

// Document is one tokenized text unit. It is immutable after construction.
type Document struct {
	name        string
	tokens      []string
	frequencies freq.Table
}

// NewDocument builds a document from an already filtered token sequence.
func NewDocument(name string, tokens []string) *Document {
	toks := make([]string, len(tokens))
	copy(toks, tokens)
	return &Document{
		name:        name,
		tokens:      toks,
		frequencies: freq.Count(toks),
	}
}

// Name returns the document identifier.
func (d *Document) Name() string { return d.name }

// Tokens returns a copy of the token sequence in document order.
func (d *Document) Tokens() []string {
	out := make([]string, len(d.tokens))
	copy(out, d.tokens)
	return out
}

// TokenCount is the number of tokens including repeats (the word count),
// not the number of distinct tokens.
func (d *Document) TokenCount() int { return len(d.tokens) }

// Frequencies returns the token counts sorted by descending count.
func (d *Document) Frequencies() freq.Table { return d.frequencies }

// Documents is an ordered list of documents.
type Documents []*Document

// Documents returns the list itself, so a plain list can be passed wherever
// an ordered document collection is expected.
func (ds Documents) Documents() []*Document { return ds }
