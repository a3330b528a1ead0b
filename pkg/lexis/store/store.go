package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store receives exported analysis runs for external presentation tools.
// Corpora are never reloaded from a store; they are rebuilt from text files.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, corpus string) ([]RunSummary, error)
}

// Run is one exported analysis of a corpus.
type Run struct {
	ID          string
	Corpus      string
	CreatedAt   time.Time
	Info        Info
	Documents   []Document
	Frequencies []TermCount // corpus-wide, descending count
	Similarity  []SimilarityCell
	TFIDF       []TFIDFCell
}

// Info mirrors the basic corpus report.
type Info struct {
	Documents      int
	DistinctTokens int
	TotalWords     int
}

// Document summarizes one document of the run.
type Document struct {
	Name           string
	TokenCount     int
	DistinctTokens int
}

// TermCount is one frequency table entry.
type TermCount struct {
	Rank  int
	Token string
	Count int
}

// SimilarityCell is one cell of the similarity matrix.
// Defined is false when the pair had no defined similarity.
type SimilarityCell struct {
	A, B    string
	Value   float64
	Defined bool
}

// TFIDFCell is one term/document value of a TF-IDF table.
// Absent marks the negative-infinity sentinel of a term found in no document.
type TFIDFCell struct {
	Term     string
	Document string
	Count    int
	Value    float64
	Absent   bool
}

// RunSummary lists a run without its tables.
type RunSummary struct {
	ID        string
	Corpus    string
	CreatedAt time.Time
	Documents int
}

// IDSource hands out monotonic ULIDs. It is safe for concurrent use.
type IDSource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDSource creates an ID source backed by crypto/rand.
func NewIDSource() *IDSource {
	return &IDSource{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a fresh ID for the given time.
func (s *IDSource) New(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}
