package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu     sync.RWMutex
	runs   map[string]store.Run
	closed bool
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

// Close implements store.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// SaveRun stores a deep copy of r. Saving an existing ID fails with internalerr.ErrDuplicate.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return internalerr.ErrStoreUnavailable
	}
	if r.ID == "" {
		return fmt.Errorf("save run: empty id: %w", internalerr.ErrInvalidInput)
	}
	if _, ok := s.runs[r.ID]; ok {
		return fmt.Errorf("save run %s: %w", r.ID, internalerr.ErrDuplicate)
	}
	s.runs[r.ID] = copyRun(r)
	return nil
}

// GetRun returns a stored run or internalerr.ErrNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return store.Run{}, internalerr.ErrStoreUnavailable
	}
	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return copyRun(r), nil
}

// ListRuns returns runs, oldest first, optionally filtered by corpus name.
func (s *Store) ListRuns(ctx context.Context, corpus string) ([]store.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}
	var out []store.RunSummary
	for _, r := range s.runs {
		if corpus != "" && r.Corpus != corpus {
			continue
		}
		out = append(out, store.RunSummary{
			ID:        r.ID,
			Corpus:    r.Corpus,
			CreatedAt: r.CreatedAt,
			Documents: r.Info.Documents,
		})
	}
	// ULIDs sort by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func copyRun(r store.Run) store.Run {
	r.Documents = append([]store.Document(nil), r.Documents...)
	r.Frequencies = append([]store.TermCount(nil), r.Frequencies...)
	r.Similarity = append([]store.SimilarityCell(nil), r.Similarity...)
	r.TFIDF = append([]store.TFIDFCell(nil), r.TFIDF...)
	return r
}
