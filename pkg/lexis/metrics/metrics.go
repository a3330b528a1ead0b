// Package metrics computes comparative statistics across tokenized documents:
// pairwise cosine similarity and batched TF-IDF.
package metrics

import (
	"fmt"
	"reflect"

	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// DocumentSet is an ordered collection of named, frequency-bearing documents.
// Both ingest.Documents and *corpus.Corpus satisfy it.
type DocumentSet interface {
	Documents() []*ingest.Document
}

// Resolve returns the ordered documents of set after validating them.
// A nil set, including a typed nil such as a nil *corpus.Corpus, or a nil
// document fails with internalerr.ErrTypeMismatch; repeated names fail with
// internalerr.ErrDuplicate.
func Resolve(set DocumentSet) ([]*ingest.Document, error) {
	if isNil(set) {
		return nil, fmt.Errorf("document set is nil: %w", internalerr.ErrTypeMismatch)
	}
	docs := set.Documents()
	seen := make(map[string]struct{}, len(docs))
	for i, d := range docs {
		if d == nil {
			return nil, fmt.Errorf("document %d is nil: %w", i, internalerr.ErrTypeMismatch)
		}
		if _, dup := seen[d.Name()]; dup {
			return nil, fmt.Errorf("document %q: %w", d.Name(), internalerr.ErrDuplicate)
		}
		seen[d.Name()] = struct{}{}
	}
	return docs, nil
}

func isNil(set DocumentSet) bool {
	if set == nil {
		return true
	}
	// A nil ingest.Documents slice is an empty set, not a missing one.
	switch v := reflect.ValueOf(set); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func names(docs []*ingest.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Name()
	}
	return out
}
