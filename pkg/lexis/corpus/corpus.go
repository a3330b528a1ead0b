// Package corpus aggregates tokenized documents into a named corpus with a
// shared vocabulary and corpus-wide frequency table.
package corpus

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/cognicore/lexis/pkg/lexis/freq"
	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/metrics"
)

// Corpus is a named collection of documents treated as one analytical unit.
// It is immutable once built and safe for concurrent readers.
type Corpus struct {
	name        string
	docs        []*ingest.Document
	byName      map[string]*ingest.Document
	vocabulary  []string
	frequencies freq.Table
	totalWords  int
}

// FromDocuments aggregates docs, in the given order, into a corpus.
// Zero documents fail with internalerr.ErrEmptyCorpus.
func FromDocuments(name string, docs ingest.Documents) (*Corpus, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("corpus %s: %w", name, internalerr.ErrEmptyCorpus)
	}

	byName := make(map[string]*ingest.Document, len(docs))
	ordered := make([]*ingest.Document, 0, len(docs))
	for i, d := range docs {
		if d == nil {
			return nil, fmt.Errorf("corpus %s: document %d is nil: %w", name, i, internalerr.ErrTypeMismatch)
		}
		if _, dup := byName[d.Name()]; dup {
			return nil, fmt.Errorf("corpus %s: document %q: %w", name, d.Name(), internalerr.ErrDuplicate)
		}
		byName[d.Name()] = d
		ordered = append(ordered, d)
	}

	c := &Corpus{
		name:   name,
		docs:   ordered,
		byName: byName,
	}
	c.vocabulary = vocabulary(ordered)
	c.frequencies, c.totalWords = aggregate(c.vocabulary, ordered)
	return c, nil
}

// vocabulary returns the sorted union of every document's distinct tokens.
func vocabulary(docs []*ingest.Document) []string {
	set := make(map[string]struct{})
	for _, d := range docs {
		for _, tok := range d.Frequencies().Keys() {
			set[tok] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(set))
	for tok := range set {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)
	return vocab
}

// aggregate folds each document's table into a zero-initialized table over
// the vocabulary. Ties in the result follow vocabulary order.
func aggregate(vocab []string, docs []*ingest.Document) (freq.Table, int) {
	tables := make([]freq.Table, len(docs))
	total := 0
	for i, d := range docs {
		tables[i] = d.Frequencies()
		total += tables[i].Total()
	}
	return freq.Merge(vocab, tables...), total
}

// Name returns the corpus name.
func (c *Corpus) Name() string { return c.name }

// String implements fmt.Stringer.
func (c *Corpus) String() string { return c.name }

// Documents returns the documents in corpus order. A nil corpus has none.
func (c *Corpus) Documents() []*ingest.Document {
	if c == nil {
		return nil
	}
	out := make([]*ingest.Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Document looks up a document by identifier.
func (c *Corpus) Document(name string) (*ingest.Document, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// DocumentCount returns the number of documents.
func (c *Corpus) DocumentCount() int { return len(c.docs) }

// DocumentNames returns the document identifiers in corpus order.
func (c *Corpus) DocumentNames() []string {
	out := make([]string, len(c.docs))
	for i, d := range c.docs {
		out[i] = d.Name()
	}
	return out
}

// Vocabulary returns every distinct token in ascending order.
func (c *Corpus) Vocabulary() []string {
	out := make([]string, len(c.vocabulary))
	copy(out, c.vocabulary)
	return out
}

// Frequencies returns corpus-wide token counts sorted by descending count.
func (c *Corpus) Frequencies() freq.Table { return c.frequencies }

// TotalWordCount is the sum of all token occurrences across documents.
func (c *Corpus) TotalWordCount() int { return c.totalWords }

// Info is the basic corpus report.
type Info struct {
	Name           string `json:"name"`
	Documents      int    `json:"documents"`
	DistinctTokens int    `json:"distinct_tokens"`
	TotalWords     int    `json:"total_words"`
}

// String renders the report as plain text.
func (i Info) String() string {
	return strings.Join([]string{
		fmt.Sprintf("Basic info concerning %s corpus:", i.Name),
		fmt.Sprintf("Number of text files: %d", i.Documents),
		fmt.Sprintf("Number of distinct tokens: %d", i.DistinctTokens),
		fmt.Sprintf("Total number of words: %d", i.TotalWords),
	}, "\n")
}

// BasicInfo returns document count, distinct-token count and total word count.
func (c *Corpus) BasicInfo() Info {
	return Info{
		Name:           c.name,
		Documents:      len(c.docs),
		DistinctTokens: len(c.vocabulary),
		TotalWords:     c.totalWords,
	}
}

// SimilarityMatrix returns pairwise cosine similarity between documents.
func (c *Corpus) SimilarityMatrix() (metrics.Matrix, error) {
	return metrics.SimilarityMatrix(c)
}

// TFIDF computes TF-IDF for terms over the corpus documents.
func (c *Corpus) TFIDF(terms []string) (metrics.TFIDFTable, error) {
	return metrics.TFIDF(terms, c)
}

// SampleTokens draws min(n, |vocabulary|) distinct tokens without replacement
// from the sorted vocabulary. The same seed always yields the same sample.
func (c *Corpus) SampleTokens(n int, seed uint64) []string {
	k := min(max(n, 0), len(c.vocabulary))
	pool := c.Vocabulary()
	r := rand.New(rand.NewPCG(seed, 0))
	// Partial Fisher-Yates: the first k slots become the sample.
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
