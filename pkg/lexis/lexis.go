// Package lexis wires the tokenizer, corpus aggregator, comparative metrics
// and report export into one engine.
package lexis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	gometrics "github.com/rcrowley/go-metrics"

	"github.com/cognicore/lexis/internal/logging"
	"github.com/cognicore/lexis/pkg/lexis/analytics"
	"github.com/cognicore/lexis/pkg/lexis/config"
	"github.com/cognicore/lexis/pkg/lexis/corpus"
	"github.com/cognicore/lexis/pkg/lexis/freq"
	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/metrics"
	"github.com/cognicore/lexis/pkg/lexis/stoplist"
	"github.com/cognicore/lexis/pkg/lexis/store"
)

// Engine is the main corpus analysis facade
type Engine struct {
	components *config.Components
	store      store.Store
	logger     *slog.Logger
	ids        *store.IDSource
	registry   gometrics.Registry
	now        func() time.Time
	topTerms   int
}

// Options configures an Engine instance
type Options struct {
	Config config.Config
	Logger *slog.Logger     // optional
	Store  store.Store      // optional, required by Export
	Clock  func() time.Time // optional, defaults to time.Now
}

// New creates an Engine, resolving the stopword list once.
func New(opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	loader := config.Loader{Config: opts.Config, Logger: logger}
	comp, err := loader.Load()
	if err != nil {
		return nil, err
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	registry := gometrics.NewRegistry()
	comp.Builder.Metrics = registry
	return &Engine{
		components: comp,
		store:      opts.Store,
		logger:     logger,
		ids:        store.NewIDSource(),
		registry:   registry,
		now:        now,
		topTerms:   opts.Config.Export.TopTerms,
	}, nil
}

// Close cleanly shuts down the engine and its store
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Tokenizer returns the configured tokenizer.
func (e *Engine) Tokenizer() *ingest.Tokenizer { return e.components.Tokenizer }

// Stoplist returns the resolved stopword list.
func (e *Engine) Stoplist() *stoplist.Manager { return e.components.Stoplist }

// Metrics returns the registry that corpus builds record into.
func (e *Engine) Metrics() gometrics.Registry { return e.registry }

// Build constructs a corpus from a directory of text files.
func (e *Engine) Build(dir string) (*corpus.Corpus, error) {
	return e.components.Builder.Build(dir)
}

// Report bundles the standard analyses of one corpus.
type Report struct {
	Info       corpus.Info
	Top        []freq.Entry
	Similarity metrics.Matrix
	TFIDF      *metrics.TFIDFTable // nil when no terms were requested
}

// Report computes basic info, top terms, the similarity matrix and, when
// terms are given, the TF-IDF table.
func (e *Engine) Report(c *corpus.Corpus, terms []string) (Report, error) {
	if c == nil {
		return Report{}, fmt.Errorf("report: nil corpus: %w", internalerr.ErrTypeMismatch)
	}
	sim, err := c.SimilarityMatrix()
	if err != nil {
		return Report{}, err
	}
	top := c.Frequencies().Entries()
	if e.topTerms > 0 {
		top = c.Frequencies().Top(e.topTerms)
	}
	r := Report{
		Info:       c.BasicInfo(),
		Top:        top,
		Similarity: sim,
	}
	if len(terms) > 0 {
		table, err := c.TFIDF(terms)
		if err != nil {
			return Report{}, err
		}
		r.TFIDF = &table
	}
	return r, nil
}

// SuggestStopwords proposes corpus-specific stopwords by document frequency.
func (e *Engine) SuggestStopwords(c *corpus.Corpus, thresholds stoplist.Thresholds) ([]stoplist.Candidate, error) {
	if c == nil {
		return nil, fmt.Errorf("suggest stopwords: nil corpus: %w", internalerr.ErrTypeMismatch)
	}
	stats, err := analytics.FromSet(c)
	if err != nil {
		return nil, err
	}
	return e.components.Stoplist.SuggestCandidates(stats.StopwordStats(), thresholds), nil
}

// Export writes the report of c to the configured store and returns the run ID.
func (e *Engine) Export(ctx context.Context, c *corpus.Corpus, terms []string) (string, error) {
	if e.store == nil {
		return "", fmt.Errorf("export: no store configured: %w", internalerr.ErrStoreUnavailable)
	}
	rep, err := e.Report(c, terms)
	if err != nil {
		return "", err
	}
	created := e.now()
	run := NewRun(e.ids.New(created), created, c, rep)
	if err := e.store.SaveRun(ctx, run); err != nil {
		return "", fmt.Errorf("export %s: %w", c.Name(), err)
	}
	e.logger.Info("report exported", "corpus", c.Name(), "run", run.ID, "terms", len(terms))
	return run.ID, nil
}

// NewRun flattens a report into the store representation.
func NewRun(id string, created time.Time, c *corpus.Corpus, rep Report) store.Run {
	run := store.Run{
		ID:        id,
		Corpus:    c.Name(),
		CreatedAt: created,
		Info: store.Info{
			Documents:      rep.Info.Documents,
			DistinctTokens: rep.Info.DistinctTokens,
			TotalWords:     rep.Info.TotalWords,
		},
	}

	for _, d := range c.Documents() {
		run.Documents = append(run.Documents, store.Document{
			Name:           d.Name(),
			TokenCount:     d.TokenCount(),
			DistinctTokens: d.Frequencies().Len(),
		})
	}
	for i, entry := range rep.Top {
		run.Frequencies = append(run.Frequencies, store.TermCount{
			Rank:  i + 1,
			Token: entry.Token,
			Count: entry.Count,
		})
	}
	for i, a := range rep.Similarity.Labels {
		for j, b := range rep.Similarity.Labels {
			v := rep.Similarity.At(i, j)
			run.Similarity = append(run.Similarity, store.SimilarityCell{
				A:       a,
				B:       b,
				Value:   v,
				Defined: !math.IsNaN(v),
			})
		}
	}
	if rep.TFIDF != nil {
		t := rep.TFIDF
		for i, term := range t.Terms {
			for j, doc := range t.Documents {
				run.TFIDF = append(run.TFIDF, store.TFIDFCell{
					Term:     term,
					Document: doc,
					Count:    t.Counts[i][j],
					Value:    t.Values[i][j],
					Absent:   metrics.IsAbsent(t.Values[i][j]),
				})
			}
		}
	}
	return run
}
