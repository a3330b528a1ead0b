package corpus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	gometrics "github.com/rcrowley/go-metrics"

	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// Metric names recorded by Build when a registry is set.
const (
	MetricBuildTime      = "corpus.build"
	MetricDocuments      = "corpus.documents"
	MetricWords          = "corpus.words"
	MetricDocumentTokens = "document.tokens"
)

// DefaultExtensions lists the file extensions recognized as text sources.
var DefaultExtensions = []string{".txt"}

// Builder constructs corpora from directories of text files.
type Builder struct {
	Tokenizer  *ingest.Tokenizer
	Extensions []string           // recognized extensions; DefaultExtensions when empty
	Workers    int                // parallel tokenization; 1 or less runs sequentially
	Logger     *slog.Logger       // optional
	Metrics    gometrics.Registry // optional
}

// Build tokenizes every recognized file directly inside dir (non-recursive)
// and aggregates them into a corpus named after the directory.
//
// Files are processed in name order. A missing directory fails with
// internalerr.ErrNotFound; a directory without recognized files fails with
// internalerr.ErrEmptyCorpus. No partial corpus is returned on error.
func (b *Builder) Build(dir string) (*Corpus, error) {
	if b.Tokenizer == nil {
		return nil, fmt.Errorf("corpus builder: nil tokenizer: %w", internalerr.ErrInvalidConfig)
	}
	start := time.Now()
	logger := b.logger()
	name := filepath.Base(filepath.Clean(dir))

	files, err := b.listFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("corpus %s: no files with extensions %v in %s: %w",
			name, b.extensions(), dir, internalerr.ErrEmptyCorpus)
	}

	docs, err := b.tokenizeAll(dir, files, logger)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", name, err)
	}

	c, err := FromDocuments(name, docs)
	if err != nil {
		return nil, err
	}
	b.record(c, start)
	logger.Info("corpus built",
		"corpus", c.Name(),
		"documents", c.DocumentCount(),
		"distinct_tokens", len(c.vocabulary),
		"total_words", c.TotalWordCount(),
	)
	return c, nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

func (b *Builder) record(c *Corpus, start time.Time) {
	if b.Metrics == nil {
		return
	}
	gometrics.GetOrRegisterTimer(MetricBuildTime, b.Metrics).UpdateSince(start)
	gometrics.GetOrRegisterCounter(MetricDocuments, b.Metrics).Inc(int64(c.DocumentCount()))
	gometrics.GetOrRegisterCounter(MetricWords, b.Metrics).Inc(int64(c.TotalWordCount()))
	tokens := gometrics.GetOrRegisterHistogram(MetricDocumentTokens, b.Metrics, gometrics.NewUniformSample(512))
	for _, d := range c.docs {
		tokens.Update(int64(d.TokenCount()))
	}
}

func (b *Builder) extensions() []string {
	if len(b.Extensions) == 0 {
		return DefaultExtensions
	}
	return b.Extensions
}

func (b *Builder) recognized(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, want := range b.extensions() {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// listFiles returns the sorted names of recognized regular files in dir.
func (b *Builder) listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus directory %s: %w: %v", dir, internalerr.ErrNotFound, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !b.recognized(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// tokenizeAll processes files independently and returns documents in file
// order. With several workers, the first failing file in that order wins.
func (b *Builder) tokenizeAll(dir string, files []string, logger *slog.Logger) (ingest.Documents, error) {
	docs := make(ingest.Documents, len(files))
	errs := make([]error, len(files))

	load := func(i int) {
		logger.Debug("processing document", "file", files[i])
		docs[i], errs[i] = b.Tokenizer.Load(filepath.Join(dir, files[i]), files[i])
	}

	workers := min(b.Workers, len(files))
	if workers <= 1 {
		for i := range files {
			load(i)
			if errs[i] != nil {
				return nil, errs[i]
			}
		}
		return docs, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				load(i)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return docs, nil
}
