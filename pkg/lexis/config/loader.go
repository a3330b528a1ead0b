package config

import (
	"fmt"
	"log/slog"

	"github.com/cognicore/lexis/pkg/lexis/corpus"
	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/stoplist"
)

// Loader turns a configuration into ready-to-use components
type Loader struct {
	Config Config
	Logger *slog.Logger // optional
}

// Components holds all loaded configuration components
type Components struct {
	Stoplist  *stoplist.Manager
	Tokenizer *ingest.Tokenizer
	Builder   *corpus.Builder
}

// Load resolves the stopword list once and returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg := l.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var mgr *stoplist.Manager
	if cfg.Stoplist.DisableDefault {
		mgr = stoplist.NewManager(nil)
	} else {
		mgr = stoplist.Default()
	}

	if cfg.Stoplist.Path != "" {
		sl, err := LoadStoplist(cfg.Stoplist.Path)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		for _, term := range sl.Terms {
			mgr.Add(term, stoplist.Reason{Builtin: true})
		}
	}
	for _, term := range cfg.Stoplist.Extra {
		mgr.Add(term, stoplist.Reason{})
	}
	for _, term := range cfg.Stoplist.Remove {
		mgr.Remove(term)
	}

	tokenizer := ingest.NewTokenizer(mgr.All(), ingest.WithMinLength(cfg.MinTokenLength))

	return &Components{
		Stoplist:  mgr,
		Tokenizer: tokenizer,
		Builder: &corpus.Builder{
			Tokenizer:  tokenizer,
			Extensions: cfg.Extensions,
			Workers:    cfg.Workers,
			Logger:     l.Logger,
		},
	}, nil
}
