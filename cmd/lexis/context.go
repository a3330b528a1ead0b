package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/cognicore/lexis/internal/logging"
	"github.com/cognicore/lexis/pkg/lexis"
	"github.com/cognicore/lexis/pkg/lexis/config"
	"github.com/cognicore/lexis/pkg/lexis/corpus"
	"github.com/cognicore/lexis/pkg/lexis/store"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
	json      bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the config file, if any, and applies flag overrides.
func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		cfg := config.Default()
		if path := strings.TrimSpace(c.flags.config); path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				c.configErr = err
				return
			}
			cfg = loaded
		}
		if c.flags.logLevel != "" {
			cfg.Log.Level = strings.ToLower(c.flags.logLevel)
		}
		if c.flags.logFormat != "" {
			cfg.Log.Format = strings.ToLower(c.flags.logFormat)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: w,
	})
}

// newEngine builds an engine logging to w. st may be nil.
func (c *commandContext) newEngine(w io.Writer, st store.Store) (*lexis.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger(cfg, w)
	if err != nil {
		return nil, err
	}
	return lexis.New(lexis.Options{
		Config: cfg,
		Logger: logger,
		Store:  st,
	})
}

// withCorpus builds the corpus in dir and hands it to fn.
func (c *commandContext) withCorpus(w io.Writer, dir string, fn func(*lexis.Engine, *corpus.Corpus) error) error {
	engine, err := c.newEngine(w, nil)
	if err != nil {
		return err
	}
	defer engine.Close()

	built, err := engine.Build(dir)
	if err != nil {
		return fmt.Errorf("build corpus: %w", err)
	}
	return fn(engine, built)
}
