package main

import (
	"strconv"
	"time"

	gometrics "github.com/rcrowley/go-metrics"

	"github.com/cognicore/lexis/pkg/lexis/corpus"
)

type buildStats struct {
	Duration     time.Duration `json:"duration_ns"`
	Documents    int64         `json:"documents"`
	Words        int64         `json:"words"`
	MinTokens    int64         `json:"min_tokens"`
	MaxTokens    int64         `json:"max_tokens"`
	MeanTokens   float64       `json:"mean_tokens"`
	MedianTokens float64       `json:"median_tokens"`
}

func collectBuildStats(r gometrics.Registry) buildStats {
	var s buildStats
	if t, ok := r.Get(corpus.MetricBuildTime).(gometrics.Timer); ok {
		s.Duration = time.Duration(t.Snapshot().Sum())
	}
	if c, ok := r.Get(corpus.MetricDocuments).(gometrics.Counter); ok {
		s.Documents = c.Count()
	}
	if c, ok := r.Get(corpus.MetricWords).(gometrics.Counter); ok {
		s.Words = c.Count()
	}
	if h, ok := r.Get(corpus.MetricDocumentTokens).(gometrics.Histogram); ok {
		snap := h.Snapshot()
		s.MinTokens = snap.Min()
		s.MaxTokens = snap.Max()
		s.MeanTokens = snap.Mean()
		s.MedianTokens = snap.Percentile(0.5)
	}
	return s
}

func renderBuildStats(s buildStats) string {
	rows := [][]string{
		{"Build time", s.Duration.Round(time.Microsecond).String()},
		{"Documents", strconv.FormatInt(s.Documents, 10)},
		{"Words", strconv.FormatInt(s.Words, 10)},
		{"Tokens per document (min)", strconv.FormatInt(s.MinTokens, 10)},
		{"Tokens per document (median)", strconv.FormatFloat(s.MedianTokens, 'f', 1, 64)},
		{"Tokens per document (mean)", strconv.FormatFloat(s.MeanTokens, 'f', 1, 64)},
		{"Tokens per document (max)", strconv.FormatInt(s.MaxTokens, 10)},
	}
	return renderTable([]string{"Statistic", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
