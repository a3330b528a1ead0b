package analytics

import (
	"math"
	"sort"

	"github.com/cognicore/lexis/pkg/lexis/metrics"
	"github.com/cognicore/lexis/pkg/lexis/stoplist"
)

// Analyzer aggregates document-level token statistics.
type Analyzer struct {
	totalDocs int64
	tokenDF   map[string]int64
	tokenTF   map[string]int64
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		tokenDF: make(map[string]int64),
		tokenTF: make(map[string]int64),
	}
}

// Process consumes one document's tokens.
func (a *Analyzer) Process(tokens []string) {
	a.totalDocs++

	seen := make(map[string]struct{})
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		a.tokenTF[tok]++
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		a.tokenDF[tok]++
	}
}

// FromSet runs every document of set through a new analyzer and returns the snapshot.
// Invalid sets fail as in metrics.Resolve.
func FromSet(set metrics.DocumentSet) (Stats, error) {
	docs, err := metrics.Resolve(set)
	if err != nil {
		return Stats{}, err
	}
	a := NewAnalyzer()
	for _, d := range docs {
		a.Process(d.Tokens())
	}
	return a.Snapshot(), nil
}

// Stats exposes the aggregated counts.
type Stats struct {
	TotalDocs int64
	TokenDF   map[string]int64 // documents containing the token
	TokenTF   map[string]int64 // total occurrences
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	copyDF := make(map[string]int64, len(a.tokenDF))
	for tok, count := range a.tokenDF {
		copyDF[tok] = count
	}
	copyTF := make(map[string]int64, len(a.tokenTF))
	for tok, count := range a.tokenTF {
		copyTF[tok] = count
	}
	return Stats{
		TotalDocs: a.totalDocs,
		TokenDF:   copyDF,
		TokenTF:   copyTF,
	}
}

// StopwordStats converts corpus stats into the format expected by
// stoplist.SuggestCandidates, sorted by token.
// IDF is ln(N/DF), the same form the TF-IDF table uses.
func (s Stats) StopwordStats() []stoplist.Stats {
	var out []stoplist.Stats
	if s.TotalDocs == 0 {
		return out
	}

	for tok, df := range s.TokenDF {
		out = append(out, stoplist.Stats{
			Token:     tok,
			DF:        df,
			TotalDocs: s.TotalDocs,
			DFPercent: 100 * (float64(df) / float64(s.TotalDocs)),
			IDF:       math.Log(float64(s.TotalDocs) / float64(df)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// HighDF returns the tokens with the highest document frequency, most
// widespread first. Ties are broken by total occurrences, then by token.
func (s Stats) HighDF(limit int) []stoplist.Stats {
	stats := s.StopwordStats()
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].DF != stats[j].DF {
			return stats[i].DF > stats[j].DF
		}
		ti, tj := s.TokenTF[stats[i].Token], s.TokenTF[stats[j].Token]
		if ti != tj {
			return ti > tj
		}
		return stats[i].Token < stats[j].Token
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}
