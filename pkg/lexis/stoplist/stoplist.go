package stoplist

import (
	"sort"
	"strings"
)

// Manager handles stopword membership and corpus-driven suggestions
type Manager struct {
	stops map[string]Reason
}

// Reason explains why a token is a stopword
type Reason struct {
	Builtin   bool    // part of the initial list
	HighDF    bool    // high document frequency
	DFPercent float64 // share of documents containing the token
	IDF       float64 // inverse document frequency
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]Reason, len(initialStops))
	for _, s := range initialStops {
		stops[normalize(s)] = Reason{Builtin: true}
	}
	return &Manager{stops: stops}
}

// Default creates a manager seeded with the English list
func Default() *Manager {
	return NewManager(english)
}

func normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist with a reason
func (m *Manager) Add(token string, reason Reason) {
	m.stops[normalize(token)] = reason
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, normalize(token))
}

// Len returns the number of stopwords
func (m *Manager) Len() int { return len(m.stops) }

// All returns all stopwords, sorted
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Set returns a copy of the stopwords as a lookup set
func (m *Manager) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(m.stops))
	for s := range m.stops {
		set[s] = struct{}{}
	}
	return set
}

// Stats holds statistics for candidate evaluation
type Stats struct {
	Token     string
	DF        int64
	TotalDocs int64
	DFPercent float64
	IDF       float64
}

// Candidate represents a candidate stopword
type Candidate struct {
	Token  string
	Reason Reason
	Score  float64 // confidence score
}

// Thresholds defines criteria for stopword identification
type Thresholds struct {
	DFPercent float64 // e.g., 80% - appears in 80% of documents
	MinDocs   int64   // corpora smaller than this produce no candidates
}

// DefaultThresholds returns sensible default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DFPercent: 80.0,
		MinDocs:   3,
	}
}

// SuggestCandidates suggests tokens that should be stopwords, highest score first
func (m *Manager) SuggestCandidates(stats []Stats, thresholds Thresholds) []Candidate {
	var candidates []Candidate

	if thresholds.DFPercent == 0 {
		thresholds.DFPercent = DefaultThresholds().DFPercent
	}

	for _, s := range stats {
		if m.IsStop(s.Token) {
			continue // already a stopword
		}
		if s.TotalDocs < thresholds.MinDocs {
			continue
		}
		if s.DFPercent < thresholds.DFPercent {
			continue
		}
		candidates = append(candidates, Candidate{
			Token: s.Token,
			Reason: Reason{
				HighDF:    true,
				DFPercent: s.DFPercent,
				IDF:       s.IDF,
			},
			Score: s.DFPercent / 100.0,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Token < candidates[j].Token
	})
	return candidates
}
