package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/lexis/pkg/lexis/ingest"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/stoplist"
)

func TestAnalyzerDocumentFrequency(t *testing.T) {
	a := NewAnalyzer()
	a.Process([]string{"said", "whale", "whale"})
	a.Process([]string{"said", "ship"})
	a.Process([]string{"said", "", "sea"})
	stats := a.Snapshot()

	if stats.TotalDocs != 3 {
		t.Fatalf("expected 3 docs, got %d", stats.TotalDocs)
	}
	if stats.TokenDF["said"] != 3 {
		t.Errorf("DF(said) = %d, want 3", stats.TokenDF["said"])
	}
	if stats.TokenDF["whale"] != 1 || stats.TokenTF["whale"] != 2 {
		t.Errorf("whale DF/TF = %d/%d, want 1/2", stats.TokenDF["whale"], stats.TokenTF["whale"])
	}
	if _, ok := stats.TokenDF[""]; ok {
		t.Error("empty tokens must be skipped")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	a := NewAnalyzer()
	a.Process([]string{"whale"})
	stats := a.Snapshot()
	stats.TokenDF["whale"] = 99
	if a.Snapshot().TokenDF["whale"] != 1 {
		t.Error("snapshot must not alias analyzer state")
	}
}

func TestStopwordStats(t *testing.T) {
	set := ingest.Documents{
		ingest.NewDocument("a", []string{"said", "whale"}),
		ingest.NewDocument("b", []string{"said", "ship"}),
	}
	stats, err := FromSet(set)
	if err != nil {
		t.Fatalf("FromSet: %v", err)
	}
	sw := stats.StopwordStats()
	if len(sw) != 3 {
		t.Fatalf("expected 3 stats, got %d", len(sw))
	}
	if sw[0].Token != "said" || sw[0].DFPercent != 100 || sw[0].IDF != 0 {
		t.Errorf("unexpected stats for said: %+v", sw[0])
	}
	if sw[1].Token != "ship" || math.Abs(sw[1].IDF-math.Ln2) > 1e-12 || sw[1].TotalDocs != 2 {
		t.Errorf("unexpected stats for ship: %+v", sw[1])
	}
}

func TestStopwordStatsEmpty(t *testing.T) {
	stats, err := FromSet(ingest.Documents{})
	if err != nil {
		t.Fatalf("FromSet: %v", err)
	}
	if got := stats.StopwordStats(); len(got) != 0 {
		t.Errorf("expected no stats, got %v", got)
	}
}

func TestFromSetNil(t *testing.T) {
	if _, err := FromSet(nil); !errors.Is(err, internalerr.ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
	if _, err := FromSet(ingest.Documents{nil}); !errors.Is(err, internalerr.ErrTypeMismatch) {
		t.Errorf("nil document: expected ErrTypeMismatch, got %v", err)
	}
}

func TestHighDF(t *testing.T) {
	a := NewAnalyzer()
	a.Process([]string{"said", "whale", "whale"})
	a.Process([]string{"said", "ship", "whale"})
	a.Process([]string{"said", "sea", "ship"})
	a.Process([]string{"ahab"})

	top := a.Snapshot().HighDF(3)
	want := []string{"said", "whale", "ship"}
	if len(top) != len(want) {
		t.Fatalf("HighDF(3) returned %d entries", len(top))
	}
	for i := range want {
		if top[i].Token != want[i] {
			t.Errorf("HighDF[%d] = %s, want %s", i, top[i].Token, want[i])
		}
	}
}

func TestSuggestFromCorpusStats(t *testing.T) {
	a := NewAnalyzer()
	for _, doc := range [][]string{
		{"said", "whale"}, {"said", "ship"}, {"said", "sea"}, {"said", "ahab"}, {"harpoon"},
	} {
		a.Process(doc)
	}

	cands := stoplist.NewManager(nil).SuggestCandidates(a.Snapshot().StopwordStats(), stoplist.DefaultThresholds())
	if len(cands) != 1 || cands[0].Token != "said" {
		t.Fatalf("expected only 'said', got %+v", cands)
	}
}
