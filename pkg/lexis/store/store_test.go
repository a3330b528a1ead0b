package store

import (
	"sync"
	"testing"
	"time"
)

func TestIDSourceMonotonic(t *testing.T) {
	src := NewIDSource()
	now := time.Now()

	prev := src.New(now)
	for i := 0; i < 100; i++ {
		id := src.New(now)
		if len(id) != 26 {
			t.Fatalf("ULID should be 26 chars, got %q", id)
		}
		if id <= prev {
			t.Fatalf("ids must increase: %s then %s", prev, id)
		}
		prev = id
	}
}

func TestIDSourceConcurrent(t *testing.T) {
	src := NewIDSource()
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{})
		wg   sync.WaitGroup
	)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := src.New(time.Now())
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if len(seen) != 400 {
		t.Errorf("expected 400 unique ids, got %d", len(seen))
	}
}
