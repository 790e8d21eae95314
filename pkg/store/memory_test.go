package store

import (
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreContract(t *testing.T) {
	testStoreContract(t, NewMemory())
}

func TestMemoryStoreConcurrentWrites(t *testing.T) {
	s := NewMemory()
	ctx := t.Context()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Put(ctx, Entry{Acronym: "FY", Definition: "Fiscal Year", AddedAt: time.Now()})
			_, _ = s.Get(ctx, "FY")
		}()
	}
	wg.Wait()

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("List() after concurrent Put() of one key: got %d entries, want 1", len(entries))
	}
}
