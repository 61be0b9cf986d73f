package store

import (
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_TakeIsOneShot(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(time.Minute)
	token := s.Put(Download{RunID: "r1", Filename: "plan.xlsx", Data: []byte("x")})
	if token == "" {
		t.Fatalf("empty token")
	}

	d, ok := s.Take(token)
	if !ok || d.Filename != "plan.xlsx" || string(d.Data) != "x" || d.RunID != "r1" {
		t.Fatalf("take = %+v, %v", d, ok)
	}
	if _, ok := s.Take(token); ok {
		t.Fatalf("token should be consumed")
	}
	if _, ok := s.Take("unknown"); ok {
		t.Fatalf("unknown token should miss")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(10 * time.Minute)
	s.now = func() time.Time { return now }

	token := s.Put(Download{Filename: "a.xlsx"})
	_ = s.Put(Download{Filename: "b.xlsx"})
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}

	now = now.Add(10 * time.Minute)
	if _, ok := s.Take(token); ok {
		t.Fatalf("expired token should miss")
	}
	if s.Len() != 0 {
		t.Fatalf("expired items should be purged, len = %d", s.Len())
	}
}

func TestMemoryStore_DefaultTTL(t *testing.T) {
	t.Parallel()

	if got := NewMemoryStore(0).TTL(); got != 10*time.Minute {
		t.Fatalf("ttl = %v", got)
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token := s.Put(Download{Filename: "f"})
			if _, ok := s.Take(token); !ok {
				t.Errorf("token %s missing", token)
			}
		}()
	}
	wg.Wait()
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
}
