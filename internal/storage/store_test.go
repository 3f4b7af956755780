package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"argentvault/internal/cache"
)

// exercise runs the same contract against every backend.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, KeyBudgets, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, KeyBudgets)
	if err != nil || !ok || string(v) != `[{"id":1}]` {
		t.Fatalf("get: %q ok=%v err=%v", v, ok, err)
	}

	if err := s.Set(ctx, KeyBudgets, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = s.Get(ctx, KeyBudgets)
	if string(v) != `[]` {
		t.Fatalf("last write should win, got %q", v)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	exercise(t, m)

	// returned slices must not alias stored data
	v, _, _ := m.Get(context.Background(), KeyBudgets)
	v[0] = 'x'
	again, _, _ := m.Get(context.Background(), KeyBudgets)
	if string(again) != `[]` {
		t.Fatalf("stored value mutated: %q", again)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "kv.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exercise(t, s)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	s.Close()

	// data survives reopen, migrations are idempotent
	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	v, ok, err := s.Get(context.Background(), KeyBudgets)
	if err != nil || !ok || string(v) != `[]` {
		t.Fatalf("after reopen: %q ok=%v err=%v", v, ok, err)
	}
}

func TestRunMigrationsReportsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	for i := 0; i < 2; i++ {
		v, err := RunMigrations(path)
		if err != nil {
			t.Fatalf("run #%d: %v", i+1, err)
		}
		if v != 1 {
			t.Fatalf("run #%d: version = %d, want 1", i+1, v)
		}
	}
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.bolt")
	s, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exercise(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = NewBoltStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, ok, _ := s.Get(context.Background(), KeyBudgets); !ok {
		t.Fatalf("value lost after reopen")
	}
}

type countingStore struct {
	*MemoryStore
	gets   int
	failOn string
}

func (c *countingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets++
	return c.MemoryStore.Get(ctx, key)
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	if key == c.failOn {
		return ErrUnavailable
	}
	return c.MemoryStore.Set(ctx, key, value)
}

func TestCachedStore(t *testing.T) {
	inner := &countingStore{MemoryStore: NewMemoryStore(), failOn: "broken"}
	lru := cache.NewLRUCache[[]byte](8, time.Minute)
	s := NewCachedStore(inner, lru)
	exercise(t, s)

	ctx := context.Background()
	before := inner.gets
	for i := 0; i < 3; i++ {
		if _, ok, _ := s.Get(ctx, KeyBudgets); !ok {
			t.Fatalf("expected cached value")
		}
	}
	if inner.gets != before {
		t.Fatalf("expected cache hits, inner store read %d times", inner.gets-before)
	}

	if err := s.Set(ctx, "broken", []byte("x")); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, ok := lru.Get("broken"); ok {
		t.Fatalf("failed write must not be cached")
	}
}

func TestVisitKey(t *testing.T) {
	if VisitKey("") != "visitRecord" || VisitKey("abc") != "visitRecord:abc" {
		t.Fatalf("unexpected keys %q %q", VisitKey(""), VisitKey("abc"))
	}
}
