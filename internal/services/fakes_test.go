package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"argentvault/internal/amqp"
	"argentvault/internal/storage"
)

var errDown = errors.New("backend down")

// failingStore fails every call.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errDown }
func (failingStore) Set(context.Context, string, []byte) error        { return errDown }

// flakyStore fails the first failGets reads, then serves the wrapped store.
type flakyStore struct {
	*storage.MemoryStore

	mu       sync.Mutex
	failGets int
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	if f.failGets > 0 {
		f.failGets--
		f.mu.Unlock()
		return nil, false, errDown
	}
	f.mu.Unlock()
	return f.MemoryStore.Get(ctx, key)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*amqp.BudgetEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e *amqp.BudgetEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

// stepClock returns start and advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := cur
		cur = cur.Add(step)
		return t
	}
}

var _ storage.Store = failingStore{}
