package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"argentvault/internal/core"
	applog "argentvault/internal/log"
	"argentvault/internal/storage"
)

// BudgetStore is the collection of saved budget snapshots. It keeps an
// in-memory mirror of the persisted list so a failing backend only costs
// durability, never availability.
//
// Until the persisted list has been read once, nothing is written back.
// Saves and deletes made in the meantime are kept in memory and replayed on
// top of the persisted list after the first successful read.
type BudgetStore struct {
	store storage.Store
	seed  bool
	now   func() time.Time

	mu       sync.Mutex
	loaded   bool
	degraded bool
	budgets  []core.BudgetSnapshot
	unsaved  []core.BudgetSnapshot
	deleted  map[int64]bool
}

// NewBudgetStore creates a store over the given backend. With seed set, an
// empty backend starts with the sample budget.
func NewBudgetStore(store storage.Store, seed bool) *BudgetStore {
	return &BudgetStore{store: store, seed: seed, now: time.Now}
}

// Save assigns an id and creation time when missing, recomputes derived
// fields and stores the snapshot. Saving an existing id replaces it.
func (s *BudgetStore) Save(ctx context.Context, snap core.BudgetSnapshot) (core.BudgetSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = s.now()
	}
	if snap.ID == 0 {
		snap.ID = s.nextID(snap.CreatedAt)
	}
	snap = snap.Recompute()

	s.budgets = upsert(s.budgets, snap)

	if !s.loaded {
		s.unsaved = upsert(s.unsaved, snap)
		delete(s.deleted, snap.ID)
		return snap, nil
	}
	s.persist(ctx)
	return snap, nil
}

// List returns every snapshot, most recent first.
func (s *BudgetStore) List(ctx context.Context) []core.BudgetSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	out := make([]core.BudgetSnapshot, len(s.budgets))
	copy(out, s.budgets)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Load returns the snapshot with the given id or core.ErrNotFound.
func (s *BudgetStore) Load(ctx context.Context, id int64) (core.BudgetSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for _, b := range s.budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return core.BudgetSnapshot{}, fmt.Errorf("load budget %d: %w", id, core.ErrNotFound)
}

// Delete removes one snapshot. Unknown ids leave the collection untouched.
func (s *BudgetStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for i, b := range s.budgets {
		if b.ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			if !s.loaded {
				s.unsaved = remove(s.unsaved, id)
				if s.deleted == nil {
					s.deleted = make(map[int64]bool)
				}
				s.deleted[id] = true
				return nil
			}
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("delete budget %d: %w", id, core.ErrNotFound)
}

// nextID derives the id from the creation time in milliseconds and keeps
// ids strictly increasing.
func (s *BudgetStore) nextID(createdAt time.Time) int64 {
	id := createdAt.UnixMilli()
	for _, b := range s.budgets {
		if b.ID >= id {
			id = b.ID + 1
		}
	}
	return id
}

// ensureLoaded reads the persisted list until a read succeeds. Must be
// called with mu held.
func (s *BudgetStore) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	logger := storeLogger(ctx)

	raw, ok, err := s.store.Get(ctx, storage.KeyBudgets)
	if err != nil {
		logger.Error("Failed to read saved budgets, continuing in memory",
			applog.NewFields().WithError(err).WithErrorType(applog.ErrorTypeDatabase).
				WithOperation(applog.OpRead).ToSlice()...)
		if !s.degraded {
			s.degraded = true
			if s.seed {
				s.budgets = []core.BudgetSnapshot{core.SampleSnapshot(s.now())}
			}
		}
		return
	}
	s.loaded = true

	var stored []core.BudgetSnapshot
	dirty := false
	switch {
	case ok:
		var list []core.BudgetSnapshot
		if err := json.Unmarshal(raw, &list); err != nil {
			logger.Error("Saved budgets are corrupt, starting empty",
				applog.FieldError, err, applog.FieldErrorType, applog.ErrorTypeParsing)
			break
		}
		stored = make([]core.BudgetSnapshot, 0, len(list))
		for _, b := range list {
			stored = append(stored, b.Recompute())
		}
		logger.Debug("Loaded saved budgets", "count", len(stored))
	case s.seed:
		stored = []core.BudgetSnapshot{core.SampleSnapshot(s.now())}
		dirty = true
		logger.Info("Seeded sample budget")
	}

	for _, b := range s.unsaved {
		stored = upsert(stored, b)
		dirty = true
	}
	for id := range s.deleted {
		stored = remove(stored, id)
		dirty = true
	}
	if n := len(s.unsaved) + len(s.deleted); n > 0 {
		logger.Info("Replayed changes made while storage was unreadable", "changes", n)
	}
	s.budgets = stored
	s.unsaved, s.deleted, s.degraded = nil, nil, false

	if dirty {
		s.persist(ctx)
	}
}

func upsert(list []core.BudgetSnapshot, snap core.BudgetSnapshot) []core.BudgetSnapshot {
	for i := range list {
		if list[i].ID == snap.ID {
			list[i] = snap
			return list
		}
	}
	return append(list, snap)
}

func remove(list []core.BudgetSnapshot, id int64) []core.BudgetSnapshot {
	for i := range list {
		if list[i].ID == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// persist writes the mirror back. Failures are logged and swallowed.
func (s *BudgetStore) persist(ctx context.Context) {
	raw, err := json.Marshal(s.budgets)
	if err == nil {
		err = s.store.Set(ctx, storage.KeyBudgets, raw)
	}
	if err != nil {
		storeLogger(ctx).Error("Failed to persist budgets",
			applog.NewFields().WithError(err).WithErrorType(applog.ErrorTypeDatabase).
				WithOperation(applog.OpPersist).ToSlice()...)
	}
}

func storeLogger(ctx context.Context) *applog.Logger {
	return applog.FromContext(ctx).WithComponent(applog.ComponentStorage).
		With(applog.FieldStorageKey, storage.KeyBudgets)
}

// IsNotFound reports whether err means the budget does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}
