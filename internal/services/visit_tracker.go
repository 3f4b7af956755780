package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"argentvault/internal/core"
	applog "argentvault/internal/log"
	"argentvault/internal/storage"
)

// VisitTracker counts page loads per visitor.
type VisitTracker struct {
	store storage.Store
	now   func() time.Time
	mu    sync.Mutex
}

func NewVisitTracker(store storage.Store) *VisitTracker {
	return &VisitTracker{store: store, now: time.Now}
}

// Record registers one visit. An unreadable record counts as a first
// visit but is left in place, and a failed write still returns the
// computed outcome.
func (t *VisitTracker) Record(ctx context.Context, visitorID string) core.VisitOutcome {
	key := storage.VisitKey(visitorID)
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentVisit).
		With(applog.FieldStorageKey, key)

	t.mu.Lock()
	defer t.mu.Unlock()

	var prev *core.VisitRecord
	raw, ok, err := t.store.Get(ctx, key)
	switch {
	case err != nil:
		logger.Error("Failed to read visit record",
			applog.FieldError, err, applog.FieldErrorType, applog.ErrorTypeDatabase)
	case ok:
		var rec core.VisitRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			logger.Warn("Ignoring corrupt visit record",
				applog.FieldError, err, applog.FieldErrorType, applog.ErrorTypeParsing)
		} else {
			prev = &rec
		}
	}

	outcome := core.NextVisit(prev, t.now())
	if err != nil {
		return outcome
	}

	raw, err = json.Marshal(outcome.Record)
	if err == nil {
		err = t.store.Set(ctx, key, raw)
	}
	if err != nil {
		logger.Error("Failed to persist visit record",
			applog.NewFields().WithError(err).WithErrorType(applog.ErrorTypeDatabase).
				WithOperation(applog.OpPersist).ToSlice()...)
	}

	logger.Info("Visit recorded",
		applog.NewFields().WithVisit(visitorID, string(outcome.State), outcome.Record.VisitCount).ToSlice()...)
	return outcome
}
