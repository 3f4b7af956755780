package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"argentvault/internal/core"
	applog "argentvault/internal/log"
	"argentvault/internal/storage"
)

// NewsletterService validates and stores subscriptions, keeping only the
// most recent ones.
type NewsletterService struct {
	store    storage.Store
	validate *validator.Validate
	limit    int
	now      func() time.Time
	newID    func() string

	mu sync.Mutex
}

// NewNewsletterService creates the service. A non-positive limit falls back
// to core.DefaultMaxSubscriptions.
func NewNewsletterService(store storage.Store, limit int) *NewsletterService {
	if limit <= 0 {
		limit = core.DefaultMaxSubscriptions
	}
	return &NewsletterService{
		store:    store,
		validate: core.NewValidator(),
		limit:    limit,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Subscribe validates req and stores it. Invalid requests return a
// *core.ValidationError and nothing is saved.
func (s *NewsletterService) Subscribe(ctx context.Context, req core.SubscriptionRequest) (core.Subscription, error) {
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentNewsletter)

	req = req.Normalize()
	if err := req.Validate(s.validate); err != nil {
		logger.Info("Subscription rejected",
			applog.FieldOperation, applog.OpValidate, applog.FieldErrorType, applog.ErrorTypeValidation, applog.FieldError, err)
		return core.Subscription{}, err
	}

	sub := core.Subscription{
		ID:        s.newID(),
		Name:      req.Name,
		Email:     req.Email,
		Interest:  req.Interest,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subs, readable := s.load(ctx, logger)
	if !readable {
		logger.Warn("Subscription accepted but not persisted, stored list is unreadable",
			applog.FieldSubscriptionID, sub.ID, applog.FieldOperation, applog.OpPersist)
		return sub, nil
	}
	subs = core.AppendCapped(subs, sub, s.limit)
	raw, err := json.Marshal(subs)
	if err == nil {
		err = s.store.Set(ctx, storage.KeySubscriptions, raw)
	}
	if err != nil {
		logger.Error("Failed to persist subscriptions",
			applog.NewFields().WithError(err).WithErrorType(applog.ErrorTypeDatabase).
				WithOperation(applog.OpPersist).ToSlice()...)
	}

	logger.Info("Subscription stored",
		applog.FieldSubscriptionID, sub.ID, applog.FieldInterest, sub.Interest, "retained", len(subs))
	return sub, nil
}

// Subscriptions returns the retained subscriptions, oldest first.
func (s *NewsletterService) Subscriptions(ctx context.Context) []core.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs, _ := s.load(ctx, applog.FromContext(ctx).WithComponent(applog.ComponentNewsletter))
	return subs
}

// load reads the stored list. readable is false only when the backend read
// failed, in which case the stored list must not be overwritten.
func (s *NewsletterService) load(ctx context.Context, logger *applog.Logger) (subs []core.Subscription, readable bool) {
	raw, ok, err := s.store.Get(ctx, storage.KeySubscriptions)
	if err != nil {
		logger.Error("Failed to read subscriptions",
			applog.FieldError, err, applog.FieldErrorType, applog.ErrorTypeDatabase)
		return nil, false
	}
	if !ok {
		return nil, true
	}
	if err := json.Unmarshal(raw, &subs); err != nil {
		logger.Warn("Ignoring corrupt subscription list",
			applog.FieldError, err, applog.FieldErrorType, applog.ErrorTypeParsing)
		return nil, true
	}
	return subs, true
}
