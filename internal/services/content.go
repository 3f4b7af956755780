package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"argentvault/internal/core"
	applog "argentvault/internal/log"
)

// ErrContentUnavailable is returned when any part of the content could not
// be loaded. Its message is the one shown to users.
var ErrContentUnavailable = errors.New(core.ContentLoadFailed)

// ContentSource supplies the static content collections.
type ContentSource interface {
	Topics(ctx context.Context) ([]core.Topic, error)
	Tips(ctx context.Context) ([]core.ContentTip, error)
	Places(ctx context.Context) ([]core.Place, error)
}

type ContentService struct {
	source ContentSource
}

func NewContentService(source ContentSource) *ContentService {
	return &ContentService{source: source}
}

// Content loads topics and tips concurrently. Either both succeed or the
// call fails with ErrContentUnavailable.
func (s *ContentService) Content(ctx context.Context) (core.Content, error) {
	var out core.Content
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		topics, err := s.source.Topics(gctx)
		if err != nil {
			return fmt.Errorf("topics: %w", err)
		}
		out.Topics = topics
		return nil
	})
	g.Go(func() error {
		tips, err := s.source.Tips(gctx)
		if err != nil {
			return fmt.Errorf("tips: %w", err)
		}
		out.Tips = tips
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logFailure(ctx, err)
		return core.Content{}, fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}
	return out, nil
}

func (s *ContentService) Places(ctx context.Context) ([]core.Place, error) {
	places, err := s.source.Places(ctx)
	if err != nil {
		s.logFailure(ctx, fmt.Errorf("places: %w", err))
		return nil, fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}
	return places, nil
}

func (s *ContentService) logFailure(ctx context.Context, err error) {
	applog.FromContext(ctx).WithComponent(applog.ComponentContent).Error("Failed to load content",
		applog.FieldError, err, applog.FieldErrorType, applog.ErrorTypeInternal)
}
