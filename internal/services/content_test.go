package services

import (
	"context"
	"errors"
	"testing"

	"argentvault/internal/core"
)

type stubContent struct {
	topicsErr, tipsErr error
}

func (s stubContent) Topics(context.Context) ([]core.Topic, error) {
	if s.topicsErr != nil {
		return nil, s.topicsErr
	}
	return []core.Topic{{Title: "Budgeting 101", Minutes: 5}}, nil
}

func (s stubContent) Tips(context.Context) ([]core.ContentTip, error) {
	if s.tipsErr != nil {
		return nil, s.tipsErr
	}
	return []core.ContentTip{{Title: "Track spending"}}, nil
}

func (s stubContent) Places(context.Context) ([]core.Place, error) {
	return []core.Place{{Name: "Freedom Park"}}, nil
}

func TestContentLoadsBoth(t *testing.T) {
	got, err := NewContentService(stubContent{}).Content(context.Background())
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if len(got.Topics) != 1 || len(got.Tips) != 1 {
		t.Fatalf("unexpected content %+v", got)
	}
}

func TestContentFailureIsExplicit(t *testing.T) {
	cases := map[string]stubContent{
		"topics": {topicsErr: errors.New("missing file")},
		"tips":   {tipsErr: errors.New("bad json")},
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := NewContentService(src).Content(context.Background())
			if !errors.Is(err, ErrContentUnavailable) {
				t.Fatalf("expected ErrContentUnavailable, got %v", err)
			}
			if len(got.Topics) != 0 || len(got.Tips) != 0 {
				t.Fatal("partial content must not be returned")
			}
		})
	}
}

func TestContentPlaces(t *testing.T) {
	places, err := NewContentService(stubContent{}).Places(context.Background())
	if err != nil || len(places) != 1 {
		t.Fatalf("places: %v %v", places, err)
	}
}
