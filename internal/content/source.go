// Package content reads the static content collections from a file system.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"

	"argentvault/internal/core"
)

// File names inside the source file system.
const (
	TopicsFile = "data/topics.json"
	TipsFile   = "data/tips.json"
	PlacesFile = "data/places.json"
)

// FSSource decodes content from JSON files. It is usually backed by the
// embedded web.DataFS.
type FSSource struct {
	fsys fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Topics(ctx context.Context) ([]core.Topic, error) {
	var out []core.Topic
	return out, s.decode(ctx, TopicsFile, &out)
}

func (s *FSSource) Tips(ctx context.Context) ([]core.ContentTip, error) {
	var out []core.ContentTip
	return out, s.decode(ctx, TipsFile, &out)
}

func (s *FSSource) Places(ctx context.Context) ([]core.Place, error) {
	var out []core.Place
	return out, s.decode(ctx, PlacesFile, &out)
}

func (s *FSSource) decode(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
