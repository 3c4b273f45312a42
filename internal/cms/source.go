// Package cms fetches raw practice and category records from the headless
// CMS, falling back to a local snapshot file when the CMS is unreachable.
// Records are returned untouched; shape normalization happens in strapi.
package cms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"practicehub/internal/logger"
)

var (
	// ErrNotFound is returned when a collection or file does not exist.
	ErrNotFound = errors.New("cms: not found")
	// ErrUnavailable is returned when no source could produce a snapshot.
	ErrUnavailable = errors.New("cms: no source available")
)

// Snapshot is one consistent fetch of both lists.
type Snapshot struct {
	Practices  []any
	Categories []any
	Source     string
	FetchedAt  time.Time
}

// Source is implemented by every place catalog data can come from.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (Snapshot, error)
}

// FallbackSource tries each source in order and returns the first success.
// One broken source does not fail the fetch.
type FallbackSource struct {
	Sources []Source
	Log     *logger.Logger
}

// NewFallbackSource skips nil sources.
func NewFallbackSource(log *logger.Logger, sources ...Source) *FallbackSource {
	if log == nil {
		log = logger.Nop()
	}
	fs := &FallbackSource{Log: log}
	for _, s := range sources {
		if s != nil {
			fs.Sources = append(fs.Sources, s)
		}
	}
	return fs
}

func (f *FallbackSource) Name() string { return "fallback" }

func (f *FallbackSource) Fetch(ctx context.Context) (Snapshot, error) {
	var errs []error
	for _, src := range f.Sources {
		snap, err := src.Fetch(ctx)
		if err == nil {
			if snap.Source == "" {
				snap.Source = src.Name()
			}
			return snap, nil
		}
		f.Log.Warn("cms source failed", "source", src.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return Snapshot{}, ErrUnavailable
	}
	return Snapshot{}, fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}
