package practice

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"practicehub/internal/catalog"
	"practicehub/internal/cms"
	"practicehub/internal/logger"
	synchub "practicehub/internal/sync"
	"practicehub/pkg/models"
)

// ErrNotFound is returned when a practice slug is unknown.
var ErrNotFound = errors.New("practice: not found")

// Broadcaster receives refresh events; *sync.Hub implements it.
type Broadcaster interface {
	BroadcastJSON(v any)
}

// Service owns the current catalog snapshot. It reloads from the source
// when the snapshot is older than TTL and coalesces concurrent reloads.
type Service struct {
	source cms.Source
	memo   *catalog.Memo
	ttl    time.Duration
	log    *logger.Logger
	events Broadcaster
	now    func() time.Time

	group singleflight.Group
	seq   atomic.Uint64 // issued to each fetch before it starts

	commitMu  sync.Mutex // orders memo rebuilds and commits
	committed uint64

	mu       sync.RWMutex
	current  *catalog.Index
	origin   string
	loadedAt time.Time
}

// NewService wires a snapshot service. events may be nil.
func NewService(source cms.Source, opts catalog.Options, ttl time.Duration, events Broadcaster, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		source: source,
		memo:   catalog.NewMemo(opts),
		ttl:    ttl,
		log:    log,
		events: events,
		now:    time.Now,
	}
}

// Index returns the current snapshot, loading it first when missing or stale.
// A stale snapshot is still served if the reload fails.
func (s *Service) Index(ctx context.Context) (*catalog.Index, error) {
	s.mu.RLock()
	idx, loadedAt := s.current, s.loadedAt
	s.mu.RUnlock()
	if idx != nil && s.now().Sub(loadedAt) < s.ttl {
		return idx, nil
	}

	fresh, _, err := s.load(ctx, false)
	if err != nil {
		if idx != nil {
			s.log.Warn("catalog reload failed, serving stale snapshot", "error", err)
			return idx, nil
		}
		return nil, err
	}
	return fresh, nil
}

// Revalidate forces a reload and reports whether the snapshot changed.
func (s *Service) Revalidate(ctx context.Context) (*catalog.Index, bool, error) {
	s.group.Forget("load")
	return s.load(ctx, true)
}

// Practice looks up one practice by slug.
func (s *Service) Practice(ctx context.Context, slug string) (models.NormalizedPractice, error) {
	idx, err := s.Index(ctx)
	if err != nil {
		return models.NormalizedPractice{}, err
	}
	p, ok := idx.BySlug(slug)
	if !ok {
		return models.NormalizedPractice{}, ErrNotFound
	}
	return p, nil
}

// Ready reports whether a snapshot has been loaded.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Source reports where the current snapshot came from.
func (s *Service) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origin
}

type loadResult struct {
	idx     *catalog.Index
	changed bool
}

func (s *Service) load(ctx context.Context, force bool) (*catalog.Index, bool, error) {
	v, err, _ := s.group.Do("load", func() (any, error) {
		if !force {
			// another caller may have finished a load since we looked
			s.mu.RLock()
			idx, loadedAt := s.current, s.loadedAt
			s.mu.RUnlock()
			if idx != nil && s.now().Sub(loadedAt) < s.ttl {
				return loadResult{idx: idx}, nil
			}
		}
		n := s.seq.Add(1)
		// a cancelled first caller must not fail everyone waiting on it
		snap, err := s.source.Fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		return s.commit(n, snap), nil
	})
	if err != nil {
		return nil, false, err
	}
	res := v.(loadResult)
	return res.idx, res.changed, nil
}

// commit installs the snapshot fetched by load n. A load that started
// before the last committed one is dropped so a revalidation is never
// overwritten by data fetched earlier.
func (s *Service) commit(n uint64, snap cms.Snapshot) loadResult {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	if n <= s.committed {
		s.mu.RLock()
		defer s.mu.RUnlock()
		s.log.Debug("discarding superseded catalog load", "load", n, "committed", s.committed)
		return loadResult{idx: s.current}
	}
	s.committed = n

	idx, rebuilt := s.memo.Get(snap.Practices, snap.Categories)

	s.mu.Lock()
	s.current = idx
	s.origin = snap.Source
	s.loadedAt = s.now()
	s.mu.Unlock()

	if rebuilt {
		fp := strconv.FormatUint(s.memo.Fingerprint(), 16)
		s.log.Info("catalog rebuilt",
			"source", snap.Source,
			"practices", len(idx.Practices),
			"categories", len(idx.Cats),
			"fingerprint", fp,
		)
		if s.events != nil {
			s.events.BroadcastJSON(synchub.CatalogEvent{
				ID:          uuid.NewString(),
				Type:        synchub.EventCatalogRefreshed,
				Fingerprint: fp,
				Source:      snap.Source,
				Practices:   len(idx.Practices),
				Categories:  len(idx.Cats),
				At:          s.now().UTC(),
			})
		}
	}
	return loadResult{idx: idx, changed: rebuilt}
}
