package server

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"palette-studio/internal/colorspace"
	"palette-studio/internal/palette"
	"palette-studio/internal/ui"
)

// ErrStoreFull is returned by Create when the store is at capacity.
var ErrStoreFull = errors.New("session store full")

// studioEntry serializes access to one session's studio.
type studioEntry struct {
	mu       sync.Mutex
	studio   *palette.Studio
	lastSeen time.Time
}

// With runs fn while holding the entry lock.
func (e *studioEntry) With(fn func(*palette.Studio)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.studio)
}

// StudioStore keeps one Studio per browser session in memory. Idle studios
// expire after ttl.
type StudioStore struct {
	mu      sync.Mutex
	entries map[string]*studioEntry
	base    colorspace.Color
	ttl     time.Duration
	limit   int
	opts    []palette.StudioOption

	now   func() time.Time
	newID func() string
}

// NewStudioStore creates a store whose studios start from base.
func NewStudioStore(base colorspace.Color, ttl time.Duration, limit int, opts ...palette.StudioOption) *StudioStore {
	return &StudioStore{
		entries: make(map[string]*studioEntry),
		base:    base,
		ttl:     ttl,
		limit:   limit,
		opts:    opts,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Get returns the entry for id and marks it as used.
func (s *StudioStore) Get(id string) (*studioEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.lastSeen) > s.ttl {
		s.remove(id)
		return nil, false
	}
	e.lastSeen = s.now()
	return e, true
}

// Create allocates a new studio and returns its id.
func (s *StudioStore) Create() (string, *studioEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.limit {
		s.sweepLocked()
		if len(s.entries) >= s.limit {
			MetricSessionsRejected.Inc()
			return "", nil, errors.Wrapf(ErrStoreFull, "%d sessions", s.limit)
		}
	}

	id := s.newID()
	e := &studioEntry{
		studio:   palette.NewStudio(s.base, s.opts...),
		lastSeen: s.now(),
	}
	s.entries[id] = e
	MetricActiveSessions.Inc()
	ui.LogSession("create", id)
	return id, e, nil
}

// Len returns the number of live studios.
func (s *StudioStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops expired studios and returns how many were removed.
func (s *StudioStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *StudioStore) sweepLocked() int {
	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			s.remove(id)
			removed++
		}
	}
	return removed
}

func (s *StudioStore) remove(id string) {
	delete(s.entries, id)
	MetricActiveSessions.Dec()
	ui.LogSession("expire", id)
}

// Run sweeps periodically until ctx is cancelled.
func (s *StudioStore) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				ui.LogStatus("debug", "Expired "+strconv.Itoa(n)+" idle sessions")
			}
		}
	}
}
