// Package session keeps in-flight selections in memory between HTTP events.
// Selections are never persisted; an idle selection expires after the
// configured TTL.
package session

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"veriadmin/internal/formbind"
	"veriadmin/internal/location/cascade"
	"veriadmin/internal/location/metrics"
	id "veriadmin/pkg/domain"
	"veriadmin/pkg/platform/sentinel"
)

// DefaultTTL is how long an untouched selection stays available.
const DefaultTTL = 30 * time.Minute

// Session is one form's selection plus who opened it and for which form.
type Session struct {
	Controller     *cascade.Controller
	Profile        formbind.Profile
	OwnerID        id.UserID
	OrganizationID id.OrganizationID
	CreatedAt      time.Time
}

func (s *Session) ID() id.SelectionID {
	return s.Controller.ID()
}

// Store is a TTL cache of sessions keyed by selection ID. Every successful
// Get renews the TTL.
type Store struct {
	cache   *gocache.Cache
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New creates a store whose entries expire after ttl of inactivity.
func New(ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = gocache.New(ttl, cleanupInterval(ttl))
	s.cache.OnEvicted(s.evicted)
	return s
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl < 2*time.Minute {
		return ttl / 2
	}
	return time.Minute
}

func (s *Store) Put(_ context.Context, sess *Session) error {
	key := sess.ID().String()
	if err := s.cache.Add(key, sess, s.ttl); err != nil {
		return sentinel.ErrConflict
	}
	s.metrics.SessionOpened()
	return nil
}

// Get returns the session and renews its TTL.
func (s *Store) Get(_ context.Context, selID id.SelectionID) (*Session, error) {
	key := selID.String()
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	sess := v.(*Session)
	// Replace renews the TTL only while the key exists, so a concurrent
	// Delete is not undone.
	if err := s.cache.Replace(key, sess, s.ttl); err != nil {
		return nil, sentinel.ErrNotFound
	}
	return sess, nil
}

// Delete removes the session. Deleting an unknown ID is not an error.
func (s *Store) Delete(_ context.Context, selID id.SelectionID) {
	s.cache.Delete(selID.String())
}

func (s *Store) Count() int {
	return s.cache.ItemCount()
}

// evicted runs for both deletes and expiries. A selection that is still
// active when it leaves the cache has expired.
func (s *Store) evicted(key string, v any) {
	sess, ok := v.(*Session)
	if !ok {
		return
	}
	outcome := string(sess.Controller.Status())
	if !sess.Controller.Status().IsTerminal() {
		outcome = "expired"
		s.logger.Info("selection expired", "selection_id", key, "profile", sess.Profile.Name)
	}
	s.metrics.SessionClosed(outcome)
}
