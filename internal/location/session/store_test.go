package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"veriadmin/internal/formbind"
	"veriadmin/internal/geography"
	"veriadmin/internal/location/cascade"
	"veriadmin/internal/location/metrics"
	id "veriadmin/pkg/domain"
	"veriadmin/pkg/platform/sentinel"
)

type StoreSuite struct {
	suite.Suite
	metrics *metrics.Metrics
	store   *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.store = New(time.Minute, WithMetrics(s.metrics))
}

func newSession() *Session {
	return &Session{
		Controller: cascade.New(geography.NewBundled()),
		Profile:    formbind.LocationRecord(),
		CreatedAt:  time.Now(),
	}
}

func (s *StoreSuite) TestPutAndGet() {
	ctx := context.Background()
	sess := newSession()
	s.Require().NoError(s.store.Put(ctx, sess))

	got, err := s.store.Get(ctx, sess.ID())
	s.Require().NoError(err)
	s.Same(sess, got)
	s.Equal(1, s.store.Count())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ActiveSelections))
}

func (s *StoreSuite) TestDuplicatePutConflicts() {
	ctx := context.Background()
	sess := newSession()
	s.Require().NoError(s.store.Put(ctx, sess))
	s.ErrorIs(s.store.Put(ctx, sess), sentinel.ErrConflict)
}

func (s *StoreSuite) TestMissingIsNotFound() {
	_, err := s.store.Get(context.Background(), id.NewSelectionID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestDeleteRecordsOutcome() {
	ctx := context.Background()
	sess := newSession()
	s.Require().NoError(s.store.Put(ctx, sess))
	s.Require().NoError(sess.Controller.Discard())

	s.store.Delete(ctx, sess.ID())
	_, err := s.store.Get(ctx, sess.ID())
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.Equal(0.0, testutil.ToFloat64(s.metrics.ActiveSelections))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Finished.WithLabelValues("discarded")))
}

func (s *StoreSuite) TestIdleSessionsExpire() {
	store := New(40*time.Millisecond, WithMetrics(s.metrics))
	sess := newSession()
	s.Require().NoError(store.Put(context.Background(), sess))

	s.Eventually(func() bool {
		return testutil.ToFloat64(s.metrics.Finished.WithLabelValues("expired")) == 1
	}, time.Second, 10*time.Millisecond)
	_, err := store.Get(context.Background(), sess.ID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestGetRenewsIdleTimeout() {
	store := New(80*time.Millisecond, WithMetrics(s.metrics))
	sess := newSession()
	s.Require().NoError(store.Put(context.Background(), sess))

	for range 4 {
		time.Sleep(40 * time.Millisecond)
		_, err := store.Get(context.Background(), sess.ID())
		s.Require().NoError(err)
	}
}

func (s *StoreSuite) TestDeleteWinsOverConcurrentGet() {
	ctx := context.Background()
	for range 200 {
		sess := newSession()
		s.Require().NoError(s.store.Put(ctx, sess))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.store.Get(ctx, sess.ID())
		}()
		go func() {
			defer wg.Done()
			s.store.Delete(ctx, sess.ID())
		}()
		wg.Wait()

		_, err := s.store.Get(ctx, sess.ID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	}
	s.Equal(0, s.store.Count())
}
