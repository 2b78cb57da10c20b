package service

import (
	"context"
	"errors"
	"github.com/rookgm/orderfeed/internal/feed"
	"github.com/rookgm/orderfeed/internal/logger"
	"github.com/rookgm/orderfeed/internal/models"
	"github.com/rookgm/orderfeed/internal/push"
	"go.uber.org/zap"
	"sync"
	"sync/atomic"
	"time"
)

//go:generate mockgen -source=feed.go -destination=mocks/mock_feed.go -package=mocks

// Backend is interface for interacting with backend order endpoints
type Backend interface {
	// FetchSnapshot returns full order list
	FetchSnapshot(ctx context.Context) ([]models.Order, error)
	// UpdateStatus changes order status
	UpdateStatus(ctx context.Context, id string, status models.Status) error
}

// Notifier is told about every order that entered the working set from push
type Notifier interface {
	NewOrder(ctx context.Context, order models.Order) error
}

// CredentialInvalidator clears backend credentials
type CredentialInvalidator interface {
	Invalidate()
}

// Recorder observes feed results
type Recorder interface {
	FetchResult(err error)
	Ingested(outcome models.InsertOutcome)
}

type nopRecorder struct{}

func (nopRecorder) FetchResult(error)             {}
func (nopRecorder) Ingested(models.InsertOutcome) {}

type nopCredentials struct{}

func (nopCredentials) Invalidate() {}

// Stats describes feed activity
type Stats struct {
	LastRefresh     time.Time `json:"lastRefresh"`
	LastError       string    `json:"lastError,omitempty"`
	LastErrorKind   string    `json:"lastErrorKind,omitempty"`
	Refreshes       uint64    `json:"refreshes"`
	FailedRefreshes uint64    `json:"failedRefreshes"`
	StaleSnapshots  uint64    `json:"staleSnapshots"`
	Inserted        uint64    `json:"inserted"`
	Ignored         uint64    `json:"ignored"`
	Orders          int       `json:"orders"`
}

// FeedService merges backend snapshots and pushed orders into one working set
type FeedService struct {
	backend   Backend
	rec       *feed.Reconciler
	creds     CredentialInvalidator
	notifiers []Notifier
	recorder  Recorder

	// seq is sequence token of the latest started refresh
	seq atomic.Uint64

	mu sync.Mutex
	// resolved is sequence token of the latest refresh that produced a result
	resolved uint64
	stats    Stats
}

// Option configures FeedService
type Option func(*FeedService)

// WithCredentials sets credentials invalidated on Unauthorized
func WithCredentials(c CredentialInvalidator) Option {
	return func(s *FeedService) { s.creds = c }
}

// WithNotifiers adds new order notifiers
func WithNotifiers(n ...Notifier) Option {
	return func(s *FeedService) { s.notifiers = append(s.notifiers, n...) }
}

// WithRecorder sets metrics recorder
func WithRecorder(r Recorder) Option {
	return func(s *FeedService) { s.recorder = r }
}

// NewFeedService creates new FeedService instance
func NewFeedService(backend Backend, rec *feed.Reconciler, opts ...Option) *FeedService {
	s := &FeedService{
		backend:  backend,
		rec:      rec,
		creds:    nopCredentials{},
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh fetches snapshot and replaces the working set with it.
// On failure the working set is left untouched. A result, successful or not,
// is discarded with models.ErrStaleSnapshot once a later refresh has resolved.
func (s *FeedService) Refresh(ctx context.Context) ([]models.Order, error) {
	seq := s.seq.Add(1)

	orders, err := s.backend.FetchSnapshot(ctx)
	s.recorder.FetchResult(err)

	s.mu.Lock()
	if seq <= s.resolved {
		s.stats.StaleSnapshots++
		s.mu.Unlock()
		logger.Log.Debug("stale snapshot discarded", zap.Uint64("seq", seq), zap.Error(err))
		return nil, models.ErrStaleSnapshot
	}
	s.resolved = seq

	if err != nil {
		kind := models.KindOf(err)
		s.stats.FailedRefreshes++
		s.stats.LastError = err.Error()
		s.stats.LastErrorKind = kind.String()
		s.mu.Unlock()

		s.refreshFailed(err, kind)
		return nil, err
	}

	s.rec.ReplaceAll(orders)
	s.stats.LastRefresh = time.Now()
	s.stats.Refreshes++
	s.stats.LastError = ""
	s.stats.LastErrorKind = ""
	s.mu.Unlock()

	logger.Log.Debug("snapshot applied", zap.Uint64("seq", seq), zap.Int("orders", len(orders)))

	return s.rec.CurrentView(), nil
}

func (s *FeedService) refreshFailed(err error, kind models.FetchErrorKind) {
	if kind == models.KindUnauthorized {
		logger.Log.Error("snapshot fetch unauthorized", zap.Error(err))
		s.creds.Invalidate()
		return
	}
	logger.Log.Warn("snapshot fetch failed, keeping current orders", zap.Error(err), zap.String("kind", kind.String()))
}

// Ingest applies single pushed order
func (s *FeedService) Ingest(ctx context.Context, order models.Order) models.InsertOutcome {
	outcome := s.rec.IngestOne(order)
	s.recorder.Ingested(outcome)

	s.mu.Lock()
	if outcome == models.Inserted {
		s.stats.Inserted++
	} else {
		s.stats.Ignored++
	}
	s.mu.Unlock()

	if outcome != models.Inserted {
		logger.Log.Debug("pushed order already known", zap.String("id", order.ID))
		return outcome
	}

	for _, n := range s.notifiers {
		if err := n.NewOrder(ctx, order); err != nil {
			logger.Log.Error("new order notification failed", zap.String("id", order.ID), zap.Error(err))
		}
	}

	return outcome
}

// ConsumePush ingests pushed messages in arrival order until msgs is closed or ctx is done
func (s *FeedService) ConsumePush(ctx context.Context, msgs <-chan push.Message) {
	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("push consumer is done")
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Log.Debug("push channel closed")
				return
			}
			s.Ingest(ctx, msg.Order)
		}
	}
}

// UpdateStatus changes order status on backend and resyncs the working set
func (s *FeedService) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	if err := s.backend.UpdateStatus(ctx, id, status); err != nil {
		if models.KindOf(err) == models.KindUnauthorized {
			s.creds.Invalidate()
		}
		return err
	}

	_, err := s.Refresh(ctx)
	if errors.Is(err, models.ErrStaleSnapshot) {
		// a newer snapshot is already in place
		return nil
	}
	return err
}

// View returns current sorted working set
func (s *FeedService) View() []models.Order {
	return s.rec.CurrentView()
}

// Stats returns feed activity counters
func (s *FeedService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	st.Orders = s.rec.Len()
	return st
}
