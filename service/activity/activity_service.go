package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mergington.GO/core/cache"
	apperrors "mergington.GO/core/errors"
	"mergington.GO/core/events"
	"mergington.GO/core/metrics"
	"mergington.GO/model/entity"
	activityRepo "mergington.GO/model/repository/activity"
)

// CacheTag marks every cached rendering of the activity list.
const CacheTag = "activities"

// Service is the entry point transports use to read and change rosters.
type Service struct {
	repo     *activityRepo.ActivityRepository
	cache    *cache.Cache
	cacheTTL time.Duration
	events   events.Publisher
	log      *zap.Logger
	now      func() time.Time
}

type Option func(*Service)

// WithCache caches the encoded list for ttl. Without it ListJSON encodes on every call.
func WithCache(c *cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.events = p
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(repo *activityRepo.ActivityRepository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		events: events.NopPublisher{},
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, a := range repo.List().Ordered() {
		metrics.Participants.WithLabelValues(a.Name).Set(float64(len(a.Participants)))
	}
	return s
}

// Repository exposes the underlying registry for read-only helpers such as health checks.
func (s *Service) Repository() *activityRepo.ActivityRepository {
	return s.repo
}

// List returns a snapshot of every activity.
func (s *Service) List(ctx context.Context) entity.Catalog {
	return s.repo.List()
}

// Get returns one activity.
func (s *Service) Get(ctx context.Context, name string) (entity.Activity, error) {
	a, ok := s.repo.Get(name)
	if !ok {
		return entity.Activity{}, apperrors.NewActivityNotFoundError(name)
	}
	return a, nil
}

// ListJSON returns the encoded catalog. Cache keys include the registry version, so a
// rendering is never served after a later mutation.
func (s *Service) ListJSON(ctx context.Context) ([]byte, error) {
	key := cache.Key(CacheTag, "list", s.repo.Version())
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			return v.([]byte), nil
		}
	}
	body, err := json.Marshal(s.repo.List())
	if err != nil {
		return nil, fmt.Errorf("encode activities: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(key, body, s.cacheTTL, []string{CacheTag})
	}
	return body, nil
}

// Signup enrolls email in the named activity and returns a confirmation message. Emails
// are compared exactly as given.
func (s *Service) Signup(ctx context.Context, name, email string) (string, error) {
	n, err := s.repo.Signup(name, email)
	if err != nil {
		s.fail("signup", name, email, err)
		return "", err
	}
	metrics.SignupsTotal.WithLabelValues(name).Inc()
	s.changed(ctx, events.TypeSignup, name, email, n)
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Remove withdraws email from the named activity and returns a confirmation message.
func (s *Service) Remove(ctx context.Context, name, email string) (string, error) {
	n, err := s.repo.Remove(name, email)
	if err != nil {
		s.fail("remove", name, email, err)
		return "", err
	}
	metrics.RemovalsTotal.WithLabelValues(name).Inc()
	s.changed(ctx, events.TypeRemoval, name, email, n)
	return fmt.Sprintf("Removed %s from %s", email, name), nil
}

func (s *Service) changed(ctx context.Context, typ events.Type, name, email string, participants int) {
	metrics.Participants.WithLabelValues(name).Set(float64(participants))
	if s.cache != nil {
		s.cache.DeleteByTag(CacheTag)
	}
	s.log.Info("roster changed",
		zap.String("type", string(typ)),
		zap.String("activity", name),
		zap.String("email", email),
		zap.Int("participants", participants),
	)
	ev := events.Event{
		Type:         typ,
		Activity:     name,
		Email:        email,
		Participants: participants,
		Timestamp:    s.now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish roster event failed", zap.Error(err), zap.String("activity", name))
	}
}

func (s *Service) fail(op, name, email string, err error) {
	metrics.OperationFailures.WithLabelValues(op, string(apperrors.CodeOf(err))).Inc()
	s.log.Debug("roster operation rejected",
		zap.String("operation", op),
		zap.String("activity", name),
		zap.String("email", email),
		zap.Error(err),
	)
}
