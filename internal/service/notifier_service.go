package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/s-ao213/next-task-app/internal/models"
)

// NotifierServiceConfig tunes the change feed.
type NotifierServiceConfig struct {
	Enabled        bool
	ChannelPrefix  string
	ClientBuffer   int
	PublishTimeout time.Duration
}

// NotifierService fans out change envelopes over Redis pub/sub. Delivery is
// at-most-once per subscriber; consumers re-fetch on every envelope, so
// duplicates and reordering are harmless.
type NotifierService struct {
	client  *redis.Client
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
	cfg     NotifierServiceConfig
}

// NewNotifierService constructs the notifier.
func NewNotifierService(client *redis.Client, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg NotifierServiceConfig) *NotifierService {
	if cfg.ChannelPrefix == "" {
		cfg.ChannelPrefix = "changes:"
	}
	if cfg.ClientBuffer <= 0 {
		cfg.ClientBuffer = 16
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotifierService{
		client:  client,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		cfg:     cfg,
	}
}

// Enabled reports whether the feed is active.
func (s *NotifierService) Enabled() bool {
	return s != nil && s.cfg.Enabled && s.client != nil
}

// Announce publishes a change envelope for the collection and invalidates
// dashboard caches that could now be stale. Publish failures are logged, not
// surfaced: the write already happened and clients recover on next fetch.
func (s *NotifierService) Announce(ctx context.Context, collection string, op models.ChangeOp, id string) {
	if s == nil {
		return
	}
	if s.cache.Enabled() {
		if err := s.cache.Invalidate(ctx, "dash:*"); err != nil {
			s.logger.Warn("dashboard invalidation failed", zap.String("collection", collection), zap.Error(err))
		}
	}
	if !s.Enabled() {
		return
	}

	change := models.Change{
		Collection: collection,
		Op:         op,
		ID:         id,
		OccurredAt: s.now().UTC(),
	}
	payload, err := json.Marshal(change)
	if err != nil {
		s.logger.Error("change envelope marshal failed", zap.Error(err))
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.PublishTimeout)
	defer cancel()
	if err := s.client.Publish(pubCtx, s.cfg.ChannelPrefix+collection, payload).Err(); err != nil {
		s.logger.Warn("change publish failed",
			zap.String("collection", collection),
			zap.String("op", string(op)),
			zap.Error(err))
		return
	}
	s.metrics.RecordChange(collection, op)
}

// Subscribe returns a channel of change envelopes across all collections and
// a cancel function that releases the subscription. Slow consumers drop
// envelopes rather than block the fan-out.
func (s *NotifierService) Subscribe(ctx context.Context) (<-chan models.Change, func()) {
	out := make(chan models.Change, s.cfg.ClientBuffer)
	if !s.Enabled() {
		close(out)
		return out, func() {}
	}

	pubsub := s.client.PSubscribe(ctx, s.cfg.ChannelPrefix+"*")
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var change models.Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				s.logger.Warn("malformed change envelope", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			select {
			case out <- change:
			default:
				s.logger.Debug("change dropped for slow subscriber", zap.String("collection", change.Collection))
			}
		}
	}()

	return out, func() {
		if err := pubsub.Close(); err != nil {
			s.logger.Warn("pubsub close failed", zap.Error(err))
		}
	}
}
