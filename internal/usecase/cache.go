package usecase

import (
	"context"
	"time"

	"jobboard/internal/infrastructure/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// recommendationInvalidator drops cached recommendation lists after writes
// that can change them. Cache errors are logged and never surface.
type recommendationInvalidator struct {
	cache  RecommendationCache
	logger *zap.Logger
}

func newRecommendationInvalidator(c RecommendationCache, logger *zap.Logger) recommendationInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return recommendationInvalidator{cache: c, logger: logger}
}

func (i recommendationInvalidator) forUser(ctx context.Context, userID uuid.UUID) {
	if i.cache == nil {
		return
	}
	if err := i.cache.Delete(ctx, cache.RecommendedJobsKey(userID)); err != nil {
		i.logger.Warn("recommendation cache invalidation failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func (i recommendationInvalidator) all(ctx context.Context) {
	if i.cache == nil {
		return
	}
	if err := i.cache.DeleteByPattern(ctx, cache.RecommendedJobsPattern()); err != nil {
		i.logger.Warn("recommendation cache invalidation failed", zap.Error(err))
	}
}
