package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecommendedJobsKey(t *testing.T) {
	id := uuid.MustParse("0b6f2c8e-2f7a-4b8e-9a43-0d6d2f1c5a10")
	assert.Equal(t, "jobs:recommended:0b6f2c8e-2f7a-4b8e-9a43-0d6d2f1c5a10", RecommendedJobsKey(id))
	assert.Equal(t, "jobs:recommended:*", RecommendedJobsPattern())
}

func TestRedis_UnavailableIsNoop(t *testing.T) {
	ctx := context.Background()
	var r *Redis

	var out map[string]string
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, r.SetJSON(ctx, "k", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.DeleteByPattern(ctx, "k*"))
	assert.NoError(t, r.Close())
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)

	ok, err := r.SetIfNotExists(ctx, "lock", "1", 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedis_InvalidURLBypasses(t *testing.T) {
	r := NewRedis("::not a url::", 0, nil)
	require.NotNil(t, r)
	assert.True(t, r.isUnavailable())
	assert.Equal(t, defaultTTL, r.ttl)
	assert.NotNil(t, r.logger)
}

func TestRedis_DegradeWarnsOnce(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := &Redis{logger: zap.New(core)}

	boom := errors.New("boom")
	assert.ErrorIs(t, r.degrade(boom), boom)
	assert.ErrorIs(t, r.degrade(boom), boom)
	assert.Equal(t, 1, logs.Len())
}
