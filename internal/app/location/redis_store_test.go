//go:build integration

package location

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/light-bringer/pricing-service/internal/pkg/locale"
	"github.com/light-bringer/pricing-service/internal/pkg/redisclient"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := redisclient.New(ctx, addr, "", 0, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer rdb.Close()

	s := NewRedisStore(rdb)
	key := "test-" + time.Now().Format("150405.000000000")
	defer rdb.Del(ctx, redisKeyPrefix+key)

	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotCached)

	loc := NewUserLocation("BH", "", locale.English, time.Now())
	require.NoError(t, s.Set(ctx, key, loc, time.Minute))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "BHD", got.Currency)
	assert.True(t, loc.DetectedAt.Equal(got.DetectedAt))

	ttl, err := rdb.TTL(ctx, redisKeyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
}
