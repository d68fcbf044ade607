package idempotency_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/orders"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/idempotency"
	"github.com/jhoicas/lacteos-api/pkg/config"
)

// redisClient conecta al Redis de REDIS_ADDRESS; sin él la prueba se omite.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rdb, err := idempotency.Connect(ctx, config.RedisConfig{Address: addr, Password: os.Getenv("REDIS_PASSWORD")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func testKey(t *testing.T, rdb *redis.Client) string {
	t.Helper()
	key := orders.IdempotencyKey("u-test", uuid.New().String())
	t.Cleanup(func() { rdb.Del(context.Background(), key, "lock:"+key) })
	return key
}

func TestStore_GetSinRespuestaGuardada(t *testing.T) {
	rdb := redisClient(t)
	store := idempotency.NewStore(rdb, time.Minute, nil)
	key := testKey(t, rdb)

	payload, found, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, payload)
}

func TestStore_GuardaYRepiteConTTL(t *testing.T) {
	rdb := redisClient(t)
	store := idempotency.NewStore(rdb, time.Minute, nil)
	key := testKey(t, rdb)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, key, []byte(`{"id":"o-1"}`)))

	payload, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"id":"o-1"}`, string(payload))

	ttl, err := rdb.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestStore_LockEnCursoYLiberacion(t *testing.T) {
	rdb := redisClient(t)
	store := idempotency.NewStore(rdb, time.Minute, nil)
	key := testKey(t, rdb)
	ctx := context.Background()

	release, err := store.Lock(ctx, key)
	require.NoError(t, err)

	_, err = store.Lock(ctx, key)
	assert.ErrorIs(t, err, domain.ErrIdempotencyInFlight)

	release()
	release() // liberar dos veces no falla

	again, err := store.Lock(ctx, key)
	require.NoError(t, err)
	again()
}
