// Package idempotency guarda en Redis la respuesta de la primera creación de pedido por llave.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/lacteos-api/internal/application/orders"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/pkg/config"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

const (
	lockPrefix = "lock:"
	// lockTTL cota de lo que puede tardar la creación de un pedido.
	lockTTL = 30 * time.Second
)

var _ orders.IdempotencyStore = (*Store)(nil)

// Store implementación de orders.IdempotencyStore sobre go-redis + redislock.
// Las llaves llegan ya construidas por orders.IdempotencyKey.
type Store struct {
	rdb    *redis.Client
	locker *redislock.Client
	ttl    time.Duration
	log    *logger.Logger
}

// Connect abre el cliente y verifica la conexión con PING.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	return rdb, nil
}

// NewStore ttl <= 0 usa 24h.
func NewStore(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{rdb: rdb, locker: redislock.New(rdb), ttl: ttl, log: log.Component("idempotency")}
}

// Lock sin reintentos: una segunda petición con la misma llave recibe ErrIdempotencyInFlight.
func (s *Store) Lock(ctx context.Context, key string) (func(), error) {
	lock, err := s.locker.Obtain(ctx, lockPrefix+key, lockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrIdempotencyInFlight
	}
	if err != nil {
		return nil, fmt.Errorf("obtener lock de idempotencia: %w", err)
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			s.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el lock de idempotencia")
		}
	}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("leer llave de idempotencia: %w", err)
	}
	return val, true, nil
}

func (s *Store) Save(ctx context.Context, key string, payload []byte) error {
	if err := s.rdb.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("guardar llave de idempotencia: %w", err)
	}
	return nil
}
