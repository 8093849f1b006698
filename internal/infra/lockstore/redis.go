package lockstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mesa-reservations/internal/infra"
	"mesa-reservations/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Value stored while the key is LOCKED. Once confirmed, the value is the
// reservation id, so a single GET distinguishes the two states.
const lockedSentinel = "__locked__"

const keyPrefix = "idempotency:"

// acquireScript makes check-and-lock a single atomic step: either we set the
// key (acquired) or we read back whatever state it is in. Concurrent callers
// for the same key therefore see exactly one acquisition.
var acquireScript = redis.NewScript(`
local ok = redis.call('set', KEYS[1], ARGV[1], 'NX', 'PX', ARGV[2])
if ok then
  return {1, ''}
end
return {0, redis.call('get', KEYS[1])}
`)

// RedisLockStore keeps idempotency-key state in Redis with native key
// expiry, so entries vanish on their own and acquire stays O(1).
type RedisLockStore struct {
	client    *redis.Client
	ttl       time.Duration
	opTimeout time.Duration
}

func NewRedisLockStore(client *redis.Client, ttl, opTimeout time.Duration) *RedisLockStore {
	return &RedisLockStore{
		client:    client,
		ttl:       ttl,
		opTimeout: opTimeout,
	}
}

func (s *RedisLockStore) TryAcquire(ctx context.Context, key string) (commands.AcquireResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	raw, err := acquireScript.Run(ctx, s.client, []string{s.redisKey(key)}, lockedSentinel, s.ttl.Milliseconds()).Result()
	if err != nil {
		return commands.AcquireResult{}, infra.WrapRepoErr("failed to acquire idempotency lock", err, infra.KindUnavailable)
	}

	reply, ok := raw.([]any)
	if !ok || len(reply) != 2 {
		return commands.AcquireResult{}, infra.WrapRepoErr("unexpected acquire script reply", nil, infra.KindUnavailable)
	}

	acquired, _ := reply[0].(int64)
	if acquired == 1 {
		return commands.AcquireResult{Acquired: true}, nil
	}

	value, _ := reply[1].(string)
	if value == lockedSentinel || value == "" {
		// Another holder is still writing; no result to hand back yet.
		return commands.AcquireResult{Acquired: false}, nil
	}

	reservationID, err := uuid.Parse(value)
	if err != nil {
		slog.Warn("idempotency entry holds malformed reservation id",
			slog.String("key", key), slog.String("value", value))
		return commands.AcquireResult{Acquired: false}, nil
	}

	return commands.AcquireResult{Acquired: false, ExistingReservationID: &reservationID}, nil
}

func (s *RedisLockStore) Confirm(ctx context.Context, key string, reservationID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	err := s.client.SetArgs(ctx, s.redisKey(key), reservationID.String(), redis.SetArgs{
		Mode:    "XX",
		KeepTTL: true,
	}).Err()
	if errors.Is(err, redis.Nil) {
		// Key expired between acquire and confirm. The row is committed, so
		// the write stands; only the dedup window shrank.
		slog.Warn("idempotency key vanished before confirm",
			slog.String("key", key),
			slog.String("reservation_id", reservationID.String()))
		return nil
	}
	if err != nil {
		return infra.WrapRepoErr("failed to confirm idempotency key", err, infra.KindUnavailable)
	}

	return nil
}

func (s *RedisLockStore) Rollback(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return infra.WrapRepoErr("failed to roll back idempotency lock", err, infra.KindUnavailable)
	}

	return nil
}

func (s *RedisLockStore) redisKey(key string) string {
	return keyPrefix + key
}
