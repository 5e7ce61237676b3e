package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
)

const (
	// DefaultPrefix namespaces keys when several agents share one redis.
	DefaultPrefix = "storefront"

	pendingKey    = "pending_payment"
	credentialKey = "credential"
)

// Store keeps both records as plain redis string keys without expiry;
// stale pending records are swept by housekeeping, not by TTL.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore wraps an existing client. Keys are "<prefix>:pending_payment"
// and "<prefix>:credential".
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Open dials addr and verifies the connection.
func Open(ctx context.Context, addr, prefix string) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewStore(client, prefix), nil
}

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) PendingPayments() store.PendingPayments { return &pendingPaymentsRepo{s: s} }
func (s *Store) Credentials() store.Credentials         { return &credentialsRepo{s: s} }

func (s *Store) key(name string) string {
	return fmt.Sprintf("%s:%s", s.prefix, name)
}

func (s *Store) get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (s *Store) set(ctx context.Context, name string, value []byte) error {
	if err := s.client.Set(ctx, s.key(name), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *Store) del(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// clearAttemptScript deletes the pending record only while its attemptId
// matches ARGV[1], so the compare and the delete cannot interleave with a Save.
var clearAttemptScript = redis.NewScript(`
local raw = redis.call("GET", KEYS[1])
if not raw then
	return 0
end
local record = cjson.decode(raw)
if record["attemptId"] ~= ARGV[1] then
	return 0
end
return redis.call("DEL", KEYS[1])
`)

type pendingPaymentsRepo struct {
	s *Store
}

func (r *pendingPaymentsRepo) Save(ctx context.Context, p domain.PendingPayment) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending payment failed: %w", err)
	}
	return r.s.set(ctx, pendingKey, b)
}

func (r *pendingPaymentsRepo) Load(ctx context.Context) (domain.PendingPayment, error) {
	b, err := r.s.get(ctx, pendingKey)
	if err != nil {
		return domain.PendingPayment{}, err
	}

	var p domain.PendingPayment
	if err := json.Unmarshal(b, &p); err != nil {
		return domain.PendingPayment{}, fmt.Errorf("unmarshal pending payment failed: %w", err)
	}
	return p, nil
}

func (r *pendingPaymentsRepo) Clear(ctx context.Context) error {
	return r.s.del(ctx, pendingKey)
}

func (r *pendingPaymentsRepo) ClearAttempt(ctx context.Context, attemptID idx.ID) (bool, error) {
	n, err := clearAttemptScript.Run(ctx, r.s.client, []string{r.s.key(pendingKey)}, attemptID.String()).Int()
	if err != nil {
		return false, fmt.Errorf("redis clear attempt failed: %w", err)
	}
	return n > 0, nil
}

type credentialsRepo struct {
	s *Store
}

func (r *credentialsRepo) Get(ctx context.Context) ([]byte, error) {
	return r.s.get(ctx, credentialKey)
}

func (r *credentialsRepo) Put(ctx context.Context, sealed []byte) error {
	return r.s.set(ctx, credentialKey, sealed)
}

func (r *credentialsRepo) Delete(ctx context.Context) error {
	return r.s.del(ctx, credentialKey)
}
