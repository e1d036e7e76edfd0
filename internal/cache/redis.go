package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/agentbooking/config"
	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/Domenick1991/agentbooking/internal/flow"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client   *redis.Client
	agentTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, agentTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), agentTTL)
}

func NewRedisCacheWithClient(client *redis.Client, agentTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, agentTTL: agentTTL}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// SaveSession stores the whole navigation stack; ttl is refreshed on every
// transition so idle flows expire.
func (c *RedisCache) SaveSession(ctx context.Context, s *flow.Session, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionKey(s.ID), payload, ttl).Err()
}

func (c *RedisCache) GetSession(ctx context.Context, id string) (*flow.Session, error) {
	data, err := c.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var s flow.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

func (c *RedisCache) DeleteSession(ctx context.Context, id string) error {
	return c.client.Del(ctx, sessionKey(id)).Err()
}

// AcquirePaymentLock reports false when another payment of the session holds
// the lock.
func (c *RedisCache) AcquirePaymentLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, paymentLockKey(sessionID), "locked", ttl).Result()
}

func (c *RedisCache) ReleasePaymentLock(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, paymentLockKey(sessionID)).Err()
}

// GetAgent returns nil, nil on a cache miss.
func (c *RedisCache) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	data, err := c.client.Get(ctx, agentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var agent domain.Agent
	if err := json.Unmarshal(data, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (c *RedisCache) SetAgent(ctx context.Context, agent domain.Agent) error {
	payload, err := json.Marshal(agent)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, agentKey(agent.ID), payload, c.agentTTL).Err()
}

func (c *RedisCache) GetAgents(ctx context.Context) ([]domain.Agent, error) {
	data, err := c.client.Get(ctx, agentsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var agents []domain.Agent
	if err := json.Unmarshal(data, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (c *RedisCache) SetAgents(ctx context.Context, agents []domain.Agent) error {
	payload, err := json.Marshal(agents)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, agentsKey(), payload, c.agentTTL).Err()
}

func sessionKey(id string) string {
	return "flow:session:" + id
}

func paymentLockKey(sessionID string) string {
	return "flow:paylock:" + sessionID
}

func agentKey(id string) string {
	return "cache:agent:" + id
}

func agentsKey() string {
	return "cache:agents"
}
