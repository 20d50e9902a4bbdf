// Package rediscache stores folded trial balances in Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
)

const keyPrefix = "ledger:"

// BalanceCache implements portsrepo.BalanceCache on a go-redis client.
type BalanceCache struct {
	client redis.UniversalClient
}

// NewBalanceCache returns nil when client is nil, which callers treat as caching disabled.
func NewBalanceCache(client redis.UniversalClient) *BalanceCache {
	if client == nil {
		return nil
	}
	return &BalanceCache{client: client}
}

// NewClient parses a redis:// URL and pings the server.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

var _ portsrepo.BalanceCache = (*BalanceCache)(nil)

// GetBalances implements portsrepo.BalanceCache
func (c *BalanceCache) GetBalances(ctx context.Context, key string) (map[string]decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var balances map[string]decimal.Decimal
	if err := json.Unmarshal(val, &balances); err != nil {
		return nil, false, fmt.Errorf("decode cached balances: %w", err)
	}
	return balances, true, nil
}

// SetBalances implements portsrepo.BalanceCache
func (c *BalanceCache) SetBalances(ctx context.Context, key string, balances map[string]decimal.Decimal, ttl time.Duration) error {
	data, err := json.Marshal(balances)
	if err != nil {
		return fmt.Errorf("encode balances: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
