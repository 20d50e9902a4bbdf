package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*BalanceCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewBalanceCache(client), mr
}

func TestNewBalanceCache_NilClient(t *testing.T) {
	assert.Nil(t, NewBalanceCache(nil))
}

func TestBalanceCache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	_, found, err := cache.GetBalances(ctx, "tb:-:2024-12-31:3:0")
	require.NoError(t, err)
	assert.False(t, found)

	balances := map[string]decimal.Decimal{
		"1000": decimal.RequireFromString("800"),
		"4000": decimal.RequireFromString("-1000.005"),
	}
	require.NoError(t, cache.SetBalances(ctx, "tb:-:2024-12-31:3:0", balances, time.Minute))
	assert.True(t, mr.Exists("ledger:tb:-:2024-12-31:3:0"))

	got, found, err := cache.GetBalances(ctx, "tb:-:2024-12-31:3:0")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got["4000"].Equal(decimal.RequireFromString("-1000.005")))
	assert.True(t, got["1000"].Equal(decimal.NewFromInt(800)))
}

func TestBalanceCache_Expires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.SetBalances(ctx, "k", map[string]decimal.Decimal{"1000": decimal.NewFromInt(1)}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, found, err := cache.GetBalances(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBalanceCache_TransportError(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	mr.Close()

	_, _, err := cache.GetBalances(ctx, "k")
	assert.Error(t, err)
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient(context.Background(), "not-a-url://")
	assert.Error(t, err)
}
