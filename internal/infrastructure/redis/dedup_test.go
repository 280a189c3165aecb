package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSetNX struct {
	keys map[string]time.Duration
	err  error
}

func (m *memSetNX) SetNX(_ context.Context, key string, _ any, exp time.Duration) *redis.BoolCmd {
	if m.err != nil {
		return redis.NewBoolResult(false, m.err)
	}
	if _, ok := m.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.keys[key] = exp
	return redis.NewBoolResult(true, nil)
}

func (m *memSetNX) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := m.keys[k]; ok {
			delete(m.keys, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestDedup_SegundaEntregaEsDuplicada(t *testing.T) {
	store := &memSetNX{keys: map[string]time.Duration{}}
	d := NewDedup(store, time.Minute)

	seen, err := d.Seen(context.Background(), "300:m-1")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = d.Seen(context.Background(), "300:m-1")
	require.NoError(t, err)
	assert.True(t, seen)

	assert.Equal(t, time.Minute, store.keys[keyPrefix+"300:m-1"])
}

func TestDedup_TTLPorDefecto(t *testing.T) {
	store := &memSetNX{keys: map[string]time.Duration{}}
	d := NewDedup(store, 0)

	_, err := d.Seen(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, store.keys[keyPrefix+"k"])
}

func TestDedup_ErrorDeRedis(t *testing.T) {
	d := NewDedup(&memSetNX{err: errors.New("connection refused")}, time.Minute)

	_, err := d.Seen(context.Background(), "k")
	assert.Error(t, err)
}

func TestDedup_ReleasePermiteReentregar(t *testing.T) {
	store := &memSetNX{keys: map[string]time.Duration{}}
	d := NewDedup(store, time.Minute)
	ctx := context.Background()

	_, err := d.Seen(ctx, "300:m-2")
	require.NoError(t, err)
	require.NoError(t, d.Release(ctx, "300:m-2"))

	seen, err := d.Seen(ctx, "300:m-2")
	require.NoError(t, err)
	assert.False(t, seen)
}
