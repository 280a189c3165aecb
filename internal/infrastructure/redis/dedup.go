package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Telemetria-api/internal/application/ingestion"
)

var _ ingestion.Deduplicator = (*Dedup)(nil)

const keyPrefix = "telemetria:signal:"

// setNXer subconjunto de redis.Cmdable que usa Dedup.
type setNXer interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Dedup marca entregas de señales con SET NX y TTL para descartar reenvíos (MQTT QoS 1).
type Dedup struct {
	client setNXer
	ttl    time.Duration
}

// NewDedup construye el deduplicador sobre un cliente existente.
func NewDedup(client setNXer, ttl time.Duration) *Dedup {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Dedup{client: client, ttl: ttl}
}

// NewClient abre el cliente de Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 2,
		MaxRetries:   3,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	return client, nil
}

// Seen registra la clave; devuelve true si ya existía dentro del TTL.
func (d *Dedup) Seen(ctx context.Context, key string) (bool, error) {
	created, err := d.client.SetNX(ctx, keyPrefix+key, 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup %s: %w", key, err)
	}
	return !created, nil
}

// Release borra la marca de una entrega que no se llegó a guardar.
func (d *Dedup) Release(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("dedup release %s: %w", key, err)
	}
	return nil
}
