package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis crea el cliente go-redis contra la base remota. No valida la
// conectividad al arrancar: el modo híbrido debe poder iniciarse offline y
// degradar a solo-local hasta que el remoto responda.
func NewRedis(remoteURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(remoteURL)
	if err != nil {
		return nil, err
	}
	// Timeouts cortos: una llamada remota colgada bloquea la operación que la
	// emitió hasta que el transporte corte.
	opts.DialTimeout = 3 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	return redis.NewClient(opts), nil
}

// PingRemote reporta si el remoto responde ahora mismo (health endpoint).
func PingRemote(ctx context.Context, rdb *redis.Client) error {
	return rdb.Ping(ctx).Err()
}
