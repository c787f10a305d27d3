package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Channel — канал Redis, который слушает socket-мост фронтенда.
const Channel = "topsec:changes"

type Redis struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedis(addr, password string, db int, log *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Redis{client: client, log: log}
}

func (r *Redis) Publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		r.log.Warn("failed to marshal change event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// ошибку публикации только логируем — мутация уже зафиксирована
	if err := r.client.Publish(ctx, Channel, payload).Err(); err != nil {
		r.log.Warn("failed to publish change event",
			zap.String("entity", ev.Entity),
			zap.Uint("id", ev.ID),
			zap.Error(err),
		)
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
