package clients

import (
	"context"

	"github.com/hsm-textlab/workbench/internal/cfg"
	"github.com/hsm-textlab/workbench/pkg/e"
	r "github.com/redis/go-redis/v9"
)

// RedisClient держит подключение к Redis, в котором живут сессии графиков.
type RedisClient struct {
	Client *r.Client
	addr   string
}

// ConnectRedis открывает подключение и проверяет его PING-ом.
// При неудаче клиент закрывается.
func ConnectRedis(ctx context.Context, cfg *cfg.RedisCfg) (*RedisClient, error) {
	const op = "clients.ConnectRedis"

	client := r.NewClient(&r.Options{
		Addr:         cfg.Addr,
		Username:     cfg.User,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	rc := &RedisClient{Client: client, addr: cfg.Addr}
	if err := rc.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, e.Wrap(op, err)
	}

	return rc, nil
}

// Addr возвращает адрес сервера Redis.
func (c *RedisClient) Addr() string {
	return c.addr
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap("RedisClient.Ping "+c.addr, err)
	}

	return nil
}

func (c *RedisClient) Close() error {
	if err := c.Client.Close(); err != nil {
		return e.Wrap("RedisClient.Close", err)
	}

	return nil
}
