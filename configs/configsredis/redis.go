// Package configsredis Redis istemcisini kurar.
package configsredis

import (
	"context"
	"time"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient Redis'e bağlanır ve bağlantıyı PING ile doğrular.
func NewClient(ctx context.Context, cfg *configs.AppConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		configslog.Log.Error("Redis'e bağlanılamadı", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = client.Close()
		return nil, err
	}
	configslog.SLog.Infof("Redis bağlantısı kuruldu: %s (db %d)", cfg.RedisAddr, cfg.RedisDB)
	return client, nil
}
