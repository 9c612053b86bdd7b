package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kartvizit.link/configs/configslog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisKeyPrefix tüm kayıt anahtarlarının Redis'teki ön eki.
const RedisKeyPrefix = "kartvizit:"

// RedisRecordRepository kayıtları Redis'te süresiz string olarak tutar. Kota kayıt başınadır.
type RedisRecordRepository struct {
	client       redis.Cmdable
	maxValueSize int64
}

// NewRedisRecordRepository tekil istemci ya da cluster ile çalışır.
func NewRedisRecordRepository(client redis.Cmdable, maxValueSize int64) *RedisRecordRepository {
	return &RedisRecordRepository{client: client, maxValueSize: maxValueSize}
}

func (r *RedisRecordRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, RedisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("Redis kaydı okunamadı", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return val, nil
}

func (r *RedisRecordRepository) Set(ctx context.Context, key string, value []byte) error {
	if r.maxValueSize > 0 && int64(len(value)) > r.maxValueSize {
		return fmt.Errorf("%w: %d bayt (en fazla %d)", ErrQuotaExceeded, len(value), r.maxValueSize)
	}
	if err := r.client.Set(ctx, RedisKeyPrefix+key, value, 0).Err(); err != nil {
		// Redis maxmemory sınırındayken OOM döner
		if isRedisOOM(err) {
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		configslog.Log.Error("Redis kaydı yazılamadı", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *RedisRecordRepository) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, RedisKeyPrefix+key).Err(); err != nil {
		configslog.Log.Error("Redis kaydı silinemedi", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func isRedisOOM(err error) bool {
	var rerr redis.Error
	if errors.As(err, &rerr) {
		return strings.HasPrefix(rerr.Error(), "OOM")
	}
	return false
}

var _ IRecordRepository = (*RedisRecordRepository)(nil)
