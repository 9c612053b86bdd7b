package repositories

import (
	"context"
	"fmt"
	"sync"

	"kartvizit.link/configs/configslog"

	"go.uber.org/zap"
)

// MemoryRecordRepository kayıtları bellekte tutar. Toplam bayt kotası aşılırsa Set
// ErrQuotaExceeded döner ve mevcut değer korunur.
type MemoryRecordRepository struct {
	mu          sync.RWMutex
	records     map[string][]byte
	currentSize int64
	maxSize     int64 // 0 veya negatif ise sınırsız
}

// NewMemoryRecordRepository yeni bir bellek deposu oluşturur.
func NewMemoryRecordRepository(maxSize int64) *MemoryRecordRepository {
	return &MemoryRecordRepository{
		records: make(map[string][]byte),
		maxSize: maxSize,
	}
}

func (r *MemoryRecordRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (r *MemoryRecordRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	newSize := r.currentSize - r.entrySize(key) + int64(len(key)+len(value))
	if r.maxSize > 0 && newSize > r.maxSize {
		configslog.Log.Warn("Bellek deposu kotası aşıldı",
			zap.String("key", key),
			zap.Int64("requested", newSize),
			zap.Int64("max", r.maxSize))
		return fmt.Errorf("%w: %d bayt (en fazla %d)", ErrQuotaExceeded, newSize, r.maxSize)
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	r.records[key] = stored
	r.currentSize = newSize
	return nil
}

func (r *MemoryRecordRepository) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.currentSize -= r.entrySize(key)
	delete(r.records, key)
	return nil
}

// Size depodaki toplam bayt miktarı (anahtarlar dahil).
func (r *MemoryRecordRepository) Size() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentSize
}

func (r *MemoryRecordRepository) entrySize(key string) int64 {
	value, ok := r.records[key]
	if !ok {
		return 0
	}
	return int64(len(key) + len(value))
}

var _ IRecordRepository = (*MemoryRecordRepository)(nil)
