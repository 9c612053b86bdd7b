package repositories

import (
	"context"
	"errors"
	"fmt"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRecordRepository kayıtları stored_records tablosunda tutar. Kota kayıt başınadır.
type GormRecordRepository struct {
	db           *gorm.DB
	maxValueSize int64
}

// NewGormRecordRepository aktif veritabanı bağlantısını kullanan depo oluşturur.
func NewGormRecordRepository(maxValueSize int64) *GormRecordRepository {
	return NewGormRecordRepositoryWithDB(configsdatabase.GetDB(), maxValueSize)
}

// NewGormRecordRepositoryWithDB verilen bağlantıyı (veya transaction'ı) kullanır.
func NewGormRecordRepositoryWithDB(db *gorm.DB, maxValueSize int64) *GormRecordRepository {
	return &GormRecordRepository{db: db, maxValueSize: maxValueSize}
}

// Context içinde transaction varsa onu kullanır
func (r *GormRecordRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *GormRecordRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var record models.StoredRecord
	err := r.getDB(ctx).Where("key = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("Kayıt okunamadı", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return []byte(record.Value), nil
}

func (r *GormRecordRepository) Set(ctx context.Context, key string, value []byte) error {
	if r.maxValueSize > 0 && int64(len(value)) > r.maxValueSize {
		return fmt.Errorf("%w: %d bayt (en fazla %d)", ErrQuotaExceeded, len(value), r.maxValueSize)
	}
	record := models.StoredRecord{Key: key, Value: string(value)}
	err := r.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		configslog.Log.Error("Kayıt yazılamadı", zap.String("key", key), zap.Int("size", len(value)), zap.Error(err))
		return err
	}
	return nil
}

func (r *GormRecordRepository) Remove(ctx context.Context, key string) error {
	err := r.getDB(ctx).Where("key = ?", key).Delete(&models.StoredRecord{}).Error
	if err != nil {
		configslog.Log.Error("Kayıt silinemedi", zap.String("key", key), zap.Error(err))
	}
	return err
}

var _ IRecordRepository = (*GormRecordRepository)(nil)
