package database

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/database/migrations"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyonları tek bir transaction içinde çalıştırır. Hata olursa geri alınır.
func Initialize(db *gorm.DB, migrate bool) error {
	if !migrate {
		configslog.SLog.Info("Migrate bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}
	if db == nil {
		return errors.New("veritabanı bağlantısı yok")
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")
	err := db.Transaction(func(tx *gorm.DB) error {
		return RunMigrationsInOrder(tx)
	})
	if err != nil {
		configslog.Log.Error("Veritabanı başlatma başarısız, işlem geri alındı", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info(" -> StoredRecord migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateStoredRecordsTable(db); err != nil {
		configslog.Log.Error("stored_records tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> StoredRecord migrasyonları tamamlandı.")
	return nil
}
