package migrations

import (
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateStoredRecordsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating stored_records table...")
	err := db.AutoMigrate(&models.StoredRecord{})
	if err != nil {
		configslog.Log.Error("Failed to migrate stored_records table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("stored_records table migrated successfully")
	return nil
}
