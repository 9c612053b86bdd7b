package main

import (
	"flag"
	"os"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/database"

	"go.uber.org/zap"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Veritabanı migrasyonlarını çalıştır")
	flag.Parse()

	cfg, err := configs.Load()
	if err != nil {
		panic(err)
	}
	configslog.InitLogger(configslog.Options{Level: cfg.LogLevel, File: cfg.LogFile, Development: cfg.IsDevelopment()})
	defer configslog.SyncLogger()

	if err := configsdatabase.InitDB(cfg); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kurulamadı", zap.Error(err))
		os.Exit(1)
	}
	defer configsdatabase.CloseDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	if err := database.Initialize(configsdatabase.GetDB(), *migrateFlag); err != nil {
		configsdatabase.CloseDB()
		configslog.SyncLogger()
		os.Exit(1)
	}
	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
