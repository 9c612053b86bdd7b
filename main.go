package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/configs/configsredis"
	"kartvizit.link/configs/configssession"
	"kartvizit.link/pkg/cropengine"
	"kartvizit.link/repositories"
	"kartvizit.link/routes"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		panic(err)
	}
	configslog.InitLogger(configslog.Options{Level: cfg.LogLevel, File: cfg.LogFile, Development: cfg.IsDevelopment()})
	defer configslog.SyncLogger()

	repo, closeRepo, err := newRecordRepository(cfg)
	if err != nil {
		configslog.Log.Fatal("Depolama başlatılamadı", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer closeRepo()

	engine := html.New("./views", ".html")
	engine.Reload(cfg.IsDevelopment())

	app := fiber.New(fiber.Config{
		Views:        engine,
		AppName:      "kartvizit.link",
		BodyLimit:    cropengine.MaxUploadBytes + 1<<20,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	qr := services.NewQRService(cfg.QRServiceURL, cfg.QRSize, cfg.QRFetchTimeout(), nil)
	routes.SetupRoutes(app, routes.Dependencies{
		Sessions:       configssession.SetupSession(cfg.SessionCookie, !cfg.IsDevelopment()),
		CardService:    services.NewCardService(repo),
		ContactService: services.NewContactService(repo),
		ShareService:   services.NewShareService(cfg.BaseURL, qr),
		QRService:      qr,
		CropService: services.NewCropService(cropengine.Options{
			ViewportSize:   cfg.CropViewportSize,
			OutputSize:     cfg.CropOutputSize,
			JPEGQuality:    cfg.CropJPEGQuality,
			MinZoomPercent: cfg.CropMinZoomPercent,
			MaxZoomPercent: cfg.CropMaxZoomPercent,
		}),
		RequestLogging: true,
	})

	go func() {
		configslog.SLog.Infof("Sunucu başlatılıyor: %s (depolama: %s)", cfg.ListenAddr(), cfg.StorageDriver)
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			configslog.Log.Error("Sunucu durdu", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("Sunucu kapatılıyor...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
	}
}

// newRecordRepository STORAGE_DRIVER'a göre depoyu kurar ve kapatma fonksiyonunu döndürür.
func newRecordRepository(cfg *configs.AppConfig) (repositories.IRecordRepository, func(), error) {
	switch cfg.StorageDriver {
	case configs.StorageDriverPostgres:
		if err := configsdatabase.InitDB(cfg); err != nil {
			return nil, nil, err
		}
		return repositories.NewGormRecordRepository(cfg.StorageQuotaBytes), configsdatabase.CloseDB, nil

	case configs.StorageDriverRedis:
		client, err := configsredis.NewClient(context.Background(), cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				configslog.Log.Warn("Redis bağlantısı kapatılamadı", zap.Error(err))
			}
		}
		return repositories.NewRedisRecordRepository(client, cfg.StorageQuotaBytes), closeFn, nil

	default:
		return repositories.NewMemoryRecordRepository(cfg.StorageQuotaBytes), func() {}, nil
	}
}
