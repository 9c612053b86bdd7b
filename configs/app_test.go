package configs

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.StorageDriver != StorageDriverMemory {
		t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, StorageDriverMemory)
	}
	if cfg.StorageQuotaBytes != 5*1024*1024 {
		t.Errorf("StorageQuotaBytes = %d, want 5MiB", cfg.StorageQuotaBytes)
	}
	if cfg.CropViewportSize != 300 || cfg.CropOutputSize != 800 || cfg.CropJPEGQuality != 85 {
		t.Errorf("crop defaults = %d/%d/%d, want 300/800/85", cfg.CropViewportSize, cfg.CropOutputSize, cfg.CropJPEGQuality)
	}
	if cfg.QRFetchTimeout() != 5*time.Second {
		t.Errorf("QRFetchTimeout = %v, want 5s", cfg.QRFetchTimeout())
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment should default to true")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_PORT", "8081")
	os.Setenv("STORAGE_DRIVER", "redis")
	os.Setenv("QR_TIMEOUT", "2s")
	os.Setenv("CROP_MAX_ZOOM", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr() != ":8081" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr(), ":8081")
	}
	if cfg.StorageDriver != StorageDriverRedis {
		t.Errorf("StorageDriver = %q, want redis", cfg.StorageDriver)
	}
	if cfg.QRFetchTimeout() != 2*time.Second {
		t.Errorf("QRFetchTimeout = %v, want 2s", cfg.QRFetchTimeout())
	}
	if cfg.CropMaxZoomPercent != 500 {
		t.Errorf("CropMaxZoomPercent = %d, want 500", cfg.CropMaxZoomPercent)
	}
}

func TestLoad_InvalidStorageDriver(t *testing.T) {
	os.Clearenv()
	os.Setenv("STORAGE_DRIVER", "floppy")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail for unknown STORAGE_DRIVER")
	}
}

func TestLoad_InvalidZoomRange(t *testing.T) {
	os.Clearenv()
	os.Setenv("CROP_MIN_ZOOM", "200")
	os.Setenv("CROP_MAX_ZOOM", "100")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail when CROP_MAX_ZOOM < CROP_MIN_ZOOM")
	}
}

func TestQRFetchTimeout_InvalidFallsBack(t *testing.T) {
	cfg := &AppConfig{QRTimeout: "soon"}
	if cfg.QRFetchTimeout() != 5*time.Second {
		t.Errorf("QRFetchTimeout = %v, want 5s", cfg.QRFetchTimeout())
	}
}
