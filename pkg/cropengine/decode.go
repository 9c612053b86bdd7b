package cropengine

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

const (
	// MaxUploadBytes yüklenebilecek en büyük fotoğraf dosyası.
	MaxUploadBytes = 10 << 20
	// MaxImagePixels çözülmesine izin verilen en büyük görsel alanı (40 MP).
	MaxImagePixels = 40_000_000
)

// ErrImageTooLarge dosya ya da piksel boyutu sınırı aşıldığında döner.
var ErrImageTooLarge = errors.New("görsel çok büyük")

// DecodeImage JPEG, PNG, GIF veya WebP dosyasını çözer ve biçim adını döndürür.
// Piksel boyutu önce başlıktan okunur; sınırı aşan görsel çözülmez.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("görsel okunamadı: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, "", fmt.Errorf("%w: dosya %d bayttan büyük", ErrImageTooLarge, MaxUploadBytes)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("görsel çözülemedi: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", fmt.Errorf("görsel çözülemedi: geçersiz boyut %dx%d", cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, "", fmt.Errorf("%w: %dx%d piksel", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("görsel çözülemedi: %w", err)
	}
	return img, format, nil
}
