package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"kartvizit.link/configs/configslog"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// QRServiceError QR görseli alınırken oluşan hatalar
type QRServiceError string

func (e QRServiceError) Error() string { return string(e) }

const (
	ErrQRTooLarge    QRServiceError = "kartvizit QR kodu için çok büyük"
	ErrQRUnavailable QRServiceError = "QR kodu şu anda oluşturulamıyor"
)

const (
	qrCacheMaxEntries = 128
	qrMaxImageBytes   = 1 << 20
)

// QRImage dış servisten alınmış QR görseli.
type QRImage struct {
	ContentType string
	Data        []byte
}

// IQRService dış QR servisine istek adresini kurar ve görseli getirir.
type IQRService interface {
	ImageURL(data string) string
	Fetch(ctx context.Context, data string) (*QRImage, error)
}

// QRService IQRService arayüzünü uygular. Alınan görseller istek adresinin BLAKE2b
// özetine göre önbelleğe alınır.
type QRService struct {
	serviceURL string
	size       int
	timeout    time.Duration
	client     *http.Client

	mu    sync.Mutex
	cache map[[blake2b.Size256]byte]*QRImage
	order [][blake2b.Size256]byte
}

// NewQRService yeni bir QRService oluşturur. client nil ise varsayılan istemci kullanılır.
func NewQRService(serviceURL string, size int, timeout time.Duration, client *http.Client) *QRService {
	if client == nil {
		client = &http.Client{}
	}
	if size <= 0 {
		size = 300
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &QRService{
		serviceURL: serviceURL,
		size:       size,
		timeout:    timeout,
		client:     client,
		cache:      make(map[[blake2b.Size256]byte]*QRImage),
	}
}

// ImageURL <servis>?size=WxH&data=<kaçışlı veri> adresini döndürür.
func (s *QRService) ImageURL(data string) string {
	q := url.Values{}
	dim := strconv.Itoa(s.size)
	q.Set("size", dim+"x"+dim)
	q.Set("data", data)
	return s.serviceURL + "?" + q.Encode()
}

// Fetch görseli zaman aşımıyla getirir. Süre dolarsa veya servis hata verirse
// ErrQRUnavailable döner; çağıran düz linke düşmelidir.
func (s *QRService) Fetch(ctx context.Context, data string) (*QRImage, error) {
	target := s.ImageURL(data)
	key := blake2b.Sum256([]byte(target))

	if img := s.cached(key); img != nil {
		return img, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	img, err := s.fetch(ctx, target)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			configslog.Log.Warn("QR servisi zaman aşımına uğradı", zap.Duration("timeout", s.timeout))
		} else {
			configslog.Log.Warn("QR görseli alınamadı", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrQRUnavailable, err)
	}

	s.store(key, img)
	return img, nil
}

func (s *QRService) fetch(ctx context.Context, target string) (*QRImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("QR servisi %d döndü", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, qrMaxImageBytes))
	if err != nil {
		return nil, err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	return &QRImage{ContentType: contentType, Data: body}, nil
}

func (s *QRService) cached(key [blake2b.Size256]byte) *QRImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[key]
}

func (s *QRService) store(key [blake2b.Size256]byte, img *QRImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cache[key]; ok {
		return
	}
	if len(s.order) >= qrCacheMaxEntries {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, oldest)
	}
	s.cache[key] = img
	s.order = append(s.order, key)
}

var _ IQRService = (*QRService)(nil)
