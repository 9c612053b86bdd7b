package services

import (
	"io"
	"sync"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/cropengine"

	"go.uber.org/zap"
)

// ICropService her sahip için ayrı bir kırpma motoru yönetir. Tarayıcı olayları bu
// komutlara bağlanır.
type ICropService interface {
	Load(owner string, r io.Reader) (cropengine.State, error)
	BeginDrag(owner string, p cropengine.Point) cropengine.State
	Drag(owner string, p cropengine.Point) cropengine.State
	EndDrag(owner string) cropengine.State
	Zoom(owner string, percent int) cropengine.State
	State(owner string) cropengine.State
	Apply(owner string) (string, error)
	Cancel(owner string)
	Options() cropengine.Options
}

type cropSession struct {
	mu     sync.Mutex
	engine *cropengine.Engine
}

// CropService ICropService arayüzünü uygular.
type CropService struct {
	opts cropengine.Options

	mu       sync.Mutex
	sessions map[string]*cropSession
}

// NewCropService yeni bir CropService oluşturur.
func NewCropService(opts cropengine.Options) *CropService {
	return &CropService{opts: opts.WithDefaults(), sessions: make(map[string]*cropSession)}
}

// Options motorların kullandığı seçenekler; görüntü alanı ve yakınlaştırma aralığı
// sayfaya bunlardan yazılır.
func (s *CropService) Options() cropengine.Options { return s.opts }

// session sahibin oturumunu döndürür; create false ise ve oturum yoksa nil döner.
func (s *CropService) session(owner string, create bool) *cropSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[owner]
	if !ok && create {
		sess = &cropSession{engine: cropengine.New(s.opts)}
		s.sessions[owner] = sess
	}
	return sess
}

// with motor üzerinde kilit altında çalışır ve son durumu döndürür.
func (s *CropService) with(owner string, fn func(e *cropengine.Engine)) cropengine.State {
	sess := s.session(owner, false)
	if sess == nil {
		return cropengine.New(s.opts).State()
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.engine)
	return sess.engine.State()
}

// Load yüklenen dosyayı çözer ve motora verir. Önceki durum atılır.
func (s *CropService) Load(owner string, r io.Reader) (cropengine.State, error) {
	img, format, err := cropengine.DecodeImage(r)
	if err != nil {
		configslog.Log.Warn("Kırpma görseli çözülemedi", zap.String("owner", owner), zap.Error(err))
		return cropengine.State{}, err
	}

	sess := s.session(owner, true)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.engine.Load(img); err != nil {
		return sess.engine.State(), err
	}
	configslog.SLog.Debugf("Kırpma görseli yüklendi: owner=%s format=%s %dx%d",
		owner, format, img.Bounds().Dx(), img.Bounds().Dy())
	return sess.engine.State(), nil
}

func (s *CropService) BeginDrag(owner string, p cropengine.Point) cropengine.State {
	return s.with(owner, func(e *cropengine.Engine) { e.BeginDrag(p) })
}

func (s *CropService) Drag(owner string, p cropengine.Point) cropengine.State {
	return s.with(owner, func(e *cropengine.Engine) { e.Drag(p) })
}

func (s *CropService) EndDrag(owner string) cropengine.State {
	return s.with(owner, func(e *cropengine.Engine) { e.EndDrag() })
}

func (s *CropService) Zoom(owner string, percent int) cropengine.State {
	return s.with(owner, func(e *cropengine.Engine) { e.SetZoomPercent(percent) })
}

func (s *CropService) State(owner string) cropengine.State {
	return s.with(owner, func(*cropengine.Engine) {})
}

// Apply görünen bölgeyi data URL olarak döndürür ve oturumu kapatır.
func (s *CropService) Apply(owner string) (string, error) {
	sess := s.session(owner, false)
	if sess == nil {
		return "", cropengine.ErrNoImage
	}
	sess.mu.Lock()
	photo, err := sess.engine.RasterizeDataURL()
	sess.mu.Unlock()
	if err != nil {
		return "", err
	}
	s.Cancel(owner)
	return photo, nil
}

// Cancel sahibin kırpma durumunu tamamen atar.
func (s *CropService) Cancel(owner string) {
	s.mu.Lock()
	sess, ok := s.sessions[owner]
	delete(s.sessions, owner)
	s.mu.Unlock()
	if ok {
		sess.mu.Lock()
		sess.engine.Cancel()
		sess.mu.Unlock()
	}
}

var _ ICropService = (*CropService)(nil)
