// Package cropengine sabit kare bir görüntü alanı (viewport) içinde yüklenen fotoğrafı
// kaydırıp yakınlaştırmayı ve görünen bölgeyi sabit boyutlu bir çıktıya basmayı sağlar.
//
// Engine tek sahipli bir durum makinesidir, kendi içinde kilit tutmaz. Sırası bozuk
// çağrılar (BeginDrag olmadan Drag, Load olmadan SetZoom) sessizce yok sayılır.
package cropengine

import (
	"errors"
	"image"
	"math"
)

var (
	ErrNoImage    = errors.New("kırpma için yüklenmiş bir görsel yok")
	ErrEmptyImage = errors.New("görsel boyutu sıfır")
)

// Options motorun sabitleri. Sıfır değerli alanlar varsayılanla doldurulur.
type Options struct {
	ViewportSize   int // Görüntü alanının kenarı (piksel)
	OutputSize     int // Çıktı görselinin kenarı (piksel)
	JPEGQuality    int
	MinZoomPercent int
	MaxZoomPercent int
}

// DefaultOptions varsayılan değerler.
func DefaultOptions() Options {
	return Options{
		ViewportSize:   300,
		OutputSize:     800,
		JPEGQuality:    85,
		MinZoomPercent: 10,
		MaxZoomPercent: 300,
	}
}

// WithDefaults sıfır veya geçersiz alanları varsayılanlarla doldurur.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.ViewportSize <= 0 {
		o.ViewportSize = d.ViewportSize
	}
	if o.OutputSize <= 0 {
		o.OutputSize = d.OutputSize
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = d.JPEGQuality
	}
	if o.MinZoomPercent <= 0 {
		o.MinZoomPercent = d.MinZoomPercent
	}
	if o.MaxZoomPercent < o.MinZoomPercent {
		o.MaxZoomPercent = max(d.MaxZoomPercent, o.MinZoomPercent)
	}
	return o
}

// Point görüntü alanının sol üst köşesine göre koordinat.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Region doğal görsel koordinatlarında kare bölge.
type Region struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Side float64 `json:"side"`
}

// State motorun dışarıya gösterilen anlık durumu.
type State struct {
	Loaded        bool    `json:"loaded"`
	NaturalWidth  int     `json:"naturalWidth"`
	NaturalHeight int     `json:"naturalHeight"`
	DisplayWidth  float64 `json:"displayWidth"`
	DisplayHeight float64 `json:"displayHeight"`
	Scale         float64 `json:"scale"`
	ZoomPercent   int     `json:"zoomPercent"`
	Offset        Point   `json:"offset"`
	Dragging      bool    `json:"dragging"`
	ViewportSize  int     `json:"viewportSize"`
}

// Engine kırpma durum makinesi.
type Engine struct {
	opts Options

	img      image.Image
	naturalW float64
	naturalH float64
	displayW float64 // scale=1 iken görüntülenen genişlik
	displayH float64
	scale    float64
	offset   Point // Görselin sol üst köşesinin viewport'a göre konumu
	anchor   Point
	dragging bool
}

// New verilen seçeneklerle boş bir motor oluşturur.
func New(opts Options) *Engine {
	return &Engine{opts: opts.WithDefaults(), scale: 1}
}

// Options motorun kullandığı (varsayılanlarla doldurulmuş) seçenekler.
func (e *Engine) Options() Options { return e.opts }

// Loaded bir görsel yüklü mü.
func (e *Engine) Loaded() bool { return e.img != nil }

// Load görseli, büyük kenarı viewport'a oturacak şekilde ölçekler, scale=1 yapar ve
// viewport'un ortasına yerleştirir. Önceki durum tamamen atılır.
func (e *Engine) Load(img image.Image) error {
	if img == nil {
		return ErrNoImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ErrEmptyImage
	}

	v := float64(e.opts.ViewportSize)
	w, h := float64(b.Dx()), float64(b.Dy())
	fit := v / math.Max(w, h)

	*e = Engine{
		opts:     e.opts,
		img:      img,
		naturalW: w,
		naturalH: h,
		displayW: w * fit,
		displayH: h * fit,
		scale:    1,
	}
	e.offset = Point{X: (v - e.displayW) / 2, Y: (v - e.displayH) / 2}
	return nil
}

// BeginDrag sürüklemeyi başlatır. Görsel yoksa veya zaten sürükleniyorsa bir şey yapmaz.
func (e *Engine) BeginDrag(p Point) {
	if e.img == nil || e.dragging {
		return
	}
	e.anchor = p.sub(e.offset)
	e.dragging = true
}

// Drag sürükleme sürerken offset'i p - anchor yapar. Sınırlama yoktur; görsel
// viewport dışına tamamen çıkarılabilir.
func (e *Engine) Drag(p Point) {
	if !e.dragging {
		return
	}
	e.offset = p.sub(e.anchor)
}

// EndDrag sürüklemeyi bitirir.
func (e *Engine) EndDrag() {
	e.dragging = false
	e.anchor = Point{}
}

// Dragging sürükleme sürüyor mu.
func (e *Engine) Dragging() bool { return e.dragging }

// Scale geçerli yakınlaştırma çarpanı.
func (e *Engine) Scale() float64 { return e.scale }

// Offset görselin viewport'a göre konumu.
func (e *Engine) Offset() Point { return e.offset }

// SetZoom ölçeği izin verilen aralığa sıkıştırıp uygular. Viewport'un merkezi görsel
// üzerinde aynı noktada kalır: offset' = c - (c - offset) * (yeni/eski).
func (e *Engine) SetZoom(newScale float64) {
	if e.img == nil || math.IsNaN(newScale) {
		return
	}
	newScale = e.clampScale(newScale)
	c := float64(e.opts.ViewportSize) / 2
	k := newScale / e.scale
	e.offset = Point{
		X: c - (c-e.offset.X)*k,
		Y: c - (c-e.offset.Y)*k,
	}
	e.scale = newScale
}

// SetZoomPercent yüzde değerli kaydırıcıdan gelen değeri uygular (100 = 1.0).
func (e *Engine) SetZoomPercent(pct int) {
	e.SetZoom(float64(pct) / 100)
}

// ZoomPercent ölçeğin kaydırıcıdaki karşılığı.
func (e *Engine) ZoomPercent() int {
	return int(math.Round(e.scale * 100))
}

func (e *Engine) clampScale(s float64) float64 {
	lo := float64(e.opts.MinZoomPercent) / 100
	hi := float64(e.opts.MaxZoomPercent) / 100
	return math.Min(math.Max(s, lo), hi)
}

// SourceRegion viewport'ta görünen kareyi doğal görsel koordinatlarında döndürür.
func (e *Engine) SourceRegion() (Region, error) {
	if e.img == nil {
		return Region{}, ErrNoImage
	}
	ratio := e.naturalW / (e.displayW * e.scale)
	return Region{
		X:    -e.offset.X * ratio,
		Y:    -e.offset.Y * ratio,
		Side: float64(e.opts.ViewportSize) * ratio,
	}, nil
}

// State anlık durumu döndürür.
func (e *Engine) State() State {
	s := State{
		Loaded:       e.img != nil,
		Scale:        e.scale,
		ZoomPercent:  e.ZoomPercent(),
		Offset:       e.offset,
		Dragging:     e.dragging,
		ViewportSize: e.opts.ViewportSize,
	}
	if e.img != nil {
		s.NaturalWidth = int(e.naturalW)
		s.NaturalHeight = int(e.naturalH)
		s.DisplayWidth = e.displayW * e.scale
		s.DisplayHeight = e.displayH * e.scale
	}
	return s
}

// Cancel tüm durumu atar; bir sonraki Load sıfırdan başlar.
func (e *Engine) Cancel() {
	*e = Engine{opts: e.opts, scale: 1}
}
