package cropengine

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"strings"
	"testing"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	black = color.RGBA{A: 255}
)

// quadrants sol üst kırmızı, sağ üst yeşil, sol alt mavi, sağ alt siyah bir görsel üretir.
func quadrants(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := black
			switch {
			case x < w/2 && y < h/2:
				c = red
			case y < h/2:
				c = green
			case x < w/2:
				c = blue
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func loaded(t *testing.T, w, h int) *Engine {
	t.Helper()
	e := New(Options{})
	if err := e.Load(quadrants(w, h)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return e
}

func TestLoad_FitsLargerSideAndCenters(t *testing.T) {
	e := loaded(t, 600, 300)
	st := e.State()
	if st.DisplayWidth != 300 || st.DisplayHeight != 150 {
		t.Errorf("display = %vx%v, want 300x150", st.DisplayWidth, st.DisplayHeight)
	}
	if st.Offset != (Point{X: 0, Y: 75}) || st.Scale != 1 {
		t.Errorf("offset=%+v scale=%v", st.Offset, st.Scale)
	}
	r, _ := e.SourceRegion()
	if !near(r.X, 0) || !near(r.Y, -150) || !near(r.Side, 600) {
		t.Errorf("region = %+v", r)
	}
}

func TestLoad_Rejects(t *testing.T) {
	e := New(Options{})
	if err := e.Load(nil); !errors.Is(err, ErrNoImage) {
		t.Errorf("nil image: %v", err)
	}
	if err := e.Load(image.NewRGBA(image.Rect(0, 0, 0, 10))); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("empty image: %v", err)
	}
}

func TestSourceRegion_SquareAtScaleOneIsWholeImage(t *testing.T) {
	e := loaded(t, 1200, 1200)
	r, err := e.SourceRegion()
	if err != nil {
		t.Fatal(err)
	}
	if !near(r.X, 0) || !near(r.Y, 0) || !near(r.Side, 1200) {
		t.Errorf("region = %+v, want whole image", r)
	}
}

func TestSetZoom_DoublingQuartersAreaAroundSameCenter(t *testing.T) {
	e := loaded(t, 1200, 1200)
	before, _ := e.SourceRegion()
	e.SetZoom(2)
	after, _ := e.SourceRegion()

	if !near(after.Side*after.Side, before.Side*before.Side/4) {
		t.Errorf("area %v, want quarter of %v", after.Side*after.Side, before.Side*before.Side)
	}
	cx, cy := after.X+after.Side/2, after.Y+after.Side/2
	if !near(cx, 600) || !near(cy, 600) {
		t.Errorf("center moved to (%v,%v)", cx, cy)
	}
	if e.ZoomPercent() != 200 {
		t.Errorf("ZoomPercent = %d", e.ZoomPercent())
	}
}

func TestSetZoom_KeepsViewportCenterAfterPan(t *testing.T) {
	e := loaded(t, 900, 900)
	e.BeginDrag(Point{X: 100, Y: 100})
	e.Drag(Point{X: 60, Y: 130})
	e.EndDrag()

	before, _ := e.SourceRegion()
	e.SetZoomPercent(250)
	after, _ := e.SourceRegion()
	if !near(before.X+before.Side/2, after.X+after.Side/2) || !near(before.Y+before.Side/2, after.Y+after.Side/2) {
		t.Errorf("center drifted: before=%+v after=%+v", before, after)
	}
}

func TestSetZoom_ClampsToRange(t *testing.T) {
	e := loaded(t, 100, 100)
	e.SetZoomPercent(1)
	if e.Scale() != 0.1 {
		t.Errorf("scale = %v, want 0.1", e.Scale())
	}
	e.SetZoomPercent(5000)
	if e.Scale() != 3 {
		t.Errorf("scale = %v, want 3", e.Scale())
	}
}

func TestSetZoom_WithoutImageIsNoop(t *testing.T) {
	e := New(Options{})
	e.SetZoom(2)
	if e.Scale() != 1 || e.Offset() != (Point{}) {
		t.Errorf("state changed without image: %+v", e.State())
	}
}

func TestDrag(t *testing.T) {
	e := loaded(t, 300, 300)

	e.Drag(Point{X: 50, Y: 50})
	if e.Offset() != (Point{}) {
		t.Fatalf("drag without begin moved image: %+v", e.Offset())
	}

	e.BeginDrag(Point{X: 10, Y: 20})
	e.BeginDrag(Point{X: 999, Y: 999}) // sürerken yok sayılır
	e.Drag(Point{X: 40, Y: 10})
	if e.Offset() != (Point{X: 30, Y: -10}) {
		t.Errorf("offset = %+v", e.Offset())
	}
	e.Drag(Point{X: 1000, Y: 1000})
	if e.Offset() != (Point{X: 990, Y: 980}) {
		t.Errorf("drag must not clamp, offset = %+v", e.Offset())
	}
	e.EndDrag()
	e.Drag(Point{X: 0, Y: 0})
	if e.Offset() != (Point{X: 990, Y: 980}) || e.Dragging() {
		t.Errorf("drag after end moved image: %+v", e.Offset())
	}
}

func TestBeginDrag_WithoutImageIsNoop(t *testing.T) {
	e := New(Options{})
	e.BeginDrag(Point{X: 1, Y: 1})
	if e.Dragging() {
		t.Error("dragging without image")
	}
}

func TestTouchAndPointerProduceSameOffsets(t *testing.T) {
	vp := ViewportRect{Left: 120, Top: 40}
	path := []PointerInput{{ClientX: 130, ClientY: 60}, {ClientX: 170, ClientY: 20}, {ClientX: 90, ClientY: 300}}

	mouse := loaded(t, 400, 200)
	touch := loaded(t, 400, 200)

	mouse.BeginDrag(path[0].Point(vp))
	tp, ok := TouchInput{Touches: path[:1]}.Point(vp)
	if !ok {
		t.Fatal("touch point missing")
	}
	touch.BeginDrag(tp)

	for _, in := range path[1:] {
		mouse.Drag(in.Point(vp))
		p, _ := TouchInput{Touches: []PointerInput{in, {ClientX: -1, ClientY: -1}}}.Point(vp)
		touch.Drag(p)
		if mouse.Offset() != touch.Offset() {
			t.Fatalf("offsets differ: mouse=%+v touch=%+v", mouse.Offset(), touch.Offset())
		}
	}

	if _, ok := (TouchInput{}).Point(vp); ok {
		t.Error("empty touch list should report ok=false")
	}
}

func TestRasterize_NoImage(t *testing.T) {
	e := New(Options{})
	if _, err := e.Rasterize(); !errors.Is(err, ErrNoImage) {
		t.Errorf("Rasterize: %v", err)
	}
	if _, err := e.RasterizeDataURL(); !errors.Is(err, ErrNoImage) {
		t.Errorf("RasterizeDataURL: %v", err)
	}
}

func sameColor(got color.Color, want color.RGBA) bool {
	r, g, b, _ := got.RGBA()
	d := func(a uint32, b uint8) bool { return math.Abs(float64(a>>8)-float64(b)) <= 16 }
	return d(r, want.R) && d(g, want.G) && d(b, want.B)
}

func TestRasterize_ZoomedQuadrants(t *testing.T) {
	e := loaded(t, 600, 600)
	e.SetZoom(2)

	img, err := e.Rasterize()
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 800 {
		t.Fatalf("output = %v, want 800x800", b)
	}
	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{100, 100, red},
		{700, 100, green},
		{100, 700, blue},
		{700, 700, black},
	}
	for _, c := range checks {
		if got := img.At(c.x, c.y); !sameColor(got, c.want) {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestRasterize_OutsideImageIsWhite(t *testing.T) {
	e := loaded(t, 600, 600)
	e.BeginDrag(Point{})
	e.Drag(Point{X: 150, Y: 150})
	e.EndDrag()

	img, err := e.Rasterize()
	if err != nil {
		t.Fatal(err)
	}
	if got := img.At(50, 50); !sameColor(got, color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("uncovered pixel = %v, want white", got)
	}
	if got := img.At(600, 600); !sameColor(got, red) {
		t.Errorf("covered pixel = %v, want red", got)
	}
}

func TestRasterizeDataURL(t *testing.T) {
	e := loaded(t, 640, 480)
	url, err := e.RasterizeDataURL()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, DataURLPrefix) {
		t.Fatalf("prefix = %q", url[:32])
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, DataURLPrefix))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 800 || cfg.Height != 800 {
		t.Errorf("jpeg = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestCancel_DiscardsState(t *testing.T) {
	e := loaded(t, 300, 300)
	e.SetZoom(2)
	e.BeginDrag(Point{X: 5, Y: 5})
	e.Cancel()

	if e.Loaded() || e.Dragging() || e.Scale() != 1 || e.Offset() != (Point{}) {
		t.Errorf("state after cancel: %+v", e.State())
	}
	if _, err := e.SourceRegion(); !errors.Is(err, ErrNoImage) {
		t.Errorf("SourceRegion after cancel: %v", err)
	}
	if err := e.Load(quadrants(300, 300)); err != nil {
		t.Fatalf("reload after cancel: %v", err)
	}
	if e.Scale() != 1 {
		t.Errorf("reload should start fresh, scale = %v", e.Scale())
	}
}

func TestOptions_Defaults(t *testing.T) {
	o := New(Options{JPEGQuality: 150, MinZoomPercent: 50, MaxZoomPercent: 20}).Options()
	if o.ViewportSize != 300 || o.OutputSize != 800 || o.JPEGQuality != 85 {
		t.Errorf("defaults not applied: %+v", o)
	}
	if o.MinZoomPercent != 50 || o.MaxZoomPercent != 300 {
		t.Errorf("zoom range = %d..%d", o.MinZoomPercent, o.MaxZoomPercent)
	}
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, quadrants(40, 20)); err != nil {
		t.Fatal(err)
	}
	img, format, err := DecodeImage(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" || img.Bounds().Dx() != 40 {
		t.Errorf("format=%s bounds=%v", format, img.Bounds())
	}

	if _, _, err := DecodeImage(strings.NewReader("not an image")); err == nil {
		t.Error("expected error for garbage input")
	}
}

// pngWithDeclaredSize küçük bir PNG'nin IHDR boyutlarını değiştirip CRC'yi yeniden hesaplar.
func pngWithDeclaredSize(t *testing.T, w, h uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	// 8 bayt imza, 4 bayt uzunluk, "IHDR", ardından genişlik ve yükseklik
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestDecodeImage_RejectsHugeDimensions(t *testing.T) {
	data := pngWithDeclaredSize(t, 12000, 12000)
	if len(data) > 1024 {
		t.Fatalf("fixture should stay tiny, got %d bytes", len(data))
	}
	_, _, err := DecodeImage(bytes.NewReader(data))
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("err = %v, want ErrImageTooLarge", err)
	}
}

func TestDecodeImage_RejectsOversizedFile(t *testing.T) {
	big := bytes.Repeat([]byte{0}, MaxUploadBytes+1)
	if _, _, err := DecodeImage(bytes.NewReader(big)); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("err = %v, want ErrImageTooLarge", err)
	}
}
