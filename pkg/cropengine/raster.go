package cropengine

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DataURLPrefix RasterizeDataURL çıktısının başı.
const DataURLPrefix = "data:image/jpeg;base64,"

// Rasterize görünen bölgeyi OutputSize x OutputSize bir tuvale çizer. Bölgenin görselin
// dışında kalan kısmı beyaz olur.
func (e *Engine) Rasterize() (*image.RGBA, error) {
	region, err := e.SourceRegion()
	if err != nil {
		return nil, err
	}
	if region.Side <= 0 {
		return nil, ErrEmptyImage
	}

	out := e.opts.OutputSize
	dst := image.NewRGBA(image.Rect(0, 0, out, out))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Kaynak -> hedef afin dönüşümü: d = (s - min - origin) * k
	k := float64(out) / region.Side
	base := e.img.Bounds().Min
	s2d := f64.Aff3{
		k, 0, -(float64(base.X) + region.X) * k,
		0, k, -(float64(base.Y) + region.Y) * k,
	}
	xdraw.CatmullRom.Transform(dst, s2d, e.img, e.img.Bounds(), xdraw.Over, nil)
	return dst, nil
}

// RasterizeJPEG Rasterize çıktısını JPEG olarak kodlar.
func (e *Engine) RasterizeJPEG() ([]byte, error) {
	img, err := e.Rasterize()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.opts.JPEGQuality}); err != nil {
		return nil, fmt.Errorf("jpeg kodlanamadı: %w", err)
	}
	return buf.Bytes(), nil
}

// RasterizeDataURL kırpılmış görseli kartvizitin photo alanına yazılabilecek
// data:image/jpeg;base64,... biçiminde döndürür.
func (e *Engine) RasterizeDataURL() (string, error) {
	raw, err := e.RasterizeJPEG()
	if err != nil {
		return "", err
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(raw), nil
}
