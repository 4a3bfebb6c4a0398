package banner

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"time"

	"image-resizer/internal/metrics"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// Resizer renders banner variants of a source image. It holds no mutable
// state and is safe for concurrent use.
type Resizer struct {
	filter imaging.ResampleFilter
}

func NewResizer() *Resizer {
	return &Resizer{filter: imaging.Lanczos}
}

// Decode parses an encoded raster (png, jpeg, gif, bmp, tiff, webp), applying
// EXIF orientation. Only the first frame of animated input is used.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Contain scales img to fit inside d while keeping its aspect ratio and
// centers it on an opaque white canvas of exactly d.Width x d.Height.
func (r *Resizer) Contain(img image.Image, d Dimension) *image.NRGBA {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	canvas := imaging.New(d.Width, d.Height, color.White)
	if srcW == 0 || srcH == 0 {
		return canvas
	}

	scale := math.Min(float64(d.Width)/float64(srcW), float64(d.Height)/float64(srcH))
	fitW := clamp(int(math.Round(float64(srcW)*scale)), 1, d.Width)
	fitH := clamp(int(math.Round(float64(srcH)*scale)), 1, d.Height)

	fitted := imaging.Resize(img, fitW, fitH, r.filter)

	return imaging.OverlayCenter(canvas, fitted, 1.0)
}

// RenderPNG produces the PNG encoding of Contain(img, d).
func (r *Resizer) RenderPNG(img image.Image, d Dimension) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, r.Contain(img, d), imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", d.Key(), err)
	}
	return buf.Bytes(), nil
}

// ResizeAll decodes source once and renders every dimension concurrently.
// The result maps Dimension.Key() to a PNG data URL. The first failure cancels
// the remaining work and no partial result is returned.
func (r *Resizer) ResizeAll(ctx context.Context, source []byte, dims []Dimension) (map[string]string, error) {
	img, err := Decode(source)
	if err != nil {
		metrics.ResizeErrors.WithLabelValues("decode").Inc()
		return nil, err
	}

	rendered := make([]string, len(dims))

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range dims {
		i, d := i, d
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			data, err := r.RenderPNG(img, d)
			if err != nil {
				metrics.ResizeErrors.WithLabelValues("encode").Inc()
				return err
			}
			metrics.ResizeDuration.WithLabelValues(d.Key()).Observe(time.Since(start).Seconds())

			rendered[i] = EncodeDataURL(MediaTypePNG, data)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]string, len(dims))
	for i, d := range dims {
		i, d := i, d
		result[d.Key()] = rendered[i]
	}

	return result, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
