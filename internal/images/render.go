package images

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lehigh-university-libraries/clicklabel/internal/models"
)

// OverlayOpacity is the alpha applied to the label color over a labeled tile
const OverlayOpacity = 0.4

// ErrorText is drawn on tiles whose image cannot be decoded
const ErrorText = "Error reading file"

const (
	placeholderWidth  = 160
	placeholderHeight = 120
	placeholderMargin = 8

	// basicFontPt is the point size basicfont.Face7x13 approximates
	basicFontPt = 10
)

var captionBlack = color.RGBA{A: 255}

// Renderer draws tiles for one label/color configuration
type Renderer struct {
	colors   map[string]color.RGBA
	maxPx    int
	fontSize int
}

// NewRenderer pairs labels[i] with colors[i]. fontSize sizes the error text
// on placeholders.
func NewRenderer(labels, colors []string, maxPx, fontSize int) (*Renderer, error) {
	if len(labels) != len(colors) {
		return nil, fmt.Errorf("got %d labels but %d colors", len(labels), len(colors))
	}
	r := &Renderer{
		colors:   make(map[string]color.RGBA, len(labels)),
		maxPx:    maxPx,
		fontSize: fontSize,
	}
	if r.fontSize <= 0 {
		r.fontSize = basicFontPt
	}
	for i, l := range labels {
		c, err := ParseColor(colors[i])
		if err != nil {
			return nil, fmt.Errorf("color for label %q: %w", l, err)
		}
		r.colors[l] = c
	}
	return r, nil
}

// Color returns the color bound to label; unlabeled tiles are black
func (r *Renderer) Color(label models.Label) color.RGBA {
	if !label.IsSet() {
		return captionBlack
	}
	if c, ok := r.colors[label.Value()]; ok {
		return c
	}
	return captionBlack
}

// Title is the tile heading, the base filename
func Title(path string) string {
	return filepath.Base(path)
}

// Caption is the text shown under a tile
func Caption(label models.Label) string {
	return "Label: " + label.String()
}

// CaptionColor is black for unlabeled tiles, otherwise the label color
func (r *Renderer) CaptionColor(label models.Label) string {
	return Hex(r.Color(label))
}

// Render loads path and applies the label overlay. Decode failures never
// surface as errors: the returned image is a placeholder and ok is false.
func (r *Renderer) Render(path string, label models.Label) (img image.Image, ok bool) {
	src, err := decodeFile(path)
	var canvas *image.RGBA
	if err != nil {
		slog.Debug("Failed to decode image, using placeholder", "path", path, "error", err)
		canvas = r.placeholder()
	} else {
		canvas = r.fit(src)
		ok = true
	}

	if label.IsSet() {
		c := r.Color(label)
		overlay := color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(OverlayOpacity * 255)}
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(overlay), image.Point{}, draw.Over)
	}

	return canvas, ok
}

// RenderPNG renders the tile and encodes it to w
func (r *Renderer) RenderPNG(w io.Writer, path string, label models.Label) error {
	img, _ := r.Render(path, label)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode tile: %w", err)
	}
	return nil
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// fit copies src into a new RGBA canvas scaled down so neither side
// exceeds maxPx. Images already within bounds are copied as-is.
func (r *Renderer) fit(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if r.maxPx > 0 && (w > r.maxPx || h > r.maxPx) {
		if w >= h {
			h = max(1, h*r.maxPx/w)
			w = r.maxPx
		} else {
			w = max(1, w*r.maxPx/h)
			h = r.maxPx
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		return dst
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// placeholder is a white canvas carrying ErrorText at the configured font
// size. The canvas grows when the text would not fit.
func (r *Renderer) placeholder() *image.RGBA {
	face := basicfont.Face7x13
	metrics := face.Metrics()

	dr := &font.Drawer{Src: image.NewUniform(captionBlack), Face: face}
	tw := dr.MeasureString(ErrorText).Ceil()
	th := metrics.Height.Ceil()

	text := image.NewRGBA(image.Rect(0, 0, tw, th))
	dr.Dst = text
	dr.Dot = fixed.Point26_6{X: 0, Y: metrics.Ascent}
	dr.DrawString(ErrorText)

	sw := max(1, tw*r.fontSize/basicFontPt)
	sh := max(1, th*r.fontSize/basicFontPt)
	w := max(placeholderWidth, sw+2*placeholderMargin)
	h := max(placeholderHeight, sh+2*placeholderMargin)

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), image.White, image.Point{}, draw.Src)

	x, y := (w-sw)/2, (h-sh)/2
	draw.NearestNeighbor.Scale(rgba, image.Rect(x, y, x+sw, y+sh), text, text.Bounds(), draw.Over, nil)
	return rgba
}
