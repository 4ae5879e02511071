// Package imagebwr provides the two-plane black/white/red image format used by
// Spectra tri-color e-paper panels.
//
// The panel stores its frame as two independent 1-bit planes (black and red),
// packed MSB-first with 8 pixels per byte. A pixel with neither bit set is
// white. This package provides the Color type, a color model for converting
// standard Go colors, and the HorizontalMSB image implementation.
package imagebwr

import (
	"image"
	"image/color"
)

// Color is one of the three colors a Spectra panel can display.
// The zero value is White, matching the panel's cleared state.
type Color uint8

const (
	White Color = iota
	Black
	Red
)

// RGBA converts the Color to standard RGBA.
func (c Color) RGBA() (r, g, b, a uint32) {
	switch c {
	case Black:
		return 0, 0, 0, 0xFFFF
	case Red:
		return 0xFFFF, 0, 0, 0xFFFF
	default:
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
		return "White"
	}
}

// FromMono maps a monochrome pixel to a panel color: set pixels render black.
func FromMono(on bool) Color {
	if on {
		return Black
	}
	return White
}

// toColor classifies any color.Color to the nearest panel color.
func toColor(c color.Color) color.Color {
	if p, ok := c.(Color); ok {
		return p
	}
	r16, g16, b16, _ := c.RGBA()
	r, g, b := uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)

	lo, hi := r, r
	if g < lo {
		lo = g
	}
	if g > hi {
		hi = g
	}
	if b < lo {
		lo = b
	}
	if b > hi {
		hi = b
	}

	// Saturated with red dominant reads as red; otherwise split on brightness.
	chroma := hi - lo
	if chroma > 0xFF/3 && r > g && r > b {
		return Red
	}
	if hi > 0xFF/2 {
		return White
	}
	return Black
}

// ColorModel converts colors to the panel's three-color space.
var ColorModel = color.ModelFunc(toColor)

// Rotation is the drawing-space rotation in 90° clockwise increments.
type Rotation uint8

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// HorizontalMSB is a two-plane black/white/red image. Each plane packs 8
// pixels per byte, most significant bit first, row-major with Stride bytes per
// row. A pixel is never set in both planes at once.
type HorizontalMSB struct {
	BlackPix []byte          // Black plane (1 = black)
	RedPix   []byte          // Red plane (1 = red)
	Stride   int             // Bytes per physical row
	Rect     image.Rectangle // Physical (unrotated) bounds, anchored at the origin

	rotation Rotation
}

// NewHorizontalMSB creates a new HorizontalMSB image with the given physical
// dimensions, all pixels white. The width must be a multiple of 8 (panel rows
// are transmitted whole bytes at a time). The image is anchored at the origin;
// only the rectangle's dimensions are used.
func NewHorizontalMSB(r image.Rectangle) *HorizontalMSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalMSB{}
	}
	if w%8 != 0 {
		panic("imagebwr: width must be a multiple of 8")
	}

	stride := w / 8
	planeLen := stride * h
	return &HorizontalMSB{
		BlackPix: make([]byte, planeLen),
		RedPix:   make([]byte, planeLen),
		Stride:   stride,
		Rect:     image.Rect(0, 0, w, h),
	}
}

// SetRotation sets the rotation applied to drawing coordinates.
func (p *HorizontalMSB) SetRotation(rotation Rotation) {
	p.rotation = rotation
}

// Rotation returns the current rotation.
func (p *HorizontalMSB) Rotation() Rotation {
	return p.rotation
}

// ColorModel returns the color model of the image.
func (p *HorizontalMSB) ColorModel() color.Model {
	return ColorModel
}

// Bounds returns the logical (post-rotation) bounds: width and height are
// swapped at Rotate90 and Rotate270.
func (p *HorizontalMSB) Bounds() image.Rectangle {
	switch p.rotation {
	case Rotate90, Rotate270:
		return image.Rect(0, 0, p.Rect.Dy(), p.Rect.Dx())
	default:
		return p.Rect
	}
}

// At returns the color of the pixel at logical (x, y).
// It implements the image.Image interface.
func (p *HorizontalMSB) At(x, y int) color.Color {
	return p.ColorAt(x, y)
}

// ColorAt returns the panel color of the pixel at logical (x, y).
// Out-of-bounds coordinates read as White.
func (p *HorizontalMSB) ColorAt(x, y int) Color {
	px, py, ok := p.transform(x, y)
	if !ok {
		return White
	}
	offset, mask := p.pixOffset(px, py)
	if p.BlackPix[offset]&mask != 0 {
		return Black
	}
	if p.RedPix[offset]&mask != 0 {
		return Red
	}
	return White
}

// Set sets the pixel at logical (x, y), converting c through ColorModel.
// It implements the draw.Image interface.
func (p *HorizontalMSB) Set(x, y int, c color.Color) {
	p.SetColor(x, y, ColorModel.Convert(c).(Color))
}

// SetColor sets the pixel at logical (x, y) to a panel color. This is faster
// than Set() as it doesn't require color conversion. Coordinates mapping
// outside the panel are silently dropped, so callers may draw shapes that
// overhang the edges without bounds checks of their own.
func (p *HorizontalMSB) SetColor(x, y int, c Color) {
	px, py, ok := p.transform(x, y)
	if !ok {
		return
	}
	offset, mask := p.pixOffset(px, py)

	// The planes stay mutually exclusive: setting one bit clears the other.
	switch c {
	case Black:
		p.BlackPix[offset] |= mask
		p.RedPix[offset] &^= mask
	case Red:
		p.BlackPix[offset] &^= mask
		p.RedPix[offset] |= mask
	default:
		p.BlackPix[offset] &^= mask
		p.RedPix[offset] &^= mask
	}
}

// BlackBuffer returns the black plane for transmission. The slice aliases the
// image's storage; it is not a copy.
func (p *HorizontalMSB) BlackBuffer() []byte {
	return p.BlackPix
}

// RedBuffer returns the red plane for transmission. The slice aliases the
// image's storage; it is not a copy.
func (p *HorizontalMSB) RedBuffer() []byte {
	return p.RedPix
}

// transform maps logical drawing coordinates to physical panel coordinates,
// inverting the current rotation. The boolean is false when the pixel falls
// off the panel.
func (p *HorizontalMSB) transform(x, y int) (px, py int, ok bool) {
	w, h := p.Rect.Dx(), p.Rect.Dy()

	switch p.rotation {
	case Rotate90:
		px, py = w-1-y, x
	case Rotate180:
		px, py = w-1-x, h-1-y
	case Rotate270:
		px, py = y, h-1-x
	default:
		px, py = x, y
	}

	if px < 0 || px >= w || py < 0 || py >= h {
		return 0, 0, false
	}
	return px, py, true
}

// pixOffset returns the byte offset and bit mask for the physical pixel
// (px, py). The most significant bit holds the leftmost pixel of each byte.
func (p *HorizontalMSB) pixOffset(px, py int) (offset int, mask byte) {
	offset = py*p.Stride + px/8
	mask = 1 << (7 - px%8)
	return
}
