package epdspectra

import (
	"image"

	"periph.io/x/devices/v3/epdspectra/imagebwr"
)

// Model selects a panel from the Spectra family. The driver's command
// sequences are identical across models; only the buffer geometry differs,
// and that is carried entirely by the framebuffer the model creates.
type Model int

const (
	// EPD1in54 is the 1.54" 152x152 panel.
	EPD1in54 Model = iota
	// EPD2in13 is the 2.13" 104x212 panel.
	EPD2in13
	// EPD2in66 is the 2.66" 152x296 panel.
	EPD2in66
	// EPD2in71 is the 2.71" 176x264 panel.
	EPD2in71
	// EPD2in87 is the 2.87" 128x296 panel.
	EPD2in87
	// EPD3in70 is the 3.70" 240x416 panel.
	EPD3in70
	// EPD4in17 is the 4.17" 400x300 panel.
	EPD4in17
	// EPD4in37 is the 4.37" 176x480 panel.
	EPD4in37
)

// profile holds a panel's physical geometry. Width is always a multiple of 8
// so rows pack into whole bytes.
type profile struct {
	name          string
	width, height int
}

var profiles = map[Model]profile{
	EPD1in54: {"EPD1in54", 152, 152},
	EPD2in13: {"EPD2in13", 104, 212},
	EPD2in66: {"EPD2in66", 152, 296},
	EPD2in71: {"EPD2in71", 176, 264},
	EPD2in87: {"EPD2in87", 128, 296},
	EPD3in70: {"EPD3in70", 240, 416},
	EPD4in17: {"EPD4in17", 400, 300},
	EPD4in37: {"EPD4in37", 176, 480},
}

func (m Model) String() string {
	if p, ok := profiles[m]; ok {
		return p.name
	}
	return "unknown panel"
}

// Bounds returns the panel's physical dimensions in pixels, unrotated.
func (m Model) Bounds() image.Rectangle {
	p := profiles[m]
	return image.Rect(0, 0, p.width, p.height)
}

// BufferSize returns the byte length of one bit plane for the panel.
func (m Model) BufferSize() int {
	p := profiles[m]
	return p.height * p.width / 8
}

// NewImage creates a framebuffer sized for the panel, all pixels white.
func (m Model) NewImage() *imagebwr.HorizontalMSB {
	return imagebwr.NewHorizontalMSB(m.Bounds())
}
