// Package epdspectra controls Pervasive Displays Spectra tri-color (white,
// black, red) e-paper panels via SPI.
//
// # Display Characteristics
//
// - Bistable electrophoretic display: keeps its image with power removed
// - Three colors encoded as two 1-bit planes (black and red; neither = white)
// - Full-panel refresh only, taking several seconds
// - One command set across the panel family; only buffer geometry varies
//
// Supported panels: 1.54" (152×152), 2.13" (104×212), 2.66" (152×296),
// 2.71" (176×264), 2.87" (128×296), 3.70" (240×416), 4.17" (400×300) and
// 4.37" (176×480).
//
// # Hardware Connection
//
// Connect the panel to your system via SPI plus three GPIO lines:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCK         → SPI Clock (SCLK)
//	MOSI        → SPI Data (MOSI)
//	CS          → SPI Chip Select
//	D/C         → GPIO output (command/data select)
//	RST         → GPIO output (reset, active low)
//	BUSY        → GPIO input (low while the panel works)
//
// # Lifecycle
//
// The panel's power state is part of the driver's types. New returns a *Dev,
// the powered-down handle. Init performs the hardware reset pulse and the
// panel's fixed power-up command sequence and returns an *ActiveDev; Update
// and PowerOff exist only on *ActiveDev, so transmitting to an uninitialized
// panel does not compile. PowerOff hands the *Dev back for a later Init.
//
// A failed Init returns no active handle and a failed PowerOff returns no
// powered-down handle; the caller keeps the handle for the state the panel
// was last known to be in and decides whether to retry.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/epdspectra"
//		"periph.io/x/devices/v3/epdspectra/imagebwr"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open the SPI bus and configure it for the panel
//		port, _ := spireg.Open("")
//		c, _ := epdspectra.Connect(port)
//
//		// Control lines
//		busy := gpioreg.ByName("GPIO24")
//		dc := gpioreg.ByName("GPIO25")
//		rst := gpioreg.ByName("GPIO17")
//
//		dev, _ := epdspectra.New(busy, dc, rst, nil)
//
//		// Draw into the framebuffer (no I/O)
//		img := epdspectra.EPD2in13.NewImage()
//		img.SetRotation(imagebwr.Rotate90)
//		for x := 0; x < 40; x++ {
//			img.SetColor(x, 10, imagebwr.Red)
//		}
//
//		// Power up, refresh, shut down
//		active, _ := dev.Init(c)
//		active.Update(c, img)
//		dev, _ = active.PowerOff(c)
//	}
//
// # Bus Ownership
//
// The SPI connection is an argument to every operation rather than a field of
// the device: between calls the bus may serve other peripherals. The three
// control lines are owned by the driver for its whole lifetime.
//
// # Chunked Writes
//
// Some hosts cap the length of a single SPI transfer (Linux spidev defaults
// to 4096 bytes). Set Opts.SPIChunkSize at or below the host's limit and the
// driver splits plane transfers transparently:
//
//	dev, _ := epdspectra.New(busy, dc, rst, &epdspectra.Opts{SPIChunkSize: 4096})
//
// # Blocking Behavior
//
// Every operation runs synchronously on the caller's goroutine. Update blocks
// through the panel's refresh, polling the BUSY line with no timeout; if the
// panel is disconnected the call never returns. Wrap the call if bounded
// latency is required.
//
// # Errors
//
// Operations fail fast on the first collaborator error and report it wrapped
// in one of ErrBus, ErrDC or ErrReset. A failed Update leaves the panel's
// physical state ambiguous; recovery is a fresh Init from reset.
package epdspectra
