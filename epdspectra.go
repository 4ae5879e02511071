// Package epdspectra controls Pervasive Displays Spectra tri-color e-paper
// panels via SPI.
//
// The panels display white, black and red, refreshed from two 1-bit planes.
// The driver encodes the panel lifecycle in its handle types: a *Dev is a
// powered-down panel, Init powers it up and returns an *ActiveDev, and only an
// *ActiveDev can transmit buffers and refresh.
//
// See the examples for how to use this package.
package epdspectra

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Panel command opcodes. The values are the panel's vendor-defined wire
// protocol and must not change.
const (
	cmdPSR               byte = 0x00
	cmdPowerOff          byte = 0x02
	cmdPowerOn           byte = 0x04
	cmdBufferBlack       byte = 0x10
	cmdRefresh           byte = 0x12
	cmdBufferRed         byte = 0x13
	cmdActiveTemperature byte = 0xE0
	cmdInputTemperature  byte = 0xE5
)

// Fixed command payloads, valid for all panel sizes other than 4.2".
var (
	dataSoftReset  = []byte{0x0E}
	dataInputTemp  = []byte{0x19}
	dataActiveTemp = []byte{0x02}
	dataPSR        = []byte{0xCF, 0x8D}
	dataNop        = []byte{0x00}
)

// Error kinds returned by driver operations. Each wraps the collaborator's
// own error; use errors.Is to match the kind and errors.Unwrap to reach the
// cause.
var (
	// ErrBus reports a failed SPI bus write.
	ErrBus = errors.New("epdspectra: bus write")
	// ErrDC reports a failed data/command line change.
	ErrDC = errors.New("epdspectra: data/command line")
	// ErrReset reports a failed reset line change.
	ErrReset = errors.New("epdspectra: reset line")
)

// DisplayBuffer supplies the two bit planes a panel refresh transmits.
// *imagebwr.HorizontalMSB implements it.
type DisplayBuffer interface {
	// BlackBuffer returns the black plane, 1 bit per pixel, MSB first.
	BlackBuffer() []byte
	// RedBuffer returns the red plane, same layout.
	RedBuffer() []byte
}

// Opts is the configuration for the panel driver.
type Opts struct {
	// SPIChunkSize caps the size of a single bus write; larger payloads are
	// split into successive writes of at most this many bytes. 0 disables
	// chunking. Hosts with a bounded SPI transfer length (e.g. Linux
	// spidev's default 4096-byte buffer) need this set at or below that
	// limit.
	SPIChunkSize int
}

// Dev is the handle for a powered-down panel. It owns the three control
// lines; the SPI connection is passed per call since the bus may be shared
// with other peripherals between operations.
type Dev struct {
	busy gpio.PinIn  // Busy line, driven low by the panel while it works
	dc   gpio.PinOut // Data/command select (data: high, command: low)
	rst  gpio.PinOut // Reset line, active low

	chunkSize int
}

// New creates a handle for a powered-down panel.
//
// busy is the panel's busy input, dc the data/command select output and rst
// the reset output. opts can be nil for defaults (unchunked bus writes). The
// panel is not touched; call Init to power it up.
func New(busy gpio.PinIn, dc, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if busy == nil || dc == nil || rst == nil {
		return nil, errors.New("epdspectra: busy, dc and rst pins are all required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	if opts.SPIChunkSize < 0 {
		return nil, errors.New("epdspectra: SPIChunkSize must be >= 0")
	}

	return &Dev{
		busy:      busy,
		dc:        dc,
		rst:       rst,
		chunkSize: opts.SPIChunkSize,
	}, nil
}

// Connect configures a SPI port the way the panel expects: Mode0
// (CPOL=0, CPHA=0), 8-bit words, 4MHz.
func Connect(p spi.Port) (spi.Conn, error) {
	return p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
}

// Init powers the panel up and returns the active handle. On failure the
// returned handle is nil and the receiver stays valid for another attempt.
//
// The sequence is a hardware reset pulse followed by the fixed soft-reset,
// temperature and panel-configuration commands. Panel geometry is not
// involved; buffers of any supported size are framed by the caller's
// DisplayBuffer at Update time.
func (d *Dev) Init(c conn.Conn) (*ActiveDev, error) {
	if err := d.dc.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDC, err)
	}
	if err := d.Reset(); err != nil {
		return nil, err
	}

	// Soft reset via PSR, then wait out the panel's internal reset.
	if err := d.sendCommand(c, cmdPSR, dataSoftReset); err != nil {
		return nil, err
	}
	d.waitBusy()

	if err := d.sendCommand(c, cmdInputTemperature, dataInputTemp); err != nil {
		return nil, err
	}
	if err := d.sendCommand(c, cmdActiveTemperature, dataActiveTemp); err != nil {
		return nil, err
	}
	if err := d.sendCommand(c, cmdPSR, dataPSR); err != nil {
		return nil, err
	}

	return &ActiveDev{d: d}, nil
}

// Reset pulses the reset line with the panel's power-on timing. It is safe in
// any lifecycle state; after a reset on an active panel, re-run Init before
// transmitting.
func (d *Dev) Reset() error {
	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: %w", ErrReset, err)
	}
	sleep(1 * time.Millisecond)
	if err := d.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("%w: %w", ErrReset, err)
	}
	sleep(10 * time.Millisecond)
	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: %w", ErrReset, err)
	}
	sleep(5 * time.Millisecond)
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("epdspectra.Dev{busy: %s, dc: %s, rst: %s}", d.busy, d.dc, d.rst)
}

// ActiveDev is the handle for a powered-up panel. It is only obtained from
// Init, so buffer transmission on an uninitialized panel cannot be expressed.
type ActiveDev struct {
	d *Dev
}

// Update transmits both planes and refreshes the panel. It blocks until the
// panel reports the refresh complete, which takes several seconds on e-paper.
func (a *ActiveDev) Update(c conn.Conn, buf DisplayBuffer) error {
	if err := a.d.sendCommand(c, cmdBufferBlack, buf.BlackBuffer()); err != nil {
		return err
	}
	if err := a.d.sendCommand(c, cmdBufferRed, buf.RedBuffer()); err != nil {
		return err
	}

	if err := a.d.sendCommand(c, cmdPowerOn, dataNop); err != nil {
		return err
	}
	a.d.waitBusy()

	if err := a.d.sendCommand(c, cmdRefresh, dataNop); err != nil {
		return err
	}
	a.d.waitBusy()
	return nil
}

// PowerOff shuts the panel down and returns the powered-down handle. On
// failure the returned handle is nil and the receiver stays active from the
// caller's perspective; retry or Reset.
func (a *ActiveDev) PowerOff(c conn.Conn) (*Dev, error) {
	if err := a.d.sendCommand(c, cmdPowerOff, dataNop); err != nil {
		return nil, err
	}
	a.d.waitBusy()

	if err := a.d.dc.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDC, err)
	}
	// Internal discharge time before cutting the power domain.
	sleep(150 * time.Millisecond)
	if err := a.d.rst.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReset, err)
	}
	return a.d, nil
}

// Reset pulses the reset line. The handle stays typed active; re-run Init on
// the powered-down handle after a PowerOff if the panel state is in doubt.
func (a *ActiveDev) Reset() error {
	return a.d.Reset()
}

// String returns a string representation of the device.
func (a *ActiveDev) String() string {
	return fmt.Sprintf("epdspectra.ActiveDev{busy: %s, dc: %s, rst: %s}", a.d.busy, a.d.dc, a.d.rst)
}

// sendCommand frames one command: opcode byte with dc low, payload with dc
// high.
func (d *Dev) sendCommand(c conn.Conn, cmd byte, data []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("%w: %w", ErrDC, err)
	}
	if err := d.write(c, []byte{cmd}); err != nil {
		return err
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: %w", ErrDC, err)
	}
	return d.write(c, data)
}

// write sends data over the bus, split into chunks when a chunk size is
// configured. The panel is a plain data sink mid-command, so the split is
// invisible to it as long as byte order is preserved.
func (d *Dev) write(c conn.Conn, data []byte) error {
	if d.chunkSize > 0 {
		for len(data) > d.chunkSize {
			if err := c.Tx(data[:d.chunkSize], nil); err != nil {
				return fmt.Errorf("%w: %w", ErrBus, err)
			}
			data = data[d.chunkSize:]
		}
	}
	if len(data) == 0 {
		return nil
	}
	if err := c.Tx(data, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrBus, err)
	}
	return nil
}

// waitBusy polls the busy line until the panel is idle. The line is active
// low; periph.io pin reads cannot fail, so the wait is unbounded by design
// and a caller needing bounded latency must wrap the operation.
func (d *Dev) waitBusy() {
	for d.busy.Read() == gpio.Low {
		sleep(time.Millisecond)
	}
}

// sleep is time.Sleep, indirected so tests don't spend real panel timings.
var sleep = time.Sleep
