// Package simdev simulates an ADP536x attached to a TWIM peripheral.
//
// A Device can stand in for the hardware at two levels: as a twim.Peripheral
// (register-level TWIM with EasyDMA buffers, shortcuts and events), or as a
// Tx-shaped bus (drivers.I2C and periph i2c.Bus). Both paths update the same
// register file and append to the same transaction log.
package simdev

import (
	"errors"
	"fmt"

	"pca20035/internal/twim"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

const (
	DefaultAddr = 0x46

	ManufModel = 0x10
	SiliconRev = 0x08
)

var ErrNACK = errors.New("simdev: address not acknowledged")

type Device struct {
	Addr uint8
	Regs [256]byte

	// Fault injection.
	TxShort    int  // bytes missing from the reported TX amount
	RxShort    int  // bytes missing from the reported RX amount
	StallPolls int  // STOPPED polls answered "not generated" per transfer
	Absent     bool // nobody acknowledges the address

	Log []i2ctest.IO

	// TWIM state as last programmed.
	Enabled   bool
	SCL, SDA  twim.Pin
	Speed     physic.Frequency
	Shorts    twim.Shorts
	target    uint8
	txBuf     []byte
	rxBuf     []byte
	events    [4]bool
	txAmount  int
	rxAmount  int
	stall     int
	ptr       uint8
	readOnly  [256]bool
	Transfers int
}

var (
	_ twim.Peripheral = (*Device)(nil)
	_ drivers.I2C     = (*Device)(nil)
	_ i2c.Bus         = (*Device)(nil)
)

// New returns a device at DefaultAddr with cleared registers and the
// identity registers of a genuine part.
func New() *Device {
	d := &Device{Addr: DefaultAddr}
	d.Regs[0x00] = ManufModel
	d.Regs[0x01] = SiliconRev
	for _, r := range []uint8{0x00, 0x01, 0x08, 0x09, 0x21, 0x25, 0x26} {
		d.readOnly[r] = true
	}
	return d
}

// write consumes a register pointer followed by data bytes.
func (d *Device) write(w []byte) {
	if len(w) == 0 {
		return
	}
	d.ptr = w[0]
	for _, b := range w[1:] {
		if !d.readOnly[d.ptr] {
			d.Regs[d.ptr] = b
		}
		d.ptr++
	}
}

func (d *Device) read(r []byte) {
	for i := range r {
		r[i] = d.Regs[d.ptr]
		d.ptr++
	}
}

func (d *Device) record(addr uint8, w, r []byte) {
	io := i2ctest.IO{Addr: uint16(addr)}
	if len(w) > 0 {
		io.W = append([]byte(nil), w...)
	}
	if len(r) > 0 {
		io.R = append([]byte(nil), r...)
	}
	d.Log = append(d.Log, io)
}

// twim.Peripheral

func (d *Device) Connect(scl, sda twim.Pin) {
	d.SCL, d.SDA = scl, sda
}

func (d *Device) SetFrequency(f physic.Frequency) { d.Speed = f }
func (d *Device) Enable()                         { d.Enabled = true }
func (d *Device) Disable()                        { d.Enabled = false }
func (d *Device) SetShorts(s twim.Shorts)         { d.Shorts = s }
func (d *Device) SetAddress(addr uint8)           { d.target = addr }
func (d *Device) SetTxBuffer(buf []byte)          { d.txBuf = buf }
func (d *Device) SetRxBuffer(buf []byte)          { d.rxBuf = buf }
func (d *Device) TxAmount() int                   { return d.txAmount }
func (d *Device) RxAmount() int                   { return d.rxAmount }

// StartTx runs the whole programmed transfer. A disabled peripheral ignores
// the task, so STOPPED never arrives.
func (d *Device) StartTx() {
	if !d.Enabled {
		return
	}
	d.Transfers++
	d.txAmount, d.rxAmount = 0, 0
	d.stall = d.StallPolls

	if d.Absent || d.target != d.Addr {
		d.events[twim.EventError] = true
		d.events[twim.EventStopped] = true
		return
	}

	d.write(d.txBuf)
	d.txAmount = clampAmount(len(d.txBuf) - d.TxShort)
	d.events[twim.EventLastTx] = true

	var rx []byte
	switch {
	case d.Shorts&twim.ShortLastTxStartRx != 0:
		d.read(d.rxBuf)
		rx = d.rxBuf
		d.rxAmount = clampAmount(len(d.rxBuf) - d.RxShort)
		d.events[twim.EventLastRx] = true
		if d.Shorts&twim.ShortLastRxStop != 0 {
			d.events[twim.EventStopped] = true
		}
	case d.Shorts&twim.ShortLastTxStop != 0:
		d.events[twim.EventStopped] = true
	}
	d.record(d.target, d.txBuf, rx)
}

func (d *Device) Event(e twim.Event) bool {
	if e == twim.EventStopped && d.events[e] && d.stall > 0 {
		d.stall--
		return false
	}
	return d.events[e]
}

func (d *Device) ClearEvent(e twim.Event) { d.events[e] = false }

// Pending reports whether event e is still set, without the stall logic.
func (d *Device) Pending(e twim.Event) bool { return d.events[e] }

func clampAmount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// drivers.I2C / i2c.Bus

func (d *Device) Tx(addr uint16, w, r []byte) error {
	if d.Absent || addr != uint16(d.Addr) {
		return fmt.Errorf("%w: 0x%02X", ErrNACK, addr)
	}
	d.Transfers++
	d.write(w)
	d.read(r)
	d.record(uint8(addr), w, r)
	return nil
}

func (d *Device) SetSpeed(f physic.Frequency) error {
	d.Speed = f
	return nil
}

func (d *Device) String() string { return "simdev" }
