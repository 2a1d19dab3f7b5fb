// Package twim drives the TWIM (two-wire master with EasyDMA) peripheral of
// nRF91 devices as a register-access transport.
//
// Transfers are programmed as shortcuts so the hardware moves from the
// address byte into the read phase and from the last byte into STOP without
// a software window between phases. Completion is found by polling the
// STOPPED event.
package twim

import (
	"errors"

	"pca20035/internal/regacc"

	"periph.io/x/conn/v3/physic"
)

// Pin is a GPIO number on the P0 port.
type Pin uint8

// Shorts selects the hardware shortcuts between TWIM events and tasks.
type Shorts uint32

const (
	ShortLastTxStartRx Shorts = 1 << 7
	ShortLastTxStop    Shorts = 1 << 9
	ShortLastRxStop    Shorts = 1 << 12
)

type Event uint8

const (
	EventStopped Event = iota
	EventError
	EventLastRx
	EventLastTx
)

// Peripheral is the register-level view of one TWIM instance.
// Buffers handed to SetTxBuffer and SetRxBuffer must stay valid until
// EventStopped is seen.
type Peripheral interface {
	Connect(scl, sda Pin)
	SetFrequency(f physic.Frequency)
	Enable()
	Disable()
	SetShorts(s Shorts)
	SetAddress(addr uint8)
	SetTxBuffer(buf []byte)
	SetRxBuffer(buf []byte)
	StartTx()
	Event(e Event) bool
	ClearEvent(e Event)
	TxAmount() int
	RxAmount() int
}

// ErrPollLimit is carried by the Fault raised when Config.PollLimit runs out.
var ErrPollLimit = errors.New("twim: STOPPED not seen within poll limit")

type Config struct {
	// PollLimit bounds the STOPPED poll. Zero polls forever; a stuck
	// device then hangs the caller.
	PollLimit int
}

// Bus owns a TWIM peripheral and performs single register transactions on
// it. It is not safe for concurrent use.
type Bus struct {
	p         Peripheral
	pollLimit int

	// DMA sources and sinks; EasyDMA reads them in place.
	tx [2]byte
	rx [1]byte
}

var _ regacc.Transport = (*Bus)(nil)

func New(p Peripheral, cfg Config) *Bus {
	return &Bus{p: p, pollLimit: cfg.PollLimit}
}

// Enable binds the pins, selects the bus clock and activates the peripheral.
func (b *Bus) Enable(scl, sda uint8, fast bool) {
	b.p.Connect(Pin(scl), Pin(sda))
	b.p.SetFrequency(regacc.Frequency(fast))
	b.p.Enable()
}

// Disable deactivates the peripheral. Pin selection is kept.
func (b *Bus) Disable() {
	b.p.Disable()
}

// ReadRegister writes reg and reads one byte back in a single transaction
// with a repeated start.
func (b *Bus) ReadRegister(dev, reg uint8) uint8 {
	b.tx[0] = reg
	b.rx[0] = 0

	b.p.SetShorts(ShortLastTxStartRx | ShortLastRxStop)
	b.p.SetAddress(dev)
	b.p.SetTxBuffer(b.tx[:1])
	b.p.SetRxBuffer(b.rx[:1])
	b.p.StartTx()

	b.waitStopped("read", dev, reg)

	if n := b.p.TxAmount(); n != 1 {
		regacc.Halt(&regacc.Fault{Op: "read tx", Dev: dev, Reg: reg, Want: 1, Got: n})
	}
	if n := b.p.RxAmount(); n != 1 {
		regacc.Halt(&regacc.Fault{Op: "read rx", Dev: dev, Reg: reg, Want: 1, Got: n})
	}

	b.p.ClearEvent(EventLastTx)
	b.p.ClearEvent(EventLastRx)
	b.p.ClearEvent(EventStopped)

	return b.rx[0]
}

// WriteRegister transmits reg followed by val and stops.
func (b *Bus) WriteRegister(dev, reg, val uint8) {
	b.tx[0] = reg
	b.tx[1] = val

	b.p.SetShorts(ShortLastTxStop)
	b.p.SetAddress(dev)
	b.p.SetTxBuffer(b.tx[:2])
	b.p.StartTx()

	b.waitStopped("write", dev, reg)

	if n := b.p.TxAmount(); n != 2 {
		regacc.Halt(&regacc.Fault{Op: "write tx", Dev: dev, Reg: reg, Want: 2, Got: n})
	}

	b.p.ClearEvent(EventLastTx)
	b.p.ClearEvent(EventStopped)
}

func (b *Bus) waitStopped(op string, dev, reg uint8) {
	for polls := 0; !b.p.Event(EventStopped); polls++ {
		if b.pollLimit > 0 && polls >= b.pollLimit {
			regacc.Halt(&regacc.Fault{Op: op, Dev: dev, Reg: reg, Err: ErrPollLimit})
		}
	}
}
