//go:build tinygo && nrf9160

package twim

import (
	"runtime/volatile"
	"unsafe"

	"periph.io/x/conn/v3/physic"
)

// Instance base addresses. Secure aliases live at 0x5000_0000, non-secure
// at 0x4000_0000.
const (
	TWIM0S uintptr = 0x50008000
	TWIM1S uintptr = 0x50009000
	TWIM2S uintptr = 0x5000A000
	TWIM3S uintptr = 0x5000B000

	TWIM0NS uintptr = 0x40008000
	TWIM1NS uintptr = 0x40009000
	TWIM2NS uintptr = 0x4000A000
	TWIM3NS uintptr = 0x4000B000
)

// Register offsets.
const (
	offTasksStartTx  = 0x008
	offEventsStopped = 0x104
	offEventsError   = 0x124
	offEventsLastRx  = 0x15C
	offEventsLastTx  = 0x160
	offShorts        = 0x200
	offEnable        = 0x500
	offPselSCL       = 0x508
	offPselSDA       = 0x50C
	offFrequency     = 0x524
	offRxdPtr        = 0x534
	offRxdMaxCnt     = 0x538
	offRxdAmount     = 0x53C
	offRxdList       = 0x540
	offTxdPtr        = 0x544
	offTxdMaxCnt     = 0x548
	offTxdAmount     = 0x54C
	offTxdList       = 0x550
	offAddress       = 0x588
)

const (
	enableEnabled  = 6
	enableDisabled = 0

	pselPinMask    = 0x1F
	frequencyK100  = 0x01980000
	frequencyK250  = 0x04000000
	frequencyK400  = 0x06400000
	listDisabled   = 0
	taskTrigger    = 1
	eventGenerated = 1
	eventCleared   = 0
)

// MMIO is a Peripheral backed by the memory-mapped TWIM register block.
type MMIO struct {
	base uintptr
}

var _ Peripheral = (*MMIO)(nil)

// NewMMIO wraps the TWIM instance at base. The caller must hold the only
// reference to that instance.
func NewMMIO(base uintptr) *MMIO {
	return &MMIO{base: base}
}

func (m *MMIO) reg(off uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(m.base + off))
}

func (m *MMIO) Connect(scl, sda Pin) {
	m.reg(offPselSCL).Set(uint32(scl) & pselPinMask)
	m.reg(offPselSDA).Set(uint32(sda) & pselPinMask)
}

func (m *MMIO) SetFrequency(f physic.Frequency) {
	switch {
	case f >= 400*physic.KiloHertz:
		m.reg(offFrequency).Set(frequencyK400)
	case f >= 250*physic.KiloHertz:
		m.reg(offFrequency).Set(frequencyK250)
	default:
		m.reg(offFrequency).Set(frequencyK100)
	}
}

func (m *MMIO) Enable()  { m.reg(offEnable).Set(enableEnabled) }
func (m *MMIO) Disable() { m.reg(offEnable).Set(enableDisabled) }

func (m *MMIO) SetShorts(s Shorts) { m.reg(offShorts).Set(uint32(s)) }

func (m *MMIO) SetAddress(addr uint8) { m.reg(offAddress).Set(uint32(addr & 0x7F)) }

func (m *MMIO) SetTxBuffer(buf []byte) {
	m.reg(offTxdList).Set(listDisabled)
	m.reg(offTxdMaxCnt).Set(uint32(len(buf)))
	m.reg(offTxdPtr).Set(bufAddr(buf))
}

func (m *MMIO) SetRxBuffer(buf []byte) {
	m.reg(offRxdList).Set(listDisabled)
	m.reg(offRxdMaxCnt).Set(uint32(len(buf)))
	m.reg(offRxdPtr).Set(bufAddr(buf))
}

func (m *MMIO) StartTx() { m.reg(offTasksStartTx).Set(taskTrigger) }

func (m *MMIO) Event(e Event) bool {
	return m.reg(eventOffset(e)).Get() == eventGenerated
}

func (m *MMIO) ClearEvent(e Event) { m.reg(eventOffset(e)).Set(eventCleared) }

func (m *MMIO) TxAmount() int { return int(m.reg(offTxdAmount).Get()) }
func (m *MMIO) RxAmount() int { return int(m.reg(offRxdAmount).Get()) }

func eventOffset(e Event) uintptr {
	switch e {
	case EventError:
		return offEventsError
	case EventLastRx:
		return offEventsLastRx
	case EventLastTx:
		return offEventsLastTx
	default:
		return offEventsStopped
	}
}

func bufAddr(buf []byte) uint32 {
	if len(buf) == 0 {
		return 0
	}
	return uint32(uintptr(unsafe.Pointer(&buf[0])))
}
