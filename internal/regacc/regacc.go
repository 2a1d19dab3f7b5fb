package regacc

import (
	"periph.io/x/conn/v3/physic"
)

// Access reads and writes single 8-bit registers of a device on the bus.
// Implementations halt with a Fault instead of returning errors.
type Access interface {
	ReadRegister(dev, reg uint8) uint8
	WriteRegister(dev, reg, val uint8)
}

// Transport is an Access that also owns the bus peripheral itself.
type Transport interface {
	Access
	Enable(scl, sda uint8, fast bool)
	Disable()
}

const (
	FastMode     = 400 * physic.KiloHertz
	StandardMode = 100 * physic.KiloHertz
)

// Frequency returns the nominal bus clock for the fast/slow selection.
func Frequency(fast bool) physic.Frequency {
	if fast {
		return FastMode
	}
	return StandardMode
}

// WriteMask replaces the bits selected by mask with data and leaves the rest
// of the register untouched.
func WriteMask(a Access, dev, reg, mask, data uint8) {
	tmp := a.ReadRegister(dev, reg)
	tmp &^= mask
	tmp |= data & mask
	a.WriteRegister(dev, reg, tmp)
}

// MaskBits returns a mask with bits h..l (inclusive) set.
func MaskBits(h, l uint8) uint8 {
	v := uint8(1) << h
	v -= uint8(1) << l
	v |= uint8(1) << h
	return v
}
