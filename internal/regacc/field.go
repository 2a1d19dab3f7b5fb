package regacc

import "math/bits"

// Field is one configurable bit-field of a device register.
type Field struct {
	Dev   uint8
	Reg   uint8
	Mask  uint8
	Shift uint8
}

// Valid reports whether Mask is a single run of set bits starting at Shift.
func (f Field) Valid() bool {
	if f.Mask == 0 || f.Shift > 7 {
		return false
	}
	if uint8(bits.TrailingZeros8(f.Mask)) != f.Shift {
		return false
	}
	run := f.Mask >> f.Shift
	return run&(run+1) == 0
}

// Set writes v into the field, preserving every other bit of the register.
func (f Field) Set(a Access, v uint8) {
	WriteMask(a, f.Dev, f.Reg, f.Mask, v<<f.Shift)
}

// Get reads the register and returns the field value, shifted down to bit 0.
func (f Field) Get(a Access) uint8 {
	return (a.ReadRegister(f.Dev, f.Reg) & f.Mask) >> f.Shift
}
