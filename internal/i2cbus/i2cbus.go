// Package i2cbus adapts a Tx-shaped I2C bus (periph.io host buses, TinyGo
// machine.I2C) to a register-access transport.
package i2cbus

import (
	"pca20035/internal/regacc"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// Transport issues register reads as a write of the register address with a
// repeated start into a one-byte read, and register writes as a two-byte
// write.
type Transport struct {
	bus drivers.I2C

	speed    physic.Frequency
	speedErr error

	w [2]byte
	r [1]byte
}

var _ regacc.Transport = (*Transport)(nil)

func New(bus drivers.I2C) *Transport {
	return &Transport{bus: bus}
}

// Enable sets the bus clock when the bus supports it. Pin routing is fixed by
// the host, so scl and sda are ignored.
func (t *Transport) Enable(scl, sda uint8, fast bool) {
	t.speed, t.speedErr = 0, nil
	pb, ok := t.bus.(i2c.Bus)
	if !ok {
		return
	}
	// Many i2c-dev adapters have their clock fixed in the device tree and
	// refuse SetSpeed; the transfer itself still works, so the error is kept
	// for the caller to report rather than raised.
	f := regacc.Frequency(fast)
	if err := pb.SetSpeed(f); err != nil {
		t.speedErr = err
		return
	}
	t.speed = f
}

// Speed returns the clock applied by the last Enable. It is zero when the bus
// has no speed control or refused the request, in which case err says why.
func (t *Transport) Speed() (physic.Frequency, error) {
	return t.speed, t.speedErr
}

// Disable is a no-op; the bus stays open for its owner.
func (t *Transport) Disable() {}

func (t *Transport) ReadRegister(dev, reg uint8) uint8 {
	t.w[0] = reg
	t.r[0] = 0
	if err := t.bus.Tx(uint16(dev), t.w[:1], t.r[:1]); err != nil {
		regacc.Halt(&regacc.Fault{Op: "read", Dev: dev, Reg: reg, Err: err})
	}
	return t.r[0]
}

func (t *Transport) WriteRegister(dev, reg, val uint8) {
	t.w[0] = reg
	t.w[1] = val
	if err := t.bus.Tx(uint16(dev), t.w[:2], nil); err != nil {
		regacc.Halt(&regacc.Fault{Op: "write", Dev: dev, Reg: reg, Err: err})
	}
}
