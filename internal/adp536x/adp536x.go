// Package adp536x configures the ADP5360/ADP5361 power management IC:
// regulator voltages and enables, buck discharge, charger limits and
// charging enable.
//
// A Device owns its bus transport from New until Release. Every operation
// is a masked read-modify-write of one register field, so bits outside the
// field keep whatever the chip or an earlier call left there.
package adp536x

import (
	"errors"

	"pca20035/internal/regacc"
)

// ErrReleased is carried by the Fault raised when a released Device is used.
var ErrReleased = errors.New("adp536x: device released")

type Config struct {
	SCL  uint8
	SDA  uint8
	Fast bool

	// SkipIdentityCheck trusts that the part at Addr is an ADP536x.
	SkipIdentityCheck bool

	// FuelGauge asks bring-up to start the fuel gauge so BAT_SOC updates.
	FuelGauge bool
}

// DefaultConfig is the PCA20035 wiring: SCL on P0.12, SDA on P0.11, 400 kHz.
func DefaultConfig() Config {
	return Config{SCL: 12, SDA: 11, Fast: true}
}

type Device struct {
	bus regacc.Transport
}

// New enables the bus and, unless cfg.SkipIdentityCheck is set, halts if the
// manufacturer/model or silicon revision registers do not match.
func New(bus regacc.Transport, cfg Config) *Device {
	bus.Enable(cfg.SCL, cfg.SDA, cfg.Fast)

	d := &Device{bus: bus}
	if !cfg.SkipIdentityCheck {
		d.checkIdentity()
	}
	return d
}

func (d *Device) checkIdentity() {
	if v := d.bus.ReadRegister(Addr, REG_MANUF_MODEL); v != MANUF_MODEL {
		regacc.Halt(&regacc.Fault{Op: "identity", Dev: Addr, Reg: REG_MANUF_MODEL, Want: MANUF_MODEL, Got: int(v)})
	}
	if v := d.bus.ReadRegister(Addr, REG_SILICON_REV); v != SILICON_REV {
		regacc.Halt(&regacc.Fault{Op: "identity", Dev: Addr, Reg: REG_SILICON_REV, Want: SILICON_REV, Got: int(v)})
	}
}

// Release disables the bus and hands it back. The Device is unusable after.
func (d *Device) Release() regacc.Transport {
	bus := d.transport()
	bus.Disable()
	d.bus = nil
	return bus
}

func (d *Device) transport() regacc.Transport {
	if d.bus == nil {
		regacc.Halt(&regacc.Fault{Op: "use", Dev: Addr, Err: ErrReleased})
	}
	return d.bus
}

func (d *Device) set(f regacc.Field, v uint8) {
	f.Set(d.transport(), v)
}

func bit(on bool) uint8 {
	if on {
		return 1
	}
	return 0
}

// Identity returns the manufacturer/model and silicon revision registers.
func (d *Device) Identity() (model, rev uint8) {
	bus := d.transport()
	return bus.ReadRegister(Addr, REG_MANUF_MODEL), bus.ReadRegister(Addr, REG_SILICON_REV)
}

func (d *Device) Buck1V8Set() {
	d.set(FieldVoutBuck, BUCK_1V8)
}

func (d *Device) BuckBst3V3Set() {
	d.set(FieldVoutBuckBst, BUCKBST_3V3)
}

func (d *Device) BuckBstEnable(enable bool) {
	d.set(FieldEnBuckBst, bit(enable))
}

// BuckDischargeSet switches the buck output discharge resistor. With it on,
// the rail falls to ~0 V quickly once the buck is turned off.
func (d *Device) BuckDischargeSet(enable bool) {
	d.set(FieldDischgBuck, bit(enable))
}

// VBUSCurrentSet programs the VBUS input current limit, one of VBUS_ILIM_*.
func (d *Device) VBUSCurrentSet(code uint8) {
	d.set(FieldVBUSIlim, code)
}

// ChargerCurrentSet programs the fast charge current, one of CHG_CURRENT_*.
func (d *Device) ChargerCurrentSet(code uint8) {
	d.set(FieldChgCurrent, code)
}

// OCChgCurrentSet programs the charge overcurrent threshold, one of
// OC_CHG_THRESHOLD_*.
func (d *Device) OCChgCurrentSet(code uint8) {
	d.set(FieldOCChg, code)
}

func (d *Device) ChargingEnable(enable bool) {
	d.set(FieldEnChg, bit(enable))
}

func (d *Device) OCChgHiccupSet(enable bool) {
	d.set(FieldOCChgHiccup, bit(enable))
}

func (d *Device) OCDisHiccupSet(enable bool) {
	d.set(FieldOCDisHiccup, bit(enable))
}

func (d *Device) FuelGaugeEnable(enable bool) {
	d.set(FieldEnFG, bit(enable))
}

// FactoryReset restores all registers to their power-on values.
func (d *Device) FactoryReset() {
	d.set(FieldDefaultSet, BYTE_FACTORY_RESET)
}
