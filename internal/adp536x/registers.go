package adp536x

import (
	"pca20035/internal/regacc"
)

const Addr = 0x46

const (
	REG_MANUF_MODEL      = 0x00
	REG_SILICON_REV      = 0x01
	REG_CHG_VBUS_ILIM    = 0x02
	REG_CHG_CURRENT_SET  = 0x04
	REG_CHG_FUNC         = 0x07
	REG_CHG_STATUS_1     = 0x08
	REG_CHG_STATUS_2     = 0x09
	REG_BAT_PROTECT_CTRL = 0x11
	REG_BAT_OC_CHG       = 0x15
	REG_BAT_SOC          = 0x21
	REG_VBAT_READ_H      = 0x25
	REG_VBAT_READ_L      = 0x26
	REG_FUEL_GAUGE_MODE  = 0x27
	REG_BUCK_CFG         = 0x29
	REG_BUCK_OUTPUT      = 0x2A
	REG_BUCKBST_CFG      = 0x2B
	REG_BUCKBST_OUTPUT   = 0x2C
	REG_DEFAULT_SET      = 0x37

	MANUF_MODEL = 0x10
	SILICON_REV = 0x08

	// Writing this to DEFAULT_SET restores every register to its reset value.
	BYTE_FACTORY_RESET = 0x7F
)

// Output voltage codes.
const (
	BUCK_1V8    = 0x18 // 0b011000
	BUCKBST_3V3 = 0x13 // 0b010011
)

// VBUS input current limit codes.
const (
	VBUS_ILIM_50MA  = 0x00
	VBUS_ILIM_100MA = 0x01
	VBUS_ILIM_150MA = 0x02
	VBUS_ILIM_200MA = 0x03
	VBUS_ILIM_250MA = 0x04
	VBUS_ILIM_300MA = 0x05
	VBUS_ILIM_400MA = 0x06
	VBUS_ILIM_500MA = 0x07
)

// Fast charge current codes, 10 mA per step from 10 mA.
const (
	CHG_CURRENT_10MA  = 0x00
	CHG_CURRENT_100MA = 0x09
	CHG_CURRENT_200MA = 0x13
	CHG_CURRENT_320MA = 0x1F
)

// Charge overcurrent protection thresholds.
const (
	OC_CHG_THRESHOLD_25MA  = 0x00
	OC_CHG_THRESHOLD_50MA  = 0x01
	OC_CHG_THRESHOLD_100MA = 0x02
	OC_CHG_THRESHOLD_150MA = 0x03
	OC_CHG_THRESHOLD_200MA = 0x04
	OC_CHG_THRESHOLD_250MA = 0x05
	OC_CHG_THRESHOLD_300MA = 0x06
	OC_CHG_THRESHOLD_400MA = 0x07
)

func field(reg, h, l uint8) regacc.Field {
	return regacc.Field{Dev: Addr, Reg: reg, Mask: regacc.MaskBits(h, l), Shift: l}
}

var (
	FieldVBUSIlim      = field(REG_CHG_VBUS_ILIM, 2, 0)
	FieldChgCurrent    = field(REG_CHG_CURRENT_SET, 4, 0)
	FieldEnChg         = field(REG_CHG_FUNC, 0, 0)
	FieldChargerStatus = field(REG_CHG_STATUS_1, 2, 0)
	FieldVBUSIlimFlag  = field(REG_CHG_STATUS_1, 5, 5)
	FieldAdpIchg       = field(REG_CHG_STATUS_1, 6, 6)
	FieldVBUSOv        = field(REG_CHG_STATUS_1, 7, 7)
	FieldBatChgStatus  = field(REG_CHG_STATUS_2, 2, 0)
	FieldThrStatus     = field(REG_CHG_STATUS_2, 7, 5)
	FieldOCChgHiccup   = field(REG_BAT_PROTECT_CTRL, 2, 2)
	FieldOCDisHiccup   = field(REG_BAT_PROTECT_CTRL, 3, 3)
	FieldOCChg         = field(REG_BAT_OC_CHG, 7, 5)
	FieldBatSOC        = field(REG_BAT_SOC, 6, 0)
	FieldEnFG          = field(REG_FUEL_GAUGE_MODE, 0, 0)
	FieldDischgBuck    = field(REG_BUCK_CFG, 1, 1)
	FieldVoutBuck      = field(REG_BUCK_OUTPUT, 5, 0)
	FieldEnBuckBst     = field(REG_BUCKBST_CFG, 0, 0)
	FieldVoutBuckBst   = field(REG_BUCKBST_OUTPUT, 5, 0)
	FieldDefaultSet    = field(REG_DEFAULT_SET, 7, 0)
)

// Fields lists every register field the driver touches.
func Fields() []regacc.Field {
	return []regacc.Field{
		FieldVBUSIlim, FieldChgCurrent, FieldEnChg,
		FieldChargerStatus, FieldVBUSIlimFlag, FieldAdpIchg, FieldVBUSOv,
		FieldBatChgStatus, FieldThrStatus,
		FieldOCChgHiccup, FieldOCDisHiccup, FieldOCChg,
		FieldBatSOC, FieldEnFG,
		FieldDischgBuck, FieldVoutBuck, FieldEnBuckBst, FieldVoutBuckBst,
		FieldDefaultSet,
	}
}
