package adp536x

import (
	"pca20035/internal/regacc"
)

// ChargerState is CHARGER_STATUS in CHG_STATUS_1.
type ChargerState uint8

const (
	ChargerOff ChargerState = iota
	ChargerTrickle
	ChargerFastCC
	ChargerFastCV
	ChargerComplete
	ChargerLDOMode
	ChargerTimerExpired
	ChargerBatteryDetection
)

var chargerStateNames = [...]string{
	"Off",
	"Trickle Charge",
	"Fast Charge (CC)",
	"Fast Charge (CV)",
	"Charge Complete",
	"LDO Mode",
	"Timer Expired",
	"Battery Detection",
}

func (s ChargerState) String() string {
	if int(s) < len(chargerStateNames) {
		return chargerStateNames[s]
	}
	return "Unknown"
}

// Charging reports whether current is flowing into the battery.
func (s ChargerState) Charging() bool {
	return s == ChargerTrickle || s == ChargerFastCC || s == ChargerFastCV
}

// BatteryState is BAT_CHG_STATUS in CHG_STATUS_2.
type BatteryState uint8

const (
	BatteryNormal BatteryState = iota
	BatteryAbsent
	BatteryBelowDead
	BatteryBelowWeak
	BatteryAboveWeak
)

func (s BatteryState) String() string {
	switch s {
	case BatteryNormal:
		return "Normal"
	case BatteryAbsent:
		return "No Battery"
	case BatteryBelowDead:
		return "Below Dead"
	case BatteryBelowWeak:
		return "Below Weak"
	case BatteryAboveWeak:
		return "Above Weak"
	}
	return "Unknown"
}

// ThermistorState is THR_STATUS in CHG_STATUS_2.
type ThermistorState uint8

const (
	ThermistorOff  ThermistorState = 0
	ThermistorCold ThermistorState = 1
	ThermistorCool ThermistorState = 2
	ThermistorWarm ThermistorState = 3
	ThermistorHot  ThermistorState = 4
	ThermistorOK   ThermistorState = 7
)

func (s ThermistorState) String() string {
	switch s {
	case ThermistorOff:
		return "Off"
	case ThermistorCold:
		return "Cold"
	case ThermistorCool:
		return "Cool"
	case ThermistorWarm:
		return "Warm"
	case ThermistorHot:
		return "Hot"
	case ThermistorOK:
		return "OK"
	}
	return "Unknown"
}

type Status struct {
	Charger        ChargerState
	Battery        BatteryState
	Thermistor     ThermistorState
	VBUSLimited    bool
	VBUSOverVolt   bool
	AdaptiveCharge bool  // charge current cut back to hold VBUS up
	SOC            uint8 // percent, valid with the fuel gauge enabled
	BatteryMilliV  int
}

// Monitor reads charger and fuel gauge status. It only needs register
// access, so it can run on a bus already handed back by Release.
type Monitor struct {
	acc regacc.Access
}

func NewMonitor(acc regacc.Access) *Monitor {
	return &Monitor{acc: acc}
}

// Status reads the charger status and fuel gauge registers. A failed
// transfer is reported as an error instead of halting.
func (m *Monitor) Status() (st Status, err error) {
	defer regacc.Recover(&err)

	s1 := m.acc.ReadRegister(Addr, REG_CHG_STATUS_1)
	s2 := m.acc.ReadRegister(Addr, REG_CHG_STATUS_2)
	st.Charger = ChargerState(extract(FieldChargerStatus, s1))
	st.VBUSLimited = extract(FieldVBUSIlimFlag, s1) == 1
	st.VBUSOverVolt = extract(FieldVBUSOv, s1) == 1
	st.AdaptiveCharge = extract(FieldAdpIchg, s1) == 1
	st.Battery = BatteryState(extract(FieldBatChgStatus, s2))
	st.Thermistor = ThermistorState(extract(FieldThrStatus, s2))

	st.SOC = FieldBatSOC.Get(m.acc)

	// VBAT is 13 bits, 1 mV/LSB: VBAT_READ_H holds [12:5], VBAT_READ_L [4:0]
	// in its top bits.
	h := m.acc.ReadRegister(Addr, REG_VBAT_READ_H)
	l := m.acc.ReadRegister(Addr, REG_VBAT_READ_L)
	st.BatteryMilliV = int(h)<<5 | int(l>>3)

	return st, nil
}

func extract(f regacc.Field, v uint8) uint8 {
	return (v & f.Mask) >> f.Shift
}
