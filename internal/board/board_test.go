package board

import (
	"testing"

	"pca20035/internal/adp536x"
	"pca20035/internal/i2cbus"
	"pca20035/internal/regacc"
	"pca20035/internal/simdev"
	"pca20035/internal/twim"
)

// Register contents after bring-up from an all-zero register file.
var wantRegs = map[uint8]uint8{
	adp536x.REG_BUCK_OUTPUT:     0x18,
	adp536x.REG_BUCKBST_OUTPUT:  0x13,
	adp536x.REG_BUCKBST_CFG:     0x01,
	adp536x.REG_BUCK_CFG:        0x02,
	adp536x.REG_CHG_VBUS_ILIM:   0x07,
	adp536x.REG_CHG_CURRENT_SET: 0x1F,
	adp536x.REG_BAT_OC_CHG:      0xE0,
	adp536x.REG_CHG_FUNC:        0x01,
}

func TestPowerMgmtInit(t *testing.T) {
	tests := []struct {
		name string
		bus  func(sim *simdev.Device) regacc.Transport
	}{
		{"twim", func(sim *simdev.Device) regacc.Transport { return twim.New(sim, twim.Config{}) }},
		{"tx bus", func(sim *simdev.Device) regacc.Transport { return i2cbus.New(sim) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := simdev.New()
			bus := tt.bus(sim)

			if got := PowerMgmtInit(bus, adp536x.DefaultConfig()); got != bus {
				t.Fatal("bus not handed back")
			}

			for reg := 0; reg < len(sim.Regs); reg++ {
				want, touched := wantRegs[uint8(reg)]
				switch {
				case touched && sim.Regs[reg] != want:
					t.Errorf("reg 0x%02X = 0x%02X, want 0x%02X", reg, sim.Regs[reg], want)
				case !touched && reg > adp536x.REG_SILICON_REV && sim.Regs[reg] != 0:
					t.Errorf("reg 0x%02X unexpectedly written: 0x%02X", reg, sim.Regs[reg])
				}
			}

			// identity reads, then a read and a write per setter
			if want := 2 + 2*len(wantRegs); len(sim.Log) != want {
				t.Errorf("%d transactions, want %d", len(sim.Log), want)
			}
			for _, io := range sim.Log {
				if io.Addr != adp536x.Addr {
					t.Errorf("transaction to 0x%02X", io.Addr)
				}
			}
		})
	}
}

func TestPowerMgmtInitFuelGauge(t *testing.T) {
	sim := simdev.New()
	cfg := adp536x.DefaultConfig()
	cfg.FuelGauge = true
	PowerMgmtInit(i2cbus.New(sim), cfg)

	if sim.Regs[adp536x.REG_FUEL_GAUGE_MODE]&0x01 == 0 {
		t.Fatalf("FUEL_GAUGE_MODE = 0x%02X, EN_FG clear", sim.Regs[adp536x.REG_FUEL_GAUGE_MODE])
	}
	if sim.Regs[0x24] != 0 {
		t.Errorf("reg 0x24 = 0x%02X, want untouched", sim.Regs[0x24])
	}
	for reg, want := range wantRegs {
		if sim.Regs[reg] != want {
			t.Errorf("reg 0x%02X = 0x%02X, want 0x%02X", reg, sim.Regs[reg], want)
		}
	}
	if want := 2 + 2*(len(wantRegs)+1); len(sim.Log) != want {
		t.Errorf("%d transactions, want %d", len(sim.Log), want)
	}
}

func TestPowerMgmtInitDisablesTWIM(t *testing.T) {
	sim := simdev.New()
	PowerMgmtInit(twim.New(sim, twim.Config{}), adp536x.DefaultConfig())
	if sim.Enabled {
		t.Fatal("TWIM left enabled")
	}
}
