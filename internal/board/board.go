// Package board holds the PCA20035 (Thingy:91) power bring-up.
package board

import (
	"pca20035/internal/adp536x"
	"pca20035/internal/regacc"
)

const (
	VBUSCurrentLimit = adp536x.VBUS_ILIM_500MA
	ChargeCurrent    = adp536x.CHG_CURRENT_320MA
	OCChgThreshold   = adp536x.OC_CHG_THRESHOLD_400MA
)

// PowerMgmtInit brings up the PMIC rails and charger, then returns the bus
// so other devices on it can be driven.
func PowerMgmtInit(bus regacc.Transport, cfg adp536x.Config) regacc.Transport {
	pmic := adp536x.New(bus, cfg)

	pmic.Buck1V8Set()
	pmic.BuckBst3V3Set()
	pmic.BuckBstEnable(true)

	// Some components need to boot from ~0 V, so let the buck rail
	// discharge quickly when it is switched off.
	pmic.BuckDischargeSet(true)

	pmic.VBUSCurrentSet(VBUSCurrentLimit)
	pmic.ChargerCurrentSet(ChargeCurrent)
	pmic.OCChgCurrentSet(OCChgThreshold)
	pmic.ChargingEnable(true)

	if cfg.FuelGauge {
		pmic.FuelGaugeEnable(true)
	}

	return pmic.Release()
}
