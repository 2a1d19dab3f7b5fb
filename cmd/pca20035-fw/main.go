//go:build tinygo && nrf9160

package main

import (
	"time"

	"pca20035/internal/adp536x"
	"pca20035/internal/board"
	"pca20035/internal/twim"
)

func main() {
	bus := twim.New(twim.NewMMIO(twim.TWIM2S), twim.Config{})

	// Halts here on a missing or unexpected PMIC.
	board.PowerMgmtInit(bus, adp536x.DefaultConfig())
	println("power: rails up, charger enabled")

	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	for t := range tick.C {
		println(t.Format("15:04:05"), "Heartbeat")
	}
}
