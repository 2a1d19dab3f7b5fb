package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"pca20035/internal/adp536x"
)

type StatusSource interface {
	Status() (adp536x.Status, error)
}

type BatteryResponse struct {
	Level      int     `json:"sensor.battery_level"`
	Voltage    float64 `json:"sensor.battery_voltage"`
	State      string  `json:"sensor.battery_state"`
	Charger    string  `json:"sensor.charger_state"`
	IsCharging bool    `json:"sensor.is_charging"`
}

type Server struct {
	pmic StatusSource
}

func Run(port int, pmic StatusSource) error {
	s := &Server{
		pmic: pmic,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.rootHandler)

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("Listening on %s", addr)
	return srv.ListenAndServe()
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.pmic.Status()
	if err != nil {
		log.Printf("Error reading ADP536x: %v", err)
		http.Error(w, "PMIC unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := BatteryResponse{
		Level:      int(st.SOC),
		Voltage:    float64(st.BatteryMilliV) / 1000,
		State:      batteryState(st),
		Charger:    st.Charger.String(),
		IsCharging: st.Charger.Charging(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func batteryState(st adp536x.Status) string {
	if st.Battery == adp536x.BatteryAbsent {
		return "No Battery"
	}
	switch st.Charger {
	case adp536x.ChargerComplete:
		return "Full"
	case adp536x.ChargerTrickle, adp536x.ChargerFastCC, adp536x.ChargerFastCV:
		return "Charging"
	case adp536x.ChargerLDOMode, adp536x.ChargerTimerExpired, adp536x.ChargerBatteryDetection:
		// Input is present but the battery is not taking charge.
		return "Not Charging"
	default:
		return "Discharging"
	}
}
