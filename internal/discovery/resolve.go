package discovery

import (
	"github.com/rs/zerolog/log"

	"github.com/jsphonorio/ControllerTools/internal/controller"
	"github.com/jsphonorio/ControllerTools/internal/hidreport"
	"github.com/jsphonorio/ControllerTools/internal/hidsrc"
)

// transportDefault is the last resort of every fallback chain. USB implies
// external power, so such a controller is treated as fully charged and
// charging; over Bluetooth nothing can be assumed.
func transportDefault(bluetooth bool) (uint8, controller.Status) {
	if bluetooth {
		return 0, controller.StatusUnknown
	}
	return 100, controller.StatusCharging
}

// resolveFromReport reads the controller's own status report for families
// that embed battery data in it (PlayStation, Nintendo). Any failure drops
// to the transport heuristic.
func resolveFromReport(rec hidsrc.Record, family controller.Family) (uint8, controller.Status) {
	reading, err := hidreport.Read(rec, family)
	if err != nil {
		log.Debug().Err(err).Str("path", rec.Path).Msg("battery report read failed")
		return transportDefault(rec.Bluetooth)
	}
	if reading.Charging {
		return reading.Capacity, controller.StatusCharging
	}
	return reading.Capacity, controller.StatusUnknown
}
