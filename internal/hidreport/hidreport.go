// Package hidreport extracts battery information from the periodic input
// reports of PlayStation and Nintendo controllers. The per-model byte
// layouts follow the publicly documented (reverse-engineered) report
// formats also used by the kernel hid-playstation, hid-sony and
// hid-nintendo drivers.
package hidreport

import (
	"fmt"
	"time"

	"github.com/jsphonorio/ControllerTools/internal/controller"
	"github.com/jsphonorio/ControllerTools/internal/hidsrc"
)

const readTimeout = 500 * time.Millisecond

// Reading is the battery information carried in one input report.
type Reading struct {
	Capacity uint8
	Charging bool
}

// Read opens the hidraw node behind a record, reads one input report and
// parses it with the family's layout.
func Read(rec hidsrc.Record, family controller.Family) (Reading, error) {
	dev, err := hidsrc.OpenPath(rec.Path)
	if err != nil {
		return Reading{}, fmt.Errorf("open %s: %w", rec.Path, err)
	}
	defer dev.Close()

	buf := make([]byte, 78)
	n, err := dev.ReadWithTimeout(buf, readTimeout)
	if err != nil {
		return Reading{}, fmt.Errorf("read %s: %w", rec.Path, err)
	}
	if n == 0 {
		return Reading{}, fmt.Errorf("read %s: no report within %s", rec.Path, readTimeout)
	}
	return Parse(buf[:n], family)
}

// Parse decodes the battery field of a raw input report for the given
// family.
func Parse(report []byte, family controller.Family) (Reading, error) {
	switch family {
	case controller.FamilyDualSense, controller.FamilyDualSenseEdge:
		return parseDualSense(report)
	case controller.FamilyDualShock4:
		return parseDualShock4(report)
	case controller.FamilyDualShock3:
		return parseDualShock3(report)
	case controller.FamilyNintendo:
		return parseNintendo(report)
	default:
		return Reading{}, fmt.Errorf("no report layout for family %s", family)
	}
}

// parseDualSense handles USB report 0x01 and Bluetooth report 0x31. The
// battery byte holds the level (0-10) in the low nibble and the charge
// state in the high nibble: 0x0 discharging, 0x1 charging, 0x2 full.
func parseDualSense(report []byte) (Reading, error) {
	var battery byte
	switch {
	case len(report) > 53 && report[0] == 0x01:
		battery = report[53]
	case len(report) > 54 && report[0] == 0x31:
		battery = report[54]
	default:
		return Reading{}, fmt.Errorf("unexpected dualsense report (id 0x%02x, %d bytes)", reportID(report), len(report))
	}

	level := battery & 0x0f
	switch battery >> 4 {
	case 0x0:
		return Reading{Capacity: tenStepPercent(level)}, nil
	case 0x1:
		return Reading{Capacity: tenStepPercent(level), Charging: true}, nil
	case 0x2:
		return Reading{Capacity: 100}, nil
	default:
		// Remaining states signal charge errors or abnormal temperature.
		return Reading{}, fmt.Errorf("dualsense battery in error state 0x%x", battery>>4)
	}
}

// parseDualShock4 handles USB report 0x01 and Bluetooth report 0x11. The
// status byte holds the level in the low nibble and the cable state in bit
// 4; on cable, level 11 means fully charged.
func parseDualShock4(report []byte) (Reading, error) {
	var battery byte
	switch {
	case len(report) > 30 && report[0] == 0x01:
		battery = report[30]
	case len(report) > 32 && report[0] == 0x11:
		battery = report[32]
	default:
		return Reading{}, fmt.Errorf("unexpected dualshock4 report (id 0x%02x, %d bytes)", reportID(report), len(report))
	}

	level := battery & 0x0f
	cable := battery&0x10 != 0
	if !cable {
		return Reading{Capacity: tenStepPercent(level)}, nil
	}
	if level >= 11 {
		return Reading{Capacity: 100}, nil
	}
	return Reading{Capacity: clamp100(uint16(level) * 10), Charging: true}, nil
}

// parseDualShock3 handles report 0x01. Byte 30 is a coarse 0-5 scale, with
// 0xee while charging and 0xef once fully charged on cable.
func parseDualShock3(report []byte) (Reading, error) {
	if len(report) <= 30 || report[0] != 0x01 {
		return Reading{}, fmt.Errorf("unexpected dualshock3 report (id 0x%02x, %d bytes)", reportID(report), len(report))
	}

	battery := report[30]
	switch {
	case battery == 0xee:
		return Reading{Charging: true}, nil
	case battery == 0xef:
		return Reading{Capacity: 100}, nil
	case battery <= 5:
		scale := [6]uint8{0, 1, 25, 50, 75, 100}
		return Reading{Capacity: scale[battery]}, nil
	default:
		return Reading{}, fmt.Errorf("dualshock3 battery value 0x%02x out of range", battery)
	}
}

// parseNintendo handles the standard input reports 0x30/0x21 of the Switch
// Pro Controller and Joy-Cons. The high nibble of byte 2 carries the level
// in bits 1-3 (8 full, 6 medium, 4 low, 2 critical, 0 empty) and the
// charging flag in bit 0.
func parseNintendo(report []byte) (Reading, error) {
	if len(report) <= 2 || (report[0] != 0x30 && report[0] != 0x21) {
		return Reading{}, fmt.Errorf("unexpected nintendo report (id 0x%02x, %d bytes)", reportID(report), len(report))
	}

	battery := report[2] >> 4
	charging := battery&0x01 != 0

	var capacity uint8
	switch battery & 0x0e {
	case 8:
		capacity = 100
	case 6:
		capacity = 70
	case 4:
		capacity = 40
	case 2:
		capacity = 15
	default:
		capacity = 0
	}
	return Reading{Capacity: capacity, Charging: charging}, nil
}

// tenStepPercent converts a 0-10 level to a percentage, biased to the middle
// of each step the way the kernel drivers report it.
func tenStepPercent(level byte) uint8 {
	return clamp100(uint16(level)*10 + 5)
}

func clamp100(v uint16) uint8 {
	if v > 100 {
		return 100
	}
	return uint8(v)
}

func reportID(report []byte) byte {
	if len(report) == 0 {
		return 0
	}
	return report[0]
}
