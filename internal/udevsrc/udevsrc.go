// Package udevsrc reads raw device records from the kernel input subsystem
// through udev.
package udevsrc

import (
	"fmt"
	"strconv"

	"github.com/jochenvg/go-udev"
)

// Record is one kernel input-subsystem device entry.
type Record struct {
	VendorID  uint16
	ProductID uint16
	// Token is the kernel identifier (sysname), e.g. "gip0" or "input12".
	// It doubles as the deduplication key and as the base for power-service
	// object paths.
	Token   string
	Syspath string
}

// Scanner lists input-subsystem devices.
type Scanner interface {
	Scan() ([]Record, error)
}

type udevScanner struct{}

func (udevScanner) Scan() ([]Record, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem("input"); err != nil {
		return nil, fmt.Errorf("udev subsystem match: %w", err)
	}

	devices, err := e.Devices()
	if err != nil {
		return nil, fmt.Errorf("udev scan: %w", err)
	}

	records := make([]Record, 0, len(devices))
	for _, d := range devices {
		records = append(records, Record{
			VendorID:  parseHexID(d.PropertyValue("ID_VENDOR_ID")),
			ProductID: parseHexID(d.PropertyValue("ID_MODEL_ID")),
			Token:     d.Sysname(),
			Syspath:   d.Syspath(),
		})
	}
	return records, nil
}

// parseHexID parses the 4-digit hex identifiers udev exposes. Missing or
// malformed values come back as zero, which classifies as unknown.
func parseHexID(s string) uint16 {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0
	}
	return uint16(v)
}

// Source is the package-level Scanner used for discovery. Tests may replace it.
var Source Scanner = udevScanner{}
