// Package hidsrc reads raw device records from the USB/Bluetooth HID
// enumeration source.
package hidsrc

import (
	"fmt"
	"time"

	hid "github.com/sstallion/go-hid"
)

// Record is one raw HID enumeration entry. Records are transient: they are
// produced per discovery call and discarded after classification.
type Record struct {
	VendorID  uint16
	ProductID uint16
	// Serial is the device serial number when the device reports one. For
	// Bluetooth transports on Linux, hidapi reports the link-layer address
	// here.
	Serial string
	// Interface is the USB interface number, or -1 for non-USB transports.
	Interface int
	// Path is the hidraw node used to open the device for report I/O.
	Path      string
	Bluetooth bool
}

// Lister enumerates currently attached HID devices.
type Lister interface {
	List() ([]Record, error)
}

type hidapiLister struct{}

func (hidapiLister) List() ([]Record, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("hidapi init: %w", err)
	}

	var records []Record
	err := hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
		records = append(records, Record{
			VendorID:  info.VendorID,
			ProductID: info.ProductID,
			Serial:    info.SerialNbr,
			Interface: info.InterfaceNbr,
			Path:      info.Path,
			Bluetooth: info.BusType == hid.BusBluetooth || info.InterfaceNbr == -1,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hid enumeration: %w", err)
	}
	return records, nil
}

// Source is the package-level Lister used for discovery. Tests may replace it.
var Source Lister = hidapiLister{}

// Device is an open HID handle capable of reading input reports.
type Device interface {
	ReadWithTimeout(b []byte, timeout time.Duration) (int, error)
	Close() error
}

// OpenPath opens the hidraw node behind a record for report I/O. Tests may
// replace it.
var OpenPath = func(path string) (Device, error) {
	return hid.OpenPath(path)
}
