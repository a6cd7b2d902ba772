package discovery

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jsphonorio/ControllerTools/internal/bluetooth"
	"github.com/jsphonorio/ControllerTools/internal/controller"
	"github.com/jsphonorio/ControllerTools/internal/hidsrc"
	"github.com/jsphonorio/ControllerTools/internal/udevsrc"
	"github.com/jsphonorio/ControllerTools/internal/upower"
)

const (
	vendorMicrosoft = 0x045e

	productXboxOneSUSB = 0x02ea
	productXboxOneSBT  = 0x02df
	// After a firmware upgrade the One S controller reports the same
	// product id as the Series X|S generation.
	productXboxOneSLatestFW = 0x0b20

	productXboxSeriesUSB = 0x0b12
	productXboxSeriesBT  = 0x0b13

	productXboxElite2USB  = 0x0b00
	productXboxElite2BT   = 0x0b05
	productXboxElite2BTLE = 0x0b22

	productXboxAccessory = 0x02fe

	// Model string Xbox pads announce to UPower.
	xboxUPowerModel = "Microsoft Xbox Controller"

	// Diagnostic-only kernel node of the GIP driver; never a controller.
	gipDiagnosticToken = "gip0.1"
)

func xboxFamily(productID uint16) controller.Family {
	switch productID {
	case productXboxOneSUSB, productXboxOneSBT, productXboxOneSLatestFW:
		return controller.FamilyXboxOneS
	case productXboxSeriesUSB, productXboxSeriesBT:
		return controller.FamilyXboxSeriesXS
	case productXboxElite2USB, productXboxElite2BT, productXboxElite2BTLE:
		return controller.FamilyXboxEliteGen2
	case productXboxAccessory:
		return controller.FamilyXboxAccessory
	default:
		return controller.FamilyGenericUnknown
	}
}

func xboxName(productID uint16) string {
	switch productID {
	case productXboxOneSUSB, productXboxOneSBT, productXboxOneSLatestFW:
		return "Xbox One S"
	case productXboxSeriesUSB, productXboxSeriesBT:
		return "Xbox Series X/S"
	case productXboxElite2USB, productXboxElite2BT, productXboxElite2BTLE:
		return "Xbox Elite 2"
	case productXboxAccessory:
		return "Xbox Accessory"
	default:
		return "Xbox Unknown"
	}
}

func isXboxControllerProduct(productID uint16) bool {
	switch productID {
	case productXboxOneSUSB, productXboxOneSBT, productXboxOneSLatestFW,
		productXboxSeriesUSB, productXboxSeriesBT,
		productXboxElite2USB, productXboxElite2BT, productXboxElite2BTLE:
		return true
	}
	return false
}

// xboxControllers builds controllers for Microsoft HID records. Enumeration
// is known to list the same pad several times under one serial number, so
// adjacent duplicates are collapsed first.
func xboxControllers(records []hidsrc.Record) []controller.Controller {
	var xbox []hidsrc.Record
	for _, rec := range records {
		if rec.VendorID == vendorMicrosoft && isXboxControllerProduct(rec.ProductID) {
			xbox = append(xbox, rec)
		}
	}

	var out []controller.Controller
	for _, rec := range dedupAdjacentBySerial(xbox) {
		_, name := Classify(rec.VendorID, rec.ProductID)
		capacity, status := resolveXboxHID(rec)
		out = append(out, controller.Controller{
			VendorID:  rec.VendorID,
			ProductID: rec.ProductID,
			Name:      name,
			Capacity:  capacity,
			Status:    status,
			ID:        rec.Serial,
			Bluetooth: rec.Bluetooth,
		})
	}
	return out
}

// resolveXboxHID tries the BlueZ battery service addressed by the pad's
// link address, then a UPower model match, then the transport heuristic.
// Xbox pads expose no charging flag over either service, so a successful
// percentage lookup still reports an unknown status.
func resolveXboxHID(rec hidsrc.Record) (uint8, controller.Status) {
	address, err := bluetooth.DeviceAddress(rec)
	if err == nil {
		percentage, err := bluetooth.BatteryPercentage(address)
		if err == nil {
			return percentage, controller.StatusUnknown
		}
		log.Debug().Err(err).Str("address", address).Msg("bluez battery lookup failed")
	} else {
		log.Debug().Err(err).Str("path", rec.Path).Msg("bluetooth address resolution failed")
	}

	if percentage, err := upower.PercentageByModel(xboxUPowerModel); err == nil {
		return percentage, controller.StatusUnknown
	} else {
		log.Debug().Err(err).Msg("upower model lookup failed")
	}

	return transportDefault(rec.Bluetooth)
}

// accessoryControllers scans the kernel input subsystem for Xbox-family
// devices that never show up through HID, such as the wireless accessory.
// Records are kept only when their kernel token carries a recognized
// transport prefix, and deduplicated by exact token, first occurrence wins.
func accessoryControllers() ([]controller.Controller, error) {
	records, err := udevsrc.Source.Scan()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []controller.Controller
	for _, rec := range records {
		if !hasControllerToken(rec.Token) {
			continue
		}
		if _, dup := seen[rec.Token]; dup {
			continue
		}
		seen[rec.Token] = struct{}{}

		if rec.VendorID != vendorMicrosoft {
			continue
		}
		out = append(out, buildXboxFromToken(rec))
	}
	return out, nil
}

func hasControllerToken(token string) bool {
	if token == gipDiagnosticToken {
		return false
	}
	return strings.HasPrefix(token, "gip") || strings.HasPrefix(token, "input")
}

func buildXboxFromToken(rec udevsrc.Record) controller.Controller {
	_, name := Classify(rec.VendorID, rec.ProductID)

	var capacity uint8
	var status controller.Status
	if rec.ProductID == productXboxAccessory {
		capacity, status = resolveAccessory()
	} else {
		capacity, status = resolveXboxToken(rec.Token)
	}

	return controller.Controller{
		VendorID:  rec.VendorID,
		ProductID: rec.ProductID,
		Name:      name,
		Capacity:  capacity,
		Status:    status,
		ID:        rec.Token,
		Gip:       rec.Token,
	}
}

// resolveXboxToken looks up the UPower object expected for a kernel token,
// then falls back to the upower command, then to the heuristic. Devices
// surfaced only through the input subsystem are wired, so the heuristic
// treats them as USB-connected.
func resolveXboxToken(token string) (uint8, controller.Status) {
	path := upower.DevicePathForToken(token)

	if percentage, err := upower.PercentageByPath(path); err == nil {
		return percentage, controller.StatusUnknown
	} else {
		log.Debug().Err(err).Str("path", path).Msg("upower path lookup failed")
	}

	if percentage, err := upower.PercentageFromCommand(path); err == nil {
		return percentage, controller.StatusUnknown
	} else {
		log.Debug().Err(err).Str("path", path).Msg("upower command lookup failed")
	}

	return transportDefault(false)
}

// resolveAccessory queries the accessory's fixed UPower path. The accessory
// is assumed always externally powered, so even a failed lookup reports a
// charging status with the capacity left at zero.
func resolveAccessory() (uint8, controller.Status) {
	percentage, err := upower.PercentageByPath(upower.AccessoryPath)
	if err != nil {
		log.Debug().Err(err).Str("path", upower.AccessoryPath).Msg("accessory battery lookup failed")
		return 0, controller.StatusCharging
	}
	return percentage, controller.StatusCharging
}
