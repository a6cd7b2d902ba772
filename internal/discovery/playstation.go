package discovery

import (
	"github.com/jsphonorio/ControllerTools/internal/controller"
	"github.com/jsphonorio/ControllerTools/internal/hidsrc"
)

const (
	vendorSony = 0x054c

	productDualShock3    = 0x0268
	productDualShock4Old = 0x05c4
	productDualShock4New = 0x09cc
	productDualSense     = 0x0ce6
	productDualSenseEdge = 0x0df2
)

func isPlayStationProduct(productID uint16) bool {
	switch productID {
	case productDualShock3, productDualShock4Old, productDualShock4New,
		productDualSense, productDualSenseEdge:
		return true
	}
	return false
}

// playstationControllers builds controllers for Sony HID records. The whole
// record list is adjacency-deduplicated by serial first; PlayStation
// controllers surface one interface per transport and those interfaces
// enumerate back to back.
func playstationControllers(records []hidsrc.Record) []controller.Controller {
	var out []controller.Controller
	for _, rec := range dedupAdjacentBySerial(records) {
		if rec.VendorID != vendorSony || !isPlayStationProduct(rec.ProductID) {
			continue
		}

		family, name := Classify(rec.VendorID, rec.ProductID)
		capacity, status := resolveFromReport(rec, family)
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
