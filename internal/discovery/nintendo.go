package discovery

import (
	"github.com/jsphonorio/ControllerTools/internal/controller"
	"github.com/jsphonorio/ControllerTools/internal/hidsrc"
)

const (
	vendorNintendo = 0x057e

	productProController  = 0x2009
	productJoyConLeft     = 0x2006
	productJoyConRight    = 0x2007
	productJoyConGrip     = 0x200e
	productSNESController = 0x2017
)

func nintendoName(productID uint16) string {
	switch productID {
	case productProController:
		return "Pro Controller"
	case productJoyConLeft:
		return "Joy-Con (L)"
	case productJoyConRight:
		return "Joy-Con (R)"
	case productJoyConGrip:
		return "Joy-Con Charging Grip"
	case productSNESController:
		return "SNES Controller"
	default:
		return "Nintendo Controller"
	}
}

// nintendoControllers builds controllers for all Nintendo HID records. The
// Pro Controller gets the cardinality rule; everything else maps one record
// to one controller.
func nintendoControllers(records []hidsrc.Record) []controller.Controller {
	var pro, others []hidsrc.Record
	for _, rec := range records {
		if rec.VendorID != vendorNintendo {
			continue
		}
		if rec.ProductID == productProController {
			pro = append(pro, rec)
		} else {
			others = append(others, rec)
		}
	}

	var out []controller.Controller
	if rec, ok := selectProController(pro); ok {
		out = append(out, buildNintendo(rec))
	}
	for _, rec := range others {
		out = append(out, buildNintendo(rec))
	}
	return out
}

// selectProController collapses the Pro Controller's duplicate enumeration
// records. One record means Bluetooth only; two describe the same USB
// endpoint twice, so either will do; three means USB plus Bluetooth, where
// only the Bluetooth record (interface -1) reports live data. Any other
// cardinality yields nothing.
func selectProController(records []hidsrc.Record) (hidsrc.Record, bool) {
	switch len(records) {
	case 1, 2:
		return records[0], true
	case 3:
		for _, rec := range records {
			if rec.Interface == -1 {
				return rec, true
			}
		}
		return hidsrc.Record{}, false
	default:
		return hidsrc.Record{}, false
	}
}

func buildNintendo(rec hidsrc.Record) controller.Controller {
	family, name := Classify(rec.VendorID, rec.ProductID)
	capacity, status := resolveFromReport(rec, family)
	return controller.Controller{
		VendorID:  rec.VendorID,
		ProductID: rec.ProductID,
		Name:      name,
		Capacity:  capacity,
		Status:    status,
		ID:        rec.Serial,
		Bluetooth: rec.Bluetooth,
	}
}
