package discovery

import "github.com/jsphonorio/ControllerTools/internal/controller"

const unknownName = "Unknown Controller"

// Classify maps a vendor/product pair to its controller family and display
// name. It is a pure function of the identifiers; unknown combinations are
// not an error and come back as the generic family.
func Classify(vendorID, productID uint16) (controller.Family, string) {
	switch vendorID {
	case vendorNintendo:
		return controller.FamilyNintendo, nintendoName(productID)
	case vendorMicrosoft:
		return xboxFamily(productID), xboxName(productID)
	case vendorSony:
		switch productID {
		case productDualShock3:
			return controller.FamilyDualShock3, "DualShock3"
		case productDualShock4Old, productDualShock4New:
			return controller.FamilyDualShock4, "DualShock4"
		case productDualSense:
			return controller.FamilyDualSense, "DualSense"
		case productDualSenseEdge:
			return controller.FamilyDualSenseEdge, "DualSense Edge"
		}
	}
	return controller.FamilyGenericUnknown, unknownName
}
