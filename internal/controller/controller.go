// Package controller defines the canonical controller entity produced by a
// discovery pass, along with its status and family classifications.
package controller

// Status is the charging state of a controller battery. It is an open
// enumeration: values not listed here may appear in the future and must be
// carried through unchanged, so consumers should always keep a default arm.
type Status string

const (
	StatusUnknown     Status = "unknown"
	StatusCharging    Status = "charging"
	StatusDischarging Status = "discharging"
)

// OrUnknown maps the empty string to StatusUnknown so that a zero-valued
// Status still reads as a meaningful state.
func (s Status) OrUnknown() Status {
	if s == "" {
		return StatusUnknown
	}
	return s
}

// Family is the manufacturer/model group a controller is classified into.
// It drives both deduplication and battery-resolution policy.
type Family int

const (
	FamilyGenericUnknown Family = iota
	FamilyNintendo
	FamilyXboxOneS
	FamilyXboxSeriesXS
	FamilyXboxEliteGen2
	FamilyXboxAccessory
	FamilyDualShock3
	FamilyDualShock4
	FamilyDualSense
	FamilyDualSenseEdge
)

func (f Family) String() string {
	switch f {
	case FamilyNintendo:
		return "Nintendo"
	case FamilyXboxOneS:
		return "XboxOneS"
	case FamilyXboxSeriesXS:
		return "XboxSeriesXS"
	case FamilyXboxEliteGen2:
		return "XboxEliteGen2"
	case FamilyXboxAccessory:
		return "XboxAccessory"
	case FamilyDualShock3:
		return "DualShock3"
	case FamilyDualShock4:
		return "DualShock4"
	case FamilyDualSense:
		return "DualSense"
	case FamilyDualSenseEdge:
		return "DualSenseEdge"
	default:
		return "GenericUnknown"
	}
}

// Controller is one physical game controller as reported by a single
// discovery pass. It is assembled once and never mutated afterwards.
type Controller struct {
	VendorID  uint16 `json:"vendor_id"`
	ProductID uint16 `json:"product_id"`
	Name      string `json:"name"`
	// Capacity is the battery charge percent in [0,100]. Zero doubles as
	// "could not be determined", so it must not be read as low-battery
	// urgency on its own.
	Capacity uint8  `json:"capacity"`
	Status   Status `json:"status"`
	// ID is the transport-derived identity used for deduplication: the HID
	// serial number, or the kernel identifier token for devices found
	// through the input subsystem.
	ID string `json:"id,omitempty"`
	// Gip is the kernel input-subsystem token (e.g. "gip0") for devices
	// discovered through udev; empty for HID-discovered devices.
	Gip       string `json:"gip,omitempty"`
	Bluetooth bool   `json:"bluetooth,omitempty"`
	// IsFake marks controllers injected from a test fixture file.
	IsFake bool `json:"is_fake,omitempty"`
}
