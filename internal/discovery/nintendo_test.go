package discovery

import (
	"testing"

	"github.com/jsphonorio/ControllerTools/internal/controller"
	"github.com/jsphonorio/ControllerTools/internal/hidsrc"
)

func proRecord(iface int, path string) hidsrc.Record {
	return hidsrc.Record{
		VendorID:  vendorNintendo,
		ProductID: productProController,
		Serial:    "98:B6:E9:00:00:01",
		Interface: iface,
		Path:      path,
		Bluetooth: iface == -1,
	}
}

func TestProControllerCardinalities(t *testing.T) {
	stubExternals(t)

	tests := []struct {
		name    string
		records []hidsrc.Record
		want    int
	}{
		{"bluetooth only", []hidsrc.Record{proRecord(-1, "/dev/hidraw0")}, 1},
		{"usb only", []hidsrc.Record{proRecord(0, "/dev/hidraw0"), proRecord(0, "/dev/hidraw1")}, 1},
		{"usb and bluetooth", []hidsrc.Record{proRecord(0, "/dev/hidraw0"), proRecord(0, "/dev/hidraw1"), proRecord(-1, "/dev/hidraw2")}, 1},
		{"none", nil, 0},
		{"unexpected four", []hidsrc.Record{proRecord(0, "a"), proRecord(0, "b"), proRecord(0, "c"), proRecord(0, "d")}, 0},
	}

	for _, tt := range tests {
		got := nintendoControllers(tt.records)
		if len(got) != tt.want {
			t.Fatalf("%s: expected %d controllers, got %d", tt.name, tt.want, len(got))
		}
	}
}

func TestProControllerTripleSelectsBluetoothRecord(t *testing.T) {
	stubExternals(t)

	records := []hidsrc.Record{
		proRecord(0, "/dev/hidraw0"),
		proRecord(0, "/dev/hidraw1"),
		proRecord(-1, "/dev/hidraw2"),
	}

	rec, ok := selectProController(records)
	if !ok {
		t.Fatal("expected a record to be selected")
	}
	if rec.Interface != -1 {
		t.Fatalf("expected the non-USB record, got interface %d", rec.Interface)
	}

	// The USB records report no live data, so the built controller must
	// carry the Bluetooth transport.
	got := nintendoControllers(records)
	if len(got) != 1 || !got[0].Bluetooth {
		t.Fatalf("unexpected controllers: %+v", got)
	}
}

func TestNonProNintendoRecordsAreNotDeduplicated(t *testing.T) {
	stubExternals(t)

	records := []hidsrc.Record{
		{VendorID: vendorNintendo, ProductID: productJoyConLeft, Serial: "jc-l", Interface: -1, Bluetooth: true},
		{VendorID: vendorNintendo, ProductID: productJoyConRight, Serial: "jc-r", Interface: -1, Bluetooth: true},
	}

	got := nintendoControllers(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 controllers, got %d", len(got))
	}
	if got[0].Name != "Joy-Con (L)" || got[1].Name != "Joy-Con (R)" {
		t.Fatalf("unexpected names: %q %q", got[0].Name, got[1].Name)
	}
}

func TestNintendoHeuristicDefaults(t *testing.T) {
	stubExternals(t)

	// All lookups fail: Bluetooth yields (0, unknown), USB (100, charging).
	bt := nintendoControllers([]hidsrc.Record{proRecord(-1, "/dev/hidraw0")})
	if bt[0].Capacity != 0 || bt[0].Status != controller.StatusUnknown {
		t.Fatalf("unexpected bluetooth default: %d%% %s", bt[0].Capacity, bt[0].Status)
	}

	usb := nintendoControllers([]hidsrc.Record{
		{VendorID: vendorNintendo, ProductID: productSNESController, Serial: "snes", Interface: 0, Path: "/dev/hidraw1"},
	})
	if usb[0].Capacity != 100 || usb[0].Status != controller.StatusCharging {
		t.Fatalf("unexpected usb default: %d%% %s", usb[0].Capacity, usb[0].Status)
	}
}
