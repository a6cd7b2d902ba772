package discovery

import (
	"fmt"
	"testing"
	"time"

	"github.com/jsphonorio/ControllerTools/internal/bluetooth"
	"github.com/jsphonorio/ControllerTools/internal/config"
	"github.com/jsphonorio/ControllerTools/internal/controller"
	"github.com/jsphonorio/ControllerTools/internal/hidsrc"
	"github.com/jsphonorio/ControllerTools/internal/sysfs"
	"github.com/jsphonorio/ControllerTools/internal/udevsrc"
	"github.com/jsphonorio/ControllerTools/internal/upower"

	"github.com/godbus/dbus/v5"
)

type fakeLister struct {
	records []hidsrc.Record
	err     error
}

func (f fakeLister) List() ([]hidsrc.Record, error) { return f.records, f.err }

type fakeScanner struct {
	records []udevsrc.Record
	err     error
}

func (f fakeScanner) Scan() ([]udevsrc.Record, error) { return f.records, f.err }

type fakeDevice struct {
	report []byte
	err    error
}

func (d fakeDevice) ReadWithTimeout(b []byte, _ time.Duration) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	return copy(b, d.report), nil
}
func (d fakeDevice) Close() error { return nil }

type fakeFS struct {
	files map[string][]byte
}

func (f fakeFS) ReadFile(path string) ([]byte, error) {
	if b, ok := f.files[path]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("not found: %s", path)
}

// stubExternals replaces every external collaborator with a failing fake so
// battery resolution always drops through to the heuristic tier. Individual
// tests override the hooks they exercise.
func stubExternals(t *testing.T) {
	t.Helper()

	oldHID := hidsrc.Source
	oldUdev := udevsrc.Source
	oldOpen := hidsrc.OpenPath
	oldBTBus := bluetooth.ConnectSystemBus
	oldUPBus := upower.ConnectSystemBus
	oldRun := upower.RunCommand
	oldFS := sysfs.FS

	hidsrc.Source = fakeLister{}
	udevsrc.Source = fakeScanner{}
	hidsrc.OpenPath = func(path string) (hidsrc.Device, error) {
		return nil, fmt.Errorf("no device at %s", path)
	}
	bluetooth.ConnectSystemBus = func(_ ...dbus.ConnOption) (*dbus.Conn, error) {
		return nil, fmt.Errorf("no bus available")
	}
	upower.ConnectSystemBus = func(_ ...dbus.ConnOption) (*dbus.Conn, error) {
		return nil, fmt.Errorf("no bus available")
	}
	upower.RunCommand = func(_ string, _ ...string) ([]byte, error) {
		return nil, fmt.Errorf("command unavailable")
	}
	sysfs.FS = fakeFS{}

	t.Cleanup(func() {
		hidsrc.Source = oldHID
		udevsrc.Source = oldUdev
		hidsrc.OpenPath = oldOpen
		bluetooth.ConnectSystemBus = oldBTBus
		upower.ConnectSystemBus = oldUPBus
		upower.RunCommand = oldRun
		sysfs.FS = oldFS
	})
}

func TestControllersDualSenseEndToEnd(t *testing.T) {
	stubExternals(t)

	hidsrc.Source = fakeLister{records: []hidsrc.Record{
		{VendorID: 0x054c, ProductID: 0x0ce6, Serial: "AA:BB:CC:DD:EE:FF", Interface: -1, Path: "/dev/hidraw2", Bluetooth: true},
	}}

	// USB-style report 0x01 with battery byte: charging, level 8.
	report := make([]byte, 64)
	report[0] = 0x01
	report[53] = 0x18
	hidsrc.OpenPath = func(_ string) (hidsrc.Device, error) {
		return fakeDevice{report: report}, nil
	}

	controllers, err := Controllers(&config.Config{})
	if err != nil {
		t.Fatalf("Controllers error: %v", err)
	}
	if len(controllers) != 1 {
		t.Fatalf("expected 1 controller, got %d: %v", len(controllers), controllers)
	}

	c := controllers[0]
	if c.Name != "DualSense" {
		t.Fatalf("expected DualSense, got %q", c.Name)
	}
	if c.Capacity != 85 || c.Status != controller.StatusCharging {
		t.Fatalf("unexpected battery state: %d%% %s", c.Capacity, c.Status)
	}
	if c.ID != "AA:BB:CC:DD:EE:FF" {
		t.Fatalf("unexpected id: %q", c.ID)
	}
}

func TestControllersCapacityAlwaysInRange(t *testing.T) {
	stubExternals(t)

	hidsrc.Source = fakeLister{records: []hidsrc.Record{
		{VendorID: 0x054c, ProductID: 0x0ce6, Serial: "s1", Bluetooth: true, Path: "/dev/hidraw0"},
		{VendorID: 0x045e, ProductID: 0x0b13, Serial: "s2", Interface: -1, Bluetooth: true, Path: "/dev/hidraw1"},
		{VendorID: 0x057e, ProductID: 0x2009, Serial: "s3", Interface: 0, Path: "/dev/hidraw3"},
	}}

	controllers, err := Controllers(&config.Config{})
	if err != nil {
		t.Fatalf("Controllers error: %v", err)
	}
	for _, c := range controllers {
		if c.Capacity > 100 {
			t.Fatalf("capacity out of range for %s: %d", c.Name, c.Capacity)
		}
	}
}

func TestControllersHIDEnumerationFailureIsFatal(t *testing.T) {
	stubExternals(t)

	hidsrc.Source = fakeLister{err: fmt.Errorf("hidapi init failed")}

	if _, err := Controllers(&config.Config{}); err == nil {
		t.Fatal("expected error when HID enumeration is unavailable")
	}
}

func TestControllersUdevFailureIsFatal(t *testing.T) {
	stubExternals(t)

	udevsrc.Source = fakeScanner{err: fmt.Errorf("udev unavailable")}

	if _, err := Controllers(&config.Config{}); err == nil {
		t.Fatal("expected error when the udev scanner cannot be constructed")
	}
}

func TestControllersAsyncDeliversOneResult(t *testing.T) {
	stubExternals(t)

	hidsrc.Source = fakeLister{records: []hidsrc.Record{
		{VendorID: 0x054c, ProductID: 0x0df2, Serial: "edge", Bluetooth: true, Path: "/dev/hidraw0"},
	}}

	result := <-ControllersAsync(&config.Config{})
	if result.Err != nil {
		t.Fatalf("ControllersAsync error: %v", result.Err)
	}
	if len(result.Controllers) != 1 || result.Controllers[0].Name != "DualSense Edge" {
		t.Fatalf("unexpected result: %+v", result.Controllers)
	}
}

func TestClassifyUnknownPair(t *testing.T) {
	family, name := Classify(0x1234, 0x5678)
	if family != controller.FamilyGenericUnknown || name != "Unknown Controller" {
		t.Fatalf("unexpected classification: %s %q", family, name)
	}
}
