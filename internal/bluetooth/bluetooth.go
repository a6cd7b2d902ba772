// Package bluetooth resolves a controller's link-layer address and queries
// the BlueZ battery service for it.
package bluetooth

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/jsphonorio/ControllerTools/internal/hidsrc"
	"github.com/jsphonorio/ControllerTools/internal/sysfs"
)

var macPattern = regexp.MustCompile(`^([0-9A-F]{2}:){5}[0-9A-F]{2}$`)

// DeviceAddress derives the Bluetooth hardware address for a HID record.
// hidapi reports the address as the serial number for Bluetooth transports;
// when the serial is not address-shaped, fall back to the hidraw uniq node
// in sysfs.
func DeviceAddress(rec hidsrc.Record) (string, error) {
	mac := strings.ToUpper(strings.TrimSpace(rec.Serial))
	if macPattern.MatchString(mac) {
		return mac, nil
	}

	node := filepath.Base(rec.Path)
	uniqPath := fmt.Sprintf("/sys/class/hidraw/%s/device/uniq", node)
	data, err := sysfs.FS.ReadFile(uniqPath)
	if err != nil {
		return "", fmt.Errorf("no bluetooth address for %s: %w", rec.Path, err)
	}

	mac = strings.ToUpper(strings.TrimSpace(string(data)))
	if !macPattern.MatchString(mac) {
		return "", fmt.Errorf("no bluetooth address for %s: uniq %q is not an address", rec.Path, mac)
	}
	return mac, nil
}

// BatteryPercentage asks BlueZ for the battery level of the device with the
// given address, via the org.bluez.Battery1 interface.
func BatteryPercentage(mac string) (uint8, error) {
	conn, err := ConnectSystemBus()
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	dbusPath := "/org/bluez/hci0/dev_" + strings.ReplaceAll(mac, ":", "_")
	obj := conn.Object("org.bluez", dbus.ObjectPath(dbusPath))

	variant, err := obj.GetProperty("org.bluez.Battery1.Percentage")
	if err != nil {
		return 0, fmt.Errorf("bluez battery lookup for %s: %w", mac, err)
	}

	var percentage byte
	if err := variant.Store(&percentage); err != nil {
		return 0, fmt.Errorf("bluez battery lookup for %s: %w", mac, err)
	}
	if percentage > 100 {
		percentage = 100
	}
	return percentage, nil
}

// ConnectSystemBus is a hook for tests to override D-Bus connection behavior.
var ConnectSystemBus = dbus.ConnectSystemBus
