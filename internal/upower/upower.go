// Package upower queries the freedesktop UPower daemon for battery
// percentages, over D-Bus or through the upower command-line tool.
package upower

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	busName     = "org.freedesktop.UPower"
	rootPath    = "/org/freedesktop/UPower"
	rootIface   = "org.freedesktop.UPower"
	deviceIface = "org.freedesktop.UPower.Device"

	devicePathPrefix = "/org/freedesktop/UPower/devices/"
)

// AccessoryPath is the well-known object path the Xbox wireless accessory
// battery appears under.
const AccessoryPath = devicePathPrefix + "gaming_input_gip0"

// DevicePathForToken maps a kernel input token to the UPower object it is
// expected to appear under.
func DevicePathForToken(token string) string {
	return devicePathPrefix + "gaming_input_" + token
}

// PercentageByModel enumerates the power devices known to UPower and returns
// the battery percentage of the first one whose Model matches.
func PercentageByModel(model string) (uint8, error) {
	conn, err := ConnectSystemBus()
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var paths []dbus.ObjectPath
	root := conn.Object(busName, rootPath)
	if err := root.Call(rootIface+".EnumerateDevices", 0).Store(&paths); err != nil {
		return 0, fmt.Errorf("upower enumerate: %w", err)
	}

	for _, path := range paths {
		device := conn.Object(busName, path)

		variant, err := device.GetProperty(deviceIface + ".Model")
		if err != nil {
			continue
		}
		var deviceModel string
		if err := variant.Store(&deviceModel); err != nil || deviceModel != model {
			continue
		}

		return devicePercentage(device)
	}
	return 0, fmt.Errorf("upower: no device with model %q", model)
}

// PercentageByPath reads the battery percentage of one UPower device object
// addressed directly by its path.
func PercentageByPath(path string) (uint8, error) {
	conn, err := ConnectSystemBus()
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	return devicePercentage(conn.Object(busName, dbus.ObjectPath(path)))
}

func devicePercentage(device dbus.BusObject) (uint8, error) {
	variant, err := device.GetProperty(deviceIface + ".Percentage")
	if err != nil {
		return 0, fmt.Errorf("upower percentage: %w", err)
	}

	var percentage float64
	if err := variant.Store(&percentage); err != nil {
		return 0, fmt.Errorf("upower percentage: %w", err)
	}
	return clampPercent(percentage), nil
}

// PercentageFromCommand shells out to the upower tool for the given device
// path and parses its text output for the percentage field. Last-resort
// strategy for when the D-Bus service is unreachable.
func PercentageFromCommand(path string) (uint8, error) {
	out, err := RunCommand("upower", "-i", path)
	if err != nil {
		return 0, fmt.Errorf("upower command: %w", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "percentage:") {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, "percentage:"))
		value = strings.TrimSuffix(value, "%")
		percentage, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("upower command: bad percentage %q: %w", value, err)
		}
		return clampPercent(percentage), nil
	}
	return 0, fmt.Errorf("upower command: no percentage field for %s", path)
}

func clampPercent(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return uint8(v)
}

// ConnectSystemBus is a hook for tests to override D-Bus connection behavior.
var ConnectSystemBus = dbus.ConnectSystemBus

// RunCommand is a hook for tests to override command execution.
var RunCommand = func(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}
