package device

import (
	"context"
	"strings"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/types"
)

const FullDeviceNameProperty = "FULL_DEVICE_NAME"

// List enumerates available accelerator devices by running the vendor query
// sample and parsing its report.
func List(ctx context.Context, tool omz.Tool) ([]types.Device, error) {
	out, err := tool.Output(ctx)
	if err != nil {
		return nil, err
	}
	devices := ParseReport(strings.Split(string(out), "\n"))
	if len(devices) == 0 {
		return nil, apierr.NewOutputInvalidError(tool.Name, errNoDevices)
	}
	return devices, nil
}

// Find returns the named device or a DEVICE_UNKNOWN error. Device names may
// carry a vendor suffix like GPU.1, matched on the bare name too.
func Find(ctx context.Context, tool omz.Tool, name string) (*types.Device, error) {
	devices, err := List(ctx, tool)
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if devices[i].Name == name {
			return &devices[i], nil
		}
	}
	for i := range devices {
		if base, _, ok := strings.Cut(devices[i].Name, "."); ok && base == name {
			return &devices[i], nil
		}
	}
	return nil, apierr.NewDeviceUnknownError(name)
}

var errNoDevices = apierr.NewParameterInvalidError("no devices in query output")

// ParseReport reads the query sample's output:
//
//	[ INFO ] Available devices:
//	[ INFO ] CPU :
//	[ INFO ]        SUPPORTED_PROPERTIES:
//	[ INFO ]                FULL_DEVICE_NAME: 12th Gen Intel(R) Core(TM) i9-12900K
//
// Non-indented lines open a device block, indented KEY: VALUE lines are its
// properties. The "[ INFO ]" prefix is optional so plain reports parse too.
func ParseReport(lines []string) []types.Device {
	devices := []types.Device{}
	for _, line := range lines {
		line = strings.TrimSuffix(strings.TrimPrefix(line, "[ INFO ]"), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		line = strings.TrimPrefix(line, " ")

		if !strings.ContainsAny(line[:1], " \t") {
			name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":"))
			if name == "" || strings.EqualFold(name, "Available devices") {
				continue
			}
			devices = append(devices, types.Device{Name: name, Properties: map[string]string{}})
			continue
		}

		if len(devices) == 0 {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if value == "" {
			continue
		}
		current := &devices[len(devices)-1]
		current.Properties[key] = value
		if key == FullDeviceNameProperty {
			current.FullName = value
		}
	}
	return devices
}
