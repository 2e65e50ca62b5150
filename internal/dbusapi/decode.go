package dbusapi

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// ErrUnexpectedReply marks a reply whose shape does not match the method signature.
var ErrUnexpectedReply = errors.New("unexpected reply from stratisd")

func replyError(method, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrUnexpectedReply, method, fmt.Sprintf(format, args...))
}

// decode stores body into dest with dbus.Store. Integer widths are converted,
// so a code sent as q or i lands in an int either way.
func decode(method string, body []any, dest ...any) error {
	for i, v := range body {
		if v == nil {
			return replyError(method, "value %d is empty", i)
		}
	}
	if err := dbus.Store(body, dest...); err != nil {
		return replyError(method, "%v", err)
	}
	return nil
}

// decodeStatus decodes a reply made of one payload value followed by the
// (return code, message) pair.
func decodeStatus(method string, body []any, payload any) (Status, error) {
	var status Status
	if err := decode(method, body, payload, &status.Code, &status.Message); err != nil {
		return Status{}, err
	}
	return status, nil
}

func decodeProperty(name string, value any, dest any) error {
	return decode(name, []any{value}, dest)
}

func decodeCodeEntries(method string, body []any) ([]CodeEntry, error) {
	var entries []CodeEntry
	if err := decode(method, body, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []CodeEntry{}
	}
	return entries, nil
}

func decodePathResult(method string, body []any) (PathResult, error) {
	var res PathResult
	status, err := decodeStatus(method, body, &res.Path)
	if err != nil {
		return PathResult{}, err
	}
	res.Status = status
	return res, nil
}

func decodeFlagResult(method string, body []any) (FlagResult, error) {
	var res FlagResult
	status, err := decodeStatus(method, body, &res.Changed)
	if err != nil {
		return FlagResult{}, err
	}
	res.Status = status
	return res, nil
}

func decodeNamesResult(method string, body []any) (NamesResult, error) {
	var res NamesResult
	status, err := decodeStatus(method, body, &res.Names)
	if err != nil {
		return NamesResult{}, err
	}
	res.Status = status
	return res, nil
}

func decodeFilesystemsResult(method string, body []any) (FilesystemsResult, error) {
	var res FilesystemsResult
	status, err := decodeStatus(method, body, &res.Filesystems)
	if err != nil {
		return FilesystemsResult{}, err
	}
	res.Status = status
	return res, nil
}

func decodeDevicesResult(method string, body []any) (DevicesResult, error) {
	var res DevicesResult
	status, err := decodeStatus(method, body, &res.Devices)
	if err != nil {
		return DevicesResult{}, err
	}
	res.Status = status
	return res, nil
}
