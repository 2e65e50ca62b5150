//go:build !linux

package devices

import (
	"errors"
	"os"
	"path/filepath"
)

// Host reads device information from the running kernel. Only existence is
// checked off Linux.
type Host struct{}

func (Host) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

func (Host) IsBlockDevice(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode()&os.ModeDevice != 0 && info.Mode()&os.ModeCharDevice == 0, nil
}

func (Host) BlockDeviceSize(string) (uint64, error) {
	return 0, errors.New("block device size is only available on linux")
}
