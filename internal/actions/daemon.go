package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"stratis/internal/dbusapi"
)

// DefaultRedundancy is used when create is given no designation.
const DefaultRedundancy = "none"

// ErrUnknownRedundancy means the designation is not one the daemon reports.
var ErrUnknownRedundancy = errors.New("unknown redundancy designation")

// DaemonVersion reads the daemon's Version property.
func (c *Client) DaemonVersion(ctx context.Context) (string, error) {
	return c.manager.Version(ctx)
}

// DaemonLogLevel reads the daemon's LogLevel property.
func (c *Client) DaemonLogLevel(ctx context.Context) (string, error) {
	return c.manager.LogLevel(ctx)
}

// RedundancyLevels returns the designations the daemon supports, in the
// daemon's order.
func (c *Client) RedundancyLevels(ctx context.Context) ([]dbusapi.CodeEntry, error) {
	return c.manager.GetRaidLevels(ctx)
}

// ResolveRedundancy maps a designation to the daemon's numeric code,
// ignoring case. Codes are looked up on every call and never assumed.
func (c *Client) ResolveRedundancy(ctx context.Context, designation string) (uint16, error) {
	designation = strings.TrimSpace(designation)
	if designation == "" {
		designation = DefaultRedundancy
	}
	levels, err := c.RedundancyLevels(ctx)
	if err != nil {
		return 0, err
	}
	fold := cases.Fold()
	want := fold.String(designation)
	names := make([]string, 0, len(levels))
	for _, level := range levels {
		if fold.String(level.Name) == want {
			if level.Code < 0 || level.Code > 0xffff {
				return 0, fmt.Errorf("redundancy %s: code %d out of range", level.Name, level.Code)
			}
			return uint16(level.Code), nil
		}
		names = append(names, level.Name)
	}
	return 0, fmt.Errorf("%w %q (choose from %s)", ErrUnknownRedundancy, designation, strings.Join(names, ", "))
}
