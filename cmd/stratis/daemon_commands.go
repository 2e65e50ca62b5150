package main

import (
	"context"
	"fmt"
	"strconv"
)

type codeRow struct {
	Name        string `json:"name"`
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// runStratisd answers exactly one of --log-level, --redundancy or --version;
// cobra enforces the flag group before this runs.
func runStratisd(ctx context.Context, inv *invocation) error {
	flags := inv.cmd.Flags()
	out := inv.cmd.OutOrStdout()
	switch {
	case flags.Changed("version"):
		version, err := inv.client.DaemonVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, version)
		return nil
	case flags.Changed("log-level"):
		level, err := inv.client.DaemonLogLevel(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, level)
		return nil
	default:
		levels, err := inv.client.RedundancyLevels(ctx)
		if err != nil {
			return err
		}
		doc := make([]codeRow, 0, len(levels))
		rows := make([][]string, 0, len(levels))
		for _, level := range levels {
			doc = append(doc, codeRow(level))
			rows = append(rows, []string{level.Name, strconv.Itoa(level.Code), level.Description})
		}
		return inv.out().rows(
			[]string{"Redundancy", "Code", "Description"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignLeft},
			doc,
		)
	}
}
