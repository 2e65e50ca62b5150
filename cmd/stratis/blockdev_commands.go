package main

import (
	"context"

	"github.com/dustin/go-humanize"
)

type blockdevRow struct {
	Devnode    string `json:"devnode"`
	TotalSize  uint64 `json:"total_size"`
	ObjectPath string `json:"object_path"`
}

func runBlockdevAdd(ctx context.Context, inv *invocation) error {
	cache, err := inv.cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	_, err = inv.client.AddBlockdevs(ctx, inv.args[0], inv.args[1:], cache)
	return err
}

func runBlockdevList(ctx context.Context, inv *invocation) error {
	cache, err := inv.cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	devs, err := inv.client.ListBlockdevs(ctx, inv.args[0], cache)
	if err != nil {
		return err
	}
	doc := make([]blockdevRow, 0, len(devs))
	rows := make([][]string, 0, len(devs))
	for _, dev := range devs {
		doc = append(doc, blockdevRow{Devnode: dev.Devnode, TotalSize: dev.TotalSize, ObjectPath: string(dev.Path)})
		rows = append(rows, []string{dev.Devnode, humanize.IBytes(dev.TotalSize), string(dev.Path)})
	}
	return inv.out().rows(
		[]string{"Device", "Size", "Object Path"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
		doc,
	)
}

func runBlockdevInfo(ctx context.Context, inv *invocation) error {
	info, err := inv.client.BlockdevInfo(ctx, inv.args[0], inv.args[1])
	if err != nil {
		return err
	}
	return inv.out().rows(
		[]string{"Pool", "Tier", "Device", "Size", "Object Path"},
		[][]string{{info.Pool, string(info.Tier), info.Devnode, humanize.IBytes(info.TotalSize), string(info.Path)}},
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
		info,
	)
}
