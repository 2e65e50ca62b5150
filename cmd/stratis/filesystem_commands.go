package main

import (
	"context"
)

func runFilesystemCreate(ctx context.Context, inv *invocation) error {
	_, err := inv.client.CreateFilesystems(ctx, inv.args[0], inv.args[1:])
	return err
}

func runFilesystemList(ctx context.Context, inv *invocation) error {
	names, err := inv.client.ListFilesystems(ctx, inv.args[0])
	if err != nil {
		return err
	}
	return inv.out().names("Filesystem", names)
}

func runFilesystemDestroy(ctx context.Context, inv *invocation) error {
	_, err := inv.client.DestroyFilesystems(ctx, inv.args[0], inv.args[1:])
	return err
}

func runFilesystemRename(ctx context.Context, inv *invocation) error {
	_, err := inv.client.RenameFilesystem(ctx, inv.args[0], inv.args[1], inv.args[2])
	return err
}
