package main

import (
	"context"
)

func runCreatePool(ctx context.Context, inv *invocation) error {
	redundancy, err := inv.cmd.Flags().GetString("redundancy")
	if err != nil {
		return err
	}
	_, err = inv.client.CreatePool(ctx, inv.args[0], inv.args[1:], redundancy)
	return err
}

func runDestroyPool(ctx context.Context, inv *invocation) error {
	return inv.client.DestroyPool(ctx, inv.args[0])
}

func runListPools(ctx context.Context, inv *invocation) error {
	pools, err := inv.client.ListPools(ctx)
	if err != nil {
		return err
	}
	return inv.out().names("Pool", pools)
}

func runRenamePool(ctx context.Context, inv *invocation) error {
	_, err := inv.client.RenamePool(ctx, inv.args[0], inv.args[1])
	return err
}
