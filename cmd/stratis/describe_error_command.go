package main

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"stratis/internal/errcodes"
)

// runDescribeError prints one catalog entry, looked up by name or code, or
// the whole catalog when no argument is given.
func runDescribeError(ctx context.Context, inv *invocation) error {
	catalog := inv.client.Catalog()

	doc := []codeRow{}
	if len(inv.args) == 0 {
		entries, err := catalog.Entries(ctx)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			doc = append(doc, codeRow(entry))
		}
	} else {
		row, err := lookupCode(ctx, catalog, strings.TrimSpace(inv.args[0]))
		if err != nil {
			return err
		}
		doc = []codeRow{row}
	}

	rows := make([][]string, 0, len(doc))
	for _, row := range doc {
		rows = append(rows, []string{row.Name, strconv.Itoa(row.Code), row.Description})
	}
	return inv.out().rows(
		[]string{"Name", "Code", "Description"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
		doc,
	)
}

func lookupCode(ctx context.Context, catalog *errcodes.Catalog, arg string) (codeRow, error) {
	code, convErr := strconv.Atoi(arg)
	if convErr != nil {
		var err error
		code, err = catalog.CodeFor(ctx, strings.ToUpper(arg))
		if err != nil {
			return codeRow{}, asLookupUsage(err)
		}
	}
	name, description, err := catalog.Describe(ctx, code)
	if err != nil {
		return codeRow{}, asLookupUsage(err)
	}
	return codeRow{Name: name, Code: code, Description: description}, nil
}

func asLookupUsage(err error) error {
	if errors.Is(err, errcodes.ErrUnknownName) || errors.Is(err, errcodes.ErrUnknownCode) {
		return newUsageError(err)
	}
	return err
}
