package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stratis/internal/config"
)

const (
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderer writes listings in the configured output format.
type renderer struct {
	w        io.Writer
	format   string
	colorize bool
}

func newRenderer(w io.Writer, format string, colorize bool) *renderer {
	if format == "" {
		format = config.OutputTable
	}
	return &renderer{w: w, format: format, colorize: colorize}
}

// names prints a single-column listing.
func (r *renderer) names(header string, names []string) error {
	if names == nil {
		names = []string{}
	}
	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{name}
	}
	return r.rows([]string{header}, rows, nil, names)
}

// rows prints a listing. For json output doc is encoded instead of rows.
func (r *renderer) rows(headers []string, rows [][]string, aligns []columnAlignment, doc any) error {
	switch r.format {
	case config.OutputJSON:
		return writeJSON(r.w, doc)
	case config.OutputPlain:
		for _, row := range rows {
			if _, err := fmt.Fprintln(r.w, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
		return nil
	default:
		if len(rows) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(r.w, renderTable(headers, rows, aligns, r.colorize))
		return err
	}
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment, colorize bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	if colorize {
		tw.Style().Color.Header = text.Colors{text.Bold}
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
