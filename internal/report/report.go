package report

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lunapnr/pnrcore/cts"
	"github.com/lunapnr/pnrcore/diffusion"
	"github.com/lunapnr/pnrcore/legalizer"
	"github.com/lunapnr/pnrcore/placer"
)

// Row is one metric line in a stage summary table.
type Row struct {
	Stage  string
	Metric string
	Value  string
}

// Render lays out rows as a bordered table with a Stage/Metric/Value
// header, in the order given.
func Render(rows []Row) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Stage", "Metric", "Value"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Stage, r.Metric, r.Value})
	}
	return t.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// PlaceRows summarizes a placer.Result's per-axis CG outcome.
func PlaceRows(r placer.Result) []Row {
	return []Row{
		{"place", "x iterations", strconv.Itoa(r.X.Iterations)},
		{"place", "x residual", formatFloat(r.X.Error)},
		{"place", "y iterations", strconv.Itoa(r.Y.Iterations)},
		{"place", "y residual", formatFloat(r.Y.Error)},
	}
}

// DiffusionRows summarizes a diffusion.Result.
func DiffusionRows(r diffusion.Result) []Row {
	return []Row{
		{"diffusion", "iterations", strconv.Itoa(r.Iterations)},
		{"diffusion", "converged", strconv.FormatBool(r.Converged)},
		{"diffusion", "max density", formatFloat(r.MaxDensity)},
	}
}

// LegalizeRows summarizes a legalizer.Result.
func LegalizeRows(r legalizer.Result) []Row {
	return []Row{
		{"legalize", "legalized", strconv.Itoa(r.Legalized)},
		{"legalize", "overflows", strconv.Itoa(r.Overflows)},
	}
}

// CTSRows summarizes a cts.Result.
func CTSRows(r cts.Result) []Row {
	return []Row{
		{"cts", "buffers inserted", strconv.Itoa(r.BuffersInserted)},
		{"cts", "sinks connected", strconv.Itoa(r.SinksConnected)},
		{"cts", "total capacitance", formatFloat(r.TotalCapacitance)},
	}
}
