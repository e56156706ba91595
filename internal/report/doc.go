// SPDX-License-Identifier: MIT
// Package report renders per-stage summary tables (CG/diffusion/CTS/
// legalization metrics) for CLI output, the kind of
// `pass -help`-style summary a pass dispatcher prints after a stage
// finishes.
//
// Grounded on the pack's one table-rendering library,
// github.com/jedib0t/go-pretty/v6 (indirect via sarchlab-zeonica's
// go.mod): a table.Writer with a header row and one row per metric,
// the library's own basic usage pattern.
package report
