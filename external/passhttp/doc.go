// SPDX-License-Identifier: MIT
// Package passhttp exposes a running pipeline's per-stage status as a
// small JSON HTTP surface, an optional orchestrator-facing view of the
// same state spec §6.2's pass dispatcher reports on the command line.
//
// Grounded on the pack's one HTTP router, github.com/gorilla/mux
// (pulled in indirectly via sarchlab-zeonica's go.mod): routes are
// registered the same way any gorilla/mux server does, with path
// variables read through mux.Vars rather than manual string splitting.
package passhttp
