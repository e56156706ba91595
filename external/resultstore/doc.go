// SPDX-License-Identifier: MIT
// Package resultstore persists per-run stage outcomes — timing,
// residual/iteration counts, and warnings — to a sqlite-backed run
// history, the explicit opt-in postmortem sink spec §6.3 allows
// ("no implicit caches across runs" rules out anything transparent,
// not a deliberately-written history file).
//
// Grounded on the pack's one database driver, mattn/go-sqlite3,
// reached through the standard database/sql interface the way any Go
// program uses a database/sql driver — there is no pack repo that
// itself talks to sqlite to imitate more closely than that. Row keys
// use github.com/rs/xid, the same RunID type pipeline.RunUpTo stamps
// onto its events, so a stored row and the run that produced it share
// one identifier.
package resultstore
