// SPDX-License-Identifier: MIT
// Package passdispatch implements the pass dispatcher spec §6.2
// describes: each pass has a name, positional parameters, named
// parameters (`-key value`), a one-time registration hook, an execute
// step, and help text. Unknown passes or unknown required named
// parameters are errors.
//
// The pack has no cobra-style structured-CLI library to ground this
// on directly (none of the example repos import one), so the
// dispatcher is built on the standard `flag` package — each Pass owns
// its own `*flag.FlagSet` for its named parameters, the same way a
// cobra/urfave command owns its flag set — plus a small name-keyed
// registry modeled on the standard library's own `database/sql.Register`
// pattern: passes call Registry.Register from their own package
// `init()`, exactly as spec §6.2's "init() one-time registration hook"
// names.
package passdispatch
