// SPDX-License-Identifier: MIT
// Package pathsubst resolves `{VARNAME}` placeholders in file paths
// against the process environment, spec §6.4's "variable substitution
// ... resolved in file paths at load time using process environment;
// unresolved braces are left intact."
//
// Grounded on the original tool's LunaCore::replaceKeysInBraces
// (original_source/core/common/strutils.hpp): the same
// find-every-`{...}`-then-look-up-or-skip shape, translated from a
// caller-supplied lookup container to `os.LookupEnv` since the
// environment is the only substitution source spec §6.4 names.
package pathsubst
