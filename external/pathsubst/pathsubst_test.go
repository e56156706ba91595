// SPDX-License-Identifier: MIT
package pathsubst_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunapnr/pnrcore/external/pathsubst"
)

func TestResolveSubstitutesKnownVariable(t *testing.T) {
	t.Setenv("PDK_ROOT", "/opt/pdk")
	got := pathsubst.Resolve("{PDK_ROOT}/lib/std.lef")
	require.Equal(t, "/opt/pdk/lib/std.lef", got)
}

func TestResolveLeavesUnresolvedBracesIntact(t *testing.T) {
	got := pathsubst.Resolve("{DOES_NOT_EXIST}/lib/std.lef")
	require.Equal(t, "{DOES_NOT_EXIST}/lib/std.lef", got)
}

func TestResolveHandlesMultiplePlaceholders(t *testing.T) {
	t.Setenv("PDK_ROOT", "/opt/pdk")
	t.Setenv("LIB", "sky130")
	got := pathsubst.Resolve("{PDK_ROOT}/{LIB}/std.lef")
	require.Equal(t, "/opt/pdk/sky130/std.lef", got)
}

func TestResolveLeavesPathWithoutPlaceholdersUnchanged(t *testing.T) {
	got := pathsubst.Resolve("/abs/path/std.lef")
	require.Equal(t, "/abs/path/std.lef", got)
}

func TestResolveHandlesEmptyBraces(t *testing.T) {
	got := pathsubst.Resolve("prefix-{}-suffix")
	require.Equal(t, "prefix-{}-suffix", got)
}
