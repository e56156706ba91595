// SPDX-License-Identifier: MIT
package passdispatch_test

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunapnr/pnrcore/design"
	"github.com/lunapnr/pnrcore/external/passdispatch"
)

func TestRegisterRejectsEmptyName(t *testing.T) {
	r := passdispatch.NewRegistry()
	err := r.Register(passdispatch.Pass{Execute: func(*design.Design, []string) error { return nil }})
	require.ErrorIs(t, err, passdispatch.ErrEmptyName)
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	r := passdispatch.NewRegistry()
	noop := func(*design.Design, []string) error { return nil }
	require.NoError(t, r.Register(passdispatch.Pass{Name: "place", Execute: noop}))
	err := r.Register(passdispatch.Pass{Name: "place", Execute: noop})
	require.ErrorIs(t, err, passdispatch.ErrDuplicatePass)
}

func TestDispatchUnknownPassErrors(t *testing.T) {
	r := passdispatch.NewRegistry()
	err := r.Dispatch(nil, "ghost", nil)
	require.ErrorIs(t, err, passdispatch.ErrUnknownPass)
}

func TestDispatchPassesPositionalArgsWithoutFlags(t *testing.T) {
	r := passdispatch.NewRegistry()
	var gotPositional []string
	require.NoError(t, r.Register(passdispatch.Pass{
		Name: "floorplan",
		Execute: func(db *design.Design, positional []string) error {
			gotPositional = positional
			return nil
		},
	}))

	require.NoError(t, r.Dispatch(nil, "floorplan", []string{"core", "die"}))
	require.Equal(t, []string{"core", "die"}, gotPositional)
}

func TestDispatchParsesNamedAndPositionalArgs(t *testing.T) {
	r := passdispatch.NewRegistry()
	fs := flag.NewFlagSet("place", flag.ContinueOnError)
	target := fs.String("target", "", "target region")

	var gotPositional []string
	var gotTarget string
	require.NoError(t, r.Register(passdispatch.Pass{
		Name:  "place",
		Flags: fs,
		Execute: func(db *design.Design, positional []string) error {
			gotPositional = positional
			gotTarget = *target
			return nil
		},
	}))

	require.NoError(t, r.Dispatch(nil, "place", []string{"-target", "core", "extra"}))
	require.Equal(t, "core", gotTarget)
	require.Equal(t, []string{"extra"}, gotPositional)
}

func TestDispatchRejectsUnknownNamedParameter(t *testing.T) {
	r := passdispatch.NewRegistry()
	fs := flag.NewFlagSet("place", flag.ContinueOnError)
	require.NoError(t, r.Register(passdispatch.Pass{
		Name:    "place",
		Flags:   fs,
		Execute: func(*design.Design, []string) error { return nil },
	}))

	err := r.Dispatch(nil, "place", []string{"-bogus", "value"})
	require.Error(t, err)
}

func TestNamesAndHelpRoundTrip(t *testing.T) {
	r := passdispatch.NewRegistry()
	require.NoError(t, r.Register(passdispatch.Pass{
		Name:      "place",
		ShortHelp: "run the placer",
		Help:      "place: runs quadratic placement followed by legalization",
		Execute:   func(*design.Design, []string) error { return nil },
	}))
	require.NoError(t, r.Register(passdispatch.Pass{
		Name:    "route",
		Execute: func(*design.Design, []string) error { return nil },
	}))

	require.Equal(t, []string{"place", "route"}, r.Names())

	short, err := r.ShortHelp("place")
	require.NoError(t, err)
	require.Equal(t, "run the placer", short)

	_, err = r.Help("ghost")
	require.ErrorIs(t, err, passdispatch.ErrUnknownPass)
}
