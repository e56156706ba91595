// SPDX-License-Identifier: MIT
package cts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunapnr/pnrcore/design"
)

func buildClockFixture(t *testing.T, sinkCount int, sinkCap float64) (*design.Design, *design.Module, design.NetKey, BufferSpec) {
	t.Helper()
	des := design.New()

	sinkCell, err := des.AddCell(design.Cell{
		Name: "DFF",
		Size: design.Size{W: 20, H: 100},
		Pins: []design.PinInfo{{Name: "CK", Direction: design.PinIn, Capacitance: sinkCap}},
	})
	require.NoError(t, err)

	driverCell, err := des.AddCell(design.Cell{
		Name: "OSC",
		Size: design.Size{W: 20, H: 100},
		Pins: []design.PinInfo{{Name: "Y", Direction: design.PinOut}},
	})
	require.NoError(t, err)

	bufCell, err := des.AddCell(design.Cell{
		Name: "CLKBUF",
		Size: design.Size{W: 20, H: 100},
		Pins: []design.PinInfo{
			{Name: "A", Direction: design.PinIn, Capacitance: 5},
			{Name: "Y", Direction: design.PinOut},
		},
	})
	require.NoError(t, err)

	modKey, err := des.AddModule("top")
	require.NoError(t, err)
	mod := des.Module(modKey)

	netKey, err := mod.AddNet("clk", 1.0)
	require.NoError(t, err)

	driverKey, err := mod.AddInstance("driver", driverCell, design.InstanceCell)
	require.NoError(t, err)
	require.NoError(t, mod.Connect(driverKey, 0, netKey))

	for i := 0; i < sinkCount; i++ {
		key, err := mod.AddInstance(string(rune('a'+i))+"_dff", sinkCell, design.InstanceCell)
		require.NoError(t, err)
		mod.Instance(key).Pos = design.Coord{X: int64(i) * 100, Y: int64(i%3) * 50}
		require.NoError(t, mod.Connect(key, 0, netKey))
	}

	buf := BufferSpec{Cell: bufCell, InputPin: 0, OutputPin: 1, InputCap: 5}
	return des, mod, netKey, buf
}

func TestSynthesizeInsertsBuffersWhenOverCap(t *testing.T) {
	des, mod, netKey, buf := buildClockFixture(t, 16, 10)

	result, err := Synthesize(mod, des, netKey, buf, 80)
	require.NoError(t, err)
	require.GreaterOrEqual(t, result.BuffersInserted, 2)
	require.Equal(t, 16, result.SinksConnected)

	net := mod.Net(netKey)
	require.True(t, net.IsClock)
}

func TestSynthesizeNoBuffersWhenUnderCap(t *testing.T) {
	des, mod, netKey, buf := buildClockFixture(t, 4, 10)

	result, err := Synthesize(mod, des, netKey, buf, 80)
	require.NoError(t, err)
	require.Equal(t, 0, result.BuffersInserted)
	require.Equal(t, 4, result.SinksConnected)

	net := mod.Net(netKey)
	require.Len(t, net.Connections, 5) // driver + 4 sinks, reconnected directly
}

func TestSynthesizePreservesSinkSet(t *testing.T) {
	des, mod, netKey, buf := buildClockFixture(t, 16, 10)

	var sinkKeys []design.InstanceKey
	for _, key := range mod.Instances() {
		ins := mod.Instance(key)
		cell := des.Cell(ins.Archetype)
		if ins.Net(0) == netKey && cell.Pins[0].Direction == design.PinIn {
			sinkKeys = append(sinkKeys, key)
		}
	}
	require.Len(t, sinkKeys, 16)

	_, err := Synthesize(mod, des, netKey, buf, 80)
	require.NoError(t, err)

	// every original sink is still present and now driven by a
	// freshly inserted buffer net instead of the raw clock net.
	for _, key := range sinkKeys {
		ins := mod.Instance(key)
		require.NotNil(t, ins)
		driving := ins.Net(0)
		require.NotEqual(t, design.NoKey, driving)
		require.NotEqual(t, netKey, driving)
	}
}

func TestSynthesizeErrorsOnUnknownNet(t *testing.T) {
	des, mod, _, buf := buildClockFixture(t, 4, 10)
	_, err := Synthesize(mod, des, design.NoKey, buf, 80)
	require.ErrorIs(t, err, ErrNetNotFound)
}

func TestSynthesizeNoBufferDownstreamExceedsCMax(t *testing.T) {
	const maxCap = 80.0
	des, mod, netKey, buf := buildClockFixture(t, 16, 10)

	_, err := Synthesize(mod, des, netKey, buf, maxCap)
	require.NoError(t, err)

	// every buffer's own output net drives at most maxCap worth of
	// downstream capacitance: sink pins contribute their own cap,
	// a downstream buffer's input pin contributes buf.InputCap.
	for _, netKeyOut := range mod.Nets() {
		net := mod.Net(netKeyOut)
		if net.Name == "clk" {
			continue
		}
		var load float64
		for _, c := range net.Connections {
			ins := mod.Instance(c.Instance)
			if ins.Archetype == buf.Cell && c.Pin == buf.InputPin {
				load += buf.InputCap
				continue
			}
			cell := des.Cell(ins.Archetype)
			load += cell.Pins[c.Pin].Capacitance
		}
		require.LessOrEqual(t, load, maxCap, "net %q exceeds C_max", net.Name)
	}
}
