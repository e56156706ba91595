package design

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddCellAndInstance(t *testing.T) {
	d := New()

	cellKey, err := d.AddCell(Cell{
		Name: "INV_X1",
		Size: Size{W: 400, H: 2000},
		Pins: []PinInfo{
			{Name: "A", Direction: PinIn},
			{Name: "Y", Direction: PinOut},
		},
	})
	require.NoError(t, err)

	modKey, err := d.AddModule("top")
	require.NoError(t, err)
	mod := d.Module(modKey)

	instKey, err := mod.AddInstance("u1", cellKey, InstanceCell)
	require.NoError(t, err)

	ins := mod.Instance(instKey)
	require.Equal(t, Unplaced, ins.State)
	require.Equal(t, cellKey, ins.Archetype)

	_, err = mod.AddInstance("u1", cellKey, InstanceCell)
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestConnectMaintainsReverseBinding(t *testing.T) {
	d := New()
	cellKey, _ := d.AddCell(Cell{
		Name: "BUF_X1",
		Pins: []PinInfo{{Name: "A", Direction: PinIn}, {Name: "Y", Direction: PinOut}},
	})
	modKey, _ := d.AddModule("top")
	mod := d.Module(modKey)

	u1, _ := mod.AddInstance("u1", cellKey, InstanceCell)
	u2, _ := mod.AddInstance("u2", cellKey, InstanceCell)
	netKey, _ := mod.AddNet("n1", 1.0)

	cell := d.Cell(cellKey)
	yPin := cell.PinByName("Y")
	aPin := cell.PinByName("A")

	require.NoError(t, mod.Connect(u1, yPin, netKey))
	require.NoError(t, mod.Connect(u2, aPin, netKey))

	net := mod.Net(netKey)
	require.Len(t, net.Connections, 2)
	require.False(t, net.Degenerate())

	require.Equal(t, netKey, mod.Instance(u1).Net(yPin))
	require.Equal(t, netKey, mod.Instance(u2).Net(aPin))

	// reverse connection appears exactly once
	count := 0
	for _, c := range net.Connections {
		if c.Instance == u1 && c.Pin == yPin {
			count++
		}
	}
	require.Equal(t, 1, count)

	require.NoError(t, mod.Disconnect(u1, yPin))
	require.Equal(t, NoKey, mod.Instance(u1).Net(yPin))
	require.Len(t, mod.Net(netKey).Connections, 1)
}

func TestAddRowValidatesHeightAndExtent(t *testing.T) {
	d := New()
	_, err := d.AddSite(Site{Name: "core", Size: Size{W: 200, H: 2000}})
	require.NoError(t, err)

	regionKey, err := d.AddRegion(Region{
		Name: "core_region",
		Rect: Rect{LL: Coord{0, 0}, Size: Size{W: 100000, H: 100000}},
	})
	require.NoError(t, err)

	_, err = d.AddRow(regionKey, Row{
		Rect:     Rect{LL: Coord{0, 0}, Size: Size{W: 10000, H: 2000}},
		SiteKind: "core",
	})
	require.NoError(t, err)

	_, err = d.AddRow(regionKey, Row{
		Rect:     Rect{LL: Coord{0, 2000}, Size: Size{W: 10000, H: 1000}},
		SiteKind: "core",
	})
	require.ErrorIs(t, err, ErrRowHeightMismatch)

	_, err = d.AddRow(regionKey, Row{
		Rect:     Rect{LL: Coord{-500, 4000}, Size: Size{W: 10000, H: 2000}},
		SiteKind: "core",
	})
	require.ErrorIs(t, err, ErrRowOutsideRegion)
}

func TestClearInvalidatesKeys(t *testing.T) {
	d := New()
	modKey, _ := d.AddModule("top")
	require.NotNil(t, d.Module(modKey))

	d.Clear()
	require.Nil(t, d.Module(modKey))

	_, err := d.AddModule("top")
	require.NoError(t, err) // name index was reset too
}
