// SPDX-License-Identifier: MIT
package rmst

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunapnr/pnrcore/design"
)

func TestPrimConnectsEveryNode(t *testing.T) {
	nodes := []design.Coord{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 0, Y: 100},
		{X: 100, Y: 100},
	}

	tree := Prim(nodes)
	require.Len(t, tree, 4)

	connected := map[int]bool{0: true}
	var walk func(idx int)
	walk = func(idx int) {
		for _, e := range tree[idx].Edges {
			if !connected[e.Index] {
				connected[e.Index] = true
				walk(e.Index)
			}
		}
	}
	walk(0)

	for i := range nodes {
		require.True(t, connected[i], "node %d not reachable from root", i)
	}
}

func TestPrimTotalEdgeCountIsSpanningTree(t *testing.T) {
	nodes := []design.Coord{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 20, Y: 0},
		{X: 30, Y: 0},
		{X: 40, Y: 50},
	}

	tree := Prim(nodes)
	edgeCount := 0
	for _, node := range tree {
		edgeCount += len(node.Edges)
	}
	require.Equal(t, len(nodes)-1, edgeCount)
}

func TestPrimSquareTotalsThirtyManhattanUnits(t *testing.T) {
	nodes := []design.Coord{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 0, Y: 10},
		{X: 10, Y: 10},
	}

	tree := Prim(nodes)

	var edgeCount int
	var totalDist int64
	for _, node := range tree {
		for _, e := range node.Edges {
			edgeCount++
			totalDist += abs64(node.Pos.X-e.Pos.X) + abs64(node.Pos.Y-e.Pos.Y)
		}
	}

	require.Equal(t, 3, edgeCount)
	require.Equal(t, int64(30), totalDist)
}

func TestPrimSingleNode(t *testing.T) {
	tree := Prim([]design.Coord{{X: 5, Y: 5}})
	require.Len(t, tree, 1)
	require.Empty(t, tree[0].Edges)
}

func TestPrimEmpty(t *testing.T) {
	tree := Prim(nil)
	require.Empty(t, tree)
}
