// SPDX-License-Identifier: MIT
package rmst

import (
	"container/heap"

	"github.com/lunapnr/pnrcore/design"
)

// NoParent marks a TreeNode with no parent (the tree root).
const NoParent = -1

// TreeEdge is one child edge hanging off a TreeNode, carrying the
// child's own index and position for convenient downstream traversal.
type TreeEdge struct {
	Index int
	Pos   design.Coord
}

// TreeNode is one terminal of the spanning tree: its own position, its
// parent's index (NoParent for the root), and the list of children
// Prim attached to it.
type TreeNode struct {
	Index  int
	Pos    design.Coord
	Parent int
	Edges  []TreeEdge
}

// Tree is a rectilinear minimum spanning tree over a set of terminal
// positions, indexed the same way as the input slice.
type Tree []TreeNode

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// cost is the 3-tuple tie-break from the rectilinear Steiner tree
// paper: primary key is Manhattan distance; ties favor the pair
// further apart in y, then the pair with the larger x.
type cost struct {
	dist    int64
	negAbsY int64
	negMaxX int64
}

func calcCost(a, b design.Coord) cost {
	return cost{
		dist:    abs64(a.X-b.X) + abs64(a.Y-b.Y),
		negAbsY: -abs64(a.Y - b.Y),
		negMaxX: -max64(a.X, b.X),
	}
}

func (c cost) less(o cost) bool {
	if c.dist != o.dist {
		return c.dist < o.dist
	}
	if c.negAbsY != o.negAbsY {
		return c.negAbsY < o.negAbsY
	}
	return c.negMaxX < o.negMaxX
}

type candidateEdge struct {
	from, to int
	cost     cost
}

type edgeHeap []*candidateEdge

func (h edgeHeap) Len() int            { return len(h) }
func (h edgeHeap) Less(i, j int) bool  { return h[i].cost.less(h[j].cost) }
func (h edgeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *edgeHeap) Push(x interface{}) { *h = append(*h, x.(*candidateEdge)) }
func (h *edgeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Prim builds a rectilinear minimum spanning tree over nodes, rooted
// at index 0, using the 3-tuple cost tie-break (spec §4.7).
func Prim(nodes []design.Coord) Tree {
	tree := make(Tree, len(nodes))
	for i, pos := range nodes {
		tree[i] = TreeNode{Index: i, Pos: pos, Parent: NoParent}
	}
	if len(nodes) == 0 {
		return tree
	}

	h := &edgeHeap{}
	heap.Init(h)
	for idx := 1; idx < len(nodes); idx++ {
		heap.Push(h, &candidateEdge{from: 0, to: idx, cost: calcCost(nodes[0], nodes[idx])})
	}

	hasParent := make([]bool, len(nodes))
	hasParent[0] = true

	for h.Len() > 0 {
		e := heap.Pop(h).(*candidateEdge)
		if hasParent[e.to] {
			continue
		}

		hasParent[e.to] = true
		tree[e.from].Edges = append(tree[e.from].Edges, TreeEdge{Index: e.to, Pos: nodes[e.to]})
		tree[e.to].Parent = e.from

		for idx := 0; idx < len(nodes); idx++ {
			if hasParent[idx] {
				continue
			}
			heap.Push(h, &candidateEdge{from: e.to, to: idx, cost: calcCost(nodes[e.to], nodes[idx])})
		}
	}

	return tree
}
