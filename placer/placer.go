// SPDX-License-Identifier: MIT
package placer

import (
	"github.com/lunapnr/pnrcore/algebra"
	"github.com/lunapnr/pnrcore/config"
	"github.com/lunapnr/pnrcore/design"
	"github.com/lunapnr/pnrcore/internal/logging"
)

// netEndpoint is one distinct instance-level endpoint of a net as seen
// by the placer (pin-level detail is collapsed — the quadratic model
// pulls whole instances together, not individual pins). unknown is the
// row/column this endpoint occupies in the solved system, or -1 if the
// endpoint is fixed and contributes only to the right-hand side.
type netEndpoint struct {
	nodeIdx int
	unknown int
}

// classifiedNet is a net already reduced to its distinct instance
// endpoints, ready for equation assembly.
type classifiedNet struct {
	weight    float64
	endpoints []netEndpoint
}

// assignUnknowns gives every movable node a 0-based unknown index, in
// Node order, and -1 to every fixed node. Returns the count of movable
// nodes, i.e. the number of real (non-star) unknowns.
func assignUnknowns(nodes []Node) ([]int, int) {
	unknowns := make([]int, len(nodes))
	n := 0
	for i, node := range nodes {
		if node.Fixed {
			unknowns[i] = -1
			continue
		}
		unknowns[i] = n
		n++
	}
	return unknowns, n
}

// collectNets groups each net's connections into distinct instance
// endpoints and drops degenerate/unmovable/oversized nets per spec §4.3.
func collectNets(mod *design.Module, index map[design.InstanceKey]int, nodes []Node, unknowns []int, cfg config.Config) []classifiedNet {
	var out []classifiedNet

	for _, netKey := range mod.Nets() {
		net := mod.Net(netKey)
		if net.Degenerate() {
			continue
		}

		seen := make(map[int]bool)
		var endpoints []netEndpoint
		movableCount := 0
		for _, conn := range net.Connections {
			idx, ok := index[conn.Instance]
			if !ok || seen[idx] {
				continue
			}
			seen[idx] = true
			endpoints = append(endpoints, netEndpoint{nodeIdx: idx, unknown: unknowns[idx]})
			if !nodes[idx].Fixed {
				movableCount++
			}
		}

		if len(endpoints) <= 1 || movableCount < 1 {
			continue // spec §4.3: nets with <=1 movable endpoint, or <=1 endpoint total, are ignored
		}

		if len(endpoints) > 2 && len(endpoints) > cfg.MaxNetSize {
			logging.Warnf("placer: net %q has %d endpoints (> max %d), skipping", net.Name, len(endpoints), cfg.MaxNetSize)
			continue
		}

		out = append(out, classifiedNet{weight: net.Weight, endpoints: endpoints})
	}

	return out
}

// axis selects which coordinate component equation assembly targets.
type axis func(design.Coord) float64

func axisX(c design.Coord) float64 { return float64(c.X) }
func axisY(c design.Coord) float64 { return float64(c.Y) }

// buildEquations assembles the shared A matrix and one right-hand side
// vector for the requested axis (spec §4.3 matrix assembly).
//
// numMovable real unknowns come first, one per movable Node in Node
// order; one extra unknown is appended per star net, in the order
// classified lists them. Fixed nodes never get a row or column — an
// adaptation from the original, which sizes A to include every node
// and simply leaves fixed rows unused; indexing only live unknowns
// keeps the solved system's dimension equal to its actual degrees of
// freedom.
func buildEquations(classified []classifiedNet, nodes []Node, numMovable int, get axis, fixedWeightMul float64) (*algebra.SparseMatrix, algebra.Vector) {
	numStars := 0
	for _, net := range classified {
		if len(net.endpoints) > 2 {
			numStars++
		}
	}

	n := numMovable + numStars
	mat := algebra.NewSparseMatrix(n)
	b := algebra.NewVector(n)

	starIdx := numMovable
	for _, net := range classified {
		if len(net.endpoints) == 2 {
			addTwoNetEquation(mat, b, net, nodes, get, fixedWeightMul)
			continue
		}

		addStarNetEquation(mat, b, net, nodes, get, fixedWeightMul, starIdx)
		starIdx++
	}

	return mat, b
}

func addTwoNetEquation(mat *algebra.SparseMatrix, b algebra.Vector, net classifiedNet, nodes []Node, get axis, fixedWeightMul float64) {
	a, c := net.endpoints[0], net.endpoints[1]
	aNode, cNode := nodes[a.nodeIdx], nodes[c.nodeIdx]

	if aNode.Fixed && cNode.Fixed {
		return // both fixed: no movable unknown involved
	}
	if aNode.Fixed {
		a, c = c, a
		aNode, cNode = cNode, aNode
	}

	const effectiveWeight = 1.0 // spec §4.3: weight 1/(k-1) for k=2, ignoring net.Weight

	if !cNode.Fixed {
		i, j := a.unknown, c.unknown
		_ = mat.Add(i, i, effectiveWeight)
		_ = mat.Add(j, j, effectiveWeight)
		_ = mat.Add(i, j, -effectiveWeight)
		_ = mat.Add(j, i, -effectiveWeight)
		return
	}

	i := a.unknown
	w := effectiveWeight * fixedWeightMul * cNode.Weight
	_ = mat.Add(i, i, w)
	cur, _ := b.At(i)
	_ = b.Set(i, cur+w*get(cNode.Center))
}

func addStarNetEquation(mat *algebra.SparseMatrix, b algebra.Vector, net classifiedNet, nodes []Node, get axis, fixedWeightMul float64, starIdx int) {
	k := len(net.endpoints)
	effectiveWeight := net.weight / float64(k-1)

	_ = mat.Add(starIdx, starIdx, 0) // ensure the star row participates even if every endpoint is fixed

	for _, ep := range net.endpoints {
		node := nodes[ep.nodeIdx]
		if !node.Fixed {
			i := ep.unknown
			_ = mat.Add(i, i, effectiveWeight)
			_ = mat.Add(starIdx, starIdx, effectiveWeight)
			_ = mat.Add(i, starIdx, -effectiveWeight)
			_ = mat.Add(starIdx, i, -effectiveWeight)
			continue
		}

		w := effectiveWeight * fixedWeightMul * node.Weight
		_ = mat.Add(starIdx, starIdx, w)
		cur, _ := b.At(starIdx)
		_ = b.Set(starIdx, cur+w*get(node.Center))
	}
}

// Result reports convergence stats for one quadratic-placement solve,
// one per axis.
type Result struct {
	X algebra.ComputeInfo
	Y algebra.ComputeInfo
}

// Solve runs the quadratic / force-directed placer (spec §4.3) over
// every movable instance of mod, pulling movable nodes toward each
// other (two-terminal nets) or toward shared star-net auxiliary nodes
// (3+-terminal nets), with fixed/pin/module-boundary instances acting
// as anchors. Movable instance positions are updated in place via
// WriteBack; pin and module instances must already be PlacedAndFixed.
// If every net is skipped, nothing is solved and no instance is moved.
func Solve(mod *design.Module, des *design.Design, cfg config.Config) (Result, error) {
	nodes, index, err := BuildNodes(mod, des)
	if err != nil {
		return Result{}, err
	}

	unknowns, numMovable := assignUnknowns(nodes)
	if numMovable == 0 {
		return Result{}, nil
	}

	classified := collectNets(mod, index, nodes, unknowns, cfg)
	if len(classified) == 0 {
		return Result{}, nil
	}

	matX, bx := buildEquations(classified, nodes, numMovable, axisX, cfg.FixedWeightMultiplier)
	matY, by := buildEquations(classified, nodes, numMovable, axisY, cfg.FixedWeightMultiplier)

	xSol := algebra.NewVector(matX.Size())
	ySol := algebra.NewVector(matY.Size())

	infoX := algebra.Solve(matX, bx, xSol, algebra.NewJacobiPreconditioner(matX), cfg.CGTolerance, cfg.CGMaxIter)
	infoY := algebra.Solve(matY, by, ySol, algebra.NewJacobiPreconditioner(matY), cfg.CGTolerance, cfg.CGMaxIter)

	centers := make(map[design.InstanceKey]design.Coord, numMovable)
	for i, node := range nodes {
		if node.Fixed {
			continue
		}
		u := unknowns[i]
		x, _ := xSol.At(u)
		y, _ := ySol.At(u)
		centers[node.Instance] = design.Coord{X: int64(x), Y: int64(y)}
	}

	WriteBack(mod, nodes, centers)

	return Result{X: infoX, Y: infoY}, nil
}
