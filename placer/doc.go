// SPDX-License-Identifier: MIT
// Package placer implements the quadratic / force-directed placer (spec
// §4.3 / C3) together with the placement database view (spec §4.2 /
// C2) that converts between the design container's Instance records
// and the dense per-module node vector the placer and, later, the
// diffuser and legalizer all operate on.
//
// Grounded on the original tool's QPlacer::Placer (star-net auxiliary
// nodes, AxisAccessor-templated equation assembly) reimplemented over
// this module's algebra.SparseMatrix/CG solver instead of Eigen, and
// on the teacher's Graph/adjacency style for the node-index bookkeeping.
package placer
