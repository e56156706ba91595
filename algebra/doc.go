// SPDX-License-Identifier: MIT
// Package algebra implements the sparse linear algebra primitives (spec
// §4.1 / C1) shared by the quadratic placer and, via its preconditioned
// conjugate-gradient solver, any future SPD system in the core: a
// sparse row-major matrix, a dense vector with the usual BLAS-1
// operations, and a conjugate-gradient solver with pluggable
// preconditioners.
//
// It is grounded on the teacher's matrix package (Matrix interface,
// bounds-checked At/Set, sentinel errors) adapted from a graph
// adjacency representation to the numerical SPD-solve role the
// original tool's Algebra::SparseMatrix/Vector/CGSolver play.
package algebra
