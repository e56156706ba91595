// SPDX-License-Identifier: MIT
// Package config centralizes the tunables spec §9 calls out as
// hard-coded constants in the original implementation (padWeight, the
// fixed-node weight multiplier, the max net size cutoff, CG solver
// tolerances, diffusion targets, router bend penalties, CTS caps) and
// exposes them through the teacher's functional-options idiom
// (matrix.Option / builder.BuilderOption), resolved once into an
// immutable Config.
package config

// Config bundles every tunable knob consumed by the placement, routing,
// and CTS engines. Zero value is invalid; always build via New.
type Config struct {
	// PadWeight is the original's star-net auxiliary-node pull factor.
	// Original default: 1.0. No package in this module reads it; the
	// quadratic placer weights star edges by net.Weight/(k-1) alone.
	PadWeight float64

	// FixedWeightMultiplier scales the weight of edges to fixed
	// (placed-and-fixed) instances, pulling movable cells toward
	// anchors harder than a plain net weight would. Original default: 10.0.
	FixedWeightMultiplier float64

	// MaxNetSize is the endpoint count above which a net is skipped
	// by the quadratic placer with a warning. Original default: 30.
	MaxNetSize int

	// CGTolerance is the relative residual tolerance for the
	// conjugate-gradient solver (spec §4.1). Original default: 1e-2
	// for placement (a "loose tolerance").
	CGTolerance float64

	// CGMaxIter bounds conjugate-gradient iterations.
	CGMaxIter int

	// DiffusionTargetDensity is the per-bin density the diffuser tries
	// to reach before stopping (spec §4.5). Original default: 0.75.
	DiffusionTargetDensity float64

	// DiffusionMaxIter bounds diffusion steps.
	DiffusionMaxIter int

	// DiffusionDeltaT is the advection time step. Original default: 0.1.
	DiffusionDeltaT float64

	// DiffusionBinMultiplier sizes bins as this multiple of the
	// average movable-cell size per axis. Original default: 5.
	DiffusionBinMultiplier float64

	// DiffusionBoundaryDensity is the density read back for bins
	// outside the placement rectangle (reflecting wall). Original default: 1.0.
	DiffusionBoundaryDensity float64

	// DiffusionRenewEvery is the original's interval, in iterations,
	// between from-scratch density recomputes. Original default: 5.
	// The diffusion package does not read it: it recomputes density
	// from instance positions on every iteration.
	DiffusionRenewEvery int

	// RouterBendPenalty is the extra step cost charged when the maze
	// router changes direction. Original default: 2.
	RouterBendPenalty int64

	// RouterHTracksPerCell / RouterVTracksPerCell are the minimum
	// requested routing tracks per GCell on horizontal/vertical layers.
	RouterHTracksPerCell int
	RouterVTracksPerCell int

	// RouterMaxCapacity is the default per-cell capacity ceiling.
	RouterMaxCapacity int64

	// CTSDefaultCMax is used when a caller does not supply a
	// per-invocation capacitance cap.
	CTSDefaultCMax float64
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithPadWeight overrides PadWeight.
func WithPadWeight(w float64) Option { return func(c *Config) { c.PadWeight = w } }

// WithFixedWeightMultiplier overrides FixedWeightMultiplier.
func WithFixedWeightMultiplier(m float64) Option {
	return func(c *Config) { c.FixedWeightMultiplier = m }
}

// WithMaxNetSize overrides MaxNetSize.
func WithMaxNetSize(n int) Option { return func(c *Config) { c.MaxNetSize = n } }

// WithCGTolerance overrides CGTolerance.
func WithCGTolerance(t float64) Option { return func(c *Config) { c.CGTolerance = t } }

// WithCGMaxIter overrides CGMaxIter.
func WithCGMaxIter(n int) Option { return func(c *Config) { c.CGMaxIter = n } }

// WithDiffusionTargetDensity overrides DiffusionTargetDensity.
func WithDiffusionTargetDensity(d float64) Option {
	return func(c *Config) { c.DiffusionTargetDensity = d }
}

// WithDiffusionMaxIter overrides DiffusionMaxIter.
func WithDiffusionMaxIter(n int) Option { return func(c *Config) { c.DiffusionMaxIter = n } }

// WithRouterBendPenalty overrides RouterBendPenalty.
func WithRouterBendPenalty(p int64) Option { return func(c *Config) { c.RouterBendPenalty = p } }

// WithRouterTracksPerCell overrides the requested horizontal/vertical
// track counts per GCell.
func WithRouterTracksPerCell(h, v int) Option {
	return func(c *Config) {
		c.RouterHTracksPerCell = h
		c.RouterVTracksPerCell = v
	}
}

// WithCTSDefaultCMax overrides CTSDefaultCMax.
func WithCTSDefaultCMax(cmax float64) Option { return func(c *Config) { c.CTSDefaultCMax = cmax } }

// Default returns the configuration matching the original tool's
// hard-coded constants (spec §9).
func Default() Config {
	return Config{
		PadWeight:                1.0,
		FixedWeightMultiplier:    10.0,
		MaxNetSize:               30,
		CGTolerance:              1.0e-2,
		CGMaxIter:                100,
		DiffusionTargetDensity:   0.75,
		DiffusionMaxIter:         100,
		DiffusionDeltaT:          0.1,
		DiffusionBinMultiplier:   5.0,
		DiffusionBoundaryDensity: 1.0,
		DiffusionRenewEvery:      5,
		RouterBendPenalty:        2,
		RouterHTracksPerCell:     1,
		RouterVTracksPerCell:     1,
		RouterMaxCapacity:        200,
		CTSDefaultCMax:           80.0,
	}
}

// New resolves a Config starting from Default and applying opts in order.
func New(opts ...Option) Config {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
