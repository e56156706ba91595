// SPDX-License-Identifier: MIT
package design

// Key is a stable integer handle to a persistent design object.
// Handles are assigned on insertion and never reused, even after
// deletion, so a stale Key reliably fails a lookup instead of
// silently resolving to an unrelated object.
type Key int64

// NoKey is the sentinel value for "no object" (e.g. an unparented
// instance, or a pin with no bound net).
const NoKey Key = -1

// LayerKey addresses a technology Layer.
type LayerKey = Key

// SiteKey addresses a technology Site.
type SiteKey = Key

// CellKey addresses a library Cell.
type CellKey = Key

// PinKey addresses a PinInfo within a Cell's pin list.
type PinKey = Key

// InstanceKey addresses an Instance within a Module's netlist.
type InstanceKey = Key

// NetKey addresses a Net within a Module's netlist.
type NetKey = Key

// RegionKey addresses a floorplan Region.
type RegionKey = Key

// RowKey addresses a Row within a Region.
type RowKey = Key

// ModuleKey addresses a hierarchical netlist Module.
type ModuleKey = Key

// keyAllocator hands out monotonically increasing Keys for one entity class.
type keyAllocator struct {
	next Key
}

// alloc returns the next unused Key for this allocator.
func (a *keyAllocator) alloc() Key {
	k := a.next
	a.next++
	return k
}
