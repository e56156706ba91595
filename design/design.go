// SPDX-License-Identifier: MIT
package design

import "fmt"

// Design is the single process-wide container owning every technology,
// cell-library, netlist, and floorplan entity (spec §3 "Lifecycle").
// All cross-package references into a Design are Keys, never pointers
// held across a Clear — this is what lets "clear" reclaim everything
// without leaving dangling references in other subsystems.
type Design struct {
	layers     map[LayerKey]*Layer
	layerNames map[string]LayerKey
	layerKeys  keyAllocator

	sites     map[SiteKey]*Site
	siteNames map[string]SiteKey
	siteKeys  keyAllocator

	cells     map[CellKey]*Cell
	cellNames map[string]CellKey
	cellKeys  keyAllocator

	modules     map[ModuleKey]*Module
	moduleNames map[string]ModuleKey
	moduleKeys  keyAllocator

	regions     map[RegionKey]*Region
	regionNames map[string]RegionKey
	regionKeys  keyAllocator

	rows    map[RowKey]*Row
	rowKeys keyAllocator
}

// New returns an empty Design container.
func New() *Design {
	return &Design{
		layers:      make(map[LayerKey]*Layer),
		layerNames:  make(map[string]LayerKey),
		sites:       make(map[SiteKey]*Site),
		siteNames:   make(map[string]SiteKey),
		cells:       make(map[CellKey]*Cell),
		cellNames:   make(map[string]CellKey),
		modules:     make(map[ModuleKey]*Module),
		moduleNames: make(map[string]ModuleKey),
		regions:     make(map[RegionKey]*Region),
		regionNames: make(map[string]RegionKey),
		rows:        make(map[RowKey]*Row),
	}
}

// Clear resets the Design to the empty state, as if New() had just
// been called. All previously issued Keys become invalid.
func (d *Design) Clear() {
	*d = *New()
}

// --- Layers ---------------------------------------------------------

// AddLayer inserts a technology Layer and returns its key.
func (d *Design) AddLayer(l Layer) (LayerKey, error) {
	if _, exists := d.layerNames[l.Name]; exists {
		return NoKey, fmt.Errorf("AddLayer %q: %w", l.Name, ErrDuplicateName)
	}
	key := d.layerKeys.alloc()
	cp := l
	d.layers[key] = &cp
	d.layerNames[l.Name] = key
	return key, nil
}

// Layer returns the Layer for key, or nil if absent.
func (d *Design) Layer(key LayerKey) *Layer { return d.layers[key] }

// LayerByName looks up a layer by name.
func (d *Design) LayerByName(name string) (LayerKey, bool) {
	key, ok := d.layerNames[name]
	return key, ok
}

// --- Sites -----------------------------------------------------------

// AddSite inserts a technology Site and returns its key.
func (d *Design) AddSite(s Site) (SiteKey, error) {
	if _, exists := d.siteNames[s.Name]; exists {
		return NoKey, fmt.Errorf("AddSite %q: %w", s.Name, ErrDuplicateName)
	}
	key := d.siteKeys.alloc()
	cp := s
	d.sites[key] = &cp
	d.siteNames[s.Name] = key
	return key, nil
}

// Site returns the Site for key, or nil if absent.
func (d *Design) Site(key SiteKey) *Site { return d.sites[key] }

// SiteByName looks up a site by name.
func (d *Design) SiteByName(name string) (SiteKey, bool) {
	key, ok := d.siteNames[name]
	return key, ok
}

// --- Cells -------------------------------------------------------------

// AddCell inserts a library Cell and returns its key.
func (d *Design) AddCell(c Cell) (CellKey, error) {
	if _, exists := d.cellNames[c.Name]; exists {
		return NoKey, fmt.Errorf("AddCell %q: %w", c.Name, ErrDuplicateName)
	}
	key := d.cellKeys.alloc()
	cp := c
	d.cells[key] = &cp
	d.cellNames[c.Name] = key
	return key, nil
}

// Cell returns the Cell for key, or nil if absent.
func (d *Design) Cell(key CellKey) *Cell { return d.cells[key] }

// CellByName looks up a cell by name.
func (d *Design) CellByName(name string) (CellKey, bool) {
	key, ok := d.cellNames[name]
	return key, ok
}

// --- Modules -----------------------------------------------------------

// AddModule creates a new, empty Module and returns its key.
func (d *Design) AddModule(name string) (ModuleKey, error) {
	if _, exists := d.moduleNames[name]; exists {
		return NoKey, fmt.Errorf("AddModule %q: %w", name, ErrDuplicateName)
	}
	key := d.moduleKeys.alloc()
	d.modules[key] = newModule(name)
	d.moduleNames[name] = key
	return key, nil
}

// Module returns the Module for key, or nil if absent.
func (d *Design) Module(key ModuleKey) *Module { return d.modules[key] }

// ModuleByName looks up a module by name.
func (d *Design) ModuleByName(name string) (ModuleKey, bool) {
	key, ok := d.moduleNames[name]
	return key, ok
}

// --- Floorplan -----------------------------------------------------------

// AddRegion inserts a floorplan Region and returns its key.
func (d *Design) AddRegion(r Region) (RegionKey, error) {
	if _, exists := d.regionNames[r.Name]; exists {
		return NoKey, fmt.Errorf("AddRegion %q: %w", r.Name, ErrDuplicateName)
	}
	key := d.regionKeys.alloc()
	cp := r
	cp.Rows = nil
	d.regions[key] = &cp
	d.regionNames[r.Name] = key
	return key, nil
}

// Region returns the Region for key, or nil if absent.
func (d *Design) Region(key RegionKey) *Region { return d.regions[key] }

// RegionByName looks up a region by name.
func (d *Design) RegionByName(name string) (RegionKey, bool) {
	key, ok := d.regionNames[name]
	return key, ok
}

// AddRow inserts a Row into region and returns its key. Validates the
// row-height-equals-site-height and row-within-region invariants (spec §3).
func (d *Design) AddRow(regionKey RegionKey, row Row) (RowKey, error) {
	region, ok := d.regions[regionKey]
	if !ok {
		return NoKey, fmt.Errorf("AddRow: region: %w", ErrNotFound)
	}

	siteKey, ok := d.siteNames[row.SiteKind]
	if ok {
		site := d.sites[siteKey]
		if site.Size.H != row.Rect.Size.H {
			return NoKey, fmt.Errorf("AddRow: %w", ErrRowHeightMismatch)
		}
	}

	placeRect := region.PlacementRect()
	rowUR := row.Rect.UR()
	placeUR := placeRect.UR()
	if row.Rect.LL.X < placeRect.LL.X || rowUR.X > placeUR.X {
		return NoKey, fmt.Errorf("AddRow: %w", ErrRowOutsideRegion)
	}

	row.Region = regionKey
	key := d.rowKeys.alloc()
	cp := row
	d.rows[key] = &cp
	region.Rows = append(region.Rows, key)
	return key, nil
}

// Row returns the Row for key, or nil if absent.
func (d *Design) Row(key RowKey) *Row { return d.rows[key] }
