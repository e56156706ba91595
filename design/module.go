// SPDX-License-Identifier: MIT
package design

import (
	"fmt"
	"sort"
)

// Module is a hierarchical netlist unit: a set of instances and the
// nets connecting their pins.
type Module struct {
	Name string

	instances     map[InstanceKey]*Instance
	instanceNames map[string]InstanceKey
	instKeys      keyAllocator

	nets     map[NetKey]*Net
	netNames map[string]NetKey
	netKeys  keyAllocator
}

func newModule(name string) *Module {
	return &Module{
		Name:          name,
		instances:     make(map[InstanceKey]*Instance),
		instanceNames: make(map[string]InstanceKey),
		nets:          make(map[NetKey]*Net),
		netNames:      make(map[string]NetKey),
	}
}

// AddInstance inserts a new Instance and returns its key.
// Returns ErrDuplicateName if the name is already used in this module.
func (m *Module) AddInstance(name string, archetype CellKey, kind InstanceKind) (InstanceKey, error) {
	if _, exists := m.instanceNames[name]; exists {
		return NoKey, fmt.Errorf("AddInstance %q: %w", name, ErrDuplicateName)
	}
	key := m.instKeys.alloc()
	m.instances[key] = &Instance{
		Name:      name,
		Archetype: archetype,
		Kind:      kind,
		State:     Unplaced,
		Weight:    1.0,
		pinNets:   make(map[PinKey]NetKey),
	}
	m.instanceNames[name] = key
	return key, nil
}

// Instance returns the Instance for key, or nil if absent.
func (m *Module) Instance(key InstanceKey) *Instance { return m.instances[key] }

// InstanceByName looks up an instance by its name index.
func (m *Module) InstanceByName(name string) (InstanceKey, bool) {
	key, ok := m.instanceNames[name]
	return key, ok
}

// Instances returns every instance key in the module, stable-ordered
// by insertion order (ascending key).
func (m *Module) Instances() []InstanceKey {
	out := make([]InstanceKey, 0, len(m.instances))
	for k := range m.instances {
		out = append(out, k)
	}
	sortKeys(out)
	return out
}

// AddNet inserts a new, empty Net and returns its key.
// Returns ErrDuplicateName if the name is already used in this module.
func (m *Module) AddNet(name string, weight float64) (NetKey, error) {
	if _, exists := m.netNames[name]; exists {
		return NoKey, fmt.Errorf("AddNet %q: %w", name, ErrDuplicateName)
	}
	key := m.netKeys.alloc()
	m.nets[key] = &Net{Name: name, Weight: weight}
	m.netNames[name] = key
	return key, nil
}

// Net returns the Net for key, or nil if absent.
func (m *Module) Net(key NetKey) *Net { return m.nets[key] }

// NetByName looks up a net by its name index.
func (m *Module) NetByName(name string) (NetKey, bool) {
	key, ok := m.netNames[name]
	return key, ok
}

// Nets returns every net key in the module, stable-ordered by insertion order.
func (m *Module) Nets() []NetKey {
	out := make([]NetKey, 0, len(m.nets))
	for k := range m.nets {
		out = append(out, k)
	}
	sortKeys(out)
	return out
}

// Connect binds instKey's pinKey to netKey, maintaining the invariant
// that the net holds the reverse connection exactly once (spec §3).
func (m *Module) Connect(instKey InstanceKey, pinKey PinKey, netKey NetKey) error {
	ins, ok := m.instances[instKey]
	if !ok {
		return fmt.Errorf("Connect: instance: %w", ErrNotFound)
	}
	net, ok := m.nets[netKey]
	if !ok {
		return fmt.Errorf("Connect: net: %w", ErrNotFound)
	}
	if _, bound := ins.pinNets[pinKey]; bound {
		return fmt.Errorf("Connect: %w", ErrAlreadyConnected)
	}

	ins.pinNets[pinKey] = netKey
	net.Connections = append(net.Connections, Connection{Instance: instKey, Pin: pinKey})
	return nil
}

// Disconnect removes the binding between instKey's pinKey and its net.
func (m *Module) Disconnect(instKey InstanceKey, pinKey PinKey) error {
	ins, ok := m.instances[instKey]
	if !ok {
		return fmt.Errorf("Disconnect: instance: %w", ErrNotFound)
	}
	netKey, bound := ins.pinNets[pinKey]
	if !bound {
		return fmt.Errorf("Disconnect: %w", ErrNotConnected)
	}
	delete(ins.pinNets, pinKey)

	net := m.nets[netKey]
	filtered := net.Connections[:0]
	for _, c := range net.Connections {
		if c.Instance == instKey && c.Pin == pinKey {
			continue
		}
		filtered = append(filtered, c)
	}
	net.Connections = filtered
	return nil
}

func sortKeys(ks []Key) {
	sort.Slice(ks, func(i, j int) bool { return ks[i] < ks[j] })
}
