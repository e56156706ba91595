package verilog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/lunapnr/pnrcore/design"
)

var (
	// ErrMalformedLine is returned when a line does not match any
	// recognized statement shape.
	ErrMalformedLine = errors.New("verilog: malformed line")
	// ErrUnresolvedCell is returned when an instantiation names a cell
	// not present in the design's library.
	ErrUnresolvedCell = errors.New("verilog: instance references unknown cell")
	// ErrUnknownNet is returned when a port connects to a net with no
	// matching wire declaration.
	ErrUnknownNet = errors.New("verilog: port references undeclared net")
	// ErrUnknownPin is returned when a port name doesn't match any pin
	// of the instantiated cell.
	ErrUnknownPin = errors.New("verilog: port references unknown pin name")
)

var (
	moduleHeaderRe = regexp.MustCompile(`^module\s+(\w+)\s*;$`)
	wireRe         = regexp.MustCompile(`^wire\s+(\w+)\s*;$`)
	instanceRe     = regexp.MustCompile(`^(\w+)\s+(\w+)\s*\(\s*(.*?)\s*\)\s*;$`)
	portRe         = regexp.MustCompile(`^\.(\w+)\((\w+)\)$`)
)

// Write emits mod as structural Verilog: one wire declaration per net
// (sorted by name for deterministic output), then one instantiation
// line per instance with named port connections for every bound pin.
func Write(w io.Writer, des *design.Design, mod *design.Module) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "module %s;\n", mod.Name)

	netKeys := mod.Nets()
	sort.Slice(netKeys, func(i, j int) bool { return mod.Net(netKeys[i]).Name < mod.Net(netKeys[j]).Name })
	for _, nk := range netKeys {
		fmt.Fprintf(bw, "wire %s;\n", mod.Net(nk).Name)
	}

	instKeys := mod.Instances()
	sort.Slice(instKeys, func(i, j int) bool { return mod.Instance(instKeys[i]).Name < mod.Instance(instKeys[j]).Name })
	for _, ik := range instKeys {
		ins := mod.Instance(ik)
		cell := des.Cell(ins.Archetype)
		if cell == nil {
			return fmt.Errorf("verilog: write: instance %q: %w", ins.Name, ErrUnresolvedCell)
		}

		var ports []string
		for pin := range cell.Pins {
			pinKey := design.PinKey(pin)
			netKey := ins.Net(pinKey)
			if netKey == design.NoKey {
				continue
			}
			ports = append(ports, fmt.Sprintf(".%s(%s)", cell.Pins[pin].Name, mod.Net(netKey).Name))
		}
		fmt.Fprintf(bw, "%s %s ( %s );\n", cell.Name, ins.Name, strings.Join(ports, ", "))
	}

	fmt.Fprintf(bw, "endmodule\n")
	return bw.Flush()
}

// Read parses the subset Write emits, creating a new module (and its
// nets and instances) in des. Every instance created this way is
// InstanceCell; Read does not attempt to recover the original Kind,
// Pos, or Orientation of an instance, since the round-trip property
// this package exists for only requires the instance and net sets
// (name and connectivity) to survive, not full placement state.
func Read(r io.Reader, des *design.Design) (design.ModuleKey, error) {
	scanner := bufio.NewScanner(r)

	var mod *design.Module
	modKey := design.NoKey
	nets := make(map[string]design.NetKey)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "endmodule" {
			return modKey, nil
		}

		if mod == nil {
			m := moduleHeaderRe.FindStringSubmatch(line)
			if m == nil {
				return design.NoKey, fmt.Errorf("verilog: read: expected module header, got %q: %w", line, ErrMalformedLine)
			}
			var err error
			modKey, err = des.AddModule(m[1])
			if err != nil {
				return design.NoKey, fmt.Errorf("verilog: read: %w", err)
			}
			mod = des.Module(modKey)
			continue
		}

		if m := wireRe.FindStringSubmatch(line); m != nil {
			nk, err := mod.AddNet(m[1], 1.0)
			if err != nil {
				return design.NoKey, fmt.Errorf("verilog: read: wire %q: %w", m[1], err)
			}
			nets[m[1]] = nk
			continue
		}

		if err := readInstance(line, des, mod, nets); err != nil {
			return design.NoKey, err
		}
	}

	if err := scanner.Err(); err != nil {
		return design.NoKey, fmt.Errorf("verilog: read: %w", err)
	}
	if mod == nil {
		return design.NoKey, fmt.Errorf("verilog: read: empty input: %w", ErrMalformedLine)
	}
	return modKey, nil
}

func readInstance(line string, des *design.Design, mod *design.Module, nets map[string]design.NetKey) error {
	m := instanceRe.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("verilog: read: %q: %w", line, ErrMalformedLine)
	}
	cellName, instName, portList := m[1], m[2], m[3]

	cellKey, ok := des.CellByName(cellName)
	if !ok {
		return fmt.Errorf("verilog: read: instance %q: %w: %q", instName, ErrUnresolvedCell, cellName)
	}
	cell := des.Cell(cellKey)

	instKey, err := mod.AddInstance(instName, cellKey, design.InstanceCell)
	if err != nil {
		return fmt.Errorf("verilog: read: %w", err)
	}

	if portList == "" {
		return nil
	}
	for _, port := range strings.Split(portList, ",") {
		port = strings.TrimSpace(port)
		pm := portRe.FindStringSubmatch(port)
		if pm == nil {
			return fmt.Errorf("verilog: read: instance %q: port %q: %w", instName, port, ErrMalformedLine)
		}
		pinName, netName := pm[1], pm[2]

		pinKey := cell.PinByName(pinName)
		if pinKey == design.NoKey {
			return fmt.Errorf("verilog: read: instance %q: %w: %q", instName, ErrUnknownPin, pinName)
		}
		netKey, ok := nets[netName]
		if !ok {
			return fmt.Errorf("verilog: read: instance %q: %w: %q", instName, ErrUnknownNet, netName)
		}
		if err := mod.Connect(instKey, pinKey, netKey); err != nil {
			return fmt.Errorf("verilog: read: connecting %q.%q: %w", instName, pinName, err)
		}
	}
	return nil
}
