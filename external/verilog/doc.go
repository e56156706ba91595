// SPDX-License-Identifier: MIT
// Package verilog reads and writes the gate-level instance/net subset
// of structural Verilog spec §6.1 calls out ("module, pins, instances,
// nets — consumed and produced"), sufficient for the round-trip
// property spec's Testable Properties item 8 requires: reading back a
// written netlist reproduces the same instance and net sets (name and
// connectivity).
//
// Grounded on the original tool's LunaCore::Verilog::Writer
// (original_source/core/export/verilog/verilogwriter.h): that header
// names a module-definition pass and a module-instances pass but its
// body was never checked in to the extracted source tree, so the wire
// format here — one `wire` declaration per net, one instantiation line
// per instance with named (`.pin(net)`) port connections — follows
// plain gate-level Verilog convention rather than a ported
// implementation. No pack repo carries a Verilog (or general HDL)
// parser, so this is a small hand-rolled line scanner over
// bufio.Scanner, in the same spirit as the teacher's other small
// single-purpose parsing helpers.
package verilog
