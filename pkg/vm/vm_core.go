// Package vm hosts the slice of the Cairo VM that the hint processor
// consults directly: the register file, the segment manager, and the
// range-check bound (spec.md §6 "External Interfaces"). The instruction
// decoder, trace, and full builtin runner set belong to the VM proper
// and are out of this module's scope (spec.md §1 "Out of scope").
package vm

import (
	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/vm/memory"
)

// RunContext holds the VM's register file: the allocation pointer (AP),
// the frame pointer (FP), and the program counter (PC). Hints read AP
// and FP to resolve symbolic variable references (spec.md §4.1).
type RunContext struct {
	Pc memory.Relocatable
	Ap memory.Relocatable
	Fp memory.Relocatable
}

// RangeCheckBuiltin exposes the single field hints consult on the
// range-check builtin (spec.md §6 "Range-check builtin exposes a single
// field bound"). Bound is nil when the builtin is not present in the
// running program.
type RangeCheckBuiltin struct {
	Bound *felt.Felt
}

// VirtualMachine is the minimal host surface the hint processor runs
// against.
type VirtualMachine struct {
	RunContext RunContext
	Segments   memory.MemorySegmentManager
	RangeCheck RangeCheckBuiltin
}

func NewVirtualMachine() *VirtualMachine {
	return &VirtualMachine{
		Segments: memory.NewMemorySegmentManager(),
	}
}

// AddSegment allocates a fresh memory segment (spec.md §6
// "add_memory_segment").
func (vm *VirtualMachine) AddSegment() memory.Relocatable {
	return vm.Segments.AddSegment()
}
