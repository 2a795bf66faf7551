// Package builtins carries the one builtin runner the hint processor
// consults directly: range-check (spec.md §6 "Range-check builtin
// exposes a single field bound"). Every other builtin runner belongs to
// the VM proper and is out of this module's scope (spec.md §1).
package builtins

import (
	"math"
	"math/big"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/vm/memory"
	"github.com/pkg/errors"
)

const RANGE_CHECK_BUILTIN_NAME = "range_check"
const INNER_RC_BOUND_SHIFT = 16
const INNER_RC_BOUND_MASK = math.MaxUint16
const CELLS_PER_RANGE_CHECK = 1

const N_PARTS = 8

func RangeCheckError(err error) error {
	return errors.Wrapf(err, "Range check error")
}

func OutsideBoundsError(f felt.Felt) error {
	return RangeCheckError(errors.Errorf("Value %s is out of bounds [0, 2^128)", f.ToHexString()))
}

func NotAFeltError(addr memory.Relocatable, val memory.MaybeRelocatable) error {
	rel, _ := val.GetRelocatable()
	return RangeCheckError(errors.Errorf("Value %v found in %v is not a field element", rel, addr))
}

// RangeCheckBuiltinRunner tracks the range-check segment and exposes its
// bound (2^128 by default, the standard single-range-check builtin) to
// hints via Bound().
type RangeCheckBuiltinRunner struct {
	base     memory.Relocatable
	included bool
	bound    felt.Felt
}

func NewRangeCheckBuiltinRunner() *RangeCheckBuiltinRunner {
	return &RangeCheckBuiltinRunner{bound: felt.FromSignedBigInt(new(big.Int).Lsh(big.NewInt(1), N_PARTS*INNER_RC_BOUND_SHIFT))}
}

func (r *RangeCheckBuiltinRunner) Base() memory.Relocatable {
	return r.base
}

func (r *RangeCheckBuiltinRunner) Name() string {
	return RANGE_CHECK_BUILTIN_NAME
}

// Bound returns the single field hints consult on this builtin
// (spec.md §6).
func (r *RangeCheckBuiltinRunner) Bound() felt.Felt {
	return r.bound
}

func (r *RangeCheckBuiltinRunner) InitializeSegments(segments *memory.MemorySegmentManager) {
	r.base = segments.AddSegment()
}

func (r *RangeCheckBuiltinRunner) InitialStack() []memory.MaybeRelocatable {
	if r.included {
		return []memory.MaybeRelocatable{*memory.NewMaybeRelocatableRelocatable(r.base)}
	}
	return []memory.MaybeRelocatable{}
}

func (r *RangeCheckBuiltinRunner) DeduceMemoryCell(addr memory.Relocatable, mem *memory.Memory) (*memory.MaybeRelocatable, error) {
	return nil, nil
}

func RangeCheckValidationRule(mem *memory.Memory, address memory.Relocatable) ([]memory.Relocatable, error) {
	res_val, err := mem.Get(address)
	if err != nil {
		return nil, err
	}
	f, is_felt := res_val.GetFelt()
	if !is_felt {
		return nil, NotAFeltError(address, *res_val)
	}
	if f.Bits() <= N_PARTS*INNER_RC_BOUND_SHIFT {
		return []memory.Relocatable{address}, nil
	}
	return nil, OutsideBoundsError(f)
}

func (r *RangeCheckBuiltinRunner) AddValidationRule(mem *memory.Memory) {
	mem.AddValidationRule(uint(r.base.SegmentIndex), RangeCheckValidationRule)
}

func (r *RangeCheckBuiltinRunner) Include(include bool) {
	r.included = include
}
