package hint_utils

import (
	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/cairolang/hintvm/pkg/vm/memory"
	"github.com/pkg/errors"
)

// ErrUnknownIdentifier is returned when a hint names a variable absent
// from its symbol table (spec.md §7 "unknown_identifier").
var ErrUnknownIdentifier = errors.New("unknown_identifier")

// ErrApTrackingGroupMismatch is returned when an AP-relative reference's
// captured group id disagrees with the current one (spec.md §3
// "mismatch in group id is an error").
var ErrApTrackingGroupMismatch = errors.New("ap_tracking_group_mismatch")

// ErrExpectedRelocatable is returned when an inner-dereference step, or
// a final non-dereferenced read, finds a felt where an address was
// required (spec.md §3 "must be an A").
var ErrExpectedRelocatable = errors.New("expected_relocatable")

// IdsManager resolves a hint's identifiers against the current register
// state and memory (spec.md §4.1 "Variable resolver"). One instance is
// built per hint invocation, scoped to that hint's own symbol table and
// captured ApTracking snapshot.
type IdsManager struct {
	References SymbolTable
	ApTracking  ApTracking
}

func NewIdsManager(references SymbolTable, apTracking ApTracking) IdsManager {
	return IdsManager{References: references, ApTracking: apTracking}
}

func addSignedOffset(r memory.Relocatable, off int) (memory.Relocatable, error) {
	if off >= 0 {
		return r.AddUint(uint(off)), nil
	}
	return r.SubUint(uint(-off))
}

func (ids *IdsManager) resolveRegister(reg Register, refTracking *ApTracking, v *vm.VirtualMachine) (memory.Relocatable, error) {
	if reg == FP {
		return v.RunContext.Fp, nil
	}
	if refTracking == nil {
		return v.RunContext.Ap, nil
	}
	if refTracking.Group != ids.ApTracking.Group {
		return memory.Relocatable{}, errors.Wrapf(ErrApTrackingGroupMismatch, "reference group %d, current group %d", refTracking.Group, ids.ApTracking.Group)
	}
	// Resolution of an AP-relative reference subtracts the current
	// APT.offset from the reference's own APT.offset (spec.md §3 "APT").
	correction := refTracking.Offset - ids.ApTracking.Offset
	return addSignedOffset(v.RunContext.Ap, -correction)
}

func (ids *IdsManager) resolveOffsetExpr(expr OffsetExpr, refTracking *ApTracking, v *vm.VirtualMachine) (memory.Relocatable, error) {
	base, err := ids.resolveRegister(expr.Register, refTracking, v)
	if err != nil {
		return memory.Relocatable{}, err
	}
	sum, err := addSignedOffset(base, expr.Immediate)
	if err != nil {
		return memory.Relocatable{}, err
	}
	if !expr.InnerDereference {
		return sum, nil
	}
	cell, err := v.Segments.Memory.Get(sum)
	if err != nil {
		return memory.Relocatable{}, err
	}
	rel, ok := cell.GetRelocatable()
	if !ok {
		return memory.Relocatable{}, errors.Wrapf(ErrExpectedRelocatable, "at %v", sum)
	}
	return rel, nil
}

// GetAddress computes name's address: it chains offset1 (and, for
// nested struct-member references, offset2's immediate applied on top
// of offset1's result) and then, unless the descriptor's Dereference
// flag is set, reads memory once more to obtain the target address
// (spec.md §3 "Reference descriptor" resolution rule).
func (ids *IdsManager) GetAddress(name string, v *vm.VirtualMachine) (memory.Relocatable, error) {
	ref, ok := ids.References[name]
	if !ok {
		return memory.Relocatable{}, errors.Wrapf(ErrUnknownIdentifier, "%q", name)
	}
	sum, err := ids.resolveOffsetExpr(ref.Offset1, ref.ApTracking, v)
	if err != nil {
		return memory.Relocatable{}, err
	}
	if ref.Offset2 != nil {
		nested, err := addSignedOffset(sum, ref.Offset2.Immediate)
		if err != nil {
			return memory.Relocatable{}, err
		}
		if ref.Offset2.InnerDereference {
			cell, err := v.Segments.Memory.Get(nested)
			if err != nil {
				return memory.Relocatable{}, err
			}
			rel, ok := cell.GetRelocatable()
			if !ok {
				return memory.Relocatable{}, errors.Wrapf(ErrExpectedRelocatable, "at %v", nested)
			}
			sum = rel
		} else {
			sum = nested
		}
	}
	if ref.Dereference {
		return sum, nil
	}
	cell, err := v.Segments.Memory.Get(sum)
	if err != nil {
		return memory.Relocatable{}, err
	}
	rel, ok := cell.GetRelocatable()
	if !ok {
		return memory.Relocatable{}, errors.Wrapf(ErrExpectedRelocatable, "at %v", sum)
	}
	return rel, nil
}

// Get reads the tagged value stored at name's address.
func (ids *IdsManager) Get(name string, v *vm.VirtualMachine) (*memory.MaybeRelocatable, error) {
	addr, err := ids.GetAddress(name, v)
	if err != nil {
		return nil, err
	}
	return v.Segments.Memory.Get(addr)
}

// GetFelt reads name and type-checks it as a field element (spec.md §7
// "identifier_not_integer").
func (ids *IdsManager) GetFelt(name string, v *vm.VirtualMachine) (felt.Felt, error) {
	addr, err := ids.GetAddress(name, v)
	if err != nil {
		return felt.Felt{}, err
	}
	return v.Segments.Memory.GetFelt(addr)
}

// GetRelocatable reads name and type-checks it as an address (spec.md
// §7 "identifier_has_no_member").
func (ids *IdsManager) GetRelocatable(name string, v *vm.VirtualMachine) (memory.Relocatable, error) {
	addr, err := ids.GetAddress(name, v)
	if err != nil {
		return memory.Relocatable{}, err
	}
	return v.Segments.Memory.GetRelocatable(addr)
}

// GetStructFieldFelt reads the fieldIndex-th felt-valued member of the
// struct whose base address is name (spec.md §3 "struct member access",
// used by e.g. BigInt3/Uint384 limb reads).
func (ids *IdsManager) GetStructFieldFelt(name string, fieldIndex uint, v *vm.VirtualMachine) (felt.Felt, error) {
	base, err := ids.GetAddress(name, v)
	if err != nil {
		return felt.Felt{}, err
	}
	return v.Segments.Memory.GetFelt(base.AddUint(fieldIndex))
}

// GetStructFieldRelocatable reads the fieldIndex-th address-valued
// member of the struct whose base address is name (spec.md §3 "struct
// member access", used by e.g. keccak_state.{start,end}).
func (ids *IdsManager) GetStructFieldRelocatable(name string, fieldIndex uint, v *vm.VirtualMachine) (memory.Relocatable, error) {
	base, err := ids.GetAddress(name, v)
	if err != nil {
		return memory.Relocatable{}, err
	}
	return v.Segments.Memory.GetRelocatable(base.AddUint(fieldIndex))
}

// Insert writes val at name's address (spec.md §4.1 "insert_value").
func (ids *IdsManager) Insert(name string, val memory.MaybeRelocatable, v *vm.VirtualMachine) error {
	addr, err := ids.GetAddress(name, v)
	if err != nil {
		return err
	}
	return v.Segments.Memory.Insert(addr, &val)
}

// InsertFelt writes a field-element value at name's address.
func (ids *IdsManager) InsertFelt(name string, f felt.Felt, v *vm.VirtualMachine) error {
	return ids.Insert(name, *memory.NewMaybeRelocatableFelt(f), v)
}

// InsertRelocatable writes an address value at name's address.
func (ids *IdsManager) InsertRelocatable(name string, r memory.Relocatable, v *vm.VirtualMachine) error {
	return ids.Insert(name, *memory.NewMaybeRelocatableRelocatable(r), v)
}
