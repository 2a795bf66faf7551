// Package memory implements the VM's segmented address space: the
// Relocatable address type and the tagged MaybeRelocatable memory cell
// (spec.md §3 "Address (A)" and "Tagged value (V)").
package memory

import (
	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/pkg/errors"
)

// Relocatable in the Cairo VM represents an address
// in some memory segment. When the VM finishes running,
// these values are replaced by real memory addresses,
// represented by a field element.
type Relocatable struct {
	SegmentIndex int
	Offset       uint
}

// Creates a new Relocatable struct with the specified segment index
// and offset.
func NewRelocatable(segment_idx int, offset uint) Relocatable {
	return Relocatable{segment_idx, offset}
}

// Adds a Felt value to a Relocatable.
// Fails if the new offset exceeds the size of a uint.
func (r *Relocatable) AddFelt(other felt.Felt) (Relocatable, error) {
	felt_offset := felt.FromUint64(uint64(r.Offset))
	new_offset := felt_offset.Add(other)
	res_offset, err := new_offset.ToU64()
	if err != nil {
		return Relocatable{}, err
	}
	return NewRelocatable(r.SegmentIndex, uint(res_offset)), nil
}

// Performs additions if other contains a Felt value, fails otherwise.
func (r *Relocatable) AddMaybeRelocatable(other MaybeRelocatable) (Relocatable, error) {
	f, ok := other.GetFelt()
	if !ok {
		return Relocatable{}, errors.New("Can't add two relocatable values")
	}
	return r.AddFelt(f)
}

func (r *Relocatable) IsEqual(r1 *Relocatable) bool {
	return (r.SegmentIndex == r1.SegmentIndex && r.Offset == r1.Offset)
}

// Less gives the lexicographic order within a segment (spec.md §3
// "lexicographic comparison within a segment").
func (r *Relocatable) Less(o *Relocatable) bool {
	if r.SegmentIndex != o.SegmentIndex {
		return r.SegmentIndex < o.SegmentIndex
	}
	return r.Offset < o.Offset
}

func (relocatable *Relocatable) SubUint(other uint) (Relocatable, error) {
	if relocatable.Offset < other {
		return NewRelocatable(0, 0), errors.New("RelocatableSubUsizeNegOffset")
	} else {
		new_offset := relocatable.Offset - other
		return NewRelocatable(relocatable.SegmentIndex, new_offset), nil
	}
}

func (relocatable *Relocatable) AddUint(other uint) Relocatable {
	return NewRelocatable(relocatable.SegmentIndex, relocatable.Offset+other)
}

// Sub computes the unsigned offset delta between two addresses in the
// same segment (spec.md §3 "address − address").
func (r *Relocatable) Sub(other Relocatable) (uint, error) {
	if r.SegmentIndex != other.SegmentIndex {
		return 0, errors.Errorf("Cannot subtract addresses from different segments (%d, %d)", r.SegmentIndex, other.SegmentIndex)
	}
	if r.Offset < other.Offset {
		return 0, errors.New("RelocatableSubNegOffset")
	}
	return r.Offset - other.Offset, nil
}

// Int in the Cairo VM represents a value in memory that is not an address.
type Int struct {
	Felt felt.Felt
}

// MaybeRelocatable is the type of the memory cells in the Cairo
// VM: tagged as either a field element (Int) or a Relocatable.
type MaybeRelocatable struct {
	inner any
}

// Creates a new MaybeRelocatable with an Int inner value.
func NewMaybeRelocatableFelt(f felt.Felt) *MaybeRelocatable {
	return &MaybeRelocatable{inner: Int{f}}
}

// Creates a new MaybeRelocatable with a Relocatable inner value.
func NewMaybeRelocatableRelocatable(relocatable Relocatable) *MaybeRelocatable {
	return &MaybeRelocatable{inner: relocatable}
}

// If m is Int, returns the inner felt + true, if not, returns zero + false.
func (m *MaybeRelocatable) GetFelt() (felt.Felt, bool) {
	i, is_type := m.inner.(Int)
	return i.Felt, is_type
}

// If m is Relocatable, returns the inner value + true, if not, returns zero + false
func (m *MaybeRelocatable) GetRelocatable() (Relocatable, bool) {
	rel, is_type := m.inner.(Relocatable)
	return rel, is_type
}

func (m *MaybeRelocatable) IsZero() bool {
	f, is_int := m.GetFelt()
	return is_int && f.IsZero()
}

func (m *MaybeRelocatable) IsEqual(m1 *MaybeRelocatable) bool {
	a, a_type := m.GetFelt()
	b, b_type := m1.GetFelt()
	if a_type == b_type {
		if a_type {
			return a.Eq(b)
		} else {
			a, _ := m.GetRelocatable()
			b, _ := m1.GetRelocatable()
			return a.IsEqual(&b)
		}
	} else {
		return false
	}
}

func (m MaybeRelocatable) AddMaybeRelocatable(other MaybeRelocatable) (MaybeRelocatable, error) {
	// check if they are felt
	m_felt, m_is_felt := m.GetFelt()
	other_felt, other_is_felt := other.GetFelt()

	if m_is_felt && other_is_felt {
		result := NewMaybeRelocatableFelt(m_felt.Add(other_felt))
		return *result, nil
	}

	// check if one is relocatable and the other felt
	m_rel, is_rel_m := m.GetRelocatable()
	_, is_rel_other := other.GetRelocatable()

	if is_rel_m && !is_rel_other {
		rel, err := m_rel.AddFelt(other_felt)
		if err != nil {
			return MaybeRelocatable{}, err
		}
		return *NewMaybeRelocatableRelocatable(rel), nil

	} else if !is_rel_m && is_rel_other {
		other_rel, _ := other.GetRelocatable()
		rel, err := other_rel.AddFelt(m_felt)
		if err != nil {
			return MaybeRelocatable{}, err
		}
		return *NewMaybeRelocatableRelocatable(rel), nil
	} else {
		return MaybeRelocatable{}, errors.New("RelocatableAdd")
	}
}

// Sub implements tagged-value subtraction: felt-felt, address-felt, or
// address-address (same segment) yielding an unsigned-offset felt
// (spec.md §3 "address − address (same segment → unsigned offset delta)").
func (m MaybeRelocatable) Sub(other MaybeRelocatable) (MaybeRelocatable, error) {
	m_felt, m_is_felt := m.GetFelt()
	other_felt, other_is_felt := other.GetFelt()
	if m_is_felt && other_is_felt {
		return *NewMaybeRelocatableFelt(m_felt.Sub(other_felt)), nil
	}

	m_rel, is_rel_m := m.GetRelocatable()
	if is_rel_m && other_is_felt {
		rel, err := m_rel.AddFelt(other_felt.Neg())
		if err != nil {
			return MaybeRelocatable{}, err
		}
		return *NewMaybeRelocatableRelocatable(rel), nil
	}

	other_rel, is_rel_other := other.GetRelocatable()
	if is_rel_m && is_rel_other {
		delta, err := m_rel.Sub(other_rel)
		if err != nil {
			return MaybeRelocatable{}, err
		}
		return *NewMaybeRelocatableFelt(felt.FromUint64(uint64(delta))), nil
	}

	return MaybeRelocatable{}, errors.New("Incompatible operands for subtraction")
}
