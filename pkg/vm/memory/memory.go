package memory

import (
	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/pkg/errors"
)

// ValidationRule is consulted by builtin runners that need to validate a
// cell as it is written (e.g. the range-check builtin, spec.md §6).
type ValidationRule func(mem *Memory, address Relocatable) ([]Relocatable, error)

// Memory is the VM's segmented address space. Writes are write-once:
// inserting a different value into an already-occupied cell is an error
// (spec.md §4.1 "write-once semantics", §5 "single-writer").
type Memory struct {
	data             map[Relocatable]MaybeRelocatable
	validationRules  map[uint][]ValidationRule
	validatedAddrs   map[Relocatable]bool
}

func NewMemory() *Memory {
	return &Memory{
		data:            make(map[Relocatable]MaybeRelocatable),
		validationRules: make(map[uint][]ValidationRule),
		validatedAddrs:  make(map[Relocatable]bool),
	}
}

// Insert enforces write-once-unless-equal: writing a value that differs
// from what is already at the address fails with "inconsistent_memory".
func (m *Memory) Insert(addr Relocatable, value *MaybeRelocatable) error {
	if existing, ok := m.data[addr]; ok {
		if !existing.IsEqual(value) {
			return errors.Errorf("inconsistent_memory: address %d:%d already holds a different value", addr.SegmentIndex, addr.Offset)
		}
		return nil
	}
	m.data[addr] = *value
	return m.runValidationRules(addr)
}

func (m *Memory) runValidationRules(addr Relocatable) error {
	rules, ok := m.validationRules[uint(addr.SegmentIndex)]
	if !ok {
		return nil
	}
	for _, rule := range rules {
		validated, err := rule(m, addr)
		if err != nil {
			return err
		}
		for _, a := range validated {
			m.validatedAddrs[a] = true
		}
	}
	return nil
}

func (m *Memory) AddValidationRule(segmentIndex uint, rule ValidationRule) {
	m.validationRules[segmentIndex] = append(m.validationRules[segmentIndex], rule)
}

// Get returns the cell at addr, or an error if it has never been written.
func (m *Memory) Get(addr Relocatable) (*MaybeRelocatable, error) {
	val, ok := m.data[addr]
	if !ok {
		return nil, errors.Errorf("unallocated: no value at address %d:%d", addr.SegmentIndex, addr.Offset)
	}
	return &val, nil
}

// GetFelt reads addr and fails with identifier_not_integer if the cell
// holds an address instead of a field element.
func (m *Memory) GetFelt(addr Relocatable) (felt.Felt, error) {
	val, err := m.Get(addr)
	if err != nil {
		return felt.Felt{}, err
	}
	f, ok := val.GetFelt()
	if !ok {
		return felt.Felt{}, errors.Errorf("identifier_not_integer: value at %d:%d is an address, not a field element", addr.SegmentIndex, addr.Offset)
	}
	return f, nil
}

// GetRelocatable reads addr and fails with identifier_has_no_member if
// the cell holds a field element instead of an address.
func (m *Memory) GetRelocatable(addr Relocatable) (Relocatable, error) {
	val, err := m.Get(addr)
	if err != nil {
		return Relocatable{}, err
	}
	rel, ok := val.GetRelocatable()
	if !ok {
		return Relocatable{}, errors.Errorf("identifier_has_no_member: value at %d:%d is a field element, not an address", addr.SegmentIndex, addr.Offset)
	}
	return rel, nil
}

// GetRange reads n consecutive cells starting at addr.
func (m *Memory) GetRange(addr Relocatable, n uint) ([]MaybeRelocatable, error) {
	out := make([]MaybeRelocatable, n)
	for i := uint(0); i < n; i++ {
		val, err := m.Get(addr.AddUint(i))
		if err != nil {
			return nil, err
		}
		out[i] = *val
	}
	return out, nil
}

// GetFeltRange reads n consecutive felts starting at addr.
func (m *Memory) GetFeltRange(addr Relocatable, n uint) ([]felt.Felt, error) {
	out := make([]felt.Felt, n)
	for i := uint(0); i < n; i++ {
		f, err := m.GetFelt(addr.AddUint(i))
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// MemorySegmentManager owns the memory and hands out fresh segments.
type MemorySegmentManager struct {
	Memory    *Memory
	numSegments int
}

func NewMemorySegmentManager() MemorySegmentManager {
	return MemorySegmentManager{Memory: NewMemory()}
}

// AddSegment returns a fresh (k, 0) address with k previously unused
// (spec.md §6 "add_memory_segment").
func (s *MemorySegmentManager) AddSegment() Relocatable {
	idx := s.numSegments
	s.numSegments++
	return NewRelocatable(idx, 0)
}

// NumSegments reports how many segments have been allocated so far.
func (s *MemorySegmentManager) NumSegments() int {
	return s.numSegments
}
