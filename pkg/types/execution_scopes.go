// Package types implements the hint-private state threaded between
// successive hints in a program: the execution-scope stack
// (spec.md §3 "Execution scope", §4.2).
package types

import (
	"math/big"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/pkg/errors"
)

// ErrVariableNotInScope is returned by Get (and the typed accessors built
// on it) when the key is absent
// from the top frame.
var ErrVariableNotInScope = errors.New("variable_not_in_scope")

// ErrVariableWrongType is returned when a key exists but holds a
// different variant than the caller asked for.
var ErrVariableWrongType = errors.New("variable_wrong_type")

// ExecutionScopes is a stack of typed key/value frames. Lookups walk
// only the top frame (spec.md §4.2): a hint never sees a variable shadowed
// by an enclosing scope, only the innermost one.
type ExecutionScopes struct {
	data []map[string]any
}

// NewExecutionScopes returns a scope stack with its root frame, which
// lives for the lifetime of the program (spec.md §3 "Lifecycle").
func NewExecutionScopes() *ExecutionScopes {
	return &ExecutionScopes{data: []map[string]any{make(map[string]any)}}
}

// EnterScope pushes a new frame, optionally pre-populated (vm_enter_scope).
func (s *ExecutionScopes) EnterScope(newFrame map[string]any) {
	if newFrame == nil {
		newFrame = make(map[string]any)
	}
	s.data = append(s.data, newFrame)
}

// ExitScope pops the top frame. Fails if only the root frame remains
// (vm_exit_scope).
func (s *ExecutionScopes) ExitScope() error {
	if len(s.data) <= 1 {
		return errors.New("cannot exit the main scope")
	}
	s.data = s.data[:len(s.data)-1]
	return nil
}

func (s *ExecutionScopes) top() map[string]any {
	return s.data[len(s.data)-1]
}

// AssignOrUpdateVariable creates or overwrites key in the top frame.
func (s *ExecutionScopes) AssignOrUpdateVariable(key string, value any) {
	s.top()[key] = value
}

// Get returns the raw value stored at key in the top frame.
func (s *ExecutionScopes) Get(key string) (any, error) {
	val, ok := s.top()[key]
	if !ok {
		return nil, errors.Wrapf(ErrVariableNotInScope, "key %q", key)
	}
	return val, nil
}

// Delete removes key from the top frame, used by hints that consume a
// scope variable exactly once (e.g. dict_new's initial_dict).
func (s *ExecutionScopes) Delete(key string) {
	delete(s.top(), key)
}

// GetFelt type-checks and returns a felt.Felt scope variable.
func (s *ExecutionScopes) GetFelt(key string) (felt.Felt, error) {
	v, err := s.Get(key)
	if err != nil {
		return felt.Felt{}, err
	}
	f, ok := v.(felt.Felt)
	if !ok {
		return felt.Felt{}, errors.Wrapf(ErrVariableWrongType, "key %q is not a felt", key)
	}
	return f, nil
}

// GetUint64 type-checks and returns an unsigned-integer scope variable.
func (s *ExecutionScopes) GetUint64(key string) (uint64, error) {
	v, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	u, ok := v.(uint64)
	if !ok {
		return 0, errors.Wrapf(ErrVariableWrongType, "key %q is not a uint64", key)
	}
	return u, nil
}

// GetBigInt type-checks and returns an unbounded-integer scope variable.
func (s *ExecutionScopes) GetBigInt(key string) (*big.Int, error) {
	v, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	b, ok := v.(*big.Int)
	if !ok {
		return nil, errors.Wrapf(ErrVariableWrongType, "key %q is not a big integer", key)
	}
	return b, nil
}

// GetUint64ListRef returns a mutable handle to a []uint64 scope variable
// (spec.md §4.2 get_ref: "for values the hint will mutate in place").
func (s *ExecutionScopes) GetUint64ListRef(key string) (*[]uint64, error) {
	v, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	l, ok := v.(*[]uint64)
	if !ok {
		return nil, errors.Wrapf(ErrVariableWrongType, "key %q is not a uint64 list", key)
	}
	return l, nil
}

// GetFeltToUint64ListMap type-checks and returns a
// map[felt.Felt][]uint64 scope variable (spec.md §3 "mapping from field
// element to list of unsigned integers").
func (s *ExecutionScopes) GetFeltToUint64ListMap(key string) (map[felt.Felt][]uint64, error) {
	v, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[felt.Felt][]uint64)
	if !ok {
		return nil, errors.Wrapf(ErrVariableWrongType, "key %q is not a felt-to-list map", key)
	}
	return m, nil
}

// Any returns the dict-manager handle (or any other `any`-typed scope
// entry) so callers can type-assert it themselves; used by dict hints
// which need a *dict_manager.DictManager and would otherwise create an
// import cycle between types and dict_manager.
func (s *ExecutionScopes) Any(key string) (any, bool) {
	v, ok := s.top()[key]
	return v, ok
}
