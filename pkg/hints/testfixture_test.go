package hints

import (
	"math/big"
	"testing"

	"github.com/cairolang/hintvm/pkg/builtins"
	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/cairolang/hintvm/pkg/vm/memory"
	"github.com/stretchr/testify/require"
)

// fixture builds a minimal VM + fp-relative symbol table for exercising a
// single hint handler in isolation, the way the production processor sees
// it: a frame pointer, a resolved symbol table, and whatever memory the
// test seeds by hand.
type fixture struct {
	t    *testing.T
	vm   *vm.VirtualMachine
	fp   memory.Relocatable
	refs hint_utils.SymbolTable
	next uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	v := vm.NewVirtualMachine()
	fp := v.Segments.AddSegment()
	v.RunContext.Fp = fp
	// Ap lives on its own segment so hints that write to memory[ap] never
	// collide with fp-relative identifier cells reserved below.
	v.RunContext.Ap = v.Segments.AddSegment()
	return &fixture{t: t, vm: v, fp: fp, refs: hint_utils.SymbolTable{}}
}

// withRangeCheck installs a range-check builtin with its standard bound
// (2^128), matching what every comparison hint expects to find.
func (f *fixture) withRangeCheck() *fixture {
	rc := builtins.NewRangeCheckBuiltinRunner()
	rc.InitializeSegments(&f.vm.Segments)
	bound := rc.Bound()
	f.vm.RangeCheck.Bound = &bound
	return f
}

// reserve allocates n consecutive fp-relative cells for name and returns
// the offset of the first one.
func (f *fixture) reserve(name string, n uint) uint {
	base := f.next
	f.refs[name] = hint_utils.HintReference{
		Offset1:     hint_utils.OffsetExpr{Register: hint_utils.FP, Immediate: int(base)},
		Dereference: true,
	}
	f.next += n
	return base
}

func (f *fixture) setCell(offset uint, val *memory.MaybeRelocatable) {
	require.NoError(f.t, f.vm.Segments.Memory.Insert(f.fp.AddUint(offset), val))
}

// setFelt reserves one cell for name and writes v into it.
func (f *fixture) setFelt(name string, v felt.Felt) {
	base := f.reserve(name, 1)
	f.setCell(base, memory.NewMaybeRelocatableFelt(v))
}

// setFelts reserves n cells for name (a struct of felt-valued members)
// and writes values into them in order.
func (f *fixture) setFelts(name string, values []felt.Felt) {
	base := f.reserve(name, uint(len(values)))
	for i, v := range values {
		f.setCell(base+uint(i), memory.NewMaybeRelocatableFelt(v))
	}
}

// setU64s is the uint64 convenience form of setFelts.
func (f *fixture) setU64s(name string, values ...uint64) {
	fs := make([]felt.Felt, len(values))
	for i, u := range values {
		fs[i] = felt.FromUint64(u)
	}
	f.setFelts(name, fs)
}

// setPointer reserves one cell for name and writes a relocatable value
// pointing at target, matching how a hint's `ids.foo` resolves when foo is
// itself a pointer into another segment.
func (f *fixture) setPointer(name string, target memory.Relocatable) {
	base := f.reserve(name, 1)
	f.setCell(base, memory.NewMaybeRelocatableRelocatable(target))
}

// newArraySegment allocates a fresh segment and writes values into it
// starting at offset 0, returning the segment's base address.
func (f *fixture) newArraySegment(values []felt.Felt) memory.Relocatable {
	base := f.vm.AddSegment()
	for i, val := range values {
		require.NoError(f.t, f.vm.Segments.Memory.Insert(base.AddUint(uint(i)), memory.NewMaybeRelocatableFelt(val)))
	}
	return base
}

func (f *fixture) ids() *hint_utils.IdsManager {
	ids := hint_utils.NewIdsManager(f.refs, hint_utils.ApTracking{})
	return &ids
}

func (f *fixture) getFelt(t *testing.T, name string) felt.Felt {
	t.Helper()
	val, err := f.ids().GetFelt(name, f.vm)
	require.NoError(t, err)
	return val
}

func (f *fixture) getFelts(t *testing.T, name string, n uint) []felt.Felt {
	t.Helper()
	out := make([]felt.Felt, n)
	for i := uint(0); i < n; i++ {
		v, err := f.ids().GetStructFieldFelt(name, i, f.vm)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func feltFromDecimal(t *testing.T, s string) felt.Felt {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "invalid decimal literal %q", s)
	return felt.FromSignedBigInt(n)
}

func bigFromDecimal(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "invalid decimal literal %q", s)
	return n
}

func bigFromHex(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 0)
	require.True(t, ok, "invalid hex literal %q", s)
	return n
}
