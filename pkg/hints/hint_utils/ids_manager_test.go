package hint_utils

import (
	"testing"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/cairolang/hintvm/pkg/vm/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAddressFpRelative(t *testing.T) {
	v := vm.NewVirtualMachine()
	fp := v.Segments.AddSegment()
	v.RunContext.Fp = fp

	refs := SymbolTable{
		"a": HintReference{Offset1: OffsetExpr{Register: FP, Immediate: 2}, Dereference: true},
	}
	ids := NewIdsManager(refs, ApTracking{})
	addr, err := ids.GetAddress("a", v)
	require.NoError(t, err)
	assert.Equal(t, fp.AddUint(2), addr)
}

func TestGetAddressApRelativeWithTracking(t *testing.T) {
	v := vm.NewVirtualMachine()
	v.RunContext.Ap = memory.NewRelocatable(0, 10)

	refTracking := ApTracking{Group: 1, Offset: 5}
	refs := SymbolTable{
		"a": HintReference{
			Offset1:     OffsetExpr{Register: AP, Immediate: 0},
			Dereference: true,
			ApTracking:  &refTracking,
		},
	}
	currentTracking := ApTracking{Group: 1, Offset: 7}
	ids := NewIdsManager(refs, currentTracking)
	addr, err := ids.GetAddress("a", v)
	require.NoError(t, err)
	// correction = ref.Offset(5) - current.Offset(7) = -2; resolved
	// address subtracts that correction from ap: ap - (-2) = ap + 2.
	assert.Equal(t, memory.NewRelocatable(0, 12), addr)
}

func TestGetAddressApTrackingGroupMismatch(t *testing.T) {
	v := vm.NewVirtualMachine()
	v.RunContext.Ap = memory.NewRelocatable(0, 10)

	refTracking := ApTracking{Group: 1, Offset: 5}
	refs := SymbolTable{
		"a": HintReference{
			Offset1:     OffsetExpr{Register: AP, Immediate: 0},
			Dereference: true,
			ApTracking:  &refTracking,
		},
	}
	ids := NewIdsManager(refs, ApTracking{Group: 2, Offset: 0})
	_, err := ids.GetAddress("a", v)
	assert.ErrorIs(t, err, ErrApTrackingGroupMismatch)
}

func TestUnknownIdentifier(t *testing.T) {
	v := vm.NewVirtualMachine()
	ids := NewIdsManager(SymbolTable{}, ApTracking{})
	_, err := ids.GetAddress("missing", v)
	assert.ErrorIs(t, err, ErrUnknownIdentifier)
}

func TestInsertThenGetFeltRoundTrips(t *testing.T) {
	v := vm.NewVirtualMachine()
	fp := v.Segments.AddSegment()
	v.RunContext.Fp = fp

	refs := SymbolTable{
		"a": HintReference{Offset1: OffsetExpr{Register: FP, Immediate: 0}, Dereference: true},
	}
	ids := NewIdsManager(refs, ApTracking{})
	require.NoError(t, ids.InsertFelt("a", felt.FromUint64(42), v))
	got, err := ids.GetFelt("a", v)
	require.NoError(t, err)
	assert.True(t, got.Eq(felt.FromUint64(42)))
}

func TestGetRelocatableTypeMismatch(t *testing.T) {
	v := vm.NewVirtualMachine()
	fp := v.Segments.AddSegment()
	v.RunContext.Fp = fp

	refs := SymbolTable{
		"a": HintReference{Offset1: OffsetExpr{Register: FP, Immediate: 0}, Dereference: true},
	}
	ids := NewIdsManager(refs, ApTracking{})
	require.NoError(t, ids.InsertFelt("a", felt.FromUint64(1), v))
	_, err := ids.GetRelocatable("a", v)
	assert.ErrorContains(t, err, "identifier_has_no_member")
}

func TestInnerDereferenceChasesPointer(t *testing.T) {
	v := vm.NewVirtualMachine()
	fp := v.Segments.AddSegment()
	v.RunContext.Fp = fp
	target := v.Segments.AddSegment()
	require.NoError(t, v.Segments.Memory.Insert(fp, memory.NewMaybeRelocatableRelocatable(target)))
	require.NoError(t, v.Segments.Memory.Insert(target.AddUint(3), memory.NewMaybeRelocatableFelt(felt.FromUint64(99))))

	refs := SymbolTable{
		"a": HintReference{
			Offset1:     OffsetExpr{Register: FP, Immediate: 0, InnerDereference: true},
			Offset2:     &OffsetExpr{Immediate: 3},
			Dereference: true,
		},
	}
	ids := NewIdsManager(refs, ApTracking{})
	got, err := ids.GetFelt("a", v)
	require.NoError(t, err)
	assert.True(t, got.Eq(felt.FromUint64(99)))
}
