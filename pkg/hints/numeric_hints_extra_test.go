package hints

import (
	"math/big"
	"testing"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPositive(t *testing.T) {
	f := newFixture(t).withRangeCheck()
	f.setFelt("value", felt.FromUint64(5))
	f.reserve("is_positive", 1)
	require.NoError(t, isPositive(f.ids(), f.vm))
	assert.True(t, f.getFelt(t, "is_positive").Eq(felt.One()))

	f2 := newFixture(t).withRangeCheck()
	f2.setFelt("value", felt.FromSignedBigInt(big.NewInt(-3)))
	f2.reserve("is_positive", 1)
	require.NoError(t, isPositive(f2.ids(), f2.vm))
	assert.True(t, f2.getFelt(t, "is_positive").IsZero())
}

func TestIs250Bits(t *testing.T) {
	f := newFixture(t)
	f.setFelt("addr", felt.FromUint64(1))
	f.reserve("is_250", 1)
	require.NoError(t, is250Bits(f.ids(), f.vm))
	assert.True(t, f.getFelt(t, "is_250").Eq(felt.One()))

	f2 := newFixture(t)
	nearMax := new(big.Int).Sub(felt.Prime(), big.NewInt(1))
	f2.setFelt("addr", felt.FromSignedBigInt(nearMax))
	f2.reserve("is_250", 1)
	require.NoError(t, is250Bits(f2.ids(), f2.vm))
	assert.True(t, f2.getFelt(t, "is_250").IsZero())
}

func TestIsAddrBounded(t *testing.T) {
	bound := new(big.Int).Lsh(big.NewInt(1), 251)
	constants := map[string]felt.Felt{"ADDR_BOUND": felt.FromSignedBigInt(bound)}

	f := newFixture(t)
	small := new(big.Int).Sub(bound, big.NewInt(1))
	f.setFelt("addr", felt.FromSignedBigInt(small))
	f.reserve("is_small", 1)
	require.NoError(t, isAddrBounded(f.ids(), f.vm, &constants))
	assert.True(t, f.getFelt(t, "is_small").Eq(felt.One()))

	f2 := newFixture(t)
	big_ := new(big.Int).Sub(felt.Prime(), big.NewInt(1))
	f2.setFelt("addr", felt.FromSignedBigInt(big_))
	f2.reserve("is_small", 1)
	require.NoError(t, isAddrBounded(f2.ids(), f2.vm, &constants))
	assert.True(t, f2.getFelt(t, "is_small").IsZero())
}

func TestIsAddrBoundedRejectsInvalidConstant(t *testing.T) {
	f := newFixture(t)
	f.setFelt("addr", felt.FromUint64(1))
	f.reserve("is_small", 1)
	constants := map[string]felt.Felt{"ADDR_BOUND": felt.FromUint64(1)}
	err := isAddrBounded(f.ids(), f.vm, &constants)
	assert.ErrorIs(t, err, ErrAssertionFailed)
}

func TestSplitInt(t *testing.T) {
	f := newFixture(t)
	f.setFelt("value", felt.FromUint64(0x1234))
	f.setFelt("base", felt.FromUint64(0x100))
	f.setFelt("bound", felt.FromUint64(0x100))
	output := f.vm.AddSegment()
	f.setPointer("output", output)
	require.NoError(t, splitInt(f.ids(), f.vm))
	got, err := f.vm.Segments.Memory.GetFelt(output)
	require.NoError(t, err)
	assert.True(t, got.Eq(felt.FromUint64(0x34)))
}

func TestSplitIntLimbOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.setFelt("value", felt.FromUint64(0x1234))
	f.setFelt("base", felt.FromUint64(0x100))
	f.setFelt("bound", felt.FromUint64(0x10))
	output := f.vm.AddSegment()
	f.setPointer("output", output)
	err := splitInt(f.ids(), f.vm)
	assert.ErrorIs(t, err, ErrSplitIntLimbOutOfRange)
}
