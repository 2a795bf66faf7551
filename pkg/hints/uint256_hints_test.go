package hints

import (
	"math/big"
	"testing"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shiftConstant() map[string]felt.Felt {
	shift := new(big.Int).Lsh(big.NewInt(1), 128)
	return map[string]felt.Felt{"SHIFT": felt.FromSignedBigInt(shift)}
}

func TestUint256AddNoCarry(t *testing.T) {
	f := newFixture(t)
	f.setFelts("a", []felt.Felt{felt.FromUint64(5), felt.FromUint64(7)})
	f.setFelts("b", []felt.Felt{felt.FromUint64(3), felt.FromUint64(2)})
	f.reserve("carry_low", 1)
	f.reserve("carry_high", 1)

	constants := shiftConstant()
	require.NoError(t, uint256Add(f.ids(), f.vm, &constants))
	assert.True(t, f.getFelt(t, "carry_low").IsZero())
	assert.True(t, f.getFelt(t, "carry_high").IsZero())
}

func TestUint256AddLowCarriesIntoHigh(t *testing.T) {
	f := newFixture(t)
	shift := new(big.Int).Lsh(big.NewInt(1), 128)
	almostMax := new(big.Int).Sub(shift, big.NewInt(1))
	f.setFelts("a", []felt.Felt{feltFromDecimal(t, almostMax.String()), felt.FromUint64(0)})
	f.setFelts("b", []felt.Felt{felt.FromUint64(1), felt.FromUint64(0)})
	f.reserve("carry_low", 1)
	f.reserve("carry_high", 1)

	constants := shiftConstant()
	require.NoError(t, uint256Add(f.ids(), f.vm, &constants))
	assert.True(t, f.getFelt(t, "carry_low").Eq(felt.One()))
	assert.True(t, f.getFelt(t, "carry_high").IsZero())
}

func TestUint256AddLowOnly(t *testing.T) {
	f := newFixture(t)
	shift := new(big.Int).Lsh(big.NewInt(1), 128)
	almostMax := new(big.Int).Sub(shift, big.NewInt(1))
	f.setFelts("a", []felt.Felt{feltFromDecimal(t, almostMax.String())})
	f.setFelts("b", []felt.Felt{felt.FromUint64(5)})
	f.reserve("carry_low", 1)

	constants := shiftConstant()
	require.NoError(t, uint256AddLow(f.ids(), f.vm, &constants))
	assert.True(t, f.getFelt(t, "carry_low").Eq(felt.One()))
}
