package felt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSubMulRoundTrip(t *testing.T) {
	a := FromUint64(17)
	b := FromUint64(5)
	assert.True(t, a.Add(b).Sub(b).Eq(a))
	assert.True(t, a.Mul(b).Eq(FromUint64(85)))
}

func TestNegAndSubViaPrime(t *testing.T) {
	a := FromUint64(3)
	assert.True(t, a.Neg().Add(a).IsZero())
}

func TestDivByZero(t *testing.T) {
	_, err := One().Div(Zero())
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestInverseRoundTrip(t *testing.T) {
	a := FromUint64(12345)
	inv := a.Inverse()
	assert.True(t, a.Mul(inv).Eq(One()))
}

func TestSqrtAndQuadraticResidue(t *testing.T) {
	square := FromUint64(9)
	root, err := square.Sqrt()
	require.NoError(t, err)
	assert.True(t, root.Mul(root).Eq(square))
	assert.True(t, square.IsQuadraticResidue())
}

func TestSignedRoundTripsThroughBeBytes(t *testing.T) {
	neg := FromInt64(-7)
	assert.Equal(t, int64(-7), neg.Signed().Int64())

	bytes := neg.ToBeBytes()
	assert.True(t, FromBeBytes(&bytes).Eq(neg))
}

func TestToU64Overflow(t *testing.T) {
	huge := FromSignedBigInt(new(big.Int).Lsh(big.NewInt(1), 100))
	_, err := huge.ToU64()
	assert.Error(t, err)
}
