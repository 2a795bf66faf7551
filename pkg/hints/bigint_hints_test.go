package hints

import (
	"testing"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hexLimbs builds a BigInt3/5 limb slice from hex literals.
func hexLimbs(t *testing.T, hexes ...string) []felt.Felt {
	t.Helper()
	out := make([]felt.Felt, len(hexes))
	for i, h := range hexes {
		out[i] = felt.FromSignedBigInt(bigFromHex(t, h))
	}
	return out
}

func TestBigintPackDivModAndSafeDiv(t *testing.T) {
	f := newFixture(t)
	f.setFelts("x", hexLimbs(t,
		"0x38a23ca66202c8c2a72277",
		"0x6730e765376ff17ea8385",
		"0xca1ad489ab60ea581e6c1",
		"0x0",
		"0x0",
	))
	f.setFelts("y", hexLimbs(t,
		"0x20a4b46d3c5e24cda81f22",
		"0x967bf895824330d4273d0",
		"0x541e10c21560da25ada4c",
	))
	f.setFelts("p", hexLimbs(t,
		"0x8a03bbfd25e8cd0364141",
		"0x3ffffffffffaeabb739abd",
		"0xfffffffffffffffffffff",
	))
	scopes := types.NewExecutionScopes()
	require.NoError(t, bigintPackDivMod(f.ids(), scopes, f.vm))

	wantRes := bigFromDecimal(t, "109567829260688255124154626727441144629993228404337546799996747905569082729709")
	wantY := bigFromDecimal(t, "38047400353360331012910998489219098987968251547384484838080352663220422975266")
	wantX := bigFromDecimal(t, "91414600319290532004473480113251693728834511388719905794310982800988866814583")
	wantP := bigFromDecimal(t, "115792089237316195423570985008687907852837564279074904382605163141518161494337")

	res, err := scopes.GetBigInt("res")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Cmp(wantRes))
	value, err := scopes.GetBigInt("value")
	require.NoError(t, err)
	assert.Equal(t, 0, value.Cmp(wantRes))
	x, err := scopes.GetBigInt("x")
	require.NoError(t, err)
	assert.Equal(t, 0, x.Cmp(wantX))
	y, err := scopes.GetBigInt("y")
	require.NoError(t, err)
	assert.Equal(t, 0, y.Cmp(wantY))
	p, err := scopes.GetBigInt("p")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Cmp(wantP))

	// Scenario 2 runs bigint_safe_div against the scope bigint_pack_div_mod
	// just populated.
	f2 := newFixture(t)
	f2.reserve("flag", 1)
	require.NoError(t, bigintSafeDiv(f2.ids(), scopes, f2.vm))

	wantK := bigFromDecimal(t, "36002209591245282109880156842267569109802494162594623391338581162816748840003")
	k, err := scopes.GetBigInt("k")
	require.NoError(t, err)
	assert.Equal(t, 0, k.Cmp(wantK))
	value2, err := scopes.GetBigInt("value")
	require.NoError(t, err)
	assert.Equal(t, 0, value2.Cmp(wantK))
	flag := f2.getFelt(t, "flag")
	assert.True(t, felt.One().Eq(flag))
}

func TestSafeDivFailsOnNonDivisor(t *testing.T) {
	_, err := safeDiv(bigFromDecimal(t, "7"), bigFromDecimal(t, "2"))
	assert.ErrorIs(t, err, ErrSafeDivFail)
}
