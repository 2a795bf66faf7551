package limbs

import (
	"math/big"
	"testing"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackSplitRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		value string
		n     int
		base  *big.Int
	}{
		{"zero, base 2^86", "0", 3, Base86},
		{"small positive, base 2^86", "42", 3, Base86},
		{"max single limb, base 2^128", "340282366920938463463374607431768211455", 3, Base128},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, ok := new(big.Int).SetString(tc.value, 10)
			require.True(t, ok)
			split, err := Split(value, tc.n, tc.base)
			require.NoError(t, err)
			packed := Pack(split, tc.base)
			assert.Equal(t, 0, packed.Cmp(value))
		})
	}
}

func TestSplitRejectsNegativeAndOversized(t *testing.T) {
	_, err := Split(big.NewInt(-1), 3, Base86)
	assert.Error(t, err)

	huge := new(big.Int).Exp(Base86, big.NewInt(4), nil)
	_, err = Split(huge, 3, Base86)
	assert.Error(t, err)
}

func TestPackReinterpretsLimbsAsSigned(t *testing.T) {
	// A limb holding P-1 packs as -1 in that position, matching Felt.Signed.
	minusOne := felt.Zero().Sub(felt.One())
	packed := Pack([]felt.Felt{minusOne}, Base86)
	assert.Equal(t, 0, packed.Cmp(big.NewInt(-1)))
}
