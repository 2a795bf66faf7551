// Package limbs packs and splits fixed-width multi-precision integers
// represented as N field-element limbs in a given base, shared by the
// BigInt3/BigInt5 helpers (base 2^86) and the Uint384/Uint768 helpers
// (base 2^128). See spec.md §3 "BigInt-N value" and §9 "Pattern: signed
// big-integer limbs".
package limbs

import (
	"math/big"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/pkg/errors"
)

// Base86 is the limb base used by the BigInt3/BigInt5 elliptic-curve
// helpers (2^86).
var Base86 = new(big.Int).Lsh(big.NewInt(1), 86)

// Base128 is the limb base used by the Uint384/Uint768 helpers (2^128).
var Base128 = new(big.Int).Lsh(big.NewInt(1), 128)

// Pack interprets limbs[0], limbs[1], ... as base-B digits, Σ limb_i·B^i,
// reinterpreting each limb as a signed value around P/2 (felt.Felt.Signed)
// before summing. This is the one packing rule shared by every
// multi-limb helper in the spec.
func Pack(limbsList []felt.Felt, base *big.Int) *big.Int {
	result := new(big.Int)
	power := new(big.Int).SetInt64(1)
	for _, l := range limbsList {
		term := new(big.Int).Mul(l.Signed(), power)
		result.Add(result, term)
		power.Mul(power, base)
	}
	return result
}

// Split decomposes an unbounded integer into n base-B limbs in [0, B).
// Fails if value does not fit in n limbs (including negative values,
// which split never represents: callers reduce into range first).
func Split(value *big.Int, n int, base *big.Int) ([]felt.Felt, error) {
	if value.Sign() < 0 {
		return nil, errors.Errorf("limbs: cannot split negative value %s", value.String())
	}
	remaining := new(big.Int).Set(value)
	out := make([]felt.Felt, n)
	for i := 0; i < n; i++ {
		digit := new(big.Int)
		remaining.DivMod(remaining, base, digit)
		out[i] = felt.FromSignedBigInt(digit)
	}
	if remaining.Sign() != 0 {
		return nil, errors.Errorf("limbs: value %s does not fit in %d limbs of base %s", value.String(), n, base.String())
	}
	return out, nil
}
