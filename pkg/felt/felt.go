// Package felt implements arithmetic over the Starknet prime field.
package felt

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Felt is an element of Z/PZ, P = 2^251 + 17*2^192 + 1.
//
// Internally backed by a holiman/uint256.Int: P is ~252 bits, so every
// element fits in four 64-bit words with no extra bookkeeping.
type Felt struct {
	val uint256.Int
}

var primeBig, _ = new(big.Int).SetString("3618502788666131213697322783095070105623107215331596699973092056135872020481", 10)

var prime = func() uint256.Int {
	var p uint256.Int
	overflow := p.SetFromBig(primeBig)
	if overflow {
		panic("felt: prime does not fit in 256 bits")
	}
	return p
}()

var halfPrimeBig = new(big.Int).Rsh(primeBig, 1)

// Prime returns the Starknet prime as an arbitrary-precision integer.
func Prime() *big.Int {
	return new(big.Int).Set(primeBig)
}

// Zero returns the additive identity.
func Zero() Felt { return Felt{} }

// One returns the multiplicative identity.
func One() Felt {
	var f Felt
	f.val.SetOne()
	return f
}

// FromUint64 builds a Felt from an unsigned 64-bit value.
func FromUint64(v uint64) Felt {
	var f Felt
	f.val.SetUint64(v)
	return f
}

// FromInt64 builds a Felt from a signed 64-bit value, wrapping negatives
// around the prime.
func FromInt64(v int64) Felt {
	return FromSignedBigInt(big.NewInt(v))
}

// FromSignedBigInt reduces an arbitrary-precision signed integer modulo P.
func FromSignedBigInt(v *big.Int) Felt {
	var reduced big.Int
	reduced.Mod(v, primeBig)
	var f Felt
	overflow := f.val.SetFromBig(&reduced)
	if overflow {
		panic("felt: reduced value unexpectedly overflowed 256 bits")
	}
	return f
}

// FromBeBytes interprets a 32-byte big-endian buffer as a Felt, reducing
// modulo P if the value exceeds it.
func FromBeBytes(b *[32]byte) Felt {
	var f Felt
	f.val.SetBytes32(b[:])
	if f.val.Cmp(&prime) >= 0 {
		f.val.Mod(&f.val, &prime)
	}
	return f
}

// FromBeBytesSlice is a convenience wrapper for variable-length big-endian
// inputs, left-padded with zero bytes.
func FromBeBytesSlice(b []byte) Felt {
	var buf [32]byte
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(buf[32-len(b):], b)
	return FromBeBytes(&buf)
}

// ToBeBytes serializes the Felt as 32 big-endian bytes.
func (f Felt) ToBeBytes() [32]byte {
	return f.val.Bytes32()
}

// ToHexString renders the canonical representative in hexadecimal.
func (f Felt) ToHexString() string {
	return f.val.Hex()
}

// ToU64 converts the Felt to a uint64, failing if it does not fit.
func (f Felt) ToU64() (uint64, error) {
	if !f.val.IsUint64() {
		return 0, errors.Errorf("felt %s does not fit in a u64", f.ToHexString())
	}
	return f.val.Uint64(), nil
}

// ToI64 converts the Felt, reinterpreted as signed, to an int64.
func (f Felt) ToI64() (int64, error) {
	signed := f.Signed()
	if !signed.IsInt64() {
		return 0, errors.Errorf("felt %s does not fit in an i64", f.ToHexString())
	}
	return signed.Int64(), nil
}

// Signed reinterprets the Felt as a value in (-P/2, P/2], mapping the top
// half of the field to negative integers. Shared by BigInt3/5 and
// Uint384/768 limb packing (spec.md "Pattern: signed big-integer limbs").
func (f Felt) Signed() *big.Int {
	v := f.val.ToBig()
	if v.Cmp(halfPrimeBig) > 0 {
		v.Sub(v, primeBig)
	}
	return v
}

// ToBigInt returns the canonical (non-negative) representative.
func (f Felt) ToBigInt() *big.Int {
	return f.val.ToBig()
}

// Bits returns the bit length of the canonical representative: the
// smallest w such that value < 2^w.
func (f Felt) Bits() uint {
	return uint(f.val.BitLen())
}

func (f Felt) IsZero() bool {
	return f.val.IsZero()
}

func (f Felt) Eq(o Felt) bool {
	return f.val.Eq(&o.val)
}

// Cmp compares canonical representatives: -1, 0, 1.
func (f Felt) Cmp(o Felt) int {
	return f.val.Cmp(&o.val)
}

func (f Felt) Add(o Felt) Felt {
	var r Felt
	r.val.AddMod(&f.val, &o.val, &prime)
	return r
}

func (f Felt) Sub(o Felt) Felt {
	var r Felt
	// uint256 has no SubMod; add the additive inverse instead.
	var negO uint256.Int
	negO.Sub(&prime, &o.val)
	if o.val.IsZero() {
		negO.Clear()
	}
	r.val.AddMod(&f.val, &negO, &prime)
	return r
}

func (f Felt) Mul(o Felt) Felt {
	var r Felt
	r.val.MulMod(&f.val, &o.val, &prime)
	return r
}

func (f Felt) Neg() Felt {
	return Zero().Sub(f)
}

// Inverse returns the multiplicative inverse via Fermat's little theorem.
// Returns zero if f is zero; callers must check IsZero first (division
// by zero is surfaced as felt.ErrDivideByZero by Div).
func (f Felt) Inverse() Felt {
	expBig := new(big.Int).Sub(primeBig, big.NewInt(2))
	return f.Pow(expBig)
}

// ErrDivideByZero is returned by Div when the divisor is zero.
var ErrDivideByZero = errors.New("divided_by_zero")

func (f Felt) Div(o Felt) (Felt, error) {
	if o.IsZero() {
		return Felt{}, ErrDivideByZero
	}
	return f.Mul(o.Inverse()), nil
}

// Pow computes f^exp mod P via square-and-multiply, exp >= 0.
func (f Felt) Pow(exp *big.Int) Felt {
	if exp.Sign() == 0 {
		return One()
	}
	result := One()
	base := f
	e := new(big.Int).Set(exp)
	zero := big.NewInt(0)
	two := big.NewInt(2)
	rem := new(big.Int)
	for e.Cmp(zero) > 0 {
		e.DivMod(e, two, rem)
		if rem.Sign() != 0 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	return result
}

// ErrNotQuadraticResidue is returned by Sqrt when no square root exists.
var ErrNotQuadraticResidue = errors.New("not a quadratic residue")

// Sqrt returns the canonical modular square root (the smaller of the two
// roots), or ErrNotQuadraticResidue if f is not a quadratic residue.
func (f Felt) Sqrt() (Felt, error) {
	if f.IsZero() {
		return Zero(), nil
	}
	root := new(big.Int).ModSqrt(f.ToBigInt(), primeBig)
	if root == nil {
		return Felt{}, ErrNotQuadraticResidue
	}
	candidate := FromSignedBigInt(root)
	other := candidate.Neg()
	if other.Cmp(candidate) < 0 {
		return other, nil
	}
	return candidate, nil
}

// IsQuadraticResidue reports whether a is 0, 1, or satisfies Euler's
// criterion a^((P-1)/2) == 1.
func (f Felt) IsQuadraticResidue() bool {
	if f.IsZero() {
		return true
	}
	if f.Eq(One()) {
		return true
	}
	exp := new(big.Int).Rsh(new(big.Int).Sub(primeBig, big.NewInt(1)), 1)
	return f.Pow(exp).Eq(One())
}

func (f Felt) String() string {
	return f.ToHexString()
}
