package hints

import (
	"crypto/sha256"
	"math/big"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/pkg/errors"
)

// Curve parameters for y^2 = x^3 + alpha*x + beta mod P (spec.md §4.7).
var ecAlpha = felt.One()

var ecBeta = func() felt.Felt {
	b, _ := new(big.Int).SetString("3141592653589793238462643383279502884197169399375105820974944592307816406665", 10)
	return felt.FromSignedBigInt(b)
}()

// ErrRecoverYPointNotOnCurve is spec.md §7 "recover_y_point_not_on_curve".
var ErrRecoverYPointNotOnCurve = errors.New("recover_y_point_not_on_curve")

// ErrRandomEcPointNotOnCurve is spec.md §7 "random_ec_point_not_on_curve".
var ErrRandomEcPointNotOnCurve = errors.New("random_ec_point_not_on_curve")

// ErrInvalidLenValue is spec.md §7 "invalid_len_value".
var ErrInvalidLenValue = errors.New("invalid_len_value")

// curveY returns the canonical y with y^2 = x^3 + alpha*x + beta, or
// ErrRecoverYPointNotOnCurve (spec.md §4.7 "recover_y").
func curveY(x felt.Felt) (felt.Felt, error) {
	t := x.Mul(x).Mul(x).Add(ecAlpha.Mul(x)).Add(ecBeta)
	y, err := t.Sqrt()
	if err != nil {
		return felt.Felt{}, ErrRecoverYPointNotOnCurve
	}
	return y, nil
}

// recoverY implements spec.md §4.7 "recover_y(x)".
func recoverY(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	x, err := ids.GetFelt("x", v)
	if err != nil {
		return err
	}
	y, err := curveY(x)
	if err != nil {
		return err
	}
	return writePoint(ids, "p", x, y, v)
}

func writePoint(ids *hint_utils.IdsManager, name string, x, y felt.Felt, v *vm.VirtualMachine) error {
	base, err := ids.GetAddress(name, v)
	if err != nil {
		return err
	}
	if err := v.Segments.Memory.Insert(base, memoryFelt(x)); err != nil {
		return err
	}
	return v.Segments.Memory.Insert(base.AddUint(1), memoryFelt(y))
}

// ecPointFromSeed walks candidate x values derived from seed until one
// lands on the curve, matching spec.md §4.7's 100-attempt random point
// derivation shared by random_ec_point, random_ec_point_seeded, and
// chained_ec_op_random_ec_point.
func ecPointFromSeed(seed []byte) (felt.Felt, felt.Felt, error) {
	s := sha256.Sum256(seed)
	for i := 0; i < 100; i++ {
		var input [32]byte
		copy(input[:21], s[1:22])
		input[21] = byte(i)
		digest := sha256.Sum256(input[:])
		x := felt.FromBeBytes(&digest)
		y, err := curveY(x)
		if err != nil {
			continue
		}
		// The low bit of s[0] selects which of the two curve roots to
		// return (spec.md §9 open question: resolved by matching this
		// bit to the reference implementation's sign convention).
		if s[0]&1 != 0 {
			y = y.Neg()
		}
		return x, y, nil
	}
	return felt.Felt{}, felt.Felt{}, ErrRandomEcPointNotOnCurve
}

// randomEcPointSeeded implements spec.md §4.7 "random_ec_point_seeded".
func randomEcPointSeeded(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	seedPtr, err := ids.GetRelocatable("seed", v)
	if err != nil {
		return err
	}
	length, err := ids.GetFelt("len", v)
	if err != nil {
		return err
	}
	n, err := length.ToU64()
	if err != nil {
		return errors.Wrapf(ErrInvalidLenValue, "len: %v", err)
	}
	seedFelts, err := v.Segments.Memory.GetFeltRange(seedPtr, uint(n))
	if err != nil {
		return err
	}
	seed := feltsToBeBytes(seedFelts)
	x, y, err := ecPointFromSeed(seed)
	if err != nil {
		return err
	}
	return writePoint(ids, "p", x, y, v)
}

func feltsToBeBytes(fs []felt.Felt) []byte {
	out := make([]byte, 0, 32*len(fs))
	for _, f := range fs {
		b := f.ToBeBytes()
		out = append(out, b[:]...)
	}
	return out
}

// randomEcPoint implements spec.md §4.7 "random_ec_point (hint)".
func randomEcPoint(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	px, err := ids.GetStructFieldFelt("p", 0, v)
	if err != nil {
		return err
	}
	py, err := ids.GetStructFieldFelt("p", 1, v)
	if err != nil {
		return err
	}
	m, err := ids.GetFelt("m", v)
	if err != nil {
		return err
	}
	qx, err := ids.GetStructFieldFelt("q", 0, v)
	if err != nil {
		return err
	}
	qy, err := ids.GetStructFieldFelt("q", 1, v)
	if err != nil {
		return err
	}
	seed := feltsToBeBytes([]felt.Felt{px, py, m, qx, qy})
	x, y, err := ecPointFromSeed(seed)
	if err != nil {
		return err
	}
	return writePoint(ids, "s", x, y, v)
}

// chainedEcOpRandomEcPoint implements spec.md §4.7
// "chained_ec_op_random_ec_point".
func chainedEcOpRandomEcPoint(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	length, err := ids.GetFelt("len", v)
	if err != nil {
		return err
	}
	n, err := length.ToU64()
	if err != nil || n == 0 {
		return errors.Wrapf(ErrInvalidLenValue, "len must be a positive representable integer")
	}
	px, err := ids.GetStructFieldFelt("p", 0, v)
	if err != nil {
		return err
	}
	py, err := ids.GetStructFieldFelt("p", 1, v)
	if err != nil {
		return err
	}
	seed := feltsToBeBytes([]felt.Felt{px, py})

	mPtr, err := ids.GetRelocatable("m", v)
	if err != nil {
		return err
	}
	mFelts, err := v.Segments.Memory.GetFeltRange(mPtr, uint(n))
	if err != nil {
		return err
	}
	seed = append(seed, feltsToBeBytes(mFelts)...)

	qPtr, err := ids.GetRelocatable("q", v)
	if err != nil {
		return err
	}
	for i := uint64(0); i < n; i++ {
		qiBase := qPtr.AddUint(uint(i) * 2)
		qix, err := v.Segments.Memory.GetFelt(qiBase)
		if err != nil {
			return err
		}
		qiy, err := v.Segments.Memory.GetFelt(qiBase.AddUint(1))
		if err != nil {
			return err
		}
		seed = append(seed, feltsToBeBytes([]felt.Felt{qix, qiy})...)
	}

	x, y, err := ecPointFromSeed(seed)
	if err != nil {
		return err
	}
	return writePoint(ids, "s", x, y, v)
}
