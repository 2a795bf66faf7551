package hints

import (
	"math/big"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/pkg/errors"
)

// ErrAssertionFailed is the catch-all for a hint's own assertion, mapped
// from spec.md §7 "assertion_failed".
var ErrAssertionFailed = errors.New("assertion_failed")

// ErrNonLeFelt is spec.md §7 "non_le_felt": assert_le_felt's a > b case.
var ErrNonLeFelt = errors.New("non_le_felt")

// ErrSplitIntLimbOutOfRange is spec.md §7 "split_int_limb_out_of_range".
var ErrSplitIntLimbOutOfRange = errors.New("split_int_limb_out_of_range")

// ErrMissingConstant is spec.md §7 "missing_constant".
var ErrMissingConstant = errors.New("missing_constant")

func rangeCheckBound(v *vm.VirtualMachine) (felt.Felt, error) {
	if v.RangeCheck.Bound == nil {
		return felt.Felt{}, errors.New("range-check builtin not present")
	}
	return *v.RangeCheck.Bound, nil
}

// isNn implements spec.md §4.4 "is_nn": negated-proposition range check.
func isNn(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	a, err := ids.GetFelt("a", v)
	if err != nil {
		return err
	}
	bound, err := rangeCheckBound(v)
	if err != nil {
		return err
	}
	result := felt.One()
	if a.Cmp(bound) < 0 {
		result = felt.Zero()
	}
	return v.Segments.Memory.Insert(v.RunContext.Ap, memoryFelt(result))
}

// isNnOutOfRange implements spec.md §4.4 "is_nn_out_of_range".
func isNnOutOfRange(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	a, err := ids.GetFelt("a", v)
	if err != nil {
		return err
	}
	bound, err := rangeCheckBound(v)
	if err != nil {
		return err
	}
	negAMinus1 := felt.Zero().Sub(a).Sub(felt.One())
	result := felt.One()
	if negAMinus1.Cmp(bound) < 0 {
		result = felt.Zero()
	}
	return v.Segments.Memory.Insert(v.RunContext.Ap, memoryFelt(result))
}

func assertLeFelt(ids *hint_utils.IdsManager, v *vm.VirtualMachine) (felt.Felt, felt.Felt, error) {
	a, err := ids.GetFelt("a", v)
	if err != nil {
		return felt.Felt{}, felt.Felt{}, err
	}
	b, err := ids.GetFelt("b", v)
	if err != nil {
		return felt.Felt{}, felt.Felt{}, err
	}
	if a.Cmp(b) > 0 {
		return felt.Felt{}, felt.Felt{}, errors.Wrapf(ErrNonLeFelt, "a = %s is not less than or equal to b = %s", a, b)
	}
	return a, b, nil
}

// assertLeFeltV06 implements spec.md §4.4 "assert_le_felt (v0.6)".
func assertLeFeltV06(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	_, _, err := assertLeFelt(ids, v)
	return err
}

// assertLeFeltV08 additionally writes small_inputs (spec.md §4.4
// "assert_le_felt (v0.8)").
func assertLeFeltV08(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	a, b, err := assertLeFelt(ids, v)
	if err != nil {
		return err
	}
	bound, err := rangeCheckBound(v)
	if err != nil {
		return err
	}
	small := felt.Zero()
	if a.Cmp(bound) < 0 && b.Sub(a).Cmp(bound) < 0 {
		small = felt.One()
	}
	return ids.InsertFelt("small_inputs", small, v)
}

// assertNotEqual implements spec.md §4.4-adjacent assert_not_equal: a
// and b, read as felts, must differ mod P. (Relocatable-vs-relocatable
// comparisons are a VM/compiler-level concern this spec does not model.)
func assertNotEqual(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	a, err := ids.GetFelt("a", v)
	if err != nil {
		return err
	}
	b, err := ids.GetFelt("b", v)
	if err != nil {
		return err
	}
	if a.Eq(b) {
		return errors.Wrapf(ErrAssertionFailed, "assert_not_equal failed: %s = %s", a, b)
	}
	return nil
}

// assertNotZero implements assert_not_zero.
func assertNotZero(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	value, err := ids.GetFelt("value", v)
	if err != nil {
		return err
	}
	if value.IsZero() {
		return errors.Wrapf(ErrAssertionFailed, "assert_not_zero failed: %s = 0", value)
	}
	return nil
}

// isPositive implements spec.md's is_positive: true when the value's
// signed reinterpretation is >= 0 and representable within the
// range-check bound.
func isPositive(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	value, err := ids.GetFelt("value", v)
	if err != nil {
		return err
	}
	bound, err := rangeCheckBound(v)
	if err != nil {
		return err
	}
	signed := value.Signed()
	result := felt.Zero()
	if signed.Sign() >= 0 && felt.FromSignedBigInt(signed).Cmp(bound) < 0 {
		result = felt.One()
	}
	return ids.InsertFelt("is_positive", result, v)
}

// is250Bits implements spec.md §4.4 "is_250_bits".
func is250Bits(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	addr, err := ids.GetFelt("addr", v)
	if err != nil {
		return err
	}
	result := felt.Zero()
	if addr.Bits() <= 250 {
		result = felt.One()
	}
	return ids.InsertFelt("is_250", result, v)
}

// isAddrBounded implements spec.md §4.4 "is_addr_bounded": validates
// the ADDR_BOUND invariant before emitting is_small.
func isAddrBounded(ids *hint_utils.IdsManager, v *vm.VirtualMachine, constants *map[string]felt.Felt) error {
	addrBound, err := lookupConstant(constants, "ADDR_BOUND")
	if err != nil {
		return err
	}
	twoPow250 := new(big.Int).Lsh(big.NewInt(1), 250)
	twoPow251 := new(big.Int).Lsh(big.NewInt(1), 251)
	bound := addrBound.ToBigInt()
	prime := felt.Prime()
	ok := bound.Cmp(twoPow250) > 0 && bound.Cmp(twoPow251) <= 0 &&
		new(big.Int).Mul(bound, big.NewInt(2)).Cmp(prime) > 0
	if !ok {
		return errors.Wrapf(ErrAssertionFailed, "normalize_address() cannot be used with the current constants")
	}
	addr, err := ids.GetFelt("addr", v)
	if err != nil {
		return err
	}
	isSmall := felt.Zero()
	if addr.Cmp(addrBound) < 0 {
		isSmall = felt.One()
	}
	return ids.InsertFelt("is_small", isSmall, v)
}

// splitInt implements spec.md §4.4 "split_int".
func splitInt(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	value, err := ids.GetFelt("value", v)
	if err != nil {
		return err
	}
	base, err := ids.GetFelt("base", v)
	if err != nil {
		return err
	}
	bound, err := ids.GetFelt("bound", v)
	if err != nil {
		return err
	}
	outputPtr, err := ids.GetRelocatable("output", v)
	if err != nil {
		return err
	}
	if base.IsZero() {
		return felt.ErrDivideByZero
	}
	baseBig := base.ToBigInt()
	valueBig := value.ToBigInt()
	res := new(big.Int).Mod(valueBig, baseBig)
	resFelt := felt.FromSignedBigInt(res)
	if resFelt.Cmp(bound) >= 0 {
		return errors.Wrapf(ErrSplitIntLimbOutOfRange, "limb %s is out of range", resFelt)
	}
	return v.Segments.Memory.Insert(outputPtr, memoryFelt(resFelt))
}

// splitXX implements spec.md §4.4 "split_xx" over the auxiliary prime
// Q = 2^255 - 19.
func splitXX(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	q := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))
	iConst, ok := new(big.Int).SetString("19681161376707505956807079304988542015446066515923890162744021073123829784752", 10)
	if !ok {
		return errors.New("invalid I constant")
	}
	low, err := ids.GetStructFieldFelt("xx", 0, v)
	if err != nil {
		return err
	}
	high, err := ids.GetStructFieldFelt("xx", 1, v)
	if err != nil {
		return err
	}
	xx := new(big.Int).Add(low.ToBigInt(), new(big.Int).Lsh(high.ToBigInt(), 128))

	exp := new(big.Int).Div(new(big.Int).Add(q, big.NewInt(3)), big.NewInt(8))
	x := new(big.Int).Exp(xx, exp, q)
	check := new(big.Int).Mod(new(big.Int).Mul(x, x), q)
	if check.Cmp(new(big.Int).Mod(xx, q)) != 0 {
		x = new(big.Int).Mod(new(big.Int).Mul(x, iConst), q)
	}
	if x.Bit(0) != 0 {
		x = new(big.Int).Sub(q, x)
	}
	mask128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	xLow := new(big.Int).And(x, mask128)
	xHigh := new(big.Int).Rsh(x, 128)
	base, err := ids.GetAddress("x", v)
	if err != nil {
		return err
	}
	if err := v.Segments.Memory.Insert(base, memoryFelt(felt.FromSignedBigInt(xLow))); err != nil {
		return err
	}
	return v.Segments.Memory.Insert(base.AddUint(1), memoryFelt(felt.FromSignedBigInt(xHigh)))
}

// isQuadResidue implements spec.md §4.4 "is_quad_residue".
func isQuadResidue(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	a, err := ids.GetFelt("x", v)
	if err != nil {
		return err
	}
	var y felt.Felt
	if a.IsQuadraticResidue() {
		y, err = a.Sqrt()
	} else {
		three := felt.FromUint64(3)
		var divided felt.Felt
		divided, err = a.Div(three)
		if err == nil {
			y, err = divided.Sqrt()
		}
	}
	if err != nil {
		return err
	}
	return ids.InsertFelt("y", y, v)
}

func lookupConstant(constants *map[string]felt.Felt, shortName string) (felt.Felt, error) {
	if constants == nil {
		return felt.Felt{}, errors.Wrapf(ErrMissingConstant, "%q", shortName)
	}
	if v, ok := (*constants)[shortName]; ok {
		return v, nil
	}
	suffix := "." + shortName
	for k, v := range *constants {
		if len(k) > len(suffix) && k[len(k)-len(suffix):] == suffix {
			return v, nil
		}
	}
	return felt.Felt{}, errors.Wrapf(ErrMissingConstant, "%q", shortName)
}
