package hints

import (
	"math/big"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/limbs"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/pkg/errors"
)

func readLimbsN(ids *hint_utils.IdsManager, name string, n uint, v *vm.VirtualMachine) ([]felt.Felt, error) {
	out := make([]felt.Felt, n)
	for i := uint(0); i < n; i++ {
		f, err := ids.GetStructFieldFelt(name, i, v)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func writeLimbsN(ids *hint_utils.IdsManager, name string, limbsList []felt.Felt, v *vm.VirtualMachine) error {
	base, err := ids.GetAddress(name, v)
	if err != nil {
		return err
	}
	for i, f := range limbsList {
		if err := v.Segments.Memory.Insert(base.AddUint(uint(i)), memoryFelt(f)); err != nil {
			return err
		}
	}
	return nil
}

// uint384UnsignedDivRem implements spec.md §4.5 "uint384_unsigned_div_rem".
func uint384UnsignedDivRem(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	aLimbs, err := readLimbsN(ids, "a", 3, v)
	if err != nil {
		return err
	}
	divLimbs, err := readLimbsN(ids, "div", 3, v)
	if err != nil {
		return err
	}
	a := limbs.Pack(aLimbs, limbs.Base128)
	div := limbs.Pack(divLimbs, limbs.Base128)
	if div.Sign() == 0 {
		return felt.ErrDivideByZero
	}
	quotient, remainder := new(big.Int).QuoRem(a, div, new(big.Int))
	if remainder.Sign() < 0 {
		remainder.Add(remainder, div)
		quotient.Sub(quotient, big.NewInt(1))
	}
	quotientLimbs, err := limbs.Split(quotient, 3, limbs.Base128)
	if err != nil {
		return err
	}
	remainderLimbs, err := limbs.Split(remainder, 3, limbs.Base128)
	if err != nil {
		return err
	}
	if err := writeLimbsN(ids, "quotient", quotientLimbs, v); err != nil {
		return err
	}
	return writeLimbsN(ids, "remainder", remainderLimbs, v)
}

// uint768ByUint384UnsignedDivRem implements spec.md §4.5
// "uint768_by_uint384_unsigned_div_rem".
func uint768ByUint384UnsignedDivRem(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	aLimbs, err := readLimbsN(ids, "a", 6, v)
	if err != nil {
		return err
	}
	divLimbs, err := readLimbsN(ids, "div", 3, v)
	if err != nil {
		return err
	}
	a := limbs.Pack(aLimbs, limbs.Base128)
	div := limbs.Pack(divLimbs, limbs.Base128)
	if div.Sign() == 0 {
		return felt.ErrDivideByZero
	}
	quotient, remainder := new(big.Int).QuoRem(a, div, new(big.Int))
	if remainder.Sign() < 0 {
		remainder.Add(remainder, div)
		quotient.Sub(quotient, big.NewInt(1))
	}
	quotientLimbs, err := limbs.Split(quotient, 6, limbs.Base128)
	if err != nil {
		return err
	}
	remainderLimbs, err := limbs.Split(remainder, 3, limbs.Base128)
	if err != nil {
		return err
	}
	if err := writeLimbsN(ids, "quotient", quotientLimbs, v); err != nil {
		return err
	}
	return writeLimbsN(ids, "remainder", remainderLimbs, v)
}

// uint384Split128 implements spec.md §4.5 "uint384_split_128".
func uint384Split128(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	a, err := ids.GetFelt("a", v)
	if err != nil {
		return err
	}
	aBig := a.ToBigInt()
	mask := new(big.Int).Sub(limbs.Base128, big.NewInt(1))
	low := new(big.Int).And(aBig, mask)
	high := new(big.Int).Rsh(aBig, 128)
	if err := ids.InsertFelt("low", felt.FromSignedBigInt(low), v); err != nil {
		return err
	}
	return ids.InsertFelt("high", felt.FromSignedBigInt(high), v)
}

// addNoUint384Check implements spec.md §4.5 "add_no_uint384_check":
// per-limb carry detection against the SHIFT constant.
func addNoUint384Check(ids *hint_utils.IdsManager, v *vm.VirtualMachine, constants *map[string]felt.Felt) error {
	shift, err := lookupConstant(constants, "SHIFT")
	if err != nil {
		return err
	}
	aLimbs, err := readLimbsN(ids, "a", 3, v)
	if err != nil {
		return err
	}
	bLimbs, err := readLimbsN(ids, "b", 3, v)
	if err != nil {
		return err
	}
	shiftBig := shift.ToBigInt()
	carry := big.NewInt(0)
	names := []string{"d0", "d1", "d2"}
	for i := 0; i < 3; i++ {
		sum := new(big.Int).Add(aLimbs[i].ToBigInt(), bLimbs[i].ToBigInt())
		sum.Add(sum, carry)
		carryOut := felt.Zero()
		if sum.Cmp(shiftBig) >= 0 {
			carryOut = felt.One()
			carry = big.NewInt(1)
		} else {
			carry = big.NewInt(0)
		}
		if err := ids.InsertFelt("carry_"+names[i], carryOut, v); err != nil {
			return err
		}
	}
	return nil
}

// uint384Sqrt implements spec.md §4.5 "uint384_sqrt".
func uint384Sqrt(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	aLimbs, err := readLimbsN(ids, "a", 3, v)
	if err != nil {
		return err
	}
	a := limbs.Pack(aLimbs, limbs.Base128)
	root := new(big.Int).Sqrt(a)
	upperBound := new(big.Int).Lsh(big.NewInt(1), 192)
	if root.Sign() < 0 || root.Cmp(upperBound) >= 0 {
		return errors.Wrapf(ErrAssertionFailed, "uint384_sqrt: root out of range")
	}
	rootLimbs, err := limbs.Split(root, 2, limbs.Base128)
	if err != nil {
		return err
	}
	return writeLimbsN(ids, "root", rootLimbs, v)
}

// uint384SignedNn implements spec.md §4.5 "uint384_signed_nn".
func uint384SignedNn(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	top, err := ids.GetStructFieldFelt("a", 2, v)
	if err != nil {
		return err
	}
	result := felt.Zero()
	if top.Bits() <= 127 {
		result = felt.One()
	}
	return ids.InsertFelt("is_nonneg", result, v)
}

// subReducedAAndReducedB implements spec.md §4.5
// "sub_reduced_a_and_reduced_b".
func subReducedAAndReducedB(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	aLimbs, err := readLimbsN(ids, "a", 3, v)
	if err != nil {
		return err
	}
	bLimbs, err := readLimbsN(ids, "b", 3, v)
	if err != nil {
		return err
	}
	pLimbs, err := readLimbsN(ids, "p", 3, v)
	if err != nil {
		return err
	}
	a := limbs.Pack(aLimbs, limbs.Base128)
	b := limbs.Pack(bLimbs, limbs.Base128)
	p := limbs.Pack(pLimbs, limbs.Base128)
	res := new(big.Int).Sub(a, b)
	if a.Cmp(b) < 0 {
		res = new(big.Int).Sub(p, new(big.Int).Sub(b, a))
	}
	res.Mod(res, p)
	resLimbs, err := limbs.Split(res, 3, limbs.Base128)
	if err != nil {
		return err
	}
	return writeLimbsN(ids, "res", resLimbs, v)
}
