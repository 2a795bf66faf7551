package hints

import (
	"math/big"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/vm"
)

// uint256Add implements the legacy uint256_add hint, kept alongside the
// Uint384/768 family it was generalized from: ids.a + ids.b as pairs of
// 128-bit limbs, with per-limb carry flags against the SHIFT constant.
func uint256Add(ids *hint_utils.IdsManager, v *vm.VirtualMachine, constants *map[string]felt.Felt) error {
	shift, err := lookupConstant(constants, "SHIFT")
	if err != nil {
		return err
	}
	shiftBig := shift.ToBigInt()

	aLow, err := ids.GetStructFieldFelt("a", 0, v)
	if err != nil {
		return err
	}
	aHigh, err := ids.GetStructFieldFelt("a", 1, v)
	if err != nil {
		return err
	}
	bLow, err := ids.GetStructFieldFelt("b", 0, v)
	if err != nil {
		return err
	}
	bHigh, err := ids.GetStructFieldFelt("b", 1, v)
	if err != nil {
		return err
	}

	sumLow := new(big.Int).Add(aLow.ToBigInt(), bLow.ToBigInt())
	carryLow := felt.Zero()
	carry := int64(0)
	if sumLow.Cmp(shiftBig) >= 0 {
		carryLow = felt.One()
		carry = 1
	}
	if err := ids.InsertFelt("carry_low", carryLow, v); err != nil {
		return err
	}

	sumHigh := new(big.Int).Add(aHigh.ToBigInt(), bHigh.ToBigInt())
	sumHigh.Add(sumHigh, big.NewInt(carry))
	carryHigh := felt.Zero()
	if sumHigh.Cmp(shiftBig) >= 0 {
		carryHigh = felt.One()
	}
	return ids.InsertFelt("carry_high", carryHigh, v)
}

// uint256AddLow implements the legacy uint256_add_low hint: only the
// low-limb carry is computed, for callers that never overflow the high
// limb.
func uint256AddLow(ids *hint_utils.IdsManager, v *vm.VirtualMachine, constants *map[string]felt.Felt) error {
	shift, err := lookupConstant(constants, "SHIFT")
	if err != nil {
		return err
	}
	aLow, err := ids.GetStructFieldFelt("a", 0, v)
	if err != nil {
		return err
	}
	bLow, err := ids.GetStructFieldFelt("b", 0, v)
	if err != nil {
		return err
	}
	sumLow := new(big.Int).Add(aLow.ToBigInt(), bLow.ToBigInt())
	carryLow := felt.Zero()
	if sumLow.Cmp(shift.ToBigInt()) >= 0 {
		carryLow = felt.One()
	}
	return ids.InsertFelt("carry_low", carryLow, v)
}
