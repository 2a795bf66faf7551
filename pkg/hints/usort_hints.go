package hints

import (
	"sort"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/types"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/pkg/errors"
)

// ErrUsortOutOfRange is spec.md §7 "usort_out_of_range".
var ErrUsortOutOfRange = errors.New("usort_out_of_range")

// ErrUnexpectedPositionsDictFail is spec.md §7 "unexpected_positions_dict_fail".
var ErrUnexpectedPositionsDictFail = errors.New("unexpected_positions_dict_fail")

// ErrCouldntPopPositions is spec.md §7 "couldnt_pop_positions".
var ErrCouldntPopPositions = errors.New("couldnt_pop_positions")

// ErrPositionsLengthNotZero is spec.md §7 "positions_length_not_zero".
var ErrPositionsLengthNotZero = errors.New("positions_length_not_zero")

// usortBody implements spec.md §4.9 "usort_body": dedups and sorts
// input into output, counts multiplicities, and deposits a
// value -> appearance-indices map into the scope for the verification
// loop that follows.
func usortBody(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	inputPtr, err := ids.GetRelocatable("input", v)
	if err != nil {
		return err
	}
	inputLenFelt, err := ids.GetFelt("input_len", v)
	if err != nil {
		return err
	}
	inputLen, err := inputLenFelt.ToU64()
	if err != nil {
		return err
	}
	if maxSize, boundErr := scopes.GetUint64("usort_max_size"); boundErr == nil && inputLen > maxSize {
		return errors.Wrapf(ErrUsortOutOfRange, "input_len=%d > usort_max_size=%d", inputLen, maxSize)
	}

	input, err := v.Segments.Memory.GetFeltRange(inputPtr, uint(inputLen))
	if err != nil {
		return err
	}

	positionsDict := make(map[felt.Felt][]uint64)
	var output []felt.Felt
	for i, val := range input {
		if _, seen := positionsDict[val]; !seen {
			output = append(output, val)
		}
		positionsDict[val] = append(positionsDict[val], uint64(i))
	}
	sort.Slice(output, func(i, j int) bool { return output[i].Cmp(output[j]) < 0 })

	multiplicities := make([]uint64, len(output))
	for i, val := range output {
		multiplicities[i] = uint64(len(positionsDict[val]))
	}

	outputBase := v.AddSegment()
	for i, val := range output {
		if err := v.Segments.Memory.Insert(outputBase.AddUint(uint(i)), memoryFelt(val)); err != nil {
			return err
		}
	}
	multBase := v.AddSegment()
	for i, m := range multiplicities {
		if err := v.Segments.Memory.Insert(multBase.AddUint(uint(i)), memoryFelt(felt.FromUint64(m))); err != nil {
			return err
		}
	}

	if err := ids.InsertRelocatable("output", outputBase, v); err != nil {
		return err
	}
	if err := ids.InsertRelocatable("multiplicities", multBase, v); err != nil {
		return err
	}
	if err := ids.InsertFelt("output_len", felt.FromUint64(uint64(len(output))), v); err != nil {
		return err
	}

	scopes.AssignOrUpdateVariable("positions_dict", positionsDict)
	return nil
}

// usortVerify implements spec.md §4.9 "usort_verify": pops value's
// appearance list out of positions_dict, reversed so the multiplicity
// loop pops indices in ascending order.
func usortVerify(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	value, err := ids.GetFelt("value", v)
	if err != nil {
		return err
	}
	positionsDict, err := scopes.GetFeltToUint64ListMap("positions_dict")
	if err != nil {
		return err
	}
	positions, ok := positionsDict[value]
	if !ok {
		return ErrUnexpectedPositionsDictFail
	}
	delete(positionsDict, value)

	reversed := make([]uint64, len(positions))
	for i, p := range positions {
		reversed[len(positions)-1-i] = p
	}
	scopes.AssignOrUpdateVariable("positions", &reversed)
	scopes.AssignOrUpdateVariable("last_pos", uint64(0))
	return nil
}

// usortVerifyMultiplicityBody implements spec.md §4.9
// "usort_verify_multiplicity_body".
func usortVerifyMultiplicityBody(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	positionsRef, err := scopes.GetUint64ListRef("positions")
	if err != nil {
		return err
	}
	if len(*positionsRef) == 0 {
		return ErrCouldntPopPositions
	}
	currentPos := (*positionsRef)[len(*positionsRef)-1]
	*positionsRef = (*positionsRef)[:len(*positionsRef)-1]

	lastPos, err := scopes.GetUint64("last_pos")
	if err != nil {
		return err
	}
	nextItemIndex := currentPos - lastPos
	scopes.AssignOrUpdateVariable("last_pos", currentPos+1)
	return ids.InsertFelt("next_item_index", felt.FromUint64(nextItemIndex), v)
}

// usortVerifyMultiplicityAssert implements spec.md §4.9
// "usort_verify_multiplicity_assert".
func usortVerifyMultiplicityAssert(scopes *types.ExecutionScopes) error {
	positionsRef, err := scopes.GetUint64ListRef("positions")
	if err != nil {
		return err
	}
	if len(*positionsRef) != 0 {
		return ErrPositionsLengthNotZero
	}
	return nil
}
