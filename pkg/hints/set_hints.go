package hints

import (
	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/cairolang/hintvm/pkg/vm/memory"
	"github.com/pkg/errors"
)

// ErrInvalidSetRange is spec.md §7 "invalid_set_range".
var ErrInvalidSetRange = errors.New("invalid_set_range")

func rangesEqual(a, b []memory.MaybeRelocatable) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].IsEqual(&b[i]) {
			return false
		}
	}
	return true
}

// setAdd implements spec.md §4.9 "set_add": a linear, order-preserving
// scan of [set_ptr, set_end_ptr) in elm_size steps looking for a window
// equal to elm_ptr's.
func setAdd(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	setPtr, err := ids.GetRelocatable("set_ptr", v)
	if err != nil {
		return err
	}
	setEndPtr, err := ids.GetRelocatable("set_end_ptr", v)
	if err != nil {
		return err
	}
	elmPtr, err := ids.GetRelocatable("elm_ptr", v)
	if err != nil {
		return err
	}
	elmSizeFelt, err := ids.GetFelt("elm_size", v)
	if err != nil {
		return err
	}
	elmSize, err := elmSizeFelt.ToU64()
	if err != nil || elmSize == 0 {
		return errors.Wrapf(ErrAssertionFailed, "elm_size must be a positive integer")
	}

	nCells, err := setEndPtr.Sub(setPtr)
	if err != nil {
		return errors.Wrapf(ErrInvalidSetRange, "set_ptr must not exceed set_end_ptr")
	}

	elmWindow, err := v.Segments.Memory.GetRange(elmPtr, uint(elmSize))
	if err != nil {
		return err
	}

	found := false
	index := uint64(0)
	for offset := uint64(0); offset+elmSize <= uint64(nCells); offset += elmSize {
		window, err := v.Segments.Memory.GetRange(setPtr.AddUint(uint(offset)), uint(elmSize))
		if err != nil {
			return err
		}
		if rangesEqual(window, elmWindow) {
			index = offset / elmSize
			found = true
			break
		}
	}

	isElmInSet := felt.Zero()
	if found {
		isElmInSet = felt.One()
		if err := ids.InsertFelt("index", felt.FromUint64(index), v); err != nil {
			return err
		}
	}
	return ids.InsertFelt("is_elm_in_set", isElmInSet, v)
}
