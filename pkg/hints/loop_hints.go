package hints

import (
	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/types"
	"github.com/cairolang/hintvm/pkg/vm"
)

func enterScopeWithN(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine, name string) error {
	f, err := ids.GetFelt(name, v)
	if err != nil {
		return err
	}
	n, err := f.ToU64()
	if err != nil {
		return err
	}
	scopes.EnterScope(map[string]any{"n": n})
	return nil
}

// memsetEnterScope implements spec.md §4.9 "memset_enter_scope".
func memsetEnterScope(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	return enterScopeWithN(ids, scopes, v, "n")
}

// memcpyEnterScope implements spec.md §4.9 "memcpy_enter_scope".
func memcpyEnterScope(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	return enterScopeWithN(ids, scopes, v, "len")
}

func continueLoop(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine, flagName string) error {
	n, err := scopes.GetUint64("n")
	if err != nil {
		return err
	}
	n--
	scopes.AssignOrUpdateVariable("n", n)
	result := felt.Zero()
	if n > 0 {
		result = felt.One()
	}
	return ids.InsertFelt(flagName, result, v)
}

// memsetContinueLoop implements spec.md §4.9 "memset_continue_loop".
func memsetContinueLoop(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	return continueLoop(ids, scopes, v, "continue_loop")
}

// memcpyContinueCopying implements spec.md §4.9 "memcpy_continue_copying".
func memcpyContinueCopying(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	return continueLoop(ids, scopes, v, "continue_copying")
}

// nondetNGreaterThan implements spec.md §4.9
// "nondet_n_greater_than_10"/"_than_2": values too large for a machine
// integer are treated as at least the threshold, which keeps the
// comparison correct without requiring unbounded arithmetic here.
func nondetNGreaterThan(ids *hint_utils.IdsManager, v *vm.VirtualMachine, threshold int) error {
	nFelt, err := ids.GetFelt("n", v)
	if err != nil {
		return err
	}
	result := felt.Zero()
	if n, convErr := nFelt.ToU64(); convErr != nil || n >= uint64(threshold) {
		result = felt.One()
	}
	return v.Segments.Memory.Insert(v.RunContext.Ap, memoryFelt(result))
}

// elementsOverX implements spec.md §4.9 "elements_over_x".
func elementsOverX(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	elements, err := ids.GetRelocatable("elements", v)
	if err != nil {
		return err
	}
	elementsEnd, err := ids.GetRelocatable("elements_end", v)
	if err != nil {
		return err
	}
	xFelt, err := ids.GetFelt("x", v)
	if err != nil {
		return err
	}
	x, err := xFelt.ToU64()
	if err != nil {
		return err
	}

	result := felt.Zero()
	if n, subErr := elementsEnd.Sub(elements); subErr == nil && uint64(n) >= x {
		result = felt.One()
	}
	return v.Segments.Memory.Insert(v.RunContext.Ap, memoryFelt(result))
}
