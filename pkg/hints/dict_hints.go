package hints

import (
	"sort"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/dict_manager"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/types"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/cairolang/hintvm/pkg/vm/memory"
	"github.com/pkg/errors"
)

// ErrNoDictManagerInScope is returned by the dict hints that require a
// dict_new/default_dict_new to have run earlier in the program.
var ErrNoDictManagerInScope = errors.New("no_dict_manager_in_scope")

// ErrWrongPrevValue is returned by dict_update when the caller's claimed
// previous value disagrees with what the tracker actually holds
// (spec.md §4.3 "dict_update").
var ErrWrongPrevValue = errors.New("wrong_prev_value")

// FetchDictManager returns the program-wide *dict_manager.DictManager,
// stored in the current (top) execution-scope frame under a reserved key;
// a nested frame does not see a manager stored in an enclosing one (spec.md §4.3
// "one DictManager per program run").
func FetchDictManager(scopes *types.ExecutionScopes) (*dict_manager.DictManager, bool) {
	raw, ok := scopes.Any("dict_manager")
	if !ok {
		return nil, false
	}
	val, ok := raw.(*dict_manager.DictManager)
	return val, ok
}

func fetchOrCreateDictManager(scopes *types.ExecutionScopes) *dict_manager.DictManager {
	dm, ok := FetchDictManager(scopes)
	if ok {
		return dm
	}
	dm = dict_manager.NewDictManager()
	scopes.AssignOrUpdateVariable("dict_manager", dm)
	return dm
}

// dictNew implements spec.md §4.3 "dict_new": allocates a segment for an
// initial_dict taken from the execution scope and writes its base to ap.
func dictNew(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	initial, err := scopes.Get("initial_dict")
	if err != nil {
		return err
	}
	initialDict, ok := initial.(map[memory.MaybeRelocatable]memory.MaybeRelocatable)
	if !ok {
		return errors.New("initial_dict is not a dictionary")
	}
	dm := fetchOrCreateDictManager(scopes)
	base, err := dm.NewDictionary(initialDict, v)
	if err != nil {
		return err
	}
	scopes.Delete("initial_dict")
	return v.Segments.Memory.Insert(v.RunContext.Ap, memory.NewMaybeRelocatableRelocatable(base))
}

// defaultDictNew implements spec.md §4.3 "default_dict_new".
func defaultDictNew(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	defaultValue, err := ids.Get("default_value", v)
	if err != nil {
		return err
	}
	dm := fetchOrCreateDictManager(scopes)
	base, err := dm.NewDefaultDictionary(*defaultValue, nil, v)
	if err != nil {
		return err
	}
	return v.Segments.Memory.Insert(v.RunContext.Ap, memory.NewMaybeRelocatableRelocatable(base))
}

// dictRead implements spec.md §4.3 "dict_read": ids.value = tracker[key],
// then advances current_ptr by DICT_ACCESS_SIZE.
func dictRead(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	dm, ok := FetchDictManager(scopes)
	if !ok {
		return ErrNoDictManagerInScope
	}
	dictPtr, err := ids.GetRelocatable("dict_ptr", v)
	if err != nil {
		return err
	}
	key, err := ids.Get("key", v)
	if err != nil {
		return err
	}
	tracker, err := dm.GetTracker(dictPtr)
	if err != nil {
		return err
	}
	val, err := tracker.GetValue(*key)
	if err != nil {
		return err
	}
	tracker.AdvanceCurrentPtr(dict_manager.DictAccessSize)
	return ids.Insert("value", *val, v)
}

// dictWrite implements spec.md §4.3 "dict_write": records the old value
// at ids.prev_value, stores new_value, advances current_ptr.
func dictWrite(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	dm, ok := FetchDictManager(scopes)
	if !ok {
		return ErrNoDictManagerInScope
	}
	dictPtr, err := ids.GetRelocatable("dict_ptr", v)
	if err != nil {
		return err
	}
	key, err := ids.Get("key", v)
	if err != nil {
		return err
	}
	newValue, err := ids.Get("new_value", v)
	if err != nil {
		return err
	}
	tracker, err := dm.GetTracker(dictPtr)
	if err != nil {
		return err
	}
	prevVal, err := tracker.GetValue(*key)
	if err != nil {
		return err
	}
	if err := ids.Insert("prev_value", *prevVal, v); err != nil {
		return err
	}
	tracker.InsertValue(*key, *newValue)
	tracker.AdvanceCurrentPtr(dict_manager.DictAccessSize)
	return nil
}

// dictUpdate implements spec.md §4.3 "dict_update": asserts the caller's
// claimed prev_value matches the tracker before applying new_value.
func dictUpdate(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	dm, ok := FetchDictManager(scopes)
	if !ok {
		return ErrNoDictManagerInScope
	}
	dictPtr, err := ids.GetRelocatable("dict_ptr", v)
	if err != nil {
		return err
	}
	key, err := ids.Get("key", v)
	if err != nil {
		return err
	}
	newValue, err := ids.Get("new_value", v)
	if err != nil {
		return err
	}
	prevValue, err := ids.Get("prev_value", v)
	if err != nil {
		return err
	}
	tracker, err := dm.GetTracker(dictPtr)
	if err != nil {
		return err
	}
	currentValue, err := tracker.GetValue(*key)
	if err != nil {
		return err
	}
	if !prevValue.IsEqual(currentValue) {
		return errors.Wrapf(ErrWrongPrevValue, "got %v, expected %v", *currentValue, *prevValue)
	}
	tracker.InsertValue(*key, *newValue)
	tracker.AdvanceCurrentPtr(dict_manager.DictAccessSize)
	return nil
}

// squashDict implements the dict_squash preparation step (spec.md §4.3
// "dict_squash preparation"): it collects the distinct keys accessed
// across a dict's access-record segment, asserts their count matches
// ids.n_unique_keys, flags whether the largest key clears the
// range-check bound, and hands the first (smallest) key back to the
// caller's squashing loop together with the remaining keys, sorted
// descending, stashed in the execution scope.
func squashDict(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	accessesPtr, err := ids.GetRelocatable("dict_accesses", v)
	if err != nil {
		return err
	}
	ptrDiff, err := ids.GetFelt("ptr_diff", v)
	if err != nil {
		return err
	}
	ptrDiffU64, err := ptrDiff.ToU64()
	if err != nil {
		return err
	}
	if ptrDiffU64%dict_manager.DictAccessSize != 0 {
		return errors.New("accesses array size must be divisible by DictAccess.SIZE")
	}
	nAccesses, err := ids.GetFelt("n_accesses", v)
	if err != nil {
		return err
	}
	nAccessesU64, err := nAccesses.ToU64()
	if err != nil {
		return err
	}

	seen := make(map[felt.Felt]bool)
	var keys []felt.Felt
	for i := uint64(0); i < nAccessesU64; i++ {
		key, err := v.Segments.Memory.GetFelt(accessesPtr.AddUint(uint(i) * dict_manager.DictAccessSize))
		if err != nil {
			return err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	nUniqueKeys, err := ids.GetFelt("n_unique_keys", v)
	if err != nil {
		return err
	}
	if !felt.FromUint64(uint64(len(keys))).Eq(nUniqueKeys) {
		return errors.New("number of unique keys does not match n_unique_keys")
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Cmp(keys[j]) > 0 })

	bigKeys := felt.Zero()
	if len(keys) > 0 && v.RangeCheck.Bound != nil && keys[0].Cmp(*v.RangeCheck.Bound) >= 0 {
		bigKeys = felt.One()
	}
	if err := ids.InsertFelt("big_keys", bigKeys, v); err != nil {
		return err
	}

	firstKey := felt.Zero()
	remaining := keys
	if len(keys) > 0 {
		firstKey = keys[len(keys)-1]
		remaining = keys[:len(keys)-1]
	}
	if err := ids.InsertFelt("first_key", firstKey, v); err != nil {
		return err
	}
	scopes.AssignOrUpdateVariable("__squash_dict_keys", remaining)
	return nil
}
