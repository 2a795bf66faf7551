package hints

import (
	"testing"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/types"
	"github.com/cairolang/hintvm/pkg/vm/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictNewReadWriteUpdateRoundTrip(t *testing.T) {
	f := newFixture(t)
	scopes := types.NewExecutionScopes()
	key := *memory.NewMaybeRelocatableFelt(felt.FromUint64(7))
	initialValue := *memory.NewMaybeRelocatableFelt(felt.FromUint64(100))
	scopes.AssignOrUpdateVariable("initial_dict", map[memory.MaybeRelocatable]memory.MaybeRelocatable{key: initialValue})

	require.NoError(t, dictNew(f.ids(), scopes, f.vm))
	dictPtr, err := f.vm.Segments.Memory.GetRelocatable(f.vm.RunContext.Ap)
	require.NoError(t, err)

	// dict_read
	fr := newFixture(t)
	fr.setPointer("dict_ptr", dictPtr)
	fr.setFelt("key", felt.FromUint64(7))
	fr.reserve("value", 1)
	require.NoError(t, dictRead(fr.ids(), scopes, fr.vm))
	assert.True(t, fr.getFelt(t, "value").Eq(felt.FromUint64(100)))

	// The tracker's current_ptr must have advanced by DICT_ACCESS_SIZE.
	// A tracker is a shared pointer: once fetched, its CurrentPtr()
	// reflects every later hint's advance without refetching.
	dm, ok := FetchDictManager(scopes)
	require.True(t, ok)
	tracker, err := dm.GetTracker(dictPtr.AddUint(3))
	require.NoError(t, err)

	// dict_write
	fw := newFixture(t)
	fw.setPointer("dict_ptr", tracker.CurrentPtr())
	fw.setFelt("key", felt.FromUint64(7))
	fw.setFelt("new_value", felt.FromUint64(200))
	fw.reserve("prev_value", 1)
	require.NoError(t, dictWrite(fw.ids(), scopes, fw.vm))
	assert.True(t, fw.getFelt(t, "prev_value").Eq(felt.FromUint64(100)))

	// dict_update with the correct prev_value succeeds.
	fu := newFixture(t)
	fu.setPointer("dict_ptr", tracker.CurrentPtr())
	fu.setFelt("key", felt.FromUint64(7))
	fu.setFelt("prev_value", felt.FromUint64(200))
	fu.setFelt("new_value", felt.FromUint64(300))
	require.NoError(t, dictUpdate(fu.ids(), scopes, fu.vm))

	// dict_update with a stale prev_value fails.
	fu2 := newFixture(t)
	fu2.setPointer("dict_ptr", tracker.CurrentPtr())
	fu2.setFelt("key", felt.FromUint64(7))
	fu2.setFelt("prev_value", felt.FromUint64(999))
	fu2.setFelt("new_value", felt.FromUint64(400))
	err = dictUpdate(fu2.ids(), scopes, fu2.vm)
	assert.ErrorIs(t, err, ErrWrongPrevValue)
}

func TestDictReadNoManagerInScope(t *testing.T) {
	f := newFixture(t)
	scopes := types.NewExecutionScopes()
	f.setPointer("dict_ptr", f.vm.AddSegment())
	f.setFelt("key", felt.FromUint64(1))
	f.reserve("value", 1)
	err := dictRead(f.ids(), scopes, f.vm)
	assert.ErrorIs(t, err, ErrNoDictManagerInScope)
}
