package hints

import (
	"testing"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemsetLoopScaffolding(t *testing.T) {
	f := newFixture(t)
	f.setFelt("n", felt.FromUint64(2))
	scopes := types.NewExecutionScopes()
	require.NoError(t, memsetEnterScope(f.ids(), scopes, f.vm))

	n, err := scopes.GetUint64("n")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)

	f2 := newFixture(t)
	f2.reserve("continue_loop", 1)
	require.NoError(t, memsetContinueLoop(f2.ids(), scopes, f2.vm))
	assert.True(t, f2.getFelt(t, "continue_loop").Eq(felt.One()))

	f3 := newFixture(t)
	f3.reserve("continue_loop", 1)
	require.NoError(t, memsetContinueLoop(f3.ids(), scopes, f3.vm))
	assert.True(t, f3.getFelt(t, "continue_loop").IsZero())
}

func TestNondetNGreaterThan(t *testing.T) {
	f := newFixture(t)
	f.setFelt("n", felt.FromUint64(15))
	require.NoError(t, nondetNGreaterThan(f.ids(), f.vm, 10))
	got, err := f.vm.Segments.Memory.GetFelt(f.vm.RunContext.Ap)
	require.NoError(t, err)
	assert.True(t, got.Eq(felt.One()))

	f2 := newFixture(t)
	f2.setFelt("n", felt.FromUint64(5))
	require.NoError(t, nondetNGreaterThan(f2.ids(), f2.vm, 10))
	got2, err := f2.vm.Segments.Memory.GetFelt(f2.vm.RunContext.Ap)
	require.NoError(t, err)
	assert.True(t, got2.IsZero())
}

func TestElementsOverX(t *testing.T) {
	f := newFixture(t)
	elements := f.newArraySegment(make([]felt.Felt, 5))
	f.setPointer("elements", elements)
	f.setPointer("elements_end", elements.AddUint(5))
	f.setFelt("x", felt.FromUint64(5))
	require.NoError(t, elementsOverX(f.ids(), f.vm))
	got, err := f.vm.Segments.Memory.GetFelt(f.vm.RunContext.Ap)
	require.NoError(t, err)
	assert.True(t, got.Eq(felt.One()))
}
