package hints

import (
	"testing"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertOnCurve(t *testing.T, x, y felt.Felt) {
	t.Helper()
	want, err := curveY(x)
	require.NoError(t, err)
	assert.True(t, y.Eq(want) || y.Eq(want.Neg()))
}

func TestRandomEcPointLandsOnCurve(t *testing.T) {
	f := newFixture(t)
	f.setFelts("p", []felt.Felt{felt.FromUint64(1), felt.FromUint64(2)})
	f.setFelt("m", felt.FromUint64(3))
	f.setFelts("q", []felt.Felt{felt.FromUint64(4), felt.FromUint64(5)})
	f.reserve("s", 2)
	require.NoError(t, randomEcPoint(f.ids(), f.vm))
	got := f.getFelts(t, "s", 2)
	assertOnCurve(t, got[0], got[1])
}

func TestRandomEcPointSeededLandsOnCurve(t *testing.T) {
	f := newFixture(t)
	seed := f.newArraySegment([]felt.Felt{felt.FromUint64(11), felt.FromUint64(22)})
	f.setPointer("seed", seed)
	f.setFelt("len", felt.FromUint64(2))
	f.reserve("p", 2)
	require.NoError(t, randomEcPointSeeded(f.ids(), f.vm))
	got := f.getFelts(t, "p", 2)
	assertOnCurve(t, got[0], got[1])
}

func TestChainedEcOpRandomEcPointRejectsZeroLen(t *testing.T) {
	f := newFixture(t)
	f.setFelt("len", felt.FromUint64(0))
	f.setFelts("p", []felt.Felt{felt.FromUint64(1), felt.FromUint64(2)})
	err := chainedEcOpRandomEcPoint(f.ids(), f.vm)
	assert.ErrorIs(t, err, ErrInvalidLenValue)
}

func TestChainedEcOpRandomEcPointLandsOnCurve(t *testing.T) {
	f := newFixture(t)
	f.setFelt("len", felt.FromUint64(1))
	f.setFelts("p", []felt.Felt{felt.FromUint64(7), felt.FromUint64(8)})
	mSeg := f.newArraySegment([]felt.Felt{felt.FromUint64(9)})
	f.setPointer("m", mSeg)
	qSeg := f.newArraySegment([]felt.Felt{felt.FromUint64(1), felt.FromUint64(2)})
	f.setPointer("q", qSeg)
	f.reserve("s", 2)
	require.NoError(t, chainedEcOpRandomEcPoint(f.ids(), f.vm))
	got := f.getFelts(t, "s", 2)
	assertOnCurve(t, got[0], got[1])
}
