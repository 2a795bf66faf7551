package hints

import (
	"testing"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func TestKeccakWriteArgs(t *testing.T) {
	f := newFixture(t)
	f.setFelt("low", felt.FromUint64(0x0102030405060708))
	f.setFelt("high", felt.FromUint64(0x0a0b0c0d0e0f1011))
	inputs := f.vm.AddSegment()
	f.setPointer("inputs", inputs)
	require.NoError(t, keccakWriteArgs(f.ids(), f.vm))

	got, err := f.vm.Segments.Memory.GetFeltRange(inputs, 4)
	require.NoError(t, err)
	assert.True(t, got[0].Eq(felt.FromUint64(0x0102030405060708)))
	assert.True(t, got[1].IsZero())
	assert.True(t, got[2].Eq(felt.FromUint64(0x0a0b0c0d0e0f1011)))
	assert.True(t, got[3].IsZero())
}

func TestBlockPermutationV1RoundTrip(t *testing.T) {
	f := newFixture(t)
	var input [25]felt.Felt
	for i := range input {
		input[i] = felt.FromUint64(uint64(i + 1))
	}
	base := f.newArraySegment(input[:])
	ptr := base.AddUint(25)
	f.setPointer("keccak_ptr", ptr)

	constants := map[string]felt.Felt{"KECCAK_STATE_SIZE_FELTS": felt.FromUint64(25)}
	require.NoError(t, blockPermutationV1(f.ids(), f.vm, &constants))

	var want [25]uint64
	for i := range want {
		want[i] = uint64(i + 1)
	}
	keccakF1600(&want)
	got, err := f.vm.Segments.Memory.GetFeltRange(ptr, 25)
	require.NoError(t, err)
	for i := 0; i < 25; i++ {
		assert.True(t, got[i].Eq(felt.FromUint64(want[i])), "lane %d mismatch", i)
	}
}

func TestUnsafeKeccakMatchesLegacyKeccak256(t *testing.T) {
	f := newFixture(t)
	message := []byte("hello cairo")
	f.setFelt("length", felt.FromUint64(uint64(len(message))))
	data := f.vm.AddSegment()
	f.setPointer("data", data)
	require.NoError(t, f.vm.Segments.Memory.Insert(data, memoryFelt(felt.FromBeBytesSlice(message))))
	f.reserve("high", 1)
	f.reserve("low", 1)

	scopes := types.NewExecutionScopes()
	require.NoError(t, unsafeKeccak(f.ids(), scopes, f.vm))

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(message)
	digest := hasher.Sum(nil)
	wantHigh := felt.FromBeBytesSlice(digest[:16])
	wantLow := felt.FromBeBytesSlice(digest[16:32])

	assert.True(t, f.getFelt(t, "high").Eq(wantHigh))
	assert.True(t, f.getFelt(t, "low").Eq(wantLow))
}

func TestUnsafeKeccakExceedsMaxSize(t *testing.T) {
	f := newFixture(t)
	f.setFelt("length", felt.FromUint64(100))
	data := f.vm.AddSegment()
	f.setPointer("data", data)
	f.reserve("high", 1)
	f.reserve("low", 1)

	scopes := types.NewExecutionScopes()
	scopes.AssignOrUpdateVariable("__keccak_max_size", uint64(10))
	err := unsafeKeccak(f.ids(), scopes, f.vm)
	assert.ErrorIs(t, err, ErrKeccakMaxSize)
}

func TestReadKeccakStateRejectsOversizedN(t *testing.T) {
	f := newFixture(t)
	_, err := readKeccakState(f.ids(), "keccak_ptr_start", 26, f.vm)
	assert.ErrorIs(t, err, ErrInvalidKeccakStateSize)
}
