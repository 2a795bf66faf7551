package hints

import (
	"math/big"
	"math/bits"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/types"
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// ErrInvalidWordSize is spec.md §7 "invalid_word_size".
var ErrInvalidWordSize = errors.New("invalid_word_size")

// ErrKeccakMaxSize is spec.md §7 "keccak_max_size".
var ErrKeccakMaxSize = errors.New("keccak_max_size")

// ErrInvalidBlockSize is spec.md §7 "invalid_block_size".
var ErrInvalidBlockSize = errors.New("invalid_block_size")

// ErrInvalidKeccakStateSize is spec.md §7 "invalid_keccak_state_size".
var ErrInvalidKeccakStateSize = errors.New("invalid_keccak_state_size")

// keccakRC are the 24 round constants of Keccak-f[1600].
var keccakRC = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// keccakPiLn and keccakRotc are the standard rho/pi step lane-index and
// rotation-count tables.
var keccakPiLn = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

var keccakRotc = [24]int{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

// keccakF1600 implements the 24-round Keccak-f[1600] permutation over a
// 25-word state (spec.md §4.8 "runs the Keccak-f[1600] permutation with
// 24 rounds").
func keccakF1600(state *[25]uint64) {
	var bc [5]uint64
	for round := 0; round < 24; round++ {
		// Theta
		for i := 0; i < 5; i++ {
			bc[i] = state[i] ^ state[i+5] ^ state[i+10] ^ state[i+15] ^ state[i+20]
		}
		for i := 0; i < 5; i++ {
			t := bc[(i+4)%5] ^ bits.RotateLeft64(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				state[j+i] ^= t
			}
		}

		// Rho and Pi
		t := state[1]
		for i := 0; i < 24; i++ {
			j := keccakPiLn[i]
			bc[0] = state[j]
			state[j] = bits.RotateLeft64(t, keccakRotc[i])
			t = bc[0]
		}

		// Chi
		for j := 0; j < 25; j += 5 {
			for i := 0; i < 5; i++ {
				bc[i] = state[j+i]
			}
			for i := 0; i < 5; i++ {
				state[j+i] ^= (^bc[(i+1)%5]) & bc[(i+2)%5]
			}
		}

		// Iota
		state[0] ^= keccakRC[round]
	}
}

// keccakWriteArgs implements spec.md §4.8 "keccak_write_args": two
// 128-bit halves packed into four 64-bit little-endian words.
func keccakWriteArgs(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	low, err := ids.GetFelt("low", v)
	if err != nil {
		return err
	}
	high, err := ids.GetFelt("high", v)
	if err != nil {
		return err
	}
	inputs, err := ids.GetAddress("inputs", v)
	if err != nil {
		return err
	}
	split128 := func(f felt.Felt) (uint64, uint64) {
		b := f.ToBigInt()
		mask := new(big.Int).SetUint64(^uint64(0))
		lo := new(big.Int).And(b, mask).Uint64()
		hi := new(big.Int).Rsh(b, 64).Uint64()
		return lo, hi
	}
	lowLo, lowHi := split128(low)
	highLo, highHi := split128(high)
	words := []uint64{lowLo, lowHi, highLo, highHi}
	for i, w := range words {
		if err := v.Segments.Memory.Insert(inputs.AddUint(uint(i)), memoryFelt(felt.FromUint64(w))); err != nil {
			return err
		}
	}
	return nil
}

func readKeccakState(ids *hint_utils.IdsManager, base string, n uint, v *vm.VirtualMachine) ([25]uint64, error) {
	var state [25]uint64
	if n == 0 || n > 25 {
		return state, errors.Wrapf(ErrInvalidKeccakStateSize, "%d", n)
	}
	addr, err := ids.GetAddress(base, v)
	if err != nil {
		return state, err
	}
	felts, err := v.Segments.Memory.GetFeltRange(addr, n)
	if err != nil {
		return state, err
	}
	for i, f := range felts {
		u, err := f.ToU64()
		if err != nil {
			return state, err
		}
		state[i] = u
	}
	return state, nil
}

func keccakStateSize(constants *map[string]felt.Felt) (uint, error) {
	c, err := lookupConstant(constants, "KECCAK_STATE_SIZE_FELTS")
	if err != nil {
		return 0, err
	}
	n, err := c.ToU64()
	if err != nil || n >= 100 {
		return 0, errors.Wrapf(ErrInvalidKeccakStateSize, "%v", n)
	}
	return uint(n), nil
}

// blockPermutationV1 implements spec.md §4.8 "block_permutation_*" (v1
// addressing: state precedes keccak_ptr).
func blockPermutationV1(ids *hint_utils.IdsManager, v *vm.VirtualMachine, constants *map[string]felt.Felt) error {
	n, err := keccakStateSize(constants)
	if err != nil {
		return err
	}
	ptr, err := ids.GetRelocatable("keccak_ptr", v)
	if err != nil {
		return err
	}
	start, err := ptr.SubUint(n)
	if err != nil {
		return err
	}
	felts, err := v.Segments.Memory.GetFeltRange(start, n)
	if err != nil {
		return err
	}
	var state [25]uint64
	for i, f := range felts {
		u, err := f.ToU64()
		if err != nil {
			return err
		}
		state[i] = u
	}
	keccakF1600(&state)
	for i := uint(0); i < n; i++ {
		if err := v.Segments.Memory.Insert(ptr.AddUint(i), memoryFelt(felt.FromUint64(state[i]))); err != nil {
			return err
		}
	}
	return nil
}

// blockPermutationV2 is the v2 addressing variant: input read from
// keccak_ptr_start, output written to a distinct output pointer.
func blockPermutationV2(ids *hint_utils.IdsManager, v *vm.VirtualMachine, constants *map[string]felt.Felt) error {
	n, err := keccakStateSize(constants)
	if err != nil {
		return err
	}
	state, err := readKeccakState(ids, "keccak_ptr_start", n, v)
	if err != nil {
		return err
	}
	keccakF1600(&state)
	return writeU32Or64Output(ids, "output", state[:n], v)
}

func writeU32Or64Output(ids *hint_utils.IdsManager, name string, words []uint64, v *vm.VirtualMachine) error {
	base, err := ids.GetAddress(name, v)
	if err != nil {
		return err
	}
	for i, w := range words {
		if err := v.Segments.Memory.Insert(base.AddUint(uint(i)), memoryFelt(felt.FromUint64(w))); err != nil {
			return err
		}
	}
	return nil
}

func cairoKeccakFinalize(ids *hint_utils.IdsManager, v *vm.VirtualMachine, constants *map[string]felt.Felt, blockSizeLimit uint64) error {
	stateSize, err := keccakStateSize(constants)
	if err != nil {
		return err
	}
	blockSizeConst, err := lookupConstant(constants, "BLOCK_SIZE")
	if err != nil {
		return err
	}
	blockSize, err := blockSizeConst.ToU64()
	if err != nil || blockSize >= blockSizeLimit {
		return errors.Wrapf(ErrInvalidBlockSize, "%v", blockSize)
	}
	var zero [25]uint64
	padded := zero
	keccakF1600(&padded)
	words := make([]uint64, 0, 2*uint64(stateSize)*blockSize)
	for b := uint64(0); b < blockSize; b++ {
		words = append(words, zero[:stateSize]...)
		words = append(words, padded[:stateSize]...)
	}
	endPtr, err := ids.GetRelocatable("keccak_ptr_end", v)
	if err != nil {
		return err
	}
	for i, w := range words {
		if err := v.Segments.Memory.Insert(endPtr.AddUint(uint(i)), memoryFelt(felt.FromUint64(w))); err != nil {
			return err
		}
	}
	return nil
}

// cairoKeccakFinalizeV1 implements spec.md §4.8 "cairo_keccak_finalize"
// with block_size < 10.
func cairoKeccakFinalizeV1(ids *hint_utils.IdsManager, v *vm.VirtualMachine, constants *map[string]felt.Felt) error {
	return cairoKeccakFinalize(ids, v, constants, 10)
}

// cairoKeccakFinalizeV2 is the block_size < 1000 variant.
func cairoKeccakFinalizeV2(ids *hint_utils.IdsManager, v *vm.VirtualMachine, constants *map[string]felt.Felt) error {
	return cairoKeccakFinalize(ids, v, constants, 1000)
}

// unsafeKeccak implements spec.md §4.8 "unsafe_keccak".
func unsafeKeccak(ids *hint_utils.IdsManager, scopes *types.ExecutionScopes, v *vm.VirtualMachine) error {
	lengthFelt, err := ids.GetFelt("length", v)
	if err != nil {
		return err
	}
	length, err := lengthFelt.ToU64()
	if err != nil {
		return err
	}
	data, err := ids.GetRelocatable("data", v)
	if err != nil {
		return err
	}
	if maxAny, ok := scopes.Any("__keccak_max_size"); ok {
		if max, ok := maxAny.(uint64); ok && length > max {
			return errors.Wrapf(ErrKeccakMaxSize, "length=%d > max=%d", length, max)
		}
	}

	keccakInput := make([]byte, 0, length)
	for byteIdx, wordIdx := uint64(0), uint(0); byteIdx < length; byteIdx, wordIdx = byteIdx+16, wordIdx+1 {
		word, err := v.Segments.Memory.GetFelt(data.AddUint(wordIdx))
		if err != nil {
			return err
		}
		nBytes := int(length - byteIdx)
		if nBytes > 16 {
			nBytes = 16
		}
		if int(word.Bits()) > 8*nBytes {
			return errors.Wrapf(ErrInvalidWordSize, "%s", word.ToHexString())
		}
		wordBytes := word.ToBeBytes()
		keccakInput = append(keccakInput, wordBytes[32-nBytes:]...)
	}

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(keccakInput)
	digest := hasher.Sum(nil)

	high := felt.FromBeBytesSlice(digest[:16])
	low := felt.FromBeBytesSlice(digest[16:32])
	if err := ids.InsertFelt("high", high, v); err != nil {
		return err
	}
	return ids.InsertFelt("low", low, v)
}

// unsafeKeccakFinalize implements spec.md §4.8 "unsafe_keccak_finalize".
func unsafeKeccakFinalize(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	startPtr, err := ids.GetStructFieldRelocatable("keccak_state", 0, v)
	if err != nil {
		return err
	}
	endPtr, err := ids.GetStructFieldRelocatable("keccak_state", 1, v)
	if err != nil {
		return err
	}
	nElems, err := endPtr.Sub(startPtr)
	if err != nil {
		return err
	}
	words, err := v.Segments.Memory.GetFeltRange(startPtr, nElems)
	if err != nil {
		return err
	}
	keccakInput := make([]byte, 0, nElems*16)
	for _, w := range words {
		b := w.ToBeBytes()
		keccakInput = append(keccakInput, b[16:]...)
	}
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(keccakInput)
	digest := hasher.Sum(nil)
	high := felt.FromBeBytesSlice(digest[:16])
	low := felt.FromBeBytesSlice(digest[16:32])
	if err := ids.InsertFelt("high", high, v); err != nil {
		return err
	}
	return ids.InsertFelt("low", low, v)
}
