package hints

import (
	"math/bits"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/vm"
)

// sha256Iv are the standard SHA-256 initial hash values (spec.md §4.8
// "SHA-256 compression (constant IV or caller-supplied state)").
var sha256Iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// computeMessageSchedule expands one 16-word (64-byte) chunk into the
// 64-word SHA-256 message schedule (spec.md §4.8 "compute_message_schedule").
func computeMessageSchedule(chunk []uint32) [64]uint32 {
	var w [64]uint32
	copy(w[:16], chunk)
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}
	return w
}

// sha2CompressFunction runs one SHA-256 compression round over state
// (IV or a caller-supplied chained state) and the expanded schedule
// (spec.md §4.8 "sha2_compress_function").
func sha2CompressFunction(state [8]uint32, w [64]uint32) [8]uint32 {
	a, b, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]
	for i := 0; i < 64; i++ {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		temp1 := h + s1 + ch + sha256K[i] + w[i]
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		temp2 := s0 + maj

		h = g
		g = f
		f = e
		e = d + temp1
		d = c
		c = b
		b = a
		a = temp1 + temp2
	}
	return [8]uint32{
		state[0] + a, state[1] + b, state[2] + c, state[3] + d,
		state[4] + e, state[5] + f, state[6] + g, state[7] + h,
	}
}

// sha256Input implements spec.md §4.8 "sha256_input".
func sha256Input(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	nBytes, err := ids.GetFelt("n_bytes", v)
	if err != nil {
		return err
	}
	result := felt.Zero()
	if n, err := nBytes.ToU64(); err != nil || n >= 4 {
		result = felt.One()
	}
	return ids.InsertFelt("full_word", result, v)
}

func feltsToU32(fs []felt.Felt) ([]uint32, error) {
	out := make([]uint32, len(fs))
	for i, f := range fs {
		u, err := f.ToU64()
		if err != nil {
			return nil, err
		}
		out[i] = uint32(u)
	}
	return out, nil
}

func sha256ChunkSize(constants *map[string]felt.Felt) (uint, error) {
	c, err := lookupConstant(constants, "SHA256_INPUT_CHUNK_SIZE_FELTS")
	if err != nil {
		return 0, err
	}
	n, err := c.ToU64()
	if err != nil || n >= 100 {
		return 0, ErrAssertionFailed
	}
	return uint(n), nil
}

// sha256MainConstantInputLength implements spec.md §4.8's main SHA-256
// hint using the constant IV as the initial state.
func sha256MainConstantInputLength(ids *hint_utils.IdsManager, v *vm.VirtualMachine, constants *map[string]felt.Felt) error {
	chunkSize, err := sha256ChunkSize(constants)
	if err != nil {
		return err
	}
	start, err := ids.GetRelocatable("sha256_start", v)
	if err != nil {
		return err
	}
	chunkFelts, err := v.Segments.Memory.GetFeltRange(start, chunkSize)
	if err != nil {
		return err
	}
	chunk, err := feltsToU32(chunkFelts)
	if err != nil {
		return err
	}
	w := computeMessageSchedule(chunk)
	out := sha2CompressFunction(sha256Iv, w)
	return writeU32Output(ids, "output", out[:], v)
}

// sha256MainArbitraryInputLength implements the state-chaining variant:
// the initial state is read from ids.state rather than the constant IV.
func sha256MainArbitraryInputLength(ids *hint_utils.IdsManager, v *vm.VirtualMachine, constants *map[string]felt.Felt) error {
	chunkSize, err := sha256ChunkSize(constants)
	if err != nil {
		return err
	}
	stateSizeConst, err := lookupConstant(constants, "SHA256_STATE_SIZE_FELTS")
	if err != nil {
		return err
	}
	stateSize, err := stateSizeConst.ToU64()
	if err != nil || stateSize >= 100 {
		return ErrAssertionFailed
	}
	start, err := ids.GetRelocatable("sha256_start", v)
	if err != nil {
		return err
	}
	chunkFelts, err := v.Segments.Memory.GetFeltRange(start, chunkSize)
	if err != nil {
		return err
	}
	chunk, err := feltsToU32(chunkFelts)
	if err != nil {
		return err
	}
	statePtr, err := ids.GetRelocatable("state", v)
	if err != nil {
		return err
	}
	stateFelts, err := v.Segments.Memory.GetFeltRange(statePtr, uint(stateSize))
	if err != nil {
		return err
	}
	stateWords, err := feltsToU32(stateFelts)
	if err != nil {
		return err
	}
	var state [8]uint32
	copy(state[:], stateWords)

	w := computeMessageSchedule(chunk)
	out := sha2CompressFunction(state, w)
	return writeU32Output(ids, "output", out[:], v)
}

func writeU32Output(ids *hint_utils.IdsManager, name string, words []uint32, v *vm.VirtualMachine) error {
	base, err := ids.GetAddress(name, v)
	if err != nil {
		return err
	}
	for i, word := range words {
		if err := v.Segments.Memory.Insert(base.AddUint(uint(i)), memoryFelt(felt.FromUint64(uint64(word)))); err != nil {
			return err
		}
	}
	return nil
}
