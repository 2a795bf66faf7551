package hints

import (
	"math/bits"

	"github.com/cairolang/hintvm/pkg/felt"
	"github.com/cairolang/hintvm/pkg/hints/hint_utils"
	"github.com/cairolang/hintvm/pkg/vm"
)

// blake2sIV are the standard BLAKE2s initialization constants.
var blake2sIV = [8]uint32{
	0x6A09E667, 0xBB67AE85, 0x3C6EF372, 0xA54FF53A,
	0x510E527F, 0x9B05688C, 0x1F83D9AB, 0x5BE0CD19,
}

// blake2sSigma is the standard message-schedule permutation table, one
// row per round (spec.md §4.8 "the standard Blake2 SIGMA permutation
// table").
var blake2sSigma = [10][16]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

func blake2sG(v *[16]uint32, a, b, c, d int, x, y uint32) {
	v[a] = v[a] + v[b] + x
	v[d] = bits.RotateLeft32(v[d]^v[a], -16)
	v[c] = v[c] + v[d]
	v[b] = bits.RotateLeft32(v[b]^v[c], -12)
	v[a] = v[a] + v[b] + y
	v[d] = bits.RotateLeft32(v[d]^v[a], -8)
	v[c] = v[c] + v[d]
	v[b] = bits.RotateLeft32(v[b]^v[c], -7)
}

// blake2sCompressWords implements spec.md §4.8 "Blake2s compress": 10
// rounds of 8 mixing invocations each (4 columns then 4 diagonals),
// returning h_i ^ state_i ^ state_{i+8}.
func blake2sCompressWords(h [8]uint32, m [16]uint32, t0, t1, f0, f1 uint32) [8]uint32 {
	var v [16]uint32
	copy(v[:8], h[:])
	copy(v[8:], blake2sIV[:])
	v[12] ^= t0
	v[13] ^= t1
	v[14] ^= f0
	v[15] ^= f1

	for round := 0; round < 10; round++ {
		s := blake2sSigma[round]
		blake2sG(&v, 0, 4, 8, 12, m[s[0]], m[s[1]])
		blake2sG(&v, 1, 5, 9, 13, m[s[2]], m[s[3]])
		blake2sG(&v, 2, 6, 10, 14, m[s[4]], m[s[5]])
		blake2sG(&v, 3, 7, 11, 15, m[s[6]], m[s[7]])
		blake2sG(&v, 0, 5, 10, 15, m[s[8]], m[s[9]])
		blake2sG(&v, 1, 6, 11, 12, m[s[10]], m[s[11]])
		blake2sG(&v, 2, 7, 8, 13, m[s[12]], m[s[13]])
		blake2sG(&v, 3, 4, 9, 14, m[s[14]], m[s[15]])
	}

	var out [8]uint32
	for i := 0; i < 8; i++ {
		out[i] = h[i] ^ v[i] ^ v[i+8]
	}
	return out
}

const blake2sCounterOffset = 8

// blake2sCompress implements the blake2s_compress hint: reads the 8-word
// state and 16-word message off ids.blake2s_ptr, the tag words off
// ids.{t0,t1,f0,f1}, and writes the 8-word result to ids.output
// (spec.md §4.8).
func blake2sCompress(ids *hint_utils.IdsManager, v *vm.VirtualMachine) error {
	base, err := ids.GetAddress("blake2s_ptr", v)
	if err != nil {
		return err
	}
	hFelts, err := v.Segments.Memory.GetFeltRange(base, 8)
	if err != nil {
		return err
	}
	mFelts, err := v.Segments.Memory.GetFeltRange(base.AddUint(blake2sCounterOffset), 16)
	if err != nil {
		return err
	}
	var h [8]uint32
	var m [16]uint32
	for i, f := range hFelts {
		u, err := f.ToU64()
		if err != nil {
			return err
		}
		h[i] = uint32(u)
	}
	for i, f := range mFelts {
		u, err := f.ToU64()
		if err != nil {
			return err
		}
		m[i] = uint32(u)
	}
	toU32 := func(name string) (uint32, error) {
		f, err := ids.GetFelt(name, v)
		if err != nil {
			return 0, err
		}
		u, err := f.ToU64()
		return uint32(u), err
	}
	t0, err := toU32("t0")
	if err != nil {
		return err
	}
	t1, err := toU32("t1")
	if err != nil {
		return err
	}
	f0, err := toU32("f0")
	if err != nil {
		return err
	}
	f1, err := toU32("f1")
	if err != nil {
		return err
	}

	out := blake2sCompressWords(h, m, t0, t1, f0, f1)
	outPtr, err := ids.GetRelocatable("output", v)
	if err != nil {
		return err
	}
	for i, word := range out {
		if err := v.Segments.Memory.Insert(outPtr.AddUint(uint(i)), memoryFelt(felt.FromUint64(uint64(word)))); err != nil {
			return err
		}
	}
	return nil
}
