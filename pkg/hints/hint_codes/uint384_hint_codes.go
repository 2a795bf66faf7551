package hint_codes

const UINT384_UNSIGNED_DIV_REM = `def split(num: int, num_bits_shift: int, length: int):
    a = []
    for _ in range(length):
        a.append(num & ((1 << num_bits_shift) - 1))
        num = num >> num_bits_shift
    return tuple(a)

def pack(z, num_bits_shift: int):
    limbs = (z.d0, z.d1, z.d2)
    return sum(limb << (num_bits_shift * i) for i, limb in enumerate(limbs))

a = pack(ids.a, num_bits_shift=128)
div = pack(ids.div, num_bits_shift=128)
quotient, remainder = divmod(a, div)

quotient_split = split(quotient, num_bits_shift=128, length=3)
ids.quotient.d0 = quotient_split[0]
ids.quotient.d1 = quotient_split[1]
ids.quotient.d2 = quotient_split[2]

remainder_split = split(remainder, num_bits_shift=128, length=3)
ids.remainder.d0 = remainder_split[0]
ids.remainder.d1 = remainder_split[1]
ids.remainder.d2 = remainder_split[2]`

const UINT768_BY_UINT384_UNSIGNED_DIV_REM = `def split(num: int, num_bits_shift: int, length: int):
    a = []
    for _ in range(length):
        a.append(num & ((1 << num_bits_shift) - 1))
        num = num >> num_bits_shift
    return tuple(a)

def pack(z, num_bits_shift: int, length: int):
    limbs = [getattr(z, 'd' + str(i)) for i in range(length)]
    return sum(limb << (num_bits_shift * i) for i, limb in enumerate(limbs))

a = pack(ids.a, num_bits_shift=128, length=6)
div = pack(ids.div, num_bits_shift=128, length=3)
quotient, remainder = divmod(a, div)

quotient_split = split(quotient, num_bits_shift=128, length=6)
for i in range(6):
    setattr(ids.quotient, 'd' + str(i), quotient_split[i])

remainder_split = split(remainder, num_bits_shift=128, length=3)
for i in range(3):
    setattr(ids.remainder, 'd' + str(i), remainder_split[i])`

const UINT384_SPLIT_128 = "ids.low = ids.a & ((1 << 128) - 1)\nids.high = ids.a >> 128"

const ADD_NO_UINT384_CHECK = `sum_d0 = ids.a.d0 + ids.b.d0
ids.carry_d0 = 1 if sum_d0 >= ids.SHIFT else 0
sum_d1 = ids.a.d1 + ids.b.d1 + ids.carry_d0
ids.carry_d1 = 1 if sum_d1 >= ids.SHIFT else 0
sum_d2 = ids.a.d2 + ids.b.d2 + ids.carry_d1
ids.carry_d2 = 1 if sum_d2 >= ids.SHIFT else 0`

const UINT384_SQRT = `from starkware.python.math_utils import isqrt

def pack(z, num_bits_shift: int):
    limbs = (z.d0, z.d1, z.d2)
    return sum(limb << (num_bits_shift * i) for i, limb in enumerate(limbs))

a = pack(ids.a, num_bits_shift=128)
root = isqrt(a)
assert 0 <= root < 2 ** 192
ids.root.d0 = root & ((1 << 128) - 1)
ids.root.d1 = root >> 128`

const UINT384_SIGNED_NN = "ids.is_nonneg = 1 if ids.a.d2.bit_length() <= 127 else 0"

const SUB_REDUCED_A_AND_REDUCED_B = `def pack(z, num_bits_shift: int):
    limbs = (z.d0, z.d1, z.d2)
    return sum(limb << (num_bits_shift * i) for i, limb in enumerate(limbs))

a = pack(ids.a, num_bits_shift=128)
b = pack(ids.b, num_bits_shift=128)
p = pack(ids.p, num_bits_shift=128)
res = (a - b) % p
ids.res.d0 = res & ((1 << 128) - 1)
ids.res.d1 = (res >> 128) & ((1 << 128) - 1)
ids.res.d2 = res >> 256`
