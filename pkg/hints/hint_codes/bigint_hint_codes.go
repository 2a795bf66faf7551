package hint_codes

const BIGINT_PACK_DIV_MOD = `from starkware.cairo.common.cairo_secp.secp_utils import pack

def pack_extended(z, num_bits_shift):
    limbs = (z.d0, z.d1, z.d2, z.d3, z.d4)
    p = 0
    for i, limb in enumerate(limbs):
        p += (limb if limb <= (1 << (num_bits_shift - 1)) else limb - (1 << num_bits_shift)) << (num_bits_shift * i)
    return p

x = pack_extended(ids.x, num_bits_shift=86)
y = pack(ids.y, PRIME)
p = pack(ids.p, PRIME)
value = res = x * pow(y, -1, p) % p`

const BIGINT_SAFE_DIV = `from starkware.cairo.common.math_utils import as_int
from starkware.python.math_utils import safe_div

res = as_int(value, PRIME)
k = safe_div(res * y - x, p)
value = k if k >= 0 else -k
ids.flag = 1 if k >= 0 else 0`
