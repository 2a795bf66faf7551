package hint_codes

const RECOVER_Y = `from starkware.python.math_utils import recover_y
y = recover_y(ids.x, ALPHA, BETA, FIELD_PRIME)
ids.p.x = ids.x
ids.p.y = y`

const RANDOM_EC_POINT_SEEDED = `from starkware.crypto.signature.signature import ALPHA, BETA, FIELD_PRIME
from starkware.python.math_utils import random_ec_point
from starkware.python.utils import to_bytes

n_elms = ids.len
assert isinstance(n_elms, int) and n_elms >= 0, \
    f'Invalid value for len. Got: {n_elms}.'

seed = ids.seed
x, y = random_ec_point(FIELD_PRIME, ALPHA, BETA, seed)
ids.p.x = x
ids.p.y = y`

const RANDOM_EC_POINT = `from starkware.crypto.signature.signature import ALPHA, BETA, FIELD_PRIME
from starkware.python.math_utils import random_ec_point
from starkware.python.utils import to_bytes

seed = to_bytes(ids.p.x) + to_bytes(ids.p.y) + to_bytes(ids.m) + \
    to_bytes(ids.q.x) + to_bytes(ids.q.y)
x, y = random_ec_point(FIELD_PRIME, ALPHA, BETA, seed)
ids.s.x = x
ids.s.y = y`

const CHAINED_EC_OP_RANDOM_EC_POINT = `from starkware.crypto.signature.signature import ALPHA, BETA, FIELD_PRIME
from starkware.python.math_utils import random_ec_point
from starkware.python.utils import to_bytes

n_elms = ids.len
assert isinstance(n_elms, int) and n_elms > 0, \
    f'Invalid value for len. Got: {n_elms}.'

seed = to_bytes(ids.p.x) + to_bytes(ids.p.y)
for i in range(n_elms):
    seed += to_bytes(ids.m[i])
for i in range(n_elms):
    seed += to_bytes(ids.q[i].x) + to_bytes(ids.q[i].y)

x, y = random_ec_point(FIELD_PRIME, ALPHA, BETA, seed)
ids.s.x = x
ids.s.y = y`
