package hint_codes

const MEMSET_ENTER_SCOPE = "vm_enter_scope({'n': ids.n})"

const MEMCPY_ENTER_SCOPE = "vm_enter_scope({'n': ids.len})"

const MEMSET_CONTINUE_LOOP = `n -= 1
ids.continue_loop = 1 if n > 0 else 0`

const MEMCPY_CONTINUE_COPYING = `n -= 1
ids.continue_copying = 1 if n > 0 else 0`

const NONDET_N_GREATER_THAN_10 = "memory[ap] = 1 if ids.n >= 10 else 0"

const NONDET_N_GREATER_THAN_2 = "memory[ap] = 1 if ids.n >= 2 else 0"

const ELEMENTS_OVER_X = "memory[ap] = 1 if (ids.elements_end - ids.elements) >= ids.x else 0"
