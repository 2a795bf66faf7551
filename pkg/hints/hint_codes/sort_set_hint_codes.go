package hint_codes

const USORT_BODY = `from collections import defaultdict

input_ptr = ids.input
input_len = int(ids.input_len)
if __usort_max_size is not None:
    assert input_len <= __usort_max_size, (
        f"usort() can only be used with input_len<={__usort_max_size}. "
        f"Got: input_len={input_len}."
    )

positions_dict = defaultdict(list)
for i in range(input_len):
    val = memory[input_ptr + i]
    positions_dict[val].append(i)

output = sorted(positions_dict.keys())
ids.output_len = len(output)
ids.output = segments.add()
ids.multiplicities = segments.add()
for i, val in enumerate(output):
    memory[ids.output + i] = val
    memory[ids.multiplicities + i] = len(positions_dict[val])`

const USORT_VERIFY = `last_pos = 0
positions = positions_dict[ids.value][::-1]`

const USORT_VERIFY_MULTIPLICITY_BODY = `current_pos = positions.pop()
ids.next_item_index = current_pos - last_pos
last_pos = current_pos + 1`

const USORT_VERIFY_MULTIPLICITY_ASSERT = "assert len(positions) == 0"

const SET_ADD = `assert ids.elm_size > 0
assert ids.set_ptr <= ids.set_end_ptr
elm_list = memory.get_range(ids.elm_ptr, ids.elm_size)
for i in range(0, ids.set_end_ptr - ids.set_ptr, ids.elm_size):
    if memory.get_range(ids.set_ptr + i, ids.elm_size) == elm_list:
        ids.index = i // ids.elm_size
        ids.is_elm_in_set = 1
        break
else:
    ids.is_elm_in_set = 0`
