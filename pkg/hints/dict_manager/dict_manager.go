// Package dict_manager tracks the logical dictionaries Cairo programs
// mirror onto VM segments (spec.md §4.3, §3 "Dictionary tracker" /
// "Dictionary manager").
package dict_manager

import (
	"github.com/cairolang/hintvm/pkg/vm"
	"github.com/cairolang/hintvm/pkg/vm/memory"
	"github.com/pkg/errors"
)

const DictAccessSize = 3

// ErrNoValueForKey is returned by a simple tracker's GetValue on a miss.
var ErrNoValueForKey = errors.New("no_value_for_key")

// ErrNoDictTracker is returned by GetTracker when the segment has no
// tracker at all.
var ErrNoDictTracker = errors.New("no_dict_tracker")

// ErrMismatchedDictPtr is returned by GetTracker when current_ptr
// disagrees with the pointer the Cairo code believes it holds.
var ErrMismatchedDictPtr = errors.New("mismatched_dict_ptr")

// ErrCantCreateOnTakenSegment guards the DictManager invariant: at most
// one tracker per segment.
var ErrCantCreateOnTakenSegment = errors.New("cant_create_on_taken_segment")

// Manages dictionaries in a Cairo program.
// Uses the segment index to associate the corresponding go dict with the Cairo dict.
type DictManager struct {
	trackers map[int]*DictTracker
}

func NewDictManager() *DictManager {
	return &DictManager{
		trackers: make(map[int]*DictTracker),
	}
}

// NewDictionary allocates a new VM segment, installs a simple tracker at
// offset 0, and returns the segment's base address (spec.md §4.3
// "new_dict"). Fails ErrCantCreateOnTakenSegment if a tracker for that
// segment already exists.
func (d *DictManager) NewDictionary(initial map[memory.MaybeRelocatable]memory.MaybeRelocatable, v *vm.VirtualMachine) (memory.Relocatable, error) {
	base := v.AddSegment()
	if _, taken := d.trackers[base.SegmentIndex]; taken {
		return memory.Relocatable{}, ErrCantCreateOnTakenSegment
	}
	d.trackers[base.SegmentIndex] = NewDictTrackerForDictionary(base, initial)
	return base, nil
}

// NewDefaultDictionary is the default-value analogue of NewDictionary
// (spec.md §4.3 "new_default_dict").
func (d *DictManager) NewDefaultDictionary(defaultValue memory.MaybeRelocatable, initial map[memory.MaybeRelocatable]memory.MaybeRelocatable, v *vm.VirtualMachine) (memory.Relocatable, error) {
	base := v.AddSegment()
	if _, taken := d.trackers[base.SegmentIndex]; taken {
		return memory.Relocatable{}, ErrCantCreateOnTakenSegment
	}
	d.trackers[base.SegmentIndex] = NewDictTrackerForDefaultDictionary(base, defaultValue, initial)
	return base, nil
}

// GetTracker validates dict_ptr.segment_index has a tracker and
// tracker.current_ptr == dict_ptr (spec.md §4.3 "get_tracker").
func (d *DictManager) GetTracker(dict_ptr memory.Relocatable) (*DictTracker, error) {
	tracker, ok := d.trackers[dict_ptr.SegmentIndex]
	if !ok {
		return nil, errors.Wrapf(ErrNoDictTracker, "segment %d", dict_ptr.SegmentIndex)
	}
	if !tracker.currentPtr.IsEqual(&dict_ptr) {
		return nil, errors.Wrapf(ErrMismatchedDictPtr, "got %v, expected %v", dict_ptr, tracker.currentPtr)
	}
	return tracker, nil
}

// Tracks the go dict associated with a Cairo dict.
type DictTracker struct {
	data Dictionary
	// Pointer to the first unused position in the dict segment.
	currentPtr memory.Relocatable
}

// CurrentPtr returns the tracker's next-unused-address invariant value.
func (d *DictTracker) CurrentPtr() memory.Relocatable {
	return d.currentPtr
}

// AdvanceCurrentPtr advances current_ptr by the DICT_ACCESS struct size
// after a read/write/update hint appends an access record.
func (d *DictTracker) AdvanceCurrentPtr(n uint) {
	d.currentPtr = d.currentPtr.AddUint(n)
}

func NewDictTrackerForDictionary(base memory.Relocatable, dict map[memory.MaybeRelocatable]memory.MaybeRelocatable) *DictTracker {
	return &DictTracker{
		data:       NewDictionary(dict),
		currentPtr: base,
	}
}

func NewDictTrackerForDefaultDictionary(base memory.Relocatable, defaultValue memory.MaybeRelocatable, dict map[memory.MaybeRelocatable]memory.MaybeRelocatable) *DictTracker {
	return &DictTracker{
		data:       NewDefaultDictionary(defaultValue, dict),
		currentPtr: base,
	}
}

// CopyDictionary returns the tracker's underlying key/value pairs,
// consulted when a dict is handed off for squashing.
func (d *DictTracker) CopyDictionary() map[memory.MaybeRelocatable]memory.MaybeRelocatable {
	out := make(map[memory.MaybeRelocatable]memory.MaybeRelocatable, len(d.data.dict))
	for k, v := range d.data.dict {
		out[k] = v
	}
	return out
}

// GetValue implements spec.md §4.3 "read": simple maps return the
// stored value or ErrNoValueForKey; default maps insert-then-return the
// default on miss.
func (d *DictTracker) GetValue(key memory.MaybeRelocatable) (*memory.MaybeRelocatable, error) {
	return d.data.Get(key)
}

func (d *DictTracker) InsertValue(key memory.MaybeRelocatable, val memory.MaybeRelocatable) {
	d.data.Insert(key, val)
}

// Dictionary is the simple-or-default-valued map a tracker wraps.
type Dictionary struct {
	dict         map[memory.MaybeRelocatable]memory.MaybeRelocatable
	defaultValue *memory.MaybeRelocatable
}

func NewDefaultDictionary(defaultValue memory.MaybeRelocatable, dict map[memory.MaybeRelocatable]memory.MaybeRelocatable) Dictionary {
	if dict == nil {
		dict = make(map[memory.MaybeRelocatable]memory.MaybeRelocatable)
	}
	return Dictionary{
		dict:         dict,
		defaultValue: &defaultValue,
	}
}

func NewDictionary(dict map[memory.MaybeRelocatable]memory.MaybeRelocatable) Dictionary {
	if dict == nil {
		dict = make(map[memory.MaybeRelocatable]memory.MaybeRelocatable)
	}
	return Dictionary{
		dict:         dict,
		defaultValue: nil,
	}
}

func (d *Dictionary) Get(key memory.MaybeRelocatable) (*memory.MaybeRelocatable, error) {
	val, ok := d.dict[key]
	if ok {
		return &val, nil
	}
	if d.defaultValue != nil {
		d.dict[key] = *d.defaultValue
		return d.defaultValue, nil
	}
	return nil, ErrNoValueForKey
}

func (d *Dictionary) Insert(key memory.MaybeRelocatable, val memory.MaybeRelocatable) {
	d.dict[key] = val
}
