// Package identity allocates run-unique identifiers. Each district owns a
// disjoint ID space: a reserved integer block in sequential mode, a unique
// numeric prefix inside state-aware codes in alphanumeric mode. The same
// registry also issues the always-alphanumeric state IDs and the
// district-prefixed record numbers.
package identity

import (
	"fmt"
	"strconv"
	"sync"
)

// Mode selects the primary-ID scheme for a run.
type Mode string

const (
	// ModeSequential reserves a fixed integer block per district.
	ModeSequential Mode = "sequential"
	// ModeAlphanumeric composes state-aware codes with random suffixes.
	ModeAlphanumeric Mode = "alphanumeric"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSequential, ModeAlphanumeric:
		return Mode(s), nil
	}
	return "", fmt.Errorf("id mode must be %q or %q, got %q", ModeSequential, ModeAlphanumeric, s)
}

// Kind is the entity type an identifier is allocated for.
type Kind int

const (
	KindSchool Kind = iota
	KindTeacher
	KindStaff
	KindSection
	KindStudent
)

func (k Kind) String() string {
	switch k {
	case KindSchool:
		return "school"
	case KindTeacher:
		return "teacher"
	case KindStaff:
		return "staff"
	case KindSection:
		return "section"
	case KindStudent:
		return "student"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// tag is the entity marker embedded in alphanumeric codes. Students use
// their school number instead.
func (k Kind) tag() string {
	switch k {
	case KindSchool:
		return "S"
	case KindTeacher:
		return "T"
	case KindStaff:
		return "F"
	case KindSection:
		return "C"
	}
	return "X"
}

// DigitSource yields numeric suffixes for alphanumeric codes.
type DigitSource interface {
	// Digits returns n decimal digit characters.
	Digits(n int) (string, error)
}

// Registry hands out district allocators with non-overlapping ID spaces.
// It is the only state shared across districts in a run.
type Registry struct {
	mu     sync.Mutex
	mode   Mode
	rnd    DigitSource
	next   int             // next district index
	issued map[string]bool // all alphanumeric codes issued this run
}

// NewRegistry creates a registry for one generation run.
func NewRegistry(mode Mode, rnd DigitSource) *Registry {
	return &Registry{mode: mode, rnd: rnd, issued: make(map[string]bool)}
}

// Mode returns the registry's primary-ID mode.
func (r *Registry) Mode() Mode { return r.mode }

// District reserves the next district ID space. The state must be a valid
// two-letter abbreviation; pass "" to assign one round-robin.
func (r *Registry) District(state string) (*DistrictAllocator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.next
	if state == "" {
		state = stateForIndex(index)
	} else if !ValidState(state) {
		return nil, fmt.Errorf("unknown state %q", state)
	}
	r.next++

	return &DistrictAllocator{
		reg:      r,
		index:    index,
		prefix:   index + 1,
		state:    state,
		counters: make(map[Kind]uint64),
		numbers:  make(map[Kind]uint64),
	}, nil
}

// DistrictAllocator issues identifiers for one district. It is not safe
// for concurrent use; the pipeline runs districts one at a time.
type DistrictAllocator struct {
	reg      *Registry
	index    int
	prefix   int
	state    string
	counters map[Kind]uint64
	numbers  map[Kind]uint64
}

// Index returns the district's position in the run.
func (d *DistrictAllocator) Index() int { return d.index }

// State returns the district's assigned US state abbreviation.
func (d *DistrictAllocator) State() string { return d.state }

// Next returns the next primary identifier for the given entity kind.
// Student IDs in alphanumeric mode embed the school number; use
// NextStudent for those.
func (d *DistrictAllocator) Next(kind Kind) (string, error) {
	if d.reg.mode == ModeSequential {
		return d.nextSequential(kind)
	}
	return d.nextAlphanumeric(kind.tag())
}

// NextStudent returns the next student identifier. In alphanumeric mode
// the school number serves as the entity tag.
func (d *DistrictAllocator) NextStudent(schoolNumber string) (string, error) {
	if d.reg.mode == ModeSequential {
		return d.nextSequential(KindStudent)
	}
	return d.nextAlphanumeric(schoolNumber)
}

// numberBlock is the record-number capacity per district and kind. Numbers
// use the same disjoint-block scheme as sequential primary IDs: a plain
// digit concatenation would be ambiguous once a counter outgrows its width
// (district prefix 1 counter 10001 and prefix 11 counter 1 would render
// identically), so each district owns a fixed decimal block instead.
const numberBlock = 100000

// NextNumber returns the next district-prefixed record number for the
// given kind (School_number, Teacher_number, Student_number). District
// prefix p owns the decimal block [p*numberBlock, (p+1)*numberBlock), so
// numbers are globally unique across districts.
func (d *DistrictAllocator) NextNumber(kind Kind) (string, error) {
	n := d.numbers[kind] + 1
	if n >= numberBlock {
		return "", &ExhaustedError{Kind: kind, District: d.index, Capacity: numberBlock - 1}
	}
	d.numbers[kind] = n
	return strconv.FormatUint(uint64(d.prefix)*numberBlock+n, 10), nil
}

// StateID returns a state-aware alphanumeric code regardless of run mode,
// used for State_teacher_id and student State_id columns.
func (d *DistrictAllocator) StateID(kind Kind) (string, error) {
	return d.nextAlphanumeric(kind.tag())
}
