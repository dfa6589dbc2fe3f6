package identity

import "strconv"

// Each district owns one block of this many integers. District k's block
// starts at (k+1)*blockSize, so district 0 issues School_id 100000 first.
const blockSize = 100000

// Sub-ranges inside a district block, per entity kind. An exhausted
// sub-range is an allocation error, never a silent overlap.
var seqRanges = map[Kind]struct{ offset, limit uint64 }{
	KindSchool:  {0, 1000},
	KindTeacher: {1000, 5000},
	KindStaff:   {5000, 9000},
	KindSection: {9000, 10000},
	KindStudent: {10000, 100000},
}

func (d *DistrictAllocator) nextSequential(kind Kind) (string, error) {
	rng := seqRanges[kind]
	n := d.counters[kind]
	if rng.offset+n >= rng.limit {
		return "", &ExhaustedError{Kind: kind, District: d.index, Capacity: rng.limit - rng.offset}
	}
	d.counters[kind] = n + 1

	base := uint64(d.index+1) * blockSize
	return strconv.FormatUint(base+rng.offset+n, 10), nil
}

// ExhaustedError reports a sub-range running out of identifiers.
type ExhaustedError struct {
	Kind     Kind
	District int
	Capacity uint64
}

func (e *ExhaustedError) Error() string {
	return "district " + strconv.Itoa(e.District) + ": " + e.Kind.String() +
		" id range exhausted (capacity " + strconv.FormatUint(e.Capacity, 10) + ")"
}
