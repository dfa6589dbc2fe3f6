package identity

import "fmt"

// suffixLen is the number of random digits in an alphanumeric code.
const suffixLen = 6

// maxAttempts bounds suffix regeneration before giving up. Collisions and
// blocklisted suffixes are both rare, so hitting this indicates a broken
// digit source.
const maxAttempts = 100

// nextAlphanumeric composes <STATE><districtPrefix><tag><suffix>, drawing
// suffixes until one passes the lazy-pattern blocklist and has never been
// issued in this run.
func (d *DistrictAllocator) nextAlphanumeric(tag string) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		suffix, err := d.reg.rnd.Digits(suffixLen)
		if err != nil {
			return "", fmt.Errorf("draw id suffix: %w", err)
		}
		if LazyPattern(suffix) {
			continue
		}
		id := fmt.Sprintf("%s%d%s%s", d.state, d.prefix, tag, suffix)

		d.reg.mu.Lock()
		dup := d.reg.issued[id]
		if !dup {
			d.reg.issued[id] = true
		}
		d.reg.mu.Unlock()
		if !dup {
			return id, nil
		}
	}
	return "", fmt.Errorf("district %d: no acceptable %s suffix after %d attempts", d.index, tag, maxAttempts)
}

// LazyPattern reports whether a digit string looks machine-generated in an
// obvious way: every digit identical, or a strictly ascending or
// descending consecutive run (e.g. 123456, 987654). Such suffixes are
// regenerated to keep IDs high-entropy.
func LazyPattern(s string) bool {
	if len(s) < 2 {
		return false
	}
	same, asc, desc := true, true, true
	for i := 1; i < len(s); i++ {
		if s[i] != s[i-1] {
			same = false
		}
		if s[i] != s[i-1]+1 {
			asc = false
		}
		if s[i] != s[i-1]-1 {
			desc = false
		}
	}
	return same || asc || desc
}
