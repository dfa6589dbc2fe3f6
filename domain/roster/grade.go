package roster

import (
	"fmt"
	"time"
)

// gradeLevels maps the canonical grade labels to their ordinal position.
// Kindergarten is 0.
var gradeLevels = map[string]int{
	"K": 0, "1": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6,
	"7": 7, "8": 8, "9": 9, "10": 10, "11": 11, "12": 12,
}

// GradeOrdinal returns the ordinal position of a grade label (K=0..12).
func GradeOrdinal(grade string) (int, error) {
	n, ok := gradeLevels[grade]
	if !ok {
		return 0, fmt.Errorf("unknown grade %q", grade)
	}
	return n, nil
}

// ValidGradeRange reports whether low..high is a well-formed grade range.
func ValidGradeRange(low, high string) bool {
	l, err := GradeOrdinal(low)
	if err != nil {
		return false
	}
	h, err := GradeOrdinal(high)
	if err != nil {
		return false
	}
	return l <= h
}

// GradeInRange reports whether grade falls inside the low..high range.
func GradeInRange(grade, low, high string) bool {
	g, err := GradeOrdinal(grade)
	if err != nil {
		return false
	}
	l, errL := GradeOrdinal(low)
	h, errH := GradeOrdinal(high)
	if errL != nil || errH != nil {
		return false
	}
	return g >= l && g <= h
}

// DOBLayout is the wire and CSV date format for student dates of birth.
const DOBLayout = "2006-01-02"

// ConsistentDOB reports whether a date of birth is plausible for a grade as
// of now. A student in grade g (K=0) is accepted between g+4 and g+8 years
// old exclusive of the upper bound.
func ConsistentDOB(grade, dob string, now time.Time) bool {
	g, err := GradeOrdinal(grade)
	if err != nil {
		return false
	}
	born, err := time.Parse(DOBLayout, dob)
	if err != nil {
		return false
	}
	age := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		age--
	}
	return age >= g+4 && age < g+8
}
