package app

import (
	"github.com/rosterforge/rostergen/domain/roster"
)

// Assemble merges the Phase 1 skeleton with every successful per-school
// roster into the six relational tables and validates them. Any integrity
// or invariant violation aborts the district's write: partial or
// inconsistent file sets are never produced.
//
// Schools whose Phase 2 call failed keep their Phase 1 rows (school,
// teachers, staff), which are complete and consistent, and simply have
// no students, sections, or enrollments.
func Assemble(skel roster.DistrictSkeleton, rosters []roster.SchoolRoster) (roster.Tables, error) {
	t := roster.Tables{
		District: skel.District,
		Schools:  skel.Schools,
		Teachers: skel.Teachers(),
		Staff:    skel.Staff,
	}

	for _, sr := range rosters {
		t.Students = append(t.Students, sr.Students...)
		t.Sections = append(t.Sections, sr.Sections...)
		t.Enrollments = append(t.Enrollments, sr.Enrollments...)
	}

	violations := roster.CheckIntegrity(t)
	violations = append(violations, roster.VerifyDistrictInvariants(t)...)
	if len(violations) > 0 {
		return t, &roster.IntegrityError{District: skel.District.Name, Violations: violations}
	}
	return t, nil
}
