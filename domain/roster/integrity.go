package roster

import "fmt"

// Violation describes a single referential-integrity failure found during
// assembly: a foreign-key column value that does not resolve, or a record
// breaking a structural rule.
type Violation struct {
	Table  string
	Column string
	Value  string
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s.%s=%q: %s", v.Table, v.Column, v.Value, v.Reason)
}

// IntegrityError aggregates every violation found in one district's tables.
type IntegrityError struct {
	District   string
	Violations []Violation
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("district %s: %d integrity violations (first: %s)",
		e.District, len(e.Violations), e.Violations[0])
}

// CheckIntegrity validates every foreign key and structural rule across the
// six tables. It is a pure function over the assembled dataset; a non-empty
// result means the district must not be written.
func CheckIntegrity(t Tables) []Violation {
	var out []Violation

	schools := make(map[string]bool, len(t.Schools))
	for _, s := range t.Schools {
		schools[s.SchoolID] = true
	}
	teacherSchool := make(map[string]string, len(t.Teachers))
	for _, tr := range t.Teachers {
		teacherSchool[tr.TeacherID] = tr.SchoolID
	}
	studentSchool := make(map[string]string, len(t.Students))
	for _, st := range t.Students {
		studentSchool[st.StudentID] = st.SchoolID
	}
	sectionSchool := make(map[string]string, len(t.Sections))
	for _, sc := range t.Sections {
		sectionSchool[sc.SectionID] = sc.SchoolID
	}

	checkSchool := func(table, id string) {
		if !schools[id] {
			out = append(out, Violation{table, "School_id", id, "no such school"})
		}
	}

	for _, tr := range t.Teachers {
		checkSchool("teachers", tr.SchoolID)
	}
	for _, sf := range t.Staff {
		checkSchool("staff", sf.SchoolID)
	}
	for _, st := range t.Students {
		checkSchool("students", st.SchoolID)
	}

	for _, sc := range t.Sections {
		checkSchool("sections", sc.SchoolID)
		for col, id := range map[string]string{"Teacher_id": sc.TeacherID, "Teacher_2_id": sc.Teacher2ID} {
			if col == "Teacher_2_id" && id == "" {
				continue
			}
			tsch, ok := teacherSchool[id]
			switch {
			case !ok:
				out = append(out, Violation{"sections", col, id, "no such teacher"})
			case tsch != sc.SchoolID:
				out = append(out, Violation{"sections", col, id,
					fmt.Sprintf("teacher belongs to school %s, section to %s", tsch, sc.SchoolID)})
			}
		}
	}

	enrolled := make(map[string]int, len(t.Students))
	for _, e := range t.Enrollments {
		ssch, ok := studentSchool[e.StudentID]
		if !ok {
			out = append(out, Violation{"enrollments", "Student_id", e.StudentID, "no such student"})
		}
		csch, ok2 := sectionSchool[e.SectionID]
		if !ok2 {
			out = append(out, Violation{"enrollments", "Section_id", e.SectionID, "no such section"})
		}
		if ok && ok2 {
			if ssch != e.SchoolID || csch != e.SchoolID {
				out = append(out, Violation{"enrollments", "School_id", e.SchoolID,
					"school does not match student and section"})
			}
		}
		enrolled[e.StudentID]++
	}
	for _, st := range t.Students {
		if enrolled[st.StudentID] == 0 {
			out = append(out, Violation{"students", "Student_id", st.StudentID, "no enrollments"})
		}
	}

	out = append(out, checkEmailUniqueness(t)...)
	return out
}

// checkEmailUniqueness enforces within-type email uniqueness. The dual-role
// staff/teacher pair shares an email across types, which this check does
// not constrain.
func checkEmailUniqueness(t Tables) []Violation {
	var out []Violation
	dup := func(table string, seen map[string]bool, email string) {
		if email == "" {
			return
		}
		if seen[email] {
			out = append(out, Violation{table, "email", email, "duplicate within table"})
		}
		seen[email] = true
	}

	seen := make(map[string]bool)
	for _, tr := range t.Teachers {
		dup("teachers", seen, tr.TeacherEmail)
	}
	seen = make(map[string]bool)
	for _, sf := range t.Staff {
		dup("staff", seen, sf.StaffEmail)
	}
	seen = make(map[string]bool)
	for _, st := range t.Students {
		dup("students", seen, st.StudentEmail)
	}
	return out
}

// VerifyDistrictInvariants checks the deliberate special cases the pipeline
// injects: exactly one District Administrator, exactly one dual-role
// staff/teacher email pair, at least one co-taught section per school, and
// exactly one home student per section enrolled in another section.
func VerifyDistrictInvariants(t Tables) []Violation {
	var out []Violation

	admins := 0
	for _, sf := range t.Staff {
		if sf.Title == TitleDistrictAdmin {
			admins++
		}
	}
	if admins != 1 {
		out = append(out, Violation{"staff", "Title", TitleDistrictAdmin,
			fmt.Sprintf("want exactly 1 district administrator, have %d", admins)})
	}

	teacherEmails := make(map[string]string, len(t.Teachers))
	for _, tr := range t.Teachers {
		teacherEmails[tr.TeacherEmail] = tr.TeacherID
	}
	dualRole := 0
	for _, sf := range t.Staff {
		if tid, ok := teacherEmails[sf.StaffEmail]; ok {
			if sf.StaffID == tid {
				out = append(out, Violation{"staff", "Staff_id", sf.StaffID,
					"dual-role record must not reuse the teacher ID"})
			}
			dualRole++
		}
	}
	if dualRole != 1 {
		out = append(out, Violation{"staff", "Staff_email", "",
			fmt.Sprintf("want exactly 1 dual-role staff/teacher pair, have %d", dualRole)})
	}

	// A school with no sections at all is one whose roster generation
	// failed; its Phase 1 rows remain valid, so only rostered schools are
	// held to the co-teaching rule.
	coTaught := make(map[string]bool)
	rostered := make(map[string]bool)
	for _, sc := range t.Sections {
		rostered[sc.SchoolID] = true
		if sc.Teacher2ID != "" {
			coTaught[sc.SchoolID] = true
		}
	}
	for _, s := range t.Schools {
		if rostered[s.SchoolID] && !coTaught[s.SchoolID] {
			out = append(out, Violation{"sections", "Teacher_2_id", s.SchoolID,
				"school has no co-taught section"})
		}
	}

	out = append(out, checkMultiSection(t)...)
	return out
}

// checkMultiSection verifies that each section has exactly one home student
// (first enrollment) holding an enrollment in at least one other section.
func checkMultiSection(t Tables) []Violation {
	home := make(map[string]string) // student -> home section
	count := make(map[string]int)   // student -> enrollment count
	for _, e := range t.Enrollments {
		if _, ok := home[e.StudentID]; !ok {
			home[e.StudentID] = e.SectionID
		}
		count[e.StudentID]++
	}

	multi := make(map[string]int) // home section -> multi-enrolled home students
	for student, sec := range home {
		if count[student] > 1 {
			multi[sec]++
		}
	}

	var out []Violation
	for _, sc := range t.Sections {
		if n := multi[sc.SectionID]; n != 1 {
			out = append(out, Violation{"sections", "Section_id", sc.SectionID,
				fmt.Sprintf("want exactly 1 multi-section home student, have %d", n)})
		}
	}
	return out
}
