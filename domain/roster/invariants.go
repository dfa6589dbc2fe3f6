package roster

// Injectors apply the deliberate special cases to otherwise-generic
// generated data. Relying on the upstream generator to include them is not
// dependable, so they are enforced here, after generation and before
// assembly.

// InjectDistrictAdmin retitles the first staff record as the district
// administrator. No-op when one is already present or there is no staff.
func InjectDistrictAdmin(staff []Staff) []Staff {
	for _, sf := range staff {
		if sf.Title == TitleDistrictAdmin {
			return staff
		}
	}
	if len(staff) == 0 {
		return staff
	}
	staff[0].Title = TitleDistrictAdmin
	return staff
}

// InjectDualRole appends one staff record that shares the given teacher's
// name and email under its own staff ID. The caller supplies a freshly
// allocated ID so the pair holds distinct identifiers.
func InjectDualRole(staff []Staff, t Teacher, staffID string) []Staff {
	return append(staff, Staff{
		SchoolID:   t.SchoolID,
		StaffID:    staffID,
		StaffEmail: t.TeacherEmail,
		FirstName:  t.FirstName,
		LastName:   t.LastName,
		Department: "Academics",
		Title:      "Instructional Coach",
	})
}

// InjectCoTeacher guarantees at least one co-taught section. When none of
// the sections carries a second teacher, the first section gains one,
// chosen as the first supplied teacher ID that differs from its primary.
// Returns false if no distinct teacher is available.
func InjectCoTeacher(sections []Section, teacherIDs []string) bool {
	for _, sc := range sections {
		if sc.Teacher2ID != "" {
			return true
		}
	}
	if len(sections) == 0 {
		return false
	}
	for _, id := range teacherIDs {
		if id != sections[0].TeacherID {
			sections[0].Teacher2ID = id
			return true
		}
	}
	return false
}

// InjectMultiSection gives exactly one home student of every section an
// extra enrollment in the cyclically-next section. Input sections keep
// their generated order; the derived enrollments list every home student
// first, then the injected cross-enrollments.
func InjectMultiSection(schoolID string, sections []HomeSection) []Enrollment {
	var out []Enrollment
	for _, hs := range sections {
		for _, st := range hs.Students {
			out = append(out, Enrollment{
				SchoolID:  schoolID,
				SectionID: hs.Section.SectionID,
				StudentID: st.StudentID,
			})
		}
	}
	if len(sections) < 2 {
		return out
	}
	for i, hs := range sections {
		if len(hs.Students) == 0 {
			continue
		}
		next := sections[(i+1)%len(sections)]
		out = append(out, Enrollment{
			SchoolID:  schoolID,
			SectionID: next.Section.SectionID,
			StudentID: hs.Students[0].StudentID,
		})
	}
	return out
}
