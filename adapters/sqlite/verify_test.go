package sqlite_test

import (
	"strings"
	"testing"

	"github.com/rosterforge/rostergen/adapters/sqlite"
	"github.com/rosterforge/rostergen/domain/roster"
)

func consistentTables() roster.Tables {
	return roster.Tables{
		District: roster.District{Name: "Cedar Hollow USD", State: "TX"},
		Schools: []roster.School{
			{SchoolID: "100000", SchoolName: "Cedar Hollow Elementary"},
		},
		Teachers: []roster.Teacher{
			{SchoolID: "100000", TeacherID: "101000", TeacherEmail: "a.t@x.us"},
			{SchoolID: "100000", TeacherID: "101001", TeacherEmail: "b.v@x.us"},
		},
		Staff: []roster.Staff{
			{SchoolID: "100000", StaffID: "105000", StaffEmail: "c.w@x.us"},
		},
		Students: []roster.Student{
			{SchoolID: "100000", StudentID: "110000", StudentEmail: "s1@x.us"},
		},
		Sections: []roster.Section{
			{SchoolID: "100000", SectionID: "109000", TeacherID: "101000", Teacher2ID: "101001"},
			{SchoolID: "100000", SectionID: "109001", TeacherID: "101001"},
		},
		Enrollments: []roster.Enrollment{
			{SchoolID: "100000", SectionID: "109000", StudentID: "110000"},
			{SchoolID: "100000", SectionID: "109001", StudentID: "110000"},
		},
	}
}

func TestVerify_Consistent(t *testing.T) {
	findings, err := sqlite.Verify(consistentTables())
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("unexpected findings: %v", findings)
	}
}

func TestVerify_BrokenForeignKey(t *testing.T) {
	tables := consistentTables()
	tables.Sections[0].TeacherID = "999999"

	findings, err := sqlite.Verify(tables)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !hasFinding(findings, "sections", "109000") {
		t.Errorf("expected a sections finding for 109000, got %v", findings)
	}
}

func TestVerify_DuplicateEmail(t *testing.T) {
	tables := consistentTables()
	tables.Teachers[1].TeacherEmail = tables.Teachers[0].TeacherEmail

	findings, err := sqlite.Verify(tables)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !hasFinding(findings, "teachers", "101001") {
		t.Errorf("expected a teachers finding for 101001, got %v", findings)
	}
}

func TestVerify_CrossSchoolTeacher(t *testing.T) {
	tables := consistentTables()
	tables.Schools = append(tables.Schools, roster.School{SchoolID: "100001", SchoolName: "North Annex"})
	tables.Teachers = append(tables.Teachers, roster.Teacher{
		SchoolID: "100001", TeacherID: "101050", TeacherEmail: "n.a@x.us",
	})
	tables.Sections[1].TeacherID = "101050"

	findings, err := sqlite.Verify(tables)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !hasFinding(findings, "sections", "109001") {
		t.Errorf("expected a cross-school finding for 109001, got %v", findings)
	}
}

func TestVerify_OrphanStudent(t *testing.T) {
	tables := consistentTables()
	tables.Enrollments = nil

	findings, err := sqlite.Verify(tables)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !hasFinding(findings, "students", "110000") {
		t.Errorf("expected an orphan-student finding, got %v", findings)
	}
}

func hasFinding(findings []sqlite.Finding, table, id string) bool {
	for _, f := range findings {
		if f.Table == table && strings.Contains(f.Detail, id) {
			return true
		}
	}
	return false
}
