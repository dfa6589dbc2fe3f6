package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rosterforge/rostergen/domain/roster"
)

// ReadDistrict loads a previously written district directory back into
// tables, for the verify command. Headers must match the canonical column
// set exactly.
func ReadDistrict(dir string) (roster.Tables, error) {
	var t roster.Tables
	t.District.Name = strings.TrimSuffix(filepath.Base(dir), "_Data")

	if err := readFile(dir, "schools.csv", schoolsHeader, func(rec []string) {
		t.Schools = append(t.Schools, roster.School{
			SchoolID: rec[0], SchoolName: rec[1], SchoolNumber: rec[2], LowGrade: rec[3],
			HighGrade: rec[4], Principal: rec[5], PrincipalEmail: rec[6], SchoolAddress: rec[7],
			SchoolCity: rec[8], SchoolState: rec[9], SchoolZip: rec[10], SchoolPhone: rec[11],
		})
	}); err != nil {
		return t, err
	}

	if err := readFile(dir, "teachers.csv", teachersHeader, func(rec []string) {
		t.Teachers = append(t.Teachers, roster.Teacher{
			SchoolID: rec[0], TeacherID: rec[1], TeacherNumber: rec[2], StateTeacherID: rec[3],
			TeacherEmail: rec[4], FirstName: rec[5], LastName: rec[6], Title: rec[7],
		})
	}); err != nil {
		return t, err
	}

	if err := readFile(dir, "staff.csv", staffHeader, func(rec []string) {
		t.Staff = append(t.Staff, roster.Staff{
			SchoolID: rec[0], StaffID: rec[1], StaffEmail: rec[2], FirstName: rec[3],
			LastName: rec[4], Department: rec[5], Title: rec[6],
		})
	}); err != nil {
		return t, err
	}

	if err := readFile(dir, "students.csv", studentsHeader, func(rec []string) {
		t.Students = append(t.Students, roster.Student{
			SchoolID: rec[0], StudentID: rec[1], StudentNumber: rec[2], StateID: rec[3],
			LastName: rec[4], FirstName: rec[5], Grade: rec[6], Gender: rec[7],
			DOB: rec[8], StudentEmail: rec[9],
		})
	}); err != nil {
		return t, err
	}

	if err := readFile(dir, "sections.csv", sectionsHeader, func(rec []string) {
		t.Sections = append(t.Sections, roster.Section{
			SchoolID: rec[0], SectionID: rec[1], TeacherID: rec[2], Teacher2ID: rec[3],
			Name: rec[4], Grade: rec[5], Subject: rec[6],
		})
	}); err != nil {
		return t, err
	}

	if err := readFile(dir, "enrollments.csv", enrollmentsHeader, func(rec []string) {
		t.Enrollments = append(t.Enrollments, roster.Enrollment{
			SchoolID: rec[0], SectionID: rec[1], StudentID: rec[2],
		})
	}); err != nil {
		return t, err
	}

	return t, nil
}

func readFile(dir, name string, header []string, row func([]string)) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("read %s: missing header row", name)
	}
	for i, col := range header {
		if records[0][i] != col {
			return fmt.Errorf("read %s: header column %d is %q, want %q", name, i, records[0][i], col)
		}
	}
	for _, rec := range records[1:] {
		row(rec)
	}
	return nil
}
