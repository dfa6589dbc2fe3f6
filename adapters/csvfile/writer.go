// Package csvfile writes and reads per-district CSV file sets. One
// directory per district, six files, UTF-8, comma-separated, header row
// first. The column set is the canonical one documented in DESIGN.md.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rosterforge/rostergen/domain/roster"
	"github.com/rosterforge/rostergen/ports"
)

// Canonical file names and headers.
var (
	schoolsHeader = []string{"School_id", "School_name", "School_number", "Low_grade", "High_grade",
		"Principal", "Principal_email", "School_address", "School_city",
		"School_state", "School_zip", "School_phone"}
	teachersHeader = []string{"School_id", "Teacher_id", "Teacher_number", "State_teacher_id",
		"Teacher_email", "First_name", "Last_name", "Title"}
	staffHeader = []string{"School_id", "Staff_id", "Staff_email", "First_name", "Last_name",
		"Department", "Title"}
	studentsHeader = []string{"School_id", "Student_id", "Student_number", "State_id", "Last_name",
		"First_name", "Grade", "Gender", "DOB", "Student_email"}
	sectionsHeader    = []string{"School_id", "Section_id", "Teacher_id", "Teacher_2_id", "Name", "Grade", "Subject"}
	enrollmentsHeader = []string{"School_id", "Section_id", "Student_id"}
)

// Writer writes district file sets under a root output directory.
type Writer struct {
	root string
}

// NewWriter creates a writer rooted at the given directory.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Ensure interface compliance.
var _ ports.TableWriter = (*Writer)(nil)

// DistrictDir returns the directory a district's file set is written to.
func (w *Writer) DistrictDir(districtName string) string {
	return filepath.Join(w.root, pathSafe(districtName)+"_Data")
}

// WriteDistrict writes the six tables for one district and returns the
// directory written. Any file error aborts the district's output.
func (w *Writer) WriteDistrict(t roster.Tables) (string, error) {
	dir := w.DistrictDir(t.District.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create district directory: %w", err)
	}

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"schools.csv", schoolsHeader, schoolRows(t.Schools)},
		{"teachers.csv", teachersHeader, teacherRows(t.Teachers)},
		{"staff.csv", staffHeader, staffRows(t.Staff)},
		{"students.csv", studentsHeader, studentRows(t.Students)},
		{"sections.csv", sectionsHeader, sectionRows(t.Sections)},
		{"enrollments.csv", enrollmentsHeader, enrollmentRows(t.Enrollments)},
	}

	for _, f := range files {
		if err := writeFile(filepath.Join(dir, f.name), f.header, f.rows); err != nil {
			return "", fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return dir, nil
}

func writeFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return f.Close()
}

// pathSafe strips path separators from a district name before it becomes a
// directory component.
func pathSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, name)
}

func schoolRows(ss []roster.School) [][]string {
	rows := make([][]string, len(ss))
	for i, s := range ss {
		rows[i] = []string{s.SchoolID, s.SchoolName, s.SchoolNumber, s.LowGrade, s.HighGrade,
			s.Principal, s.PrincipalEmail, s.SchoolAddress, s.SchoolCity,
			s.SchoolState, s.SchoolZip, s.SchoolPhone}
	}
	return rows
}

func teacherRows(ts []roster.Teacher) [][]string {
	rows := make([][]string, len(ts))
	for i, t := range ts {
		rows[i] = []string{t.SchoolID, t.TeacherID, t.TeacherNumber, t.StateTeacherID,
			t.TeacherEmail, t.FirstName, t.LastName, t.Title}
	}
	return rows
}

func staffRows(ss []roster.Staff) [][]string {
	rows := make([][]string, len(ss))
	for i, s := range ss {
		rows[i] = []string{s.SchoolID, s.StaffID, s.StaffEmail, s.FirstName, s.LastName,
			s.Department, s.Title}
	}
	return rows
}

func studentRows(ss []roster.Student) [][]string {
	rows := make([][]string, len(ss))
	for i, s := range ss {
		rows[i] = []string{s.SchoolID, s.StudentID, s.StudentNumber, s.StateID, s.LastName,
			s.FirstName, s.Grade, s.Gender, s.DOB, s.StudentEmail}
	}
	return rows
}

func sectionRows(ss []roster.Section) [][]string {
	rows := make([][]string, len(ss))
	for i, s := range ss {
		rows[i] = []string{s.SchoolID, s.SectionID, s.TeacherID, s.Teacher2ID, s.Name, s.Grade, s.Subject}
	}
	return rows
}

func enrollmentRows(es []roster.Enrollment) [][]string {
	rows := make([][]string, len(es))
	for i, e := range es {
		rows[i] = []string{e.SchoolID, e.SectionID, e.StudentID}
	}
	return rows
}
