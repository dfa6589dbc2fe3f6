// Package sqlite cross-checks a district's tables against a real
// relational schema. The verify command loads written CSV output into an
// in-memory SQLite database with enforced foreign keys, so integrity is
// proven by the database engine rather than re-implemented.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rosterforge/rostergen/domain/roster"
)

const schema = `
CREATE TABLE schools (
	school_id TEXT PRIMARY KEY,
	school_name TEXT NOT NULL
);
CREATE TABLE teachers (
	teacher_id TEXT PRIMARY KEY,
	school_id TEXT NOT NULL REFERENCES schools(school_id),
	teacher_email TEXT NOT NULL UNIQUE
);
CREATE TABLE staff (
	staff_id TEXT PRIMARY KEY,
	school_id TEXT NOT NULL REFERENCES schools(school_id),
	staff_email TEXT NOT NULL UNIQUE
);
CREATE TABLE students (
	student_id TEXT PRIMARY KEY,
	school_id TEXT NOT NULL REFERENCES schools(school_id),
	student_email TEXT NOT NULL UNIQUE
);
CREATE TABLE sections (
	section_id TEXT PRIMARY KEY,
	school_id TEXT NOT NULL REFERENCES schools(school_id),
	teacher_id TEXT NOT NULL REFERENCES teachers(teacher_id),
	teacher_2_id TEXT REFERENCES teachers(teacher_id)
);
CREATE TABLE enrollments (
	school_id TEXT NOT NULL REFERENCES schools(school_id),
	section_id TEXT NOT NULL REFERENCES sections(section_id),
	student_id TEXT NOT NULL REFERENCES students(student_id),
	PRIMARY KEY (section_id, student_id)
);
`

// Finding is one integrity problem surfaced by the database engine.
type Finding struct {
	Table  string
	Detail string
}

func (f Finding) String() string { return f.Table + ": " + f.Detail }

// Verify loads one district's tables into an in-memory database and
// returns every constraint violation found. A nil error with findings
// means the data is inconsistent; an error means verification itself
// failed.
func Verify(t roster.Tables) ([]Finding, error) {
	db, err := open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var findings []Finding
	ins := func(table, detail string, query string, args ...any) {
		if _, err := db.Exec(query, args...); err != nil {
			findings = append(findings, Finding{Table: table, Detail: detail + ": " + err.Error()})
		}
	}

	for _, s := range t.Schools {
		ins("schools", "school "+s.SchoolID,
			"INSERT INTO schools (school_id, school_name) VALUES (?, ?)", s.SchoolID, s.SchoolName)
	}
	for _, tr := range t.Teachers {
		ins("teachers", "teacher "+tr.TeacherID,
			"INSERT INTO teachers (teacher_id, school_id, teacher_email) VALUES (?, ?, ?)",
			tr.TeacherID, tr.SchoolID, tr.TeacherEmail)
	}
	for _, sf := range t.Staff {
		ins("staff", "staff "+sf.StaffID,
			"INSERT INTO staff (staff_id, school_id, staff_email) VALUES (?, ?, ?)",
			sf.StaffID, sf.SchoolID, sf.StaffEmail)
	}
	for _, st := range t.Students {
		ins("students", "student "+st.StudentID,
			"INSERT INTO students (student_id, school_id, student_email) VALUES (?, ?, ?)",
			st.StudentID, st.SchoolID, st.StudentEmail)
	}
	for _, sc := range t.Sections {
		teacher2 := sql.NullString{String: sc.Teacher2ID, Valid: sc.Teacher2ID != ""}
		ins("sections", "section "+sc.SectionID,
			"INSERT INTO sections (section_id, school_id, teacher_id, teacher_2_id) VALUES (?, ?, ?, ?)",
			sc.SectionID, sc.SchoolID, sc.TeacherID, teacher2)
	}
	for _, e := range t.Enrollments {
		ins("enrollments", fmt.Sprintf("enrollment %s/%s", e.SectionID, e.StudentID),
			"INSERT INTO enrollments (school_id, section_id, student_id) VALUES (?, ?, ?)",
			e.SchoolID, e.SectionID, e.StudentID)
	}

	crossSchool, err := crossSchoolFindings(db)
	if err != nil {
		return nil, err
	}
	return append(findings, crossSchool...), nil
}

func open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// crossSchoolFindings reports rows whose foreign keys resolve but cross a
// school boundary: sections taught by another school's teacher, and
// enrollments whose student or section lives in a different school.
func crossSchoolFindings(db *sql.DB) ([]Finding, error) {
	var findings []Finding

	queries := []struct {
		table string
		query string
	}{
		{"sections", `
			SELECT s.section_id FROM sections s
			JOIN teachers t ON t.teacher_id = s.teacher_id
			WHERE t.school_id != s.school_id
			UNION
			SELECT s.section_id FROM sections s
			JOIN teachers t ON t.teacher_id = s.teacher_2_id
			WHERE t.school_id != s.school_id`},
		{"enrollments", `
			SELECT e.section_id || '/' || e.student_id FROM enrollments e
			JOIN students st ON st.student_id = e.student_id
			JOIN sections sc ON sc.section_id = e.section_id
			WHERE st.school_id != e.school_id OR sc.school_id != e.school_id`},
		{"students", `
			SELECT st.student_id FROM students st
			LEFT JOIN enrollments e ON e.student_id = st.student_id
			WHERE e.student_id IS NULL`},
	}

	for _, q := range queries {
		rows, err := db.Query(q.query)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", q.table, err)
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan %s: %w", q.table, err)
			}
			findings = append(findings, Finding{Table: q.table, Detail: "school mismatch or orphan: " + id})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterate %s: %w", q.table, err)
		}
		rows.Close()
	}
	return findings, nil
}
