// Package roster defines the relational rostering data model and the pure
// logic that keeps it consistent: referential-integrity checks, invariant
// injectors, and grade/DOB rules.
package roster

// District is the top-level grouping. It owns a disjoint ID space and its
// own output directory, and scopes every child record.
type District struct {
	Name        string
	State       string // two-letter US state abbreviation
	EmailDomain string
}

// School belongs to exactly one District.
type School struct {
	SchoolID       string
	SchoolName     string
	SchoolNumber   string
	LowGrade       string
	HighGrade      string
	Principal      string
	PrincipalEmail string
	SchoolAddress  string
	SchoolCity     string
	SchoolState    string
	SchoolZip      string
	SchoolPhone    string
}

// Teacher belongs to exactly one School. A teacher may be referenced by up
// to two sections (co-teaching).
type Teacher struct {
	SchoolID       string
	TeacherID      string
	TeacherNumber  string
	StateTeacherID string
	TeacherEmail   string
	FirstName      string
	LastName       string
	Title          string
}

// Staff belongs to exactly one School. One staff record per district is the
// District Administrator; one is the dual-role record sharing a teacher's
// email under a distinct Staff_id.
type Staff struct {
	SchoolID   string
	StaffID    string
	StaffEmail string
	FirstName  string
	LastName   string
	Department string
	Title      string
}

// Student belongs to exactly one School. DOB and Grade must be mutually
// consistent as of generation time.
type Student struct {
	SchoolID      string
	StudentID     string
	StudentNumber string
	StateID       string
	LastName      string
	FirstName     string
	Grade         string
	Gender        string
	DOB           string // YYYY-MM-DD
	StudentEmail  string
}

// Section belongs to exactly one School and references one or two teachers
// of that school.
type Section struct {
	SchoolID   string
	SectionID  string
	TeacherID  string
	Teacher2ID string // empty unless co-taught
	Name       string
	Grade      string
	Subject    string
}

// Enrollment is the Student/Section junction. Every student appears in at
// least one enrollment.
type Enrollment struct {
	SchoolID  string
	SectionID string
	StudentID string
}

// Tables is the complete six-table dataset for one district.
type Tables struct {
	District    District
	Schools     []School
	Teachers    []Teacher
	Staff       []Staff
	Students    []Student
	Sections    []Section
	Enrollments []Enrollment
}

// TitleDistrictAdmin is the title carried by exactly one staff record per
// district.
const TitleDistrictAdmin = "District Administrator"

// DistrictSkeleton is the Phase 1 hand-off: the authoritative district,
// school, teacher, and staff records that every Phase 2 call builds on.
type DistrictSkeleton struct {
	District         District
	Schools          []School
	TeachersBySchool map[string][]Teacher // keyed by SchoolID
	Staff            []Staff

	// Emails is the district-wide email allocator. Phase 2 draws student
	// emails from it so within-type uniqueness spans the whole district.
	Emails *EmailAllocator
}

// Teachers returns all skeleton teachers in school order.
func (s DistrictSkeleton) Teachers() []Teacher {
	var out []Teacher
	for _, sch := range s.Schools {
		out = append(out, s.TeachersBySchool[sch.SchoolID]...)
	}
	return out
}

// TeacherIDs returns the authoritative teacher ID set for one school.
func (s DistrictSkeleton) TeacherIDs(schoolID string) []string {
	ts := s.TeachersBySchool[schoolID]
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.TeacherID
	}
	return ids
}

// HomeSection groups a section with the students the generator placed in
// it. Enrollments are derived from this grouping, so a student's home
// section is always its first enrollment.
type HomeSection struct {
	Section  Section
	Students []Student
}

// SchoolRoster is the Phase 2 hand-off for a single school.
type SchoolRoster struct {
	SchoolID    string
	Sections    []Section
	Students    []Student
	Enrollments []Enrollment
}
