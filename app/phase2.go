package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rosterforge/rostergen/domain/identity"
	"github.com/rosterforge/rostergen/domain/roster"
	"github.com/rosterforge/rostergen/pkg/respschema"
)

// Phase 2 wire types. Students arrive grouped under their home section, so
// enrollments fall out of the structure instead of being a separate list
// the model could get wrong.

type phase2Response struct {
	Sections []sectionSeed `json:"sections"`
}

type sectionSeed struct {
	Name       string        `json:"name"`
	Grade      string        `json:"grade"`
	Subject    string        `json:"subject"`
	TeacherID  string        `json:"teacher_id"`
	Teacher2ID string        `json:"teacher_2_id"`
	Students   []studentSeed `json:"students"`
}

type studentSeed struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
	Grade     string `json:"grade"`
	DOB       string `json:"dob"`
}

// phase2 rosters one school against the authoritative teacher ID list from
// Phase 1. Scoping one call to one school keeps each response reliably
// under the generator's output ceiling; a failure here aborts only this
// school.
func (p *Pipeline) phase2(ctx context.Context, alloc *identity.DistrictAllocator,
	skel roster.DistrictSkeleton, school roster.School) (roster.SchoolRoster, error) {
	var sr roster.SchoolRoster

	teacherIDs := skel.TeacherIDs(school.SchoolID)
	doc, err := p.gen.Generate(ctx, p.phase2Prompt(school, teacherIDs), p.phase2Schema(teacherIDs))
	if err != nil {
		return sr, fmt.Errorf("school roster call: %w", err)
	}

	var resp phase2Response
	if err := decodeStrict(doc, &resp); err != nil {
		return sr, fmt.Errorf("school roster: %w", err)
	}
	if err := p.validatePhase2(resp, school, teacherIDs); err != nil {
		return sr, fmt.Errorf("school roster validation: %w", err)
	}

	return p.buildRoster(alloc, skel, school, resp)
}

func (p *Pipeline) phase2Prompt(school roster.School, teacherIDs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create class rosters for %s, a %s school serving grades %s through %s.\n",
		school.SchoolName, school.SchoolState, school.LowGrade, school.HighGrade)
	fmt.Fprintf(&b, "Produce exactly %d sections, each with exactly %d students.\n",
		p.params.SectionsPerSchool, p.params.StudentsPerSection)
	fmt.Fprintf(&b, "The school's teacher IDs are: %s.\n", strings.Join(teacherIDs, ", "))
	b.WriteString(`Requirements:
- Every section's teacher_id must be one of the IDs listed above; no other value is valid.
- Give at least one section a teacher_2_id (a different ID from the same list) for co-teaching; leave it as an empty string otherwise.
- Spread sections across different grade levels within the school's range, with a subject fitting the grade.
- Each student's grade must equal their section's grade, and their dob (YYYY-MM-DD) must make them the usual age for that grade.
- All student names must be realistic and varied, with no digits or special characters.
`)
	return b.String()
}

func (p *Pipeline) phase2Schema(teacherIDs []string) *respschema.Schema {
	grades := []string{"K", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}
	student := respschema.Object(map[string]*respschema.Schema{
		"first_name": respschema.String("given name"),
		"last_name":  respschema.String("family name"),
		"gender":     respschema.StringEnum("gender", "F", "M", "X"),
		"grade":      respschema.StringEnum("grade level", grades...),
		"dob":        respschema.String("date of birth, YYYY-MM-DD"),
	})
	section := respschema.ObjectWithOptional(map[string]*respschema.Schema{
		"name":         respschema.String("section name"),
		"grade":        respschema.StringEnum("grade level", grades...),
		"subject":      respschema.String("subject"),
		"teacher_id":   respschema.StringEnum("primary teacher", teacherIDs...),
		"teacher_2_id": respschema.String("co-teacher ID from the same list, or empty"),
		"students":     respschema.Array(student, p.params.StudentsPerSection),
	}, []string{"name", "grade", "subject", "teacher_id", "students"})
	return respschema.Object(map[string]*respschema.Schema{
		"sections": respschema.Array(section, p.params.SectionsPerSchool),
	})
}

// validatePhase2 rejects documents that parse but violate the roster
// contract. The generator's content is never repaired locally.
func (p *Pipeline) validatePhase2(resp phase2Response, school roster.School, teacherIDs []string) error {
	if got, want := len(resp.Sections), p.params.SectionsPerSchool; got != want {
		return fmt.Errorf("got %d sections, want %d", got, want)
	}

	valid := make(map[string]bool, len(teacherIDs))
	for _, id := range teacherIDs {
		valid[id] = true
	}

	now := p.clock.Now()
	for i, sec := range resp.Sections {
		if !valid[sec.TeacherID] {
			return fmt.Errorf("section %d references unknown teacher %q", i, sec.TeacherID)
		}
		if sec.Teacher2ID != "" {
			if !valid[sec.Teacher2ID] {
				return fmt.Errorf("section %d references unknown co-teacher %q", i, sec.Teacher2ID)
			}
			if sec.Teacher2ID == sec.TeacherID {
				return fmt.Errorf("section %d lists the same teacher twice", i)
			}
		}
		if !roster.GradeInRange(sec.Grade, school.LowGrade, school.HighGrade) {
			return fmt.Errorf("section %d grade %q outside school range %s-%s",
				i, sec.Grade, school.LowGrade, school.HighGrade)
		}
		if got, want := len(sec.Students), p.params.StudentsPerSection; got != want {
			return fmt.Errorf("section %d: got %d students, want %d", i, got, want)
		}
		for j, st := range sec.Students {
			if strings.TrimSpace(st.FirstName) == "" || strings.TrimSpace(st.LastName) == "" {
				return fmt.Errorf("section %d student %d has a placeholder name", i, j)
			}
			if !roster.ConsistentDOB(st.Grade, st.DOB, now) {
				return fmt.Errorf("section %d student %d: dob %q inconsistent with grade %q",
					i, j, st.DOB, st.Grade)
			}
		}
	}
	return nil
}

// buildRoster allocates student and section identifiers, derives
// enrollments from home sections, and applies the co-teaching and
// multi-section injectors.
func (p *Pipeline) buildRoster(alloc *identity.DistrictAllocator, skel roster.DistrictSkeleton,
	school roster.School, resp phase2Response) (roster.SchoolRoster, error) {
	sr := roster.SchoolRoster{SchoolID: school.SchoolID}

	var homes []roster.HomeSection
	for _, seed := range resp.Sections {
		sectionID, err := alloc.Next(identity.KindSection)
		if err != nil {
			return sr, err
		}
		home := roster.HomeSection{
			Section: roster.Section{
				SchoolID:   school.SchoolID,
				SectionID:  sectionID,
				TeacherID:  seed.TeacherID,
				Teacher2ID: seed.Teacher2ID,
				Name:       seed.Name,
				Grade:      seed.Grade,
				Subject:    seed.Subject,
			},
		}

		for _, st := range seed.Students {
			studentID, err := alloc.NextStudent(school.SchoolNumber)
			if err != nil {
				return sr, err
			}
			stateID, err := alloc.StateID(identity.KindStudent)
			if err != nil {
				return sr, err
			}
			studentNumber, err := alloc.NextNumber(identity.KindStudent)
			if err != nil {
				return sr, err
			}
			home.Students = append(home.Students, roster.Student{
				SchoolID:      school.SchoolID,
				StudentID:     studentID,
				StudentNumber: studentNumber,
				StateID:       stateID,
				LastName:      st.LastName,
				FirstName:     st.FirstName,
				Grade:         st.Grade,
				Gender:        st.Gender,
				DOB:           st.DOB,
				StudentEmail:  skel.Emails.Next(st.FirstName, st.LastName),
			})
		}
		homes = append(homes, home)
	}

	sections := make([]roster.Section, len(homes))
	for i := range homes {
		sections[i] = homes[i].Section
	}
	if !roster.InjectCoTeacher(sections, skel.TeacherIDs(school.SchoolID)) {
		return sr, fmt.Errorf("school %s: cannot satisfy co-teaching with %d teachers",
			school.SchoolName, len(skel.TeacherIDs(school.SchoolID)))
	}
	for i := range homes {
		homes[i].Section = sections[i]
	}

	sr.Sections = sections
	for _, h := range homes {
		sr.Students = append(sr.Students, h.Students...)
	}
	sr.Enrollments = roster.InjectMultiSection(school.SchoolID, homes)
	return sr, nil
}
