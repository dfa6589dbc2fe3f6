package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rosterforge/rostergen/domain/identity"
	"github.com/rosterforge/rostergen/domain/roster"
	"github.com/rosterforge/rostergen/pkg/respschema"
)

// Phase 1 wire types. The generator invents names and contact details
// only; identifiers and emails are allocated locally so uniqueness is
// guaranteed by construction, not by trusting the model.

type phase1Response struct {
	District phase1District `json:"district"`
	Schools  []schoolSeed   `json:"schools"`
}

type phase1District struct {
	Name string `json:"name"`
}

type schoolSeed struct {
	Name               string       `json:"name"`
	LowGrade           string       `json:"low_grade"`
	HighGrade          string       `json:"high_grade"`
	PrincipalFirstName string       `json:"principal_first_name"`
	PrincipalLastName  string       `json:"principal_last_name"`
	Address            string       `json:"address"`
	City               string       `json:"city"`
	Zip                string       `json:"zip"`
	Phone              string       `json:"phone"`
	Teachers           []personSeed `json:"teachers"`
	Staff              []staffSeed  `json:"staff"`
}

type personSeed struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Title     string `json:"title"`
}

type staffSeed struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
	Title      string `json:"title"`
}

// phase1 requests the district skeleton and turns it into the typed
// hand-off every Phase 2 call consumes. Any failure here fails the whole
// district: downstream work depends on a complete, consistent ID set, so
// no partial skeleton is ever accepted.
func (p *Pipeline) phase1(ctx context.Context, alloc *identity.DistrictAllocator) (roster.DistrictSkeleton, error) {
	var skel roster.DistrictSkeleton

	doc, err := p.gen.Generate(ctx, p.phase1Prompt(alloc.State()), p.phase1Schema())
	if err != nil {
		return skel, fmt.Errorf("district skeleton call: %w", err)
	}

	var resp phase1Response
	if err := decodeStrict(doc, &resp); err != nil {
		return skel, fmt.Errorf("district skeleton: %w", err)
	}
	if err := p.validatePhase1(resp); err != nil {
		return skel, fmt.Errorf("district skeleton validation: %w", err)
	}

	return p.buildSkeleton(alloc, resp)
}

func (p *Pipeline) phase1Prompt(state string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invent a realistic public school district in the US state %s.\n", state)
	fmt.Fprintf(&b, "The district has exactly %d schools.\n", p.params.SchoolsPerDistrict)
	fmt.Fprintf(&b, "Each school has exactly %d teachers and exactly %d non-teaching staff members.\n",
		p.params.TeachersPerSchool, p.params.StaffPerSchool)
	b.WriteString(`Requirements:
- The district name must sound like a real school district and must not contain the word "Example".
- Each school has a grade range (low_grade and high_grade from K, 1-12) appropriate to its kind (elementary, middle, high).
- All first and last names must be realistic, varied, and contain no digits or special characters; avoid reusing the same full name twice.
- Every school needs a street address, city, 5-digit zip code, and phone number plausible for the state.
- Teacher titles are classroom roles (e.g. "Teacher", "Science Teacher"); staff titles and departments are administrative (e.g. "Registrar", "Front Office").
- Do not include any identifiers, numbers, or email addresses; those are assigned elsewhere.
`)
	return b.String()
}

func (p *Pipeline) phase1Schema() *respschema.Schema {
	person := respschema.Object(map[string]*respschema.Schema{
		"first_name": respschema.String("given name"),
		"last_name":  respschema.String("family name"),
		"title":      respschema.String("classroom role"),
	})
	staff := respschema.Object(map[string]*respschema.Schema{
		"first_name": respschema.String("given name"),
		"last_name":  respschema.String("family name"),
		"department": respschema.String("administrative department"),
		"title":      respschema.String("administrative role"),
	})
	grades := []string{"K", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}
	school := respschema.Object(map[string]*respschema.Schema{
		"name":                 respschema.String("school name"),
		"low_grade":            respschema.StringEnum("lowest grade served", grades...),
		"high_grade":           respschema.StringEnum("highest grade served", grades...),
		"principal_first_name": respschema.String("principal given name"),
		"principal_last_name":  respschema.String("principal family name"),
		"address":              respschema.String("street address"),
		"city":                 respschema.String("city"),
		"zip":                  respschema.String("5-digit zip code"),
		"phone":                respschema.String("phone number"),
		"teachers":             respschema.Array(person, p.params.TeachersPerSchool),
		"staff":                respschema.Array(staff, p.params.StaffPerSchool),
	})
	return respschema.Object(map[string]*respschema.Schema{
		"district": respschema.Object(map[string]*respschema.Schema{
			"name": respschema.String("district name"),
		}),
		"schools": respschema.Array(school, p.params.SchoolsPerDistrict),
	})
}

// validatePhase1 rejects structurally valid documents that violate the
// requested shape. Valid JSON that breaks an invariant is a validation
// failure for the district, exactly like malformed output.
func (p *Pipeline) validatePhase1(resp phase1Response) error {
	if strings.TrimSpace(resp.District.Name) == "" {
		return fmt.Errorf("empty district name")
	}
	if got, want := len(resp.Schools), p.params.SchoolsPerDistrict; got != want {
		return fmt.Errorf("got %d schools, want %d", got, want)
	}
	for i, s := range resp.Schools {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("school %d: empty name", i)
		}
		if !roster.ValidGradeRange(s.LowGrade, s.HighGrade) {
			return fmt.Errorf("school %q: invalid grade range %s-%s", s.Name, s.LowGrade, s.HighGrade)
		}
		if got, want := len(s.Teachers), p.params.TeachersPerSchool; got != want {
			return fmt.Errorf("school %q: got %d teachers, want %d", s.Name, got, want)
		}
		if got, want := len(s.Staff), p.params.StaffPerSchool; got != want {
			return fmt.Errorf("school %q: got %d staff, want %d", s.Name, got, want)
		}
		for j, t := range s.Teachers {
			if strings.TrimSpace(t.FirstName) == "" || strings.TrimSpace(t.LastName) == "" {
				return fmt.Errorf("school %q: teacher %d has a placeholder name", s.Name, j)
			}
		}
		for j, f := range s.Staff {
			if strings.TrimSpace(f.FirstName) == "" || strings.TrimSpace(f.LastName) == "" {
				return fmt.Errorf("school %q: staff %d has a placeholder name", s.Name, j)
			}
		}
	}
	return nil
}

// buildSkeleton allocates every Phase 1 identifier and applies the
// district-level invariant injectors (district administrator, dual-role
// staff record).
func (p *Pipeline) buildSkeleton(alloc *identity.DistrictAllocator, resp phase1Response) (roster.DistrictSkeleton, error) {
	skel := roster.DistrictSkeleton{
		District: roster.District{
			Name:        resp.District.Name,
			State:       alloc.State(),
			EmailDomain: roster.EmailDomain(resp.District.Name, alloc.State()),
		},
		TeachersBySchool: make(map[string][]roster.Teacher),
	}
	skel.Emails = roster.NewEmailAllocator(skel.District.EmailDomain)
	emails := skel.Emails

	for _, seed := range resp.Schools {
		schoolID, err := alloc.Next(identity.KindSchool)
		if err != nil {
			return skel, err
		}
		schoolNumber, err := alloc.NextNumber(identity.KindSchool)
		if err != nil {
			return skel, err
		}
		school := roster.School{
			SchoolID:       schoolID,
			SchoolName:     seed.Name,
			SchoolNumber:   schoolNumber,
			LowGrade:       seed.LowGrade,
			HighGrade:      seed.HighGrade,
			Principal:      seed.PrincipalFirstName + " " + seed.PrincipalLastName,
			PrincipalEmail: emails.Next(seed.PrincipalFirstName, seed.PrincipalLastName),
			SchoolAddress:  seed.Address,
			SchoolCity:     seed.City,
			SchoolState:    alloc.State(),
			SchoolZip:      seed.Zip,
			SchoolPhone:    seed.Phone,
		}
		skel.Schools = append(skel.Schools, school)

		for _, t := range seed.Teachers {
			teacherID, err := alloc.Next(identity.KindTeacher)
			if err != nil {
				return skel, err
			}
			stateID, err := alloc.StateID(identity.KindTeacher)
			if err != nil {
				return skel, err
			}
			teacherNumber, err := alloc.NextNumber(identity.KindTeacher)
			if err != nil {
				return skel, err
			}
			skel.TeachersBySchool[schoolID] = append(skel.TeachersBySchool[schoolID], roster.Teacher{
				SchoolID:       schoolID,
				TeacherID:      teacherID,
				TeacherNumber:  teacherNumber,
				StateTeacherID: stateID,
				TeacherEmail:   emails.Next(t.FirstName, t.LastName),
				FirstName:      t.FirstName,
				LastName:       t.LastName,
				Title:          t.Title,
			})
		}

		for _, f := range seed.Staff {
			staffID, err := alloc.Next(identity.KindStaff)
			if err != nil {
				return skel, err
			}
			skel.Staff = append(skel.Staff, roster.Staff{
				SchoolID:   schoolID,
				StaffID:    staffID,
				StaffEmail: emails.Next(f.FirstName, f.LastName),
				FirstName:  f.FirstName,
				LastName:   f.LastName,
				Department: f.Department,
				Title:      f.Title,
			})
		}
	}

	skel.Staff = roster.InjectDistrictAdmin(skel.Staff)

	dualTeacher := skel.TeachersBySchool[skel.Schools[0].SchoolID][0]
	dualID, err := alloc.Next(identity.KindStaff)
	if err != nil {
		return skel, err
	}
	skel.Staff = roster.InjectDualRole(skel.Staff, dualTeacher, dualID)

	return skel, nil
}
