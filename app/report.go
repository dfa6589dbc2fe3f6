package app

// Report summarizes one run: every district attempted, every school inside
// it, and which units failed. Failures never cascade across units.
type Report struct {
	RunID     string
	Districts []DistrictResult
}

// DistrictResult is the outcome for one district.
type DistrictResult struct {
	Index     int
	Name      string
	State     string
	OutputDir string
	Schools   []SchoolResult
	Err       error
}

// SchoolResult is the outcome for one school's roster generation.
type SchoolResult struct {
	SchoolID    string
	SchoolName  string
	Students    int
	Sections    int
	Enrollments int
	Err         error
}

// Failed reports whether any unit in the run failed.
func (r Report) Failed() bool {
	for _, d := range r.Districts {
		if d.Err != nil {
			return true
		}
		for _, s := range d.Schools {
			if s.Err != nil {
				return true
			}
		}
	}
	return false
}

// Written returns the output directories of successfully written districts.
func (r Report) Written() []string {
	var dirs []string
	for _, d := range r.Districts {
		if d.Err == nil && d.OutputDir != "" {
			dirs = append(dirs, d.OutputDir)
		}
	}
	return dirs
}
