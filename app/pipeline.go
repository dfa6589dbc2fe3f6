// Package app orchestrates the two-phase generation pipeline: Phase 1
// produces a district skeleton (district, schools, teachers, staff) whose
// IDs every later call depends on; Phase 2 rosters each school against
// that skeleton, one school per call to stay under the generator's
// output-size ceiling. Execution is strictly sequential: Phase 2 needs
// Phase 1's teacher IDs, and ID allocation is single-threaded.
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rosterforge/rostergen/domain/identity"
	"github.com/rosterforge/rostergen/domain/roster"
	"github.com/rosterforge/rostergen/ports"
)

// Params are the rostering density parameters for one run.
type Params struct {
	Districts          int
	States             []string // optional explicit state per district, by index
	SchoolsPerDistrict int
	TeachersPerSchool  int
	StaffPerSchool     int
	SectionsPerSchool  int
	StudentsPerSection int
}

// Pipeline runs the full generation for one invocation.
type Pipeline struct {
	gen    ports.ContentGenerator
	writer ports.TableWriter
	reg    *identity.Registry
	clock  ports.Clock
	logger zerolog.Logger
	params Params
}

// New creates a pipeline.
func New(gen ports.ContentGenerator, writer ports.TableWriter, reg *identity.Registry,
	clock ports.Clock, logger zerolog.Logger, params Params) *Pipeline {
	return &Pipeline{
		gen:    gen,
		writer: writer,
		reg:    reg,
		clock:  clock,
		logger: logger,
		params: params,
	}
}

// Run generates every district in order. Failures are reported per unit: a
// Phase 1 failure aborts its district, a Phase 2 failure aborts only that
// school, and unaffected districts still produce valid output. The
// returned error is non-nil only when the run itself could not proceed.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	var report Report

	for i := 0; i < p.params.Districts; i++ {
		state := ""
		if i < len(p.params.States) {
			state = p.params.States[i]
		}
		alloc, err := p.reg.District(state)
		if err != nil {
			return report, fmt.Errorf("reserve district %d id space: %w", i, err)
		}

		result := p.runDistrict(ctx, alloc)
		report.Districts = append(report.Districts, result)

		if err := ctx.Err(); err != nil {
			return report, err
		}
	}
	return report, nil
}

// runDistrict executes Phase 1, all Phase 2 calls, assembly, and the write
// for one district.
func (p *Pipeline) runDistrict(ctx context.Context, alloc *identity.DistrictAllocator) DistrictResult {
	logger := p.logger.With().Int("district_index", alloc.Index()).Str("state", alloc.State()).Logger()

	skel, err := p.phase1(ctx, alloc)
	if err != nil {
		logger.Error().Err(err).Msg("district skeleton generation failed")
		return DistrictResult{Index: alloc.Index(), State: alloc.State(), Err: err}
	}

	result := DistrictResult{
		Index: alloc.Index(),
		Name:  skel.District.Name,
		State: alloc.State(),
	}
	logger = logger.With().Str("district", skel.District.Name).Logger()
	logger.Info().
		Int("schools", len(skel.Schools)).
		Int("teachers", len(skel.Teachers())).
		Int("staff", len(skel.Staff)).
		Msg("district skeleton generated")

	var rosters []roster.SchoolRoster
	for _, school := range skel.Schools {
		sr, err := p.phase2(ctx, alloc, skel, school)
		schoolResult := SchoolResult{SchoolID: school.SchoolID, SchoolName: school.SchoolName, Err: err}
		if err != nil {
			logger.Error().Err(err).Str("school", school.SchoolName).Msg("school roster generation failed")
		} else {
			schoolResult.Students = len(sr.Students)
			schoolResult.Sections = len(sr.Sections)
			schoolResult.Enrollments = len(sr.Enrollments)
			rosters = append(rosters, sr)
			logger.Info().
				Str("school", school.SchoolName).
				Int("students", len(sr.Students)).
				Int("sections", len(sr.Sections)).
				Int("enrollments", len(sr.Enrollments)).
				Msg("school roster generated")
		}
		result.Schools = append(result.Schools, schoolResult)
	}

	tables, err := Assemble(skel, rosters)
	if err != nil {
		logger.Error().Err(err).Msg("assembly failed, district output not written")
		result.Err = err
		return result
	}

	dir, err := p.writer.WriteDistrict(tables)
	if err != nil {
		result.Err = fmt.Errorf("write district files: %w", err)
		logger.Error().Err(result.Err).Msg("district write failed")
		return result
	}

	result.OutputDir = dir
	logger.Info().Str("dir", dir).Msg("district files written")
	return result
}

// decodeStrict parses one JSON document into v, rejecting unknown fields
// and trailing content. Anything less than a complete conforming document
// fails the calling unit.
func decodeStrict(doc []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("malformed generator output: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("malformed generator output: trailing data after document")
	}
	return nil
}
