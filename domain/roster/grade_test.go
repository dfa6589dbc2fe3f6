package roster_test

import (
	"testing"
	"time"

	"github.com/rosterforge/rostergen/domain/roster"
)

var now = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

func TestGradeOrdinal(t *testing.T) {
	tests := []struct {
		grade string
		want  int
		ok    bool
	}{
		{"K", 0, true},
		{"1", 1, true},
		{"12", 12, true},
		{"13", 0, false},
		{"PK", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := roster.GradeOrdinal(tt.grade)
		if (err == nil) != tt.ok {
			t.Errorf("GradeOrdinal(%q) error = %v, want ok=%v", tt.grade, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("GradeOrdinal(%q) = %d, want %d", tt.grade, got, tt.want)
		}
	}
}

func TestValidGradeRange(t *testing.T) {
	tests := []struct {
		low, high string
		want      bool
	}{
		{"K", "5", true},
		{"6", "8", true},
		{"9", "12", true},
		{"K", "K", true},
		{"5", "K", false},
		{"K", "13", false},
	}
	for _, tt := range tests {
		if got := roster.ValidGradeRange(tt.low, tt.high); got != tt.want {
			t.Errorf("ValidGradeRange(%q, %q) = %v, want %v", tt.low, tt.high, got, tt.want)
		}
	}
}

func TestGradeInRange(t *testing.T) {
	if !roster.GradeInRange("3", "K", "5") {
		t.Error("grade 3 should be inside K-5")
	}
	if roster.GradeInRange("6", "K", "5") {
		t.Error("grade 6 should be outside K-5")
	}
	if !roster.GradeInRange("K", "K", "5") {
		t.Error("grade K should be inside K-5")
	}
}

func TestConsistentDOB(t *testing.T) {
	tests := []struct {
		name  string
		grade string
		dob   string
		want  bool
	}{
		{"third grader aged 8", "3", "2017-06-01", true},
		{"kindergartner aged 5", "K", "2020-09-01", true},
		{"senior aged 17", "12", "2008-03-10", true},
		{"third grader aged 14", "3", "2011-06-01", false},
		{"third grader aged 3", "3", "2022-06-01", false},
		{"unparseable date", "3", "June 1 2017", false},
		{"unknown grade", "14", "2010-06-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roster.ConsistentDOB(tt.grade, tt.dob, now); got != tt.want {
				t.Errorf("ConsistentDOB(%q, %q) = %v, want %v", tt.grade, tt.dob, got, tt.want)
			}
		})
	}
}
