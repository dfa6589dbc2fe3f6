package random_test

import (
	"testing"

	"github.com/rosterforge/rostergen/adapters/random"
)

func TestReal_Bytes(t *testing.T) {
	r := random.Real{}

	b, err := r.Bytes(32)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	if len(b) != 32 {
		t.Errorf("expected 32 bytes, got %d", len(b))
	}
}

func TestReal_Digits(t *testing.T) {
	r := random.Real{}

	s, err := r.Digits(6)
	if err != nil {
		t.Fatalf("Digits failed: %v", err)
	}
	if len(s) != 6 {
		t.Errorf("expected 6 digits, got %d", len(s))
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			t.Errorf("non-digit character: %c", c)
		}
	}
}

func TestReal_Digits_Vary(t *testing.T) {
	r := random.Real{}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s, err := r.Digits(12)
		if err != nil {
			t.Fatal(err)
		}
		seen[s] = true
	}
	// 12-digit collisions across 50 draws would indicate a broken source.
	if len(seen) < 45 {
		t.Errorf("only %d distinct values in 50 draws", len(seen))
	}
}

func TestFake_Bytes_WithValues(t *testing.T) {
	f := random.NewFake().WithValues(
		[]byte{100, 101, 102, 103},
		[]byte{200, 201, 202, 203},
	)

	b1, _ := f.Bytes(4)
	if b1[0] != 100 || b1[3] != 103 {
		t.Errorf("expected first preset values, got %v", b1)
	}

	b2, _ := f.Bytes(4)
	if b2[0] != 200 {
		t.Errorf("expected second preset value, got %v", b2)
	}
}

func TestFake_Bytes_Padding(t *testing.T) {
	f := random.NewFake().WithValues([]byte{1, 2})

	// Request more bytes than preset value
	b, _ := f.Bytes(8)
	if len(b) != 8 {
		t.Errorf("expected 8 bytes, got %d", len(b))
	}
	if b[0] != 1 || b[1] != 2 {
		t.Error("first bytes should be from preset")
	}
}

func TestFake_Digits_Deterministic(t *testing.T) {
	f1 := random.NewFake()
	f2 := random.NewFake()

	s1, _ := f1.Digits(6)
	s2, _ := f2.Digits(6)
	if s1 != s2 {
		t.Errorf("two fresh fakes disagree: %s vs %s", s1, s2)
	}

	next, _ := f1.Digits(6)
	if next == s1 {
		t.Error("consecutive draws should differ")
	}
}

func TestFake_Digits_Preset(t *testing.T) {
	f := random.NewFake().WithValues([]byte{9, 8, 7})

	s, _ := f.Digits(3)
	if s != "987" {
		t.Errorf("Digits = %s, want 987", s)
	}
}

func TestFake_Reset(t *testing.T) {
	f := random.NewFake().WithValues([]byte{1, 2, 3, 4})

	f.Bytes(4) // Use preset
	f.Bytes(4) // Use counter

	f.Reset()

	b, _ := f.Bytes(4)
	if b[0] != 1 {
		t.Error("expected preset value after Reset")
	}
}
