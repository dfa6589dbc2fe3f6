// Package random provides the digit sources behind identifier allocation.
package random

import (
	"crypto/rand"
	"sync"

	"github.com/rosterforge/rostergen/domain/identity"
)

// Both sources back the identity registry's suffix draws.
var (
	_ identity.DigitSource = Real{}
	_ identity.DigitSource = (*Fake)(nil)
)

// Real uses crypto/rand for secure randomness.
type Real struct{}

// Bytes generates n cryptographically secure random bytes.
func (Real) Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// Digits generates n random decimal digit characters.
func (r Real) Digits(n int) (string, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	return digitsFromBytes(b, n), nil
}

// Fake provides deterministic randomness for testing.
type Fake struct {
	mu      sync.Mutex
	counter int
	values  [][]byte // Preset values to return
	index   int
}

// NewFake creates a fake random source.
func NewFake() *Fake {
	return &Fake{}
}

// WithValues sets preset byte values to return.
func (f *Fake) WithValues(values ...[]byte) *Fake {
	f.values = values
	f.index = 0
	return f
}

// Bytes returns preset bytes or deterministic bytes based on counter.
func (f *Fake) Bytes(n int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Return preset value if available
	if f.index < len(f.values) {
		v := f.values[f.index]
		f.index++
		if len(v) >= n {
			return v[:n], nil
		}
		// Pad if needed
		result := make([]byte, n)
		copy(result, v)
		return result, nil
	}

	// Generate deterministic bytes
	f.counter++
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = byte((f.counter*31 + i*7) % 256)
	}
	return b, nil
}

// Digits returns deterministic decimal digit characters.
func (f *Fake) Digits(n int) (string, error) {
	b, err := f.Bytes(n)
	if err != nil {
		return "", err
	}
	return digitsFromBytes(b, n), nil
}

// Reset resets the fake to initial state.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter = 0
	f.index = 0
}

func digitsFromBytes(b []byte, n int) string {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = '0' + b[i]%10
	}
	return string(out)
}
