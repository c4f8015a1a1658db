// Package testkit holds the few helpers tests across packages share
package testkit

import (
	"strings"
	"sync"
	"testing"
)

// MustPanic fails the test unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fn()
}

// MustContain fails when out lacks want, dumping out in full
func MustContain(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("output lacks %q:\n%s", want, out)
	}
}

// Swap replaces a package seam until the test ends
func Swap[T any](t *testing.T, seam *T, v T) {
	t.Helper()
	prev := *seam
	*seam = v
	t.Cleanup(func() { *seam = prev })
}

var seams sync.Mutex

// Serial holds a process wide lock for the rest of the test. Tests that
// Swap a seam call it first.
func Serial(t *testing.T) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}
