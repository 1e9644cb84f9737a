// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-eventforms/pkg/clock"
)

// Epoch is the fixed instant tests mount forms at.
var Epoch = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

// FakeClock returns a manual clock parked at Epoch.
func FakeClock() *clock.Fake {
	return clock.NewFake(Epoch)
}

// CaptureOutput runs a render function that writes to an io.Writer and
// returns both its result and what it wrote.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}

// AssertContains fails the test for every fragment missing from got.
func AssertContains(t *testing.T, got string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q\n--- output ---\n%s", fragment, got)
		}
	}
}

// AssertNotContains fails the test for every fragment present in got.
func AssertNotContains(t *testing.T, got string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(got, fragment) {
			t.Errorf("output unexpectedly contains %q\n--- output ---\n%s", fragment, got)
		}
	}
}
