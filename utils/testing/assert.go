// Package testing provides utility functions for testing purposes across multiple packages.
package testing

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertError validates that an error matches expected results.
func AssertError(t *testing.T, err error, wantErr bool) {
	t.Helper()

	if wantErr != (err != nil) {
		t.Fatalf("Expected error = %v, got: %v", wantErr, err)
	}
}

// AssertEqual verifies two comparable values are equal.
func AssertEqual(t *testing.T, got, want any) {
	t.Helper()

	if got != want {
		t.Errorf("got = %v, want: %v", got, want)
	}
}

// AssertDiff verifies two values are structurally equal, reporting a diff otherwise.
func AssertDiff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()

	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// AssertLength verifies the length of a string, slice, or map using reflection.
func AssertLength(t *testing.T, got any, want int) {
	t.Helper()

	v := reflect.ValueOf(got)
	kind := v.Kind()

	if kind != reflect.String && kind != reflect.Slice && kind != reflect.Map && kind != reflect.Array && kind != reflect.Chan {
		t.Fatalf("AssertLength called with unsupported type: %T", got)
	}

	if v.Len() != want {
		t.Fatalf("Expected length %d, got: %d", want, v.Len())
	}
}

// AssertContains verifies that got contains every wanted substring.
func AssertContains(t *testing.T, got string, want ...string) {
	t.Helper()

	for _, needle := range want {
		if !strings.Contains(got, needle) {
			t.Errorf("Expected output to contain %q, got: %s", needle, got)
		}
	}
}

// AssertNotContains verifies that got contains none of the unwanted substrings.
func AssertNotContains(t *testing.T, got string, unwanted ...string) {
	t.Helper()

	for _, needle := range unwanted {
		if strings.Contains(got, needle) {
			t.Errorf("Expected output to not contain %q, got: %s", needle, got)
		}
	}
}
