package utils

import (
	"context"
	"strings"
	"testing"

	"github.com/ryclarke/gh-metadata-migrator/config"
)

func loadFixture(t *testing.T) context.Context {
	t.Helper()

	ctx, err := config.LoadFixture("../config/testdata", "fixture")
	if err != nil {
		t.Fatalf("Failed to load fixture config: %v", err)
	}

	return ctx
}

// checkError verifies error expectation
func checkError(t *testing.T, err error, wantError bool) {
	t.Helper()
	if (err != nil) != wantError {
		t.Errorf("error = %v, wantError %v", err, wantError)
	}
}

// checkStringEqual verifies two strings are equal
func checkStringEqual(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// checkStringContains verifies a string contains expected substring
func checkStringContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("Expected string to contain %q, got %q", want, got)
	}
}
