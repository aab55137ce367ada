package migrate

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ryclarke/gh-metadata-migrator/scm"
	"github.com/ryclarke/gh-metadata-migrator/scm/fake"
)

var (
	srcRef = scm.RepoRef{Owner: "src-org", Name: "service"}
	tgtRef = scm.RepoRef{Owner: "tgt-org", Name: "service"}
)

const metadataFile = ".github/custom-metadata.json"

func defaultOptions() Options {
	return Options{
		Steps:           AvailableSteps,
		MetadataPath:    metadataFile,
		MetadataBranch:  "main",
		MetadataMessage: "Add custom metadata file",
	}
}

type testEnv struct {
	migrator *Migrator
	source   *fake.Fake
	target   *fake.Fake
	logs     *observer.ObservedLogs
}

// newTestEnv creates a migrator over two fakes, each holding an empty repository.
func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()

	source, target := fake.NewFake(), fake.NewFake()
	source.AddRepository(srcRef)
	target.AddRepository(tgtRef)

	core, logs := observer.New(zap.DebugLevel)

	m, err := New(source, target, zap.New(core), opts)
	if err != nil {
		t.Fatalf("Failed to create migrator: %v", err)
	}

	return &testEnv{migrator: m, source: source, target: target, logs: logs}
}

// checkResult verifies the status and, if given, the message of a result
func checkResult(t *testing.T, got Result, wantStatus Status, wantMessage string) {
	t.Helper()

	if got.Status != wantStatus {
		t.Errorf("Expected status %s, got %s (%s)", wantStatus, got.Status, got.Message)
	}
	if wantMessage != "" && got.Message != wantMessage {
		t.Errorf("Expected message %q, got %q", wantMessage, got.Message)
	}
}

// checkLogged verifies that a message was logged the given number of times
func checkLogged(t *testing.T, logs *observer.ObservedLogs, message string, want int) {
	t.Helper()

	if got := logs.FilterMessage(message).Len(); got != want {
		t.Errorf("Expected %q to be logged %d times, got %d", message, want, got)
	}
}
