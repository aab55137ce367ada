package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ryclarke/gh-metadata-migrator/scm"
	"github.com/ryclarke/gh-metadata-migrator/scm/fake"
	testutil "github.com/ryclarke/gh-metadata-migrator/utils/testing"
)

var (
	srcRef = scm.RepoRef{Owner: "src-org", Name: "service"}
	tgtRef = scm.RepoRef{Owner: "tgt-org", Name: "service"}
)

type testEnv struct {
	ctx    context.Context
	source *fake.Fake
	target *fake.Fake
}

// newTestEnv loads the fixture config, exports both tokens and registers fakes
// holding the service repository on each side.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := testutil.LoadFixture(t, "../config")
	testutil.SetTokens(t, ctx)
	source, target := testutil.UseFakes(t, ctx)

	source.AddRepository(srcRef)
	target.AddRepository(tgtRef)

	return &testEnv{ctx: ctx, source: source, target: target}
}

// writeInput writes the given lines to a pair file and returns its path.
func writeInput(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pairs.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write input file: %v", err)
	}

	return path
}

// execute runs the root command with args, returning stdout and stderr.
func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := RootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)

	return stdout.String(), stderr.String(), err
}
