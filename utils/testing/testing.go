// Package testing provides utility functions for testing purposes across multiple packages.
package testing

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ryclarke/gh-metadata-migrator/config"
	"github.com/ryclarke/gh-metadata-migrator/scm/fake"
)

// Token values exported into the environment variables named by the fixture.
const (
	SourceToken = "source-token"
	TargetToken = "target-token"
)

// LoadFixture loads test configuration from the config package.
// The configPath parameter should be the relative path from the test file
// to the config directory (e.g., "../config", "../../config").
// The output directory is redirected to a per-test temporary directory.
func LoadFixture(t *testing.T, configPath string) context.Context {
	t.Helper()

	ctx, err := config.LoadFixture(filepath.Join(configPath, "testdata"), "fixture")
	if err != nil {
		t.Fatalf("Failed to load fixture config: %v", err)
	}

	config.Viper(ctx).Set(config.OutputDir, t.TempDir())

	return ctx
}

// SetTokens exports both fixture tokens into the environment for the duration of the test.
func SetTokens(t *testing.T, ctx context.Context) {
	t.Helper()

	viper := config.Viper(ctx)
	t.Setenv(viper.GetString(config.SourceTokenEnv), SourceToken)
	t.Setenv(viper.GetString(config.TargetTokenEnv), TargetToken)
}

// UseFakes registers empty fake providers for the fixture's source and target
// endpoints and removes them when the test ends.
func UseFakes(t *testing.T, ctx context.Context) (source, target *fake.Fake) {
	t.Helper()

	viper := config.Viper(ctx)
	sourceURL := viper.GetString(config.SourceBaseURL)
	targetURL := viper.GetString(config.TargetBaseURL)

	source, target = fake.NewFake(), fake.NewFake()
	fake.Use(sourceURL, source)
	fake.Use(targetURL, target)

	t.Cleanup(func() {
		fake.Forget(sourceURL)
		fake.Forget(targetURL)
	})

	return source, target
}

// FakeCmd creates a minimal cobra.Command for testing with the given context and output writer.
func FakeCmd(t *testing.T, ctx context.Context, out io.Writer) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{
		Use: "test",
	}
	cmd.SetContext(ctx)
	cmd.SetOut(out)
	cmd.SetErr(out)

	return cmd
}
