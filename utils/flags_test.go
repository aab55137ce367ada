package utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ryclarke/gh-metadata-migrator/config"
)

func TestCheckMutuallyExclusiveFlags(t *testing.T) {
	tests := []struct {
		name        string
		flags       map[string]bool // flag name -> value to set
		checkFlags  []string        // flags to check for mutual exclusivity
		expectError bool
	}{
		{
			name:        "no flags set",
			flags:       map[string]bool{},
			checkFlags:  []string{"flag-a", "flag-b"},
			expectError: false,
		},
		{
			name:        "only one flag set",
			flags:       map[string]bool{"flag-a": true},
			checkFlags:  []string{"flag-a", "flag-b"},
			expectError: false,
		},
		{
			name:        "both flags set - should error",
			flags:       map[string]bool{"flag-a": true, "flag-b": true},
			checkFlags:  []string{"flag-a", "flag-b"},
			expectError: true,
		},
		{
			name:        "three flags, two set - should error",
			flags:       map[string]bool{"flag-a": true, "flag-b": true},
			checkFlags:  []string{"flag-a", "flag-b", "flag-c"},
			expectError: true,
		},
		{
			name:        "three flags, one set - should pass",
			flags:       map[string]bool{"flag-a": true},
			checkFlags:  []string{"flag-a", "flag-b", "flag-c"},
			expectError: false,
		},
		{
			name:        "three flags, none set - should pass",
			flags:       map[string]bool{},
			checkFlags:  []string{"flag-a", "flag-b", "flag-c"},
			expectError: false,
		},
		{
			name:        "flag value false but explicitly set - counts as set",
			flags:       map[string]bool{"flag-a": false, "flag-b": true},
			checkFlags:  []string{"flag-a", "flag-b"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}

			// Register all flags that will be checked
			for _, flagName := range tt.checkFlags {
				cmd.Flags().Bool(flagName, false, "")
			}

			// Set the specified flags
			for flagName, value := range tt.flags {
				if err := cmd.Flags().Set(flagName, fmt.Sprintf("%t", value)); err != nil {
					t.Fatalf("Failed to set flag %s: %v", flagName, err)
				}
			}

			// Run the check
			err := CheckMutuallyExclusiveFlags(cmd, tt.checkFlags...)

			if tt.expectError && err == nil {
				t.Error("Expected error but got none")
			} else if !tt.expectError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}

			// Verify error message format when error is expected
			if tt.expectError && err != nil {
				errMsg := err.Error()
				if errMsg == "" {
					t.Error("Expected non-empty error message")
				}
				// Should contain "mutually exclusive"
				if !strings.Contains(errMsg, "mutually exclusive") {
					t.Errorf("Error message should mention mutual exclusivity, got: %q", errMsg)
				}
			}
		})
	}
}

func TestBuildBoolFlags(t *testing.T) {
	tests := []struct {
		name        string
		yesName     string
		yesShort    string
		noName      string
		noShort     string
		description string
	}{
		{
			name:        "both with short flags",
			yesName:     "enable",
			yesShort:    "e",
			noName:      "no-enable",
			noShort:     "n",
			description: "enable the feature",
		},
		{
			name:        "only yes with short flag",
			yesName:     "verbose",
			yesShort:    "v",
			noName:      "no-verbose",
			noShort:     "",
			description: "verbose output",
		},
		{
			name:        "neither with short flags",
			yesName:     "sort",
			yesShort:    "",
			noName:      "no-sort",
			noShort:     "",
			description: "sort the output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}

			BuildBoolFlags(cmd, tt.yesName, tt.yesShort, tt.noName, tt.noShort, tt.description)

			// Verify yes flag exists with correct defaults
			yesFlag := cmd.PersistentFlags().Lookup(tt.yesName)
			if yesFlag == nil {
				t.Errorf("Flag %q should exist", tt.yesName)
				return
			}
			if yesFlag.DefValue != "true" {
				t.Errorf("Flag %q default should be true, got %q", tt.yesName, yesFlag.DefValue)
			}
			if yesFlag.Usage != tt.description {
				t.Errorf("Flag %q usage should be %q, got %q", tt.yesName, tt.description, yesFlag.Usage)
			}

			// Verify no flag exists and is hidden
			noFlag := cmd.PersistentFlags().Lookup(tt.noName)
			if noFlag == nil {
				t.Errorf("Flag %q should exist", tt.noName)
				return
			}
			if noFlag.DefValue != "false" {
				t.Errorf("Flag %q default should be false, got %q", tt.noName, noFlag.DefValue)
			}
			if !noFlag.Hidden {
				t.Errorf("Flag %q should be hidden", tt.noName)
			}

			// Verify short flags if specified
			if tt.yesShort != "" {
				shortFlag := cmd.PersistentFlags().ShorthandLookup(tt.yesShort)
				if shortFlag == nil {
					t.Errorf("Short flag %q should exist for %q", tt.yesShort, tt.yesName)
				} else if shortFlag.Name != tt.yesName {
					t.Errorf("Short flag %q should map to %q, got %q", tt.yesShort, tt.yesName, shortFlag.Name)
				}
			}

			if tt.noShort != "" {
				shortFlag := cmd.PersistentFlags().ShorthandLookup(tt.noShort)
				if shortFlag == nil {
					t.Errorf("Short flag %q should exist for %q", tt.noShort, tt.noName)
				} else if shortFlag.Name != tt.noName {
					t.Errorf("Short flag %q should map to %q, got %q", tt.noShort, tt.noName, shortFlag.Name)
				}
			}
		})
	}
}

func TestBindBoolFlags(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		setYesFlag  bool
		setNoFlag   bool
		noFlagValue bool
		expectError bool
		want        bool
	}{
		{
			name: "no flags set - keeps default",
			key:  config.SourceVerifyTLS,
			want: true,
		},
		{
			name: "no flags set - keeps configured value",
			key:  config.TargetVerifyTLS,
			want: false,
		},
		{
			name:       "yes flag explicitly set",
			key:        config.TargetVerifyTLS,
			setYesFlag: true,
			want:       true,
		},
		{
			name:        "no flag set to true - inverts to false",
			key:         config.SourceVerifyTLS,
			setNoFlag:   true,
			noFlagValue: true,
			want:        false,
		},
		{
			name:        "no flag set to false - inverts to true",
			key:         config.TargetVerifyTLS,
			setNoFlag:   true,
			noFlagValue: false,
			want:        true,
		},
		{
			name:        "both flags set - error",
			key:         config.SourceVerifyTLS,
			setYesFlag:  true,
			setNoFlag:   true,
			noFlagValue: true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := loadFixture(t)
			viper := config.Viper(ctx)

			cmd := &cobra.Command{Use: "test"}
			cmd.SetContext(ctx)
			cmd.Flags().Bool("verify", true, "")
			cmd.Flags().Bool("no-verify", false, "")

			if tt.setYesFlag {
				if err := cmd.Flags().Set("verify", "true"); err != nil {
					t.Fatalf("Failed to set yes flag: %v", err)
				}
			}
			if tt.setNoFlag {
				if err := cmd.Flags().Set("no-verify", fmt.Sprintf("%t", tt.noFlagValue)); err != nil {
					t.Fatalf("Failed to set no flag: %v", err)
				}
			}

			err := BindBoolFlags(cmd, tt.key, "verify", "no-verify")

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if got := viper.GetBool(tt.key); got != tt.want {
				t.Errorf("Config %q = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestBindFlags(t *testing.T) {
	ctx := loadFixture(t)

	cmd := &cobra.Command{Use: "test"}
	cmd.SetContext(ctx)
	cmd.Flags().String("output-dir", "", "")
	cmd.Flags().Int("max-retries", 0, "")

	if err := cmd.Flags().Set("output-dir", "elsewhere"); err != nil {
		t.Fatalf("Failed to set flag: %v", err)
	}

	err := BindFlags(cmd, map[string]string{
		"output-dir":  config.OutputDir,
		"max-retries": config.HTTPMaxRetries,
		"not-a-flag":  config.Steps,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	viper := config.Viper(ctx)

	checkStringEqual(t, viper.GetString(config.OutputDir), "elsewhere")

	// unchanged flags fall back to the fixture value
	if got := viper.GetInt(config.HTTPMaxRetries); got != 0 {
		t.Errorf("Expected max retries from fixture, got %d", got)
	}
	if got := viper.GetStringSlice(config.Steps); len(got) != 3 {
		t.Errorf("Expected steps to be untouched, got %v", got)
	}
}

func TestValidateRequiredConfig(t *testing.T) {
	ctx := loadFixture(t)
	config.Viper(ctx).Set(config.InputFile, "")

	checkError(t, ValidateRequiredConfig(ctx, config.OutputDir), false)

	err := ValidateRequiredConfig(ctx, config.OutputDir, config.InputFile)
	checkError(t, err, true)
	if err != nil {
		checkStringContains(t, err.Error(), config.InputFile)
	}
}

func TestValidateEnumConfig(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "console"},
		{name: "empty is allowed", value: ""},
		{name: "invalid", value: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := loadFixture(t)
			config.Viper(ctx).Set(config.LogFormat, tt.value)

			checkError(t, ValidateEnumConfig(ctx, config.LogFormat, AvailableLogFormats), tt.wantErr)
		})
	}
}
