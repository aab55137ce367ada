package utils

import (
	"context"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/cobra"

	"github.com/ryclarke/gh-metadata-migrator/config"
)

// BuildBoolFlags adds a pair of mutually exclusive boolean flags to the given command.
// The "yes" flag enables the feature (default true), and the "no" flag disables it.
func BuildBoolFlags(cmd *cobra.Command, yesName, yesShort, noName, noShort, description string) {
	if yesShort != "" {
		cmd.PersistentFlags().BoolP(yesName, yesShort, true, description)
	} else {
		cmd.PersistentFlags().Bool(yesName, true, description)
	}

	if noShort != "" {
		cmd.PersistentFlags().BoolP(noName, noShort, false, "")
	} else {
		cmd.PersistentFlags().Bool(noName, false, "")
	}

	cmd.PersistentFlags().MarkHidden(noName)
}

// BindBoolFlags binds a pair of mutually exclusive boolean flags to the current viper context.
// Neither flag overrides the configured value unless it was set explicitly.
func BindBoolFlags(cmd *cobra.Command, key, yesName, noName string) error {
	viper := config.Viper(cmd.Context())

	// Only allow one of the flags in the pair to be set
	if err := CheckMutuallyExclusiveFlags(cmd, yesName, noName); err != nil {
		return err
	}

	for name, invert := range map[string]bool{yesName: false, noName: true} {
		if !cmd.Flags().Changed(name) {
			continue
		}

		value, err := cmd.Flags().GetBool(name)
		if err != nil {
			return err
		}

		viper.Set(key, value != invert)
	}

	return nil
}

// CheckMutuallyExclusiveFlags validates that at most one of the given flags is set.
func CheckMutuallyExclusiveFlags(cmd *cobra.Command, flags ...string) error {
	var setFlags []string

	for _, flagName := range flags {
		if cmd.Flags().Changed(flagName) {
			setFlags = append(setFlags, "--"+flagName)
		}
	}

	if len(setFlags) > 1 {
		return fmt.Errorf("mutually exclusive flags cannot be used together: %s", strings.Join(setFlags, ", "))
	}

	return nil
}

// BindFlags binds each named flag to the config key of the same entry, if the flag exists.
func BindFlags(cmd *cobra.Command, keys map[string]string) error {
	viper := config.Viper(cmd.Context())

	for flagName, key := range keys {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			continue
		}

		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", flagName, err)
		}
	}

	return nil
}

// ValidateRequiredConfig checks viper and returns an error if a key isn't set
func ValidateRequiredConfig(ctx context.Context, opts ...string) error {
	viper := config.Viper(ctx)

	for _, opt := range opts {
		if viper.GetString(opt) == "" {
			return fmt.Errorf("%s is required - set as flag or env", opt)
		}
	}

	return nil
}

// ValidateEnumConfig validates that a config value is one of the allowed choices.
func ValidateEnumConfig(ctx context.Context, key string, validChoices []string) error {
	viper := config.Viper(ctx)

	if value := viper.GetString(key); value != "" && !mapset.NewSet(validChoices...).Contains(value) {
		return fmt.Errorf("invalid %s: %q (expected one of %v)", key, value, validChoices)
	}

	return nil
}
