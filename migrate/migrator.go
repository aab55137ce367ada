// Package migrate copies repository metadata (labels, milestones, custom
// properties and the custom metadata file) from a source repository to a target.
package migrate

import (
	"context"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/config"
	"github.com/ryclarke/gh-metadata-migrator/scm"
)

// Migration steps, in the order they run for each pair.
const (
	StepLabels     = "labels"
	StepProperties = "properties"
	StepMetadata   = "metadata"
)

// AvailableSteps lists every step in execution order.
var AvailableSteps = []string{StepLabels, StepProperties, StepMetadata}

// Options controls which steps run and how the metadata file is written.
type Options struct {
	Steps []string

	MetadataPath      string
	MetadataBranch    string
	MetadataMessage   string
	OverwriteMetadata bool

	// ValidateAfter re-checks labels and milestones after each pair and logs what is missing.
	ValidateAfter bool
}

// OptionsFromConfig reads migration options from the viper instance on ctx.
func OptionsFromConfig(ctx context.Context) Options {
	viper := config.Viper(ctx)

	return Options{
		Steps:             viper.GetStringSlice(config.Steps),
		MetadataPath:      viper.GetString(config.MetadataPath),
		MetadataBranch:    viper.GetString(config.MetadataBranch),
		MetadataMessage:   viper.GetString(config.MetadataMessage),
		OverwriteMetadata: viper.GetBool(config.MetadataOverwrite),
		ValidateAfter:     viper.GetBool(config.ValidateAfter),
	}
}

// Migrator transfers metadata between one source and one target endpoint.
type Migrator struct {
	source scm.Provider
	target scm.Provider
	logger *zap.Logger
	opts   Options
	steps  []string
}

// New creates a Migrator. An unknown or empty step list is rejected.
func New(source, target scm.Provider, logger *zap.Logger, opts Options) (*Migrator, error) {
	steps, err := ParseSteps(opts.Steps)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Migrator{
		source: source,
		target: target,
		logger: logger,
		opts:   opts,
		steps:  steps,
	}, nil
}

// ParseSteps validates the requested steps and returns them in execution order.
// Entries may themselves be comma-separated.
func ParseSteps(requested []string) ([]string, error) {
	wanted := mapset.NewThreadUnsafeSet[string]()

	for _, entry := range requested {
		for _, step := range strings.Split(entry, ",") {
			if step = strings.ToLower(strings.TrimSpace(step)); step != "" {
				wanted.Add(step)
			}
		}
	}

	if unknown := wanted.Difference(mapset.NewThreadUnsafeSet(AvailableSteps...)); unknown.Cardinality() > 0 {
		return nil, fmt.Errorf("unknown migration steps %v (expected any of %v)", mapset.Sorted(unknown), AvailableSteps)
	}

	if wanted.IsEmpty() {
		return nil, fmt.Errorf("no migration steps selected (expected any of %v)", AvailableSteps)
	}

	steps := make([]string, 0, wanted.Cardinality())
	for _, step := range AvailableSteps {
		if wanted.Contains(step) {
			steps = append(steps, step)
		}
	}

	return steps, nil
}

// Steps returns the enabled steps in execution order.
func (m *Migrator) Steps() []string {
	return append([]string(nil), m.steps...)
}
