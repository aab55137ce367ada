package scm

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

var providerFactories = make(map[string]ProviderFactory)

// ProviderFactory constructs a Provider for one side (source or target) of a migration.
type ProviderFactory func(ctx context.Context, opts Options) (Provider, error)

// Options carries everything a provider needs to talk to one platform endpoint.
type Options struct {
	BaseURL   string
	Token     string
	VerifyTLS bool
	CABundle  string

	// Timeout bounds each HTTP attempt; MaxRetries bounds retries of transient failures.
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// RateLimitMaxWait caps how long a rate-limited request waits for the limit to reset.
	RateLimitMaxWait time.Duration

	Logger *zap.Logger
}

// Provider defines the repository metadata operations needed for a migration.
type Provider interface {
	// ListLabels lists every label of the repository.
	ListLabels(ctx context.Context, repo RepoRef) ([]*Label, error)
	// CreateLabel creates a label, returning an error matching ErrAlreadyExists if it is already present.
	CreateLabel(ctx context.Context, repo RepoRef, label *Label) error

	// ListMilestones lists every milestone of the repository, open and closed.
	ListMilestones(ctx context.Context, repo RepoRef) ([]*Milestone, error)
	// CreateMilestone creates a milestone, returning an error matching ErrAlreadyExists if it is already present.
	CreateMilestone(ctx context.Context, repo RepoRef, milestone *Milestone) error

	// GetCustomProperties returns the custom property values set on the repository.
	GetCustomProperties(ctx context.Context, repo RepoRef) ([]*PropertyValue, error)
	// SetCustomProperties creates or updates custom property values on the repository.
	SetCustomProperties(ctx context.Context, repo RepoRef, values []*PropertyValue) error

	// GetFile reads a file from the default branch, returning an error matching ErrNotFound if absent.
	GetFile(ctx context.Context, repo RepoRef, path string) (*File, error)
	// PutFile creates (or, with a SHA, updates) a file on a branch.
	PutFile(ctx context.Context, repo RepoRef, update *FileUpdate) error
}

// Get constructs a registered provider by name.
func Get(ctx context.Context, name string, opts Options) (Provider, error) {
	if factory, exists := providerFactories[name]; exists {
		return factory(ctx, opts)
	}

	return nil, fmt.Errorf("provider %q not registered (available: %v)", name, Registered())
}

// Register a new provider factory by name.
func Register(name string, factory ProviderFactory) {
	if _, exists := providerFactories[name]; !exists {
		providerFactories[name] = factory
	}
}

// Registered returns the sorted names of all registered providers.
func Registered() []string {
	names := make([]string, 0, len(providerFactories))
	for name := range providerFactories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
