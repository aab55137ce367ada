package fake

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"maps"
	"net/http"
	"strings"
	"sync"

	"github.com/ryclarke/gh-metadata-migrator/scm"
)

var _ scm.Provider = new(Fake)

var (
	instancesMu sync.Mutex
	instances   = make(map[string]*Fake)
)

func init() {
	// Register the fake provider factory
	scm.Register("fake", New)
}

// Repository holds the in-memory metadata of a single fake repository.
type Repository struct {
	Labels     []*scm.Label
	Milestones []*scm.Milestone
	Properties []*scm.PropertyValue
	Files      map[string]*scm.File
	// Branches records which branch each file was last written to.
	Branches map[string]string
}

// Fake implements an in-memory provider for testing purposes.
type Fake struct {
	Repositories map[string]*Repository // key: "owner/name"
	Errors       map[string]error       // configurable errors for testing, keyed by method name
	Calls        map[string]int         // number of calls, keyed by method name
}

// New returns the fake registered for opts.BaseURL with Use, or an empty fake if none is.
func New(_ context.Context, opts scm.Options) (scm.Provider, error) {
	instancesMu.Lock()
	defer instancesMu.Unlock()

	if f, ok := instances[opts.BaseURL]; ok {
		return f, nil
	}

	return NewFake(), nil
}

// Use makes the factory return f for the given base URL, so that commands
// resolving providers by name operate on seeded test data.
func Use(baseURL string, f *Fake) {
	instancesMu.Lock()
	defer instancesMu.Unlock()

	instances[baseURL] = f
}

// Forget removes a fake previously registered with Use.
func Forget(baseURL string) {
	instancesMu.Lock()
	defer instancesMu.Unlock()

	delete(instances, baseURL)
}

// NewFake creates an empty fake provider.
func NewFake() *Fake {
	return &Fake{
		Repositories: make(map[string]*Repository),
		Errors:       make(map[string]error),
		Calls:        make(map[string]int),
	}
}

// AddRepository creates an empty repository, returning the existing one if already present.
func (f *Fake) AddRepository(ref scm.RepoRef) *Repository {
	if repo, ok := f.Repositories[ref.String()]; ok {
		return repo
	}

	repo := &Repository{
		Files:    make(map[string]*scm.File),
		Branches: make(map[string]string),
	}
	f.Repositories[ref.String()] = repo

	return repo
}

// Repository returns the named repository or nil.
func (f *Fake) Repository(ref scm.RepoRef) *Repository {
	return f.Repositories[ref.String()]
}

// SetError configures an error to be returned by the named method.
func (f *Fake) SetError(method string, err error) {
	f.Errors[method] = err
}

// SeedErrors configures several method errors at once.
func (f *Fake) SeedErrors(errors map[string]error) {
	maps.Copy(f.Errors, errors)
}

// ClearAllErrors removes all configured errors.
func (f *Fake) ClearAllErrors() {
	f.Errors = make(map[string]error)
}

// ListLabels returns a copy of the repository labels.
func (f *Fake) ListLabels(_ context.Context, ref scm.RepoRef) ([]*scm.Label, error) {
	repo, err := f.lookup("ListLabels", ref)
	if err != nil {
		return nil, err
	}

	result := make([]*scm.Label, len(repo.Labels))
	for i, label := range repo.Labels {
		copied := *label
		result[i] = &copied
	}

	return result, nil
}

// CreateLabel adds a label unless one with the same name (case-insensitive) exists.
func (f *Fake) CreateLabel(_ context.Context, ref scm.RepoRef, label *scm.Label) error {
	repo, err := f.lookup("CreateLabel", ref)
	if err != nil {
		return err
	}

	for _, existing := range repo.Labels {
		if strings.EqualFold(existing.Name, label.Name) {
			return validationFailed("create label", "Label")
		}
	}

	copied := *label
	repo.Labels = append(repo.Labels, &copied)

	return nil
}

// ListMilestones returns a copy of the repository milestones.
func (f *Fake) ListMilestones(_ context.Context, ref scm.RepoRef) ([]*scm.Milestone, error) {
	repo, err := f.lookup("ListMilestones", ref)
	if err != nil {
		return nil, err
	}

	result := make([]*scm.Milestone, len(repo.Milestones))
	for i, milestone := range repo.Milestones {
		copied := *milestone
		result[i] = &copied
	}

	return result, nil
}

// CreateMilestone adds a milestone unless one with the same title exists.
func (f *Fake) CreateMilestone(_ context.Context, ref scm.RepoRef, milestone *scm.Milestone) error {
	repo, err := f.lookup("CreateMilestone", ref)
	if err != nil {
		return err
	}

	for _, existing := range repo.Milestones {
		if existing.Title == milestone.Title {
			return validationFailed("create milestone", "Milestone")
		}
	}

	copied := *milestone
	repo.Milestones = append(repo.Milestones, &copied)

	return nil
}

// GetCustomProperties returns a copy of the repository custom property values.
func (f *Fake) GetCustomProperties(_ context.Context, ref scm.RepoRef) ([]*scm.PropertyValue, error) {
	repo, err := f.lookup("GetCustomProperties", ref)
	if err != nil {
		return nil, err
	}

	result := make([]*scm.PropertyValue, len(repo.Properties))
	for i, value := range repo.Properties {
		copied := *value
		result[i] = &copied
	}

	return result, nil
}

// SetCustomProperties merges the given values into the repository by property name.
func (f *Fake) SetCustomProperties(_ context.Context, ref scm.RepoRef, values []*scm.PropertyValue) error {
	repo, err := f.lookup("SetCustomProperties", ref)
	if err != nil {
		return err
	}

	for _, value := range values {
		replaced := false
		for i, existing := range repo.Properties {
			if existing.Name == value.Name {
				copied := *value
				repo.Properties[i] = &copied
				replaced = true
				break
			}
		}

		if !replaced {
			copied := *value
			repo.Properties = append(repo.Properties, &copied)
		}
	}

	return nil
}

// GetFile returns a copy of the stored file.
func (f *Fake) GetFile(_ context.Context, ref scm.RepoRef, path string) (*scm.File, error) {
	repo, err := f.lookup("GetFile", ref)
	if err != nil {
		return nil, err
	}

	file, ok := repo.Files[path]
	if !ok {
		return nil, &scm.StatusError{Op: "get file", StatusCode: http.StatusNotFound, Message: "Not Found"}
	}

	copied := *file
	copied.Content = append([]byte(nil), file.Content...)

	return &copied, nil
}

// PutFile stores a file. Overwriting an existing file requires its current SHA.
func (f *Fake) PutFile(_ context.Context, ref scm.RepoRef, update *scm.FileUpdate) error {
	repo, err := f.lookup("PutFile", ref)
	if err != nil {
		return err
	}

	if existing, ok := repo.Files[update.Path]; ok && existing.SHA != update.SHA {
		return &scm.StatusError{
			Op:         "put file",
			StatusCode: http.StatusUnprocessableEntity,
			Message:    `Invalid request. "sha" wasn't supplied.`,
			Body:       []byte(`{"message":"Invalid request.\n\n\"sha\" wasn't supplied.","status":"422"}`),
		}
	}

	SeedFile(repo, update.Path, update.Content)
	repo.Branches[update.Path] = update.Branch

	return nil
}

// SeedFile stores content at path with a content-derived SHA.
func SeedFile(repo *Repository, path string, content []byte) *scm.File {
	sum := sha1.Sum(content)
	file := &scm.File{
		Path:     path,
		SHA:      hex.EncodeToString(sum[:]),
		Encoding: "base64",
		Content:  append([]byte(nil), content...),
	}
	repo.Files[path] = file

	return file
}

// lookup records the call, returns any configured error, and resolves the repository.
func (f *Fake) lookup(method string, ref scm.RepoRef) (*Repository, error) {
	f.Calls[method]++

	if err := f.Errors[method]; err != nil {
		return nil, err
	}

	repo, ok := f.Repositories[ref.String()]
	if !ok {
		return nil, &scm.StatusError{
			Op:         strings.ToLower(method),
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("repository %s not found", ref),
		}
	}

	return repo, nil
}

func validationFailed(op, resource string) error {
	return &scm.StatusError{
		Op:         op,
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "Validation Failed",
		Body:       []byte(fmt.Sprintf(`{"message":"Validation Failed","errors":[{"resource":%q,"code":"already_exists"}]}`, resource)),
	}
}
