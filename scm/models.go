package scm

import (
	"fmt"
	"strings"
	"time"
)

// RepoRef identifies a repository by owner (organization or user) and name.
type RepoRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// String renders the reference in "owner/name" notation.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoRef splits an "owner/name" identifier into a RepoRef.
// Exactly one '/' is allowed and neither side may be empty.
func ParseRepoRef(identifier string) (RepoRef, error) {
	parts := strings.Split(identifier, "/")
	if len(parts) != 2 {
		return RepoRef{}, &ValidationError{
			Value:  identifier,
			Reason: fmt.Sprintf("must be 'org/repo' (found %d '/' separators)", len(parts)-1),
		}
	}

	ref := RepoRef{Owner: strings.TrimSpace(parts[0]), Name: strings.TrimSpace(parts[1])}
	if ref.Owner == "" || ref.Name == "" {
		return RepoRef{}, &ValidationError{Value: identifier, Reason: "must be 'org/repo' with non-empty org and repo"}
	}

	return ref, nil
}

// Label is a repository issue label.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

// Milestone is a repository milestone. State is "open" or "closed".
type Milestone struct {
	Title       string     `json:"title"`
	State       string     `json:"state"`
	Description string     `json:"description,omitempty"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

// PropertyValue is a custom property value attached to a repository. The value
// is passed through untouched: a string, a list of strings, or nil.
type PropertyValue struct {
	Name  string `json:"property_name"`
	Value any    `json:"value"`
}

// File is a single file read from a repository, with its content already decoded.
type File struct {
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Encoding string `json:"encoding"`
	Content  []byte `json:"-"`
}

// FileUpdate describes a write of a single file to a repository branch.
// An empty SHA creates the file; a non-empty SHA updates that revision.
type FileUpdate struct {
	Path    string
	Branch  string
	Message string
	Content []byte
	SHA     string
}
