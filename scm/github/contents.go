package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"

	"github.com/ryclarke/gh-metadata-migrator/scm"
)

// GetFile reads a file from the repository's default branch and decodes its content.
func (g *Github) GetFile(ctx context.Context, repo scm.RepoRef, path string) (*scm.File, error) {
	var file *github.RepositoryContent

	err := g.call(ctx, "get contents of "+path, func() (*github.Response, error) {
		var resp *github.Response
		var err error
		file, _, resp, err = g.client.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, nil)
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	if file == nil {
		return nil, fmt.Errorf("%s in %s is a directory, not a file", path, repo)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s from %s: %w", path, repo, err)
	}

	return &scm.File{
		Path:     file.GetPath(),
		SHA:      file.GetSHA(),
		Encoding: file.GetEncoding(),
		Content:  []byte(content),
	}, nil
}

// PutFile creates the file, or updates it when update.SHA names the current revision.
// go-github base64-encodes the content on the wire.
func (g *Github) PutFile(ctx context.Context, repo scm.RepoRef, update *scm.FileUpdate) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(update.Message),
		Content: update.Content,
	}

	if update.Branch != "" {
		opts.Branch = github.Ptr(update.Branch)
	}

	write := g.client.Repositories.CreateFile
	op := "create " + update.Path

	if update.SHA != "" {
		opts.SHA = github.Ptr(update.SHA)
		write = g.client.Repositories.UpdateFile
		op = "update " + update.Path
	}

	var status int

	err := g.call(ctx, op, func() (*github.Response, error) {
		_, resp, err := write(ctx, repo.Owner, repo.Name, update.Path, opts)
		if resp != nil {
			status = resp.StatusCode
		}
		return resp, err
	})
	if err != nil {
		return err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return &scm.StatusError{Op: op, StatusCode: status, Message: "expected 200 OK or 201 Created"}
	}

	return nil
}
