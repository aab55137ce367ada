package github

import (
	"context"

	"github.com/google/go-github/v68/github"

	"github.com/ryclarke/gh-metadata-migrator/scm"
)

// ListLabels lists every label of the repository, following pagination.
func (g *Github) ListLabels(ctx context.Context, repo scm.RepoRef) ([]*scm.Label, error) {
	output := make([]*scm.Label, 0)
	opt := &github.ListOptions{PerPage: pageSize}

	for {
		var labels []*github.Label
		var resp *github.Response

		err := g.call(ctx, "list labels", func() (*github.Response, error) {
			var err error
			labels, resp, err = g.client.Issues.ListLabels(ctx, repo.Owner, repo.Name, opt)
			return resp, err
		})
		if err != nil {
			return nil, err
		}

		for _, label := range labels {
			output = append(output, &scm.Label{
				Name:        label.GetName(),
				Color:       label.GetColor(),
				Description: label.GetDescription(),
			})
		}

		if resp.NextPage == 0 {
			break
		}

		opt.Page = resp.NextPage
	}

	return output, nil
}

// CreateLabel creates a label. GitHub answers 422 when the name is taken,
// which surfaces as an error matching scm.ErrAlreadyExists.
func (g *Github) CreateLabel(ctx context.Context, repo scm.RepoRef, label *scm.Label) error {
	req := &github.Label{
		Name:        github.Ptr(label.Name),
		Color:       github.Ptr(label.Color),
		Description: github.Ptr(label.Description),
	}

	return g.call(ctx, "create label "+label.Name, func() (*github.Response, error) {
		_, resp, err := g.client.Issues.CreateLabel(ctx, repo.Owner, repo.Name, req)
		return resp, err
	})
}
