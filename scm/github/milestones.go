package github

import (
	"context"
	"time"

	"github.com/google/go-github/v68/github"

	"github.com/ryclarke/gh-metadata-migrator/scm"
)

// ListMilestones lists every milestone of the repository, open and closed.
func (g *Github) ListMilestones(ctx context.Context, repo scm.RepoRef) ([]*scm.Milestone, error) {
	output := make([]*scm.Milestone, 0)
	opt := &github.MilestoneListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	for {
		var milestones []*github.Milestone
		var resp *github.Response

		err := g.call(ctx, "list milestones", func() (*github.Response, error) {
			var err error
			milestones, resp, err = g.client.Issues.ListMilestones(ctx, repo.Owner, repo.Name, opt)
			return resp, err
		})
		if err != nil {
			return nil, err
		}

		for _, milestone := range milestones {
			m := &scm.Milestone{
				Title:       milestone.GetTitle(),
				State:       milestone.GetState(),
				Description: milestone.GetDescription(),
			}

			if milestone.DueOn != nil {
				due := milestone.DueOn.Time
				m.DueOn = &due
			}

			output = append(output, m)
		}

		if resp.NextPage == 0 {
			break
		}

		opt.Page = resp.NextPage
	}

	return output, nil
}

// CreateMilestone creates a milestone, keeping its state and due date.
func (g *Github) CreateMilestone(ctx context.Context, repo scm.RepoRef, milestone *scm.Milestone) error {
	req := &github.Milestone{
		Title:       github.Ptr(milestone.Title),
		Description: github.Ptr(milestone.Description),
	}

	if milestone.State != "" {
		req.State = github.Ptr(milestone.State)
	}

	if milestone.DueOn != nil {
		req.DueOn = &github.Timestamp{Time: milestone.DueOn.UTC().Truncate(time.Second)}
	}

	return g.call(ctx, "create milestone "+milestone.Title, func() (*github.Response, error) {
		_, resp, err := g.client.Issues.CreateMilestone(ctx, repo.Owner, repo.Name, req)
		return resp, err
	})
}
