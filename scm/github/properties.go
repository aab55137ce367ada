package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"

	"github.com/ryclarke/gh-metadata-migrator/scm"
)

// GetCustomProperties returns the custom property values set on the repository.
func (g *Github) GetCustomProperties(ctx context.Context, repo scm.RepoRef) ([]*scm.PropertyValue, error) {
	var values []*github.CustomPropertyValue

	err := g.call(ctx, "get custom properties", func() (*github.Response, error) {
		var resp *github.Response
		var err error
		values, resp, err = g.client.Repositories.GetAllCustomPropertyValues(ctx, repo.Owner, repo.Name)
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	output := make([]*scm.PropertyValue, 0, len(values))
	for _, value := range values {
		output = append(output, &scm.PropertyValue{Name: value.PropertyName, Value: value.Value})
	}

	return output, nil
}

// SetCustomProperties creates or updates custom property values. Only a
// 204 No Content response counts as success.
func (g *Github) SetCustomProperties(ctx context.Context, repo scm.RepoRef, values []*scm.PropertyValue) error {
	req := make([]*github.CustomPropertyValue, 0, len(values))
	for _, value := range values {
		req = append(req, &github.CustomPropertyValue{PropertyName: value.Name, Value: value.Value})
	}

	var status int

	err := g.call(ctx, "set custom properties", func() (*github.Response, error) {
		resp, err := g.client.Repositories.CreateOrUpdateCustomProperties(ctx, repo.Owner, repo.Name, req)
		if resp != nil {
			status = resp.StatusCode
		}
		return resp, err
	})
	if err != nil {
		return err
	}

	if status != http.StatusNoContent {
		return &scm.StatusError{
			Op:         "set custom properties",
			StatusCode: status,
			Message:    fmt.Sprintf("expected %d No Content", http.StatusNoContent),
		}
	}

	return nil
}
