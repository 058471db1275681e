// Package github wraps the GitHub REST API for login identity and the
// repository sync reconciler, translating upstream failures into domain
// error categories.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

// Account is the authenticated GitHub user identity used at login.
type Account struct {
	ID        int64
	Login     string
	Name      *string
	Email     *string
	AvatarURL string
}

// Repo is the subset of a remote repository mirrored into projects.
type Repo struct {
	ID          int64
	Name        string
	Description *string
	HTMLURL     *string
	Language    *string
	Stars       int
}

// Client talks to the GitHub REST API with a per-call user token.
type Client struct{}

// NewClient creates a Client.
func NewClient() *Client {
	return &Client{}
}

// AuthenticatedUser fetches the token owner's identity. When the profile
// email is private it falls back to the primary address from the emails API.
func (c *Client) AuthenticatedUser(ctx context.Context, token string) (*Account, error) {
	api := gh.NewClient(nil).WithAuthToken(token)

	user, _, err := api.Users.Get(ctx, "")
	if err != nil {
		return nil, classify(err, "fetch github user")
	}

	account := &Account{
		ID:        user.GetID(),
		Login:     user.GetLogin(),
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.GetAvatarURL(),
	}

	if account.Email == nil {
		emails, _, err := api.Users.ListEmails(ctx, &gh.ListOptions{PerPage: 100})
		if err != nil {
			return nil, classify(err, "fetch github emails")
		}
		for _, e := range emails {
			if e.GetPrimary() {
				account.Email = e.Email
				break
			}
		}
		if account.Email == nil && len(emails) > 0 {
			account.Email = emails[0].Email
		}
	}

	return account, nil
}

// ListOwnedRepos fetches the token owner's full repository list, paginating
// transparently, most recently pushed first.
func (c *Client) ListOwnedRepos(ctx context.Context, token string) ([]Repo, error) {
	api := gh.NewClient(nil).WithAuthToken(token)

	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		Type:        "owner",
		Sort:        "pushed",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var repos []Repo
	for {
		page, resp, err := api.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, classify(err, "list github repositories")
		}
		for _, r := range page {
			repos = append(repos, Repo{
				ID:          r.GetID(),
				Name:        r.GetName(),
				Description: r.Description,
				HTMLURL:     r.HTMLURL,
				Language:    r.Language,
				Stars:       r.GetStargazersCount(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return repos, nil
}

// classify maps upstream failures onto the domain error taxonomy: 401 means
// the stored token is no longer valid, 403 with a rate-limit indicator means
// throttling, any other 403 stays a permissions problem.
func classify(err error, op string) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%s: %w", op, domain.ErrRateLimited)
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%s: %w", op, domain.ErrRateLimited)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%s: %w", op, domain.ErrTokenExpired)
		case http.StatusForbidden:
			if strings.Contains(strings.ToLower(respErr.Message), "rate limit") {
				return fmt.Errorf("%s: %w", op, domain.ErrRateLimited)
			}
			return fmt.Errorf("%s: %w", op, domain.ErrForbidden)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
