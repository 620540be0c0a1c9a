package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Snider/gh-release/pkg/release"
	"github.com/google/go-github/v39/github"
	"golang.org/x/oauth2"
)

// DefaultAPIURL is the REST endpoint of github.com.
const DefaultAPIURL = "https://api.github.com/"

var (
	// NewClient is a function that creates a new GitHub client. It is a
	// variable to allow for mocking in tests.
	NewClient = func(httpClient *http.Client) *github.Client {
		return github.NewClient(httpClient)
	}
	// DefaultTransport is the transport beneath the token transport. It is a
	// variable to allow for mocking in tests.
	DefaultTransport http.RoundTripper = http.DefaultTransport
)

// NewHTTPClient returns an http.Client that sends token as a bearer
// credential on every request. A zero timeout means no timeout.
func NewHTTPClient(token string, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   DefaultTransport,
		},
		Timeout: timeout,
	}
}

// Client implements release.Client on top of the GitHub REST API.
type Client struct {
	gh *github.Client
}

// New returns a Client talking to apiURL (DefaultAPIURL when empty) through
// httpClient.
//
// Example:
//
//	c, err := github.New(github.NewHTTPClient(token, time.Minute), "")
//	if err != nil {
//		// handle error
//	}
//	rel, err := c.GetReleaseByTag(ctx, "my-org", "my-repo", "v1.0.0")
func New(httpClient *http.Client, apiURL string) (*Client, error) {
	gh := NewClient(httpClient)
	if apiURL != "" {
		u, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid api url %q: %w", apiURL, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid api url %q: scheme and host are required", apiURL)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		gh.BaseURL = u
	}
	return &Client{gh: gh}, nil
}

// GetReleaseByTag fetches the release carrying tag. A 404 is reported as
// release.ErrNotFound.
func (c *Client) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*release.Release, error) {
	r, _, err := c.gh.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %v", release.ErrNotFound, err)
		}
		return nil, err
	}
	return fromRelease(r), nil
}

// CreateRelease creates a release for nr.Tag.
func (c *Client) CreateRelease(ctx context.Context, owner, repo string, nr release.NewRelease) (*release.Release, error) {
	r, _, err := c.gh.Repositories.CreateRelease(ctx, owner, repo, &github.RepositoryRelease{
		TagName:    github.String(nr.Tag),
		Name:       github.String(nr.Name),
		Body:       github.String(nr.Body),
		Draft:      github.Bool(nr.Draft),
		Prerelease: github.Bool(nr.Prerelease),
	})
	if err != nil {
		return nil, err
	}
	return fromRelease(r), nil
}

// ListReleaseAssets fetches a single page of a release's assets.
func (c *Client) ListReleaseAssets(ctx context.Context, owner, repo string, releaseID int64, page, perPage int) ([]release.Asset, error) {
	list, _, err := c.gh.Repositories.ListReleaseAssets(ctx, owner, repo, releaseID, &github.ListOptions{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return nil, err
	}
	assets := make([]release.Asset, 0, len(list))
	for _, a := range list {
		assets = append(assets, fromAsset(a))
	}
	return assets, nil
}

// DeleteReleaseAsset removes an asset by id.
func (c *Client) DeleteReleaseAsset(ctx context.Context, owner, repo string, assetID int64) error {
	_, err := c.gh.Repositories.DeleteReleaseAsset(ctx, owner, repo, assetID)
	return err
}

// UploadReleaseAsset posts body to uploadURL as an octet stream. The body is
// sent as-is; size becomes the Content-Length.
func (c *Client) UploadReleaseAsset(ctx context.Context, uploadURL string, body io.Reader, size int64) (*release.Asset, error) {
	req, err := c.gh.NewUploadRequest(uploadURL, body, size, release.MediaType)
	if err != nil {
		return nil, err
	}
	asset := new(github.ReleaseAsset)
	if _, err := c.gh.Do(ctx, req, asset); err != nil {
		return nil, err
	}
	a := fromAsset(asset)
	return &a, nil
}

func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}

func fromRelease(r *github.RepositoryRelease) *release.Release {
	return &release.Release{
		ID:         r.GetID(),
		Tag:        r.GetTagName(),
		Name:       r.GetName(),
		UploadURL:  r.GetUploadURL(),
		Draft:      r.GetDraft(),
		Prerelease: r.GetPrerelease(),
	}
}

func fromAsset(a *github.ReleaseAsset) release.Asset {
	return release.Asset{
		ID:   a.GetID(),
		Name: a.GetName(),
		Size: int64(a.GetSize()),
	}
}
