// Package release publishes local files as assets of a hosted release.
//
// A run resolves the release for a tag (creating it when missing), indexes
// the assets already attached to it, and then uploads each file in order,
// deleting a same-named asset first so that re-publishing replaces instead of
// duplicating.
package release

import (
	"context"
	"errors"
	"io"
)

const (
	// DefaultBody is the description given to releases created by a run.
	DefaultBody = "Auto-published by God Mode CI"
	// AssetsPerPage is the page size used when listing release assets.
	AssetsPerPage = 100
	// MediaType is the content type of every uploaded asset.
	MediaType = "application/octet-stream"
)

// ErrNotFound is returned by a Client when the requested release does not exist.
var ErrNotFound = errors.New("release not found")

// Release is a hosted release as returned by the remote service.
type Release struct {
	ID         int64
	Tag        string
	Name       string
	UploadURL  string
	Draft      bool
	Prerelease bool
}

// Asset is a single named file attached to a release.
type Asset struct {
	ID   int64
	Name string
	Size int64
}

// NewRelease describes a release to be created.
type NewRelease struct {
	Tag        string
	Name       string
	Body       string
	Draft      bool
	Prerelease bool
}

// Client is the subset of the release-hosting API used by a Publisher.
type Client interface {
	// GetReleaseByTag returns ErrNotFound (possibly wrapped) when no release
	// carries the tag.
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*Release, error)
	CreateRelease(ctx context.Context, owner, repo string, r NewRelease) (*Release, error)
	// ListReleaseAssets returns one page of assets; pages start at 1.
	ListReleaseAssets(ctx context.Context, owner, repo string, releaseID int64, page, perPage int) ([]Asset, error)
	DeleteReleaseAsset(ctx context.Context, owner, repo string, assetID int64) error
	// UploadReleaseAsset posts body to uploadURL, which already carries the
	// name query parameter.
	UploadReleaseAsset(ctx context.Context, uploadURL string, body io.Reader, size int64) (*Asset, error)
}

// Request names the release to publish to and the files to attach.
type Request struct {
	Owner string
	Repo  string
	Tag   string
	Files []string
}

// Result summarises a completed run.
type Result struct {
	Release  *Release
	Created  bool
	Replaced []string
	Uploaded []string
}
