package release

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Snider/gh-release/pkg/logger"
)

// readFile reads an input file. It is a variable to allow for mocking in tests.
var readFile = os.ReadFile

// Reporter receives the human-readable progress of a run.
type Reporter interface {
	Creating(tag string)
	Deleting(name string)
	Uploading(name string)
}

// ProgressFunc wraps an upload body so that transfer progress can be shown.
type ProgressFunc func(name string, body io.Reader, size int64) io.Reader

// Publisher drives a run against a Client. The zero values of Body,
// Reporter, Progress and Log are usable.
type Publisher struct {
	Client   Client
	Body     string
	Reporter Reporter
	Progress ProgressFunc
	Log      *slog.Logger
}

// NewPublisher returns a Publisher for c using the default release body.
func NewPublisher(c Client, log *slog.Logger) *Publisher {
	return &Publisher{
		Client: c,
		Body:   DefaultBody,
		Log:    log,
	}
}

// Publish resolves the release for req.Tag and uploads every file in
// req.Files, replacing assets of the same name. It stops at the first error.
func (p *Publisher) Publish(ctx context.Context, req Request) (*Result, error) {
	rel, created, err := p.Resolve(ctx, req.Owner, req.Repo, req.Tag)
	if err != nil {
		return nil, err
	}
	res := &Result{Release: rel, Created: created}

	existing, err := p.ListAssets(ctx, req.Owner, req.Repo, rel.ID)
	if err != nil {
		return res, err
	}
	p.log().Debug("indexed existing assets", "release", rel.ID, "count", len(existing))

	for _, path := range req.Files {
		name := AssetName(path)
		if id, ok := existing[name]; ok {
			p.reporter().Deleting(name)
			if err := p.Client.DeleteReleaseAsset(ctx, req.Owner, req.Repo, id); err != nil {
				return res, fmt.Errorf("delete asset %s: %w", name, err)
			}
			delete(existing, name)
			res.Replaced = append(res.Replaced, name)
		}

		asset, err := p.Upload(ctx, rel.UploadURL, path)
		if err != nil {
			return res, err
		}
		existing[asset.Name] = asset.ID
		res.Uploaded = append(res.Uploaded, asset.Name)
	}
	return res, nil
}

func (p *Publisher) reporter() Reporter {
	if p.Reporter == nil {
		return nopReporter{}
	}
	return p.Reporter
}

func (p *Publisher) log() *slog.Logger {
	if p.Log == nil {
		return logger.Discard()
	}
	return p.Log
}

type nopReporter struct{}

func (nopReporter) Creating(string)  {}
func (nopReporter) Deleting(string)  {}
func (nopReporter) Uploading(string) {}
