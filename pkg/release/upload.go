package release

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// AssetName is the name a file is published under: its base name.
func AssetName(path string) string {
	return filepath.Base(path)
}

// UploadURL expands an upload URL template such as
// "https://uploads.github.com/repos/o/r/releases/1/assets{?name,label}" for
// the given asset name.
func UploadURL(template, name string) string {
	base, _, _ := strings.Cut(template, "{")
	return base + "?name=" + escapeName(name)
}

// escapeName percent-encodes name for a query value, using %20 for spaces.
func escapeName(name string) string {
	return strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}

// Upload reads the file at path into memory and uploads it to the release
// identified by uploadTemplate.
func (p *Publisher) Upload(ctx context.Context, uploadTemplate, path string) (*Asset, error) {
	name := AssetName(path)
	p.reporter().Uploading(name)

	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	size := int64(len(data))
	var body io.Reader = bytes.NewReader(data)
	if p.Progress != nil {
		body = p.Progress(name, body, size)
	}

	asset, err := p.Client.UploadReleaseAsset(ctx, UploadURL(uploadTemplate, name), body, size)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}
	if asset.Name == "" {
		asset.Name = name
	}
	p.log().Debug("uploaded asset", "name", asset.Name, "id", asset.ID, "size", size)
	return asset, nil
}
