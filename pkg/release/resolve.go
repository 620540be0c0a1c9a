package release

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/mod/semver"
)

// Resolve returns the release tagged tag, creating a published
// (non-draft, non-prerelease) one when the lookup reports ErrNotFound. The
// boolean result reports whether the release was created.
func (p *Publisher) Resolve(ctx context.Context, owner, repo, tag string) (*Release, bool, error) {
	if !semver.IsValid(tag) {
		p.log().Warn("tag is not a semantic version", "tag", tag)
	}

	rel, err := p.Client.GetReleaseByTag(ctx, owner, repo, tag)
	if err == nil {
		p.log().Debug("found release", "tag", tag, "id", rel.ID)
		return rel, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, fmt.Errorf("get release %s: %w", tag, err)
	}

	p.reporter().Creating(tag)
	body := p.Body
	if body == "" {
		body = DefaultBody
	}
	rel, err = p.Client.CreateRelease(ctx, owner, repo, NewRelease{
		Tag:  tag,
		Name: tag,
		Body: body,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create release %s: %w", tag, err)
	}
	p.log().Info("created release", "tag", tag, "id", rel.ID)
	return rel, true, nil
}
