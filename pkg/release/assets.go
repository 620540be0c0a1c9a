package release

import (
	"context"
	"fmt"
)

// ListAssets indexes every asset of a release by name. Pages are requested
// until one comes back empty; a short page does not end the listing.
func (p *Publisher) ListAssets(ctx context.Context, owner, repo string, releaseID int64) (map[string]int64, error) {
	assets := make(map[string]int64)
	for page := 1; ; page++ {
		batch, err := p.Client.ListReleaseAssets(ctx, owner, repo, releaseID, page, AssetsPerPage)
		if err != nil {
			return nil, fmt.Errorf("list assets of release %d (page %d): %w", releaseID, page, err)
		}
		if len(batch) == 0 {
			return assets, nil
		}
		for _, a := range batch {
			assets[a.Name] = a.ID
		}
	}
}
