// Package search resolves free-text queries to YouTube video candidates.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ppalone/ytsearch"
)

// MaxCandidates bounds every result list presented to a user.
const MaxCandidates = 3

// queryTimeout caps a single provider round trip. Timeouts surface as
// provider errors to the pending request; nothing is retried.
const queryTimeout = 5 * time.Second

// ErrNotConfigured reports that no search provider is available. Callers are
// expected to degrade to a no-op rather than fail the request.
var ErrNotConfigured = errors.New("search: provider not configured")

// Candidate is one search hit, ordered by provider relevance.
type Candidate struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Client wraps the YouTube search provider.
type Client struct {
	yt *ytsearch.Client
}

// New builds a search client with the default HTTP transport.
func New() *Client {
	return &Client{yt: ytsearch.NewClient(nil)}
}

// Search returns up to MaxCandidates hits in provider order. Zero matches is
// an empty slice, not an error. Provider failures are wrapped and returned
// as-is; the caller decides how to surface them.
func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := c.yt.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	out := make([]Candidate, 0, MaxCandidates)
	for _, r := range res.Results {
		if r.VideoID == "" {
			continue
		}
		out = append(out, Candidate{
			VideoID:      r.VideoID,
			Title:        r.Title,
			ThumbnailURL: thumbnailURL(r.VideoID),
		})
		if len(out) == MaxCandidates {
			break
		}
	}
	return out, nil
}

// thumbnailURL is the stable medium-quality thumbnail for a video id.
func thumbnailURL(id string) string {
	return "https://i.ytimg.com/vi/" + id + "/mqdefault.jpg"
}
