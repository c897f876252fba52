package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"voice-session-bot/internal/core/domain"
)

var ErrNoResults = errors.New("no search results")

// Resolver turns a URL or search phrase into track metadata by scraping the
// public watch page.
type Resolver struct {
	client *Client
}

func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

func (r *Resolver) Resolve(ctx context.Context, source string) (domain.TrackDescriptor, error) {
	source = strings.TrimSpace(source)

	pageURL := source
	if !IsURL(source) {
		found, err := r.search(ctx, source)
		if err != nil {
			return domain.TrackDescriptor{}, err
		}
		pageURL = found
	}

	page, err := r.client.FetchPage(ctx, pageURL)
	if err != nil {
		return domain.TrackDescriptor{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	track, err := ParseWatchPage(page)
	if err != nil {
		return domain.TrackDescriptor{}, err
	}

	track.Source = source
	if track.URL == "" {
		track.URL = pageURL
	}

	slog.Debug("Resolved track", "source", source, "title", track.Title, "url", track.URL)
	return track, nil
}

func (r *Resolver) search(ctx context.Context, query string) (string, error) {
	page, err := r.client.FetchPage(ctx, r.client.SearchURL(query))
	if err != nil {
		return "", fmt.Errorf("search %q: %w", query, err)
	}

	ids := ParseSearchResults(page)
	if len(ids) == 0 {
		return "", fmt.Errorf("search %q: %w", query, ErrNoResults)
	}
	return r.client.WatchURL(ids[0]), nil
}

// IsURL reports whether source should be fetched directly rather than searched.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
