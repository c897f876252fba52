package media

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"voice-session-bot/internal/core/domain"

	"golang.org/x/net/html"
)

var (
	videoIDPattern  = regexp.MustCompile(`/watch\?v=([A-Za-z0-9_-]{11})`)
	isoDurationExpr = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)
)

// ParseWatchPage extracts track metadata from the head of a watch page.
// Missing fields are left empty.
func ParseWatchPage(page []byte) (domain.TrackDescriptor, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return domain.TrackDescriptor{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var (
		track    domain.TrackDescriptor
		docTitle string
		inAuthor bool
		traverse func(*html.Node)
	)

	traverse = func(n *html.Node) {
		enteredAuthor := false
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				applyMeta(&track, n)
			case "title":
				docTitle = strings.TrimSpace(getTextContent(n))
			case "span":
				if attr(n, "itemprop") == "author" {
					inAuthor, enteredAuthor = true, true
				}
			case "link":
				if inAuthor && attr(n, "itemprop") == "name" && track.Artist == "" {
					track.Artist = attr(n, "content")
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}

		if enteredAuthor {
			inAuthor = false
		}
	}

	traverse(doc)

	if track.Title == "" {
		track.Title = strings.TrimSuffix(docTitle, " - YouTube")
	}
	return track, nil
}

func applyMeta(track *domain.TrackDescriptor, n *html.Node) {
	content := attr(n, "content")
	if content == "" {
		return
	}

	switch {
	case attr(n, "property") == "og:title" || attr(n, "name") == "title":
		if track.Title == "" {
			track.Title = content
		}
	case attr(n, "property") == "og:url":
		track.URL = content
	case attr(n, "property") == "og:image":
		track.Thumbnail = content
	case attr(n, "itemprop") == "duration":
		if d, ok := parseISODuration(content); ok {
			track.Duration = d
		}
	case attr(n, "name") == "author":
		if track.Artist == "" {
			track.Artist = content
		}
	}
}

// ParseSearchResults returns the video IDs on a results page in order of
// appearance, without duplicates.
func ParseSearchResults(page []byte) []string {
	matches := videoIDPattern.FindAllSubmatch(page, -1)

	seen := make(map[string]bool, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		id := string(m[1])
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// parseISODuration handles the PT#H#M#S subset used by watch pages.
func parseISODuration(s string) (time.Duration, bool) {
	m := isoDurationExpr.FindStringSubmatch(s)
	if m == nil || s == "PT" {
		return 0, false
	}

	var d time.Duration
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, false
		}
		d += time.Duration(v) * unit
	}
	return d, true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func getTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(getTextContent(c))
	}

	return text.String()
}
