// Package enrich fills metadata gaps the extraction backend leaves, using
// lightweight public endpoints instead of a full re-extraction.
package enrich

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"mediagate/pkg/client"
)

// Enricher resolves missing titles and thumbnails through platform oEmbed
// endpoints. Only YouTube is covered today; other platforms rarely return
// records without titles.
type Enricher struct {
	Client client.HTTPClient
}

func New(c client.HTTPClient) *Enricher {
	return &Enricher{Client: c}
}

type oembedDoc struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Title resolves the exact video title via YouTube's oEmbed endpoint.
func (e *Enricher) Title(rawURL string) (string, error) {
	doc, err := e.fetchOembed(rawURL)
	if err != nil {
		return "", err
	}
	return doc.Title, nil
}

// Thumbnail resolves the oEmbed thumbnail for records that carry none.
func (e *Enricher) Thumbnail(rawURL string) (string, error) {
	doc, err := e.fetchOembed(rawURL)
	if err != nil {
		return "", err
	}
	return doc.ThumbnailURL, nil
}

func (e *Enricher) fetchOembed(rawURL string) (*oembedDoc, error) {
	id := YouTubeID(rawURL)
	if id == "" {
		return nil, errors.New("no recognizable video id in url")
	}

	watchURL := "https://www.youtube.com/watch?v=" + id
	oembedURL := "https://www.youtube.com/oembed?format=json&url=" + url.QueryEscape(watchURL)

	req, err := http.NewRequest(http.MethodGet, oembedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request: %w", err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			slog.Warn("failed to close oembed body", "err", cerr)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed status %d", resp.StatusCode)
	}

	var doc oembedDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding oembed: %w", err)
	}
	return &doc, nil
}
