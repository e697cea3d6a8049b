// Package backend wraps the external extraction tool behind a narrow
// contract. The tool is treated as a black box: it either produces a loose
// metadata record or reports a classifiable download failure.
package backend

import (
	"context"

	"mediagate/pkg/resolver"
)

// Backend resolves a URL into a raw metadata record. Implementations must
// honor ctx cancellation and must not retry (the tool retries internally).
type Backend interface {
	Name() string
	Fetch(ctx context.Context, url string, cfg resolver.Config) (*RawInfo, error)
}

// DownloadError is a failure reported by the extraction tool itself, as
// opposed to a failure to run it. Its message carries the platform's own
// wording and is what the gateway classifies.
type DownloadError struct {
	Msg string
}

func (e *DownloadError) Error() string { return e.Msg }

// RawInfo mirrors the loose record the extraction tool emits. No field is
// guaranteed to be present; the gateway normalizer owns all defaulting.
type RawInfo struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Thumbnail      string         `json:"thumbnail"`
	Thumbnails     []RawThumbnail `json:"thumbnails"`
	Duration       float64        `json:"duration"`
	DurationString string         `json:"duration_string"`
	ViewCount      int64          `json:"view_count"`
	Uploader       string         `json:"uploader"`
	UploaderID     string         `json:"uploader_id"`
	Creator        string         `json:"creator"`
	Channel        string         `json:"channel"`
	Description    string         `json:"description"`
	LikeCount      *int64         `json:"like_count"`
	CommentCount   *int64         `json:"comment_count"`
	RepostCount    *int64         `json:"repost_count"`
	// URL/Ext/Width/Height describe a single pre-muxed link some platforms
	// return instead of (or in addition to) a format list.
	URL     string      `json:"url"`
	Ext     string      `json:"ext"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Formats []RawFormat `json:"formats"`
}

type RawThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type RawFormat struct {
	FormatID   string  `json:"format_id"`
	Ext        string  `json:"ext"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Filesize   int64   `json:"filesize"`
	VCodec     string  `json:"vcodec"`
	ACodec     string  `json:"acodec"`
	URL        string  `json:"url"`
	FormatNote string  `json:"format_note"`
	ABR        float64 `json:"abr"`
}
