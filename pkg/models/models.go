// Package models holds the canonical, backend-agnostic representation of a
// resolved media item. Records are built once per request and only read
// afterwards.
package models

import "mediagate/pkg/platform"

// MediaVariant is one downloadable rendition (a resolution/codec/container
// combination). A variant only exists if it has a resolvable URL.
type MediaVariant struct {
	FormatID      string
	Ext           string
	Width         int
	Height        int
	FilesizeBytes int64
	VCodec        string
	ACodec        string
	URL           string
	Note          string
	ABRKbps       float64
}

// HasVideo/HasAudio implement the codec partition rule: the extraction tool
// marks an absent stream with the literal "none", anything else counts as
// present.
func (v MediaVariant) HasVideo() bool { return v.VCodec != "none" }
func (v MediaVariant) HasAudio() bool { return v.ACodec != "none" }

// CanonicalMedia is the normalized result of one extraction.
type CanonicalMedia struct {
	ID              string
	Title           string
	Platform        platform.ID
	ThumbnailURL    string
	DurationSeconds int
	ViewCount       int64
	Uploader        string
	Description     string
	// Engagement carries platform-dependent counters (likes, comments,
	// reposts). Nil when the platform exposes none.
	Engagement map[string]int64
	// DirectURL is a single pre-muxed link some platforms return instead of
	// a format list; the selector synthesizes a combined variant from it.
	DirectURL string
	DirectExt string
	Height    int
	Variants  []MediaVariant
}
