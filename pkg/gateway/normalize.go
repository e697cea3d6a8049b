package gateway

import (
	"strconv"
	"strings"

	"mediagate/pkg/backend"
	"mediagate/pkg/models"
	"mediagate/pkg/platform"
)

// uploaderFields lists, per platform, the raw fields to try for the uploader
// name, in priority order. First non-empty wins.
var uploaderFields = map[platform.ID][]string{
	platform.TikTok:     {"uploader", "creator", "uploader_id"},
	platform.Instagram:  {"uploader", "channel", "uploader_id"},
	platform.Twitter:    {"uploader", "uploader_id"},
	platform.SoundCloud: {"uploader", "uploader_id"},
	platform.YouTube:    {"uploader", "channel", "creator"},
}

var defaultUploaderFields = []string{"uploader", "creator", "channel", "uploader_id"}

// engagementPlatforms are the platforms whose records carry meaningful
// like/comment/repost counters worth surfacing.
var engagementPlatforms = map[platform.ID]bool{
	platform.TikTok:    true,
	platform.Instagram: true,
	platform.Twitter:   true,
	platform.Facebook:  true,
	platform.Reddit:    true,
}

// normalize builds the canonical record from a raw backend result. It never
// fails: missing or malformed fields degrade to zero values.
func normalize(p platform.ID, raw *backend.RawInfo) *models.CanonicalMedia {
	m := &models.CanonicalMedia{
		ID:              raw.ID,
		Title:           raw.Title,
		Platform:        p,
		ThumbnailURL:    bestThumbnail(raw),
		DurationSeconds: durationSeconds(raw),
		ViewCount:       raw.ViewCount,
		Uploader:        uploaderName(p, raw),
		Description:     raw.Description,
		DirectURL:       raw.URL,
		DirectExt:       raw.Ext,
		Height:          raw.Height,
	}

	if engagementPlatforms[p] {
		m.Engagement = engagement(raw)
	}

	for _, f := range raw.Formats {
		if f.URL == "" {
			// a variant without a resolvable URL is useless downstream
			continue
		}
		m.Variants = append(m.Variants, models.MediaVariant{
			FormatID:      f.FormatID,
			Ext:           f.Ext,
			Width:         f.Width,
			Height:        f.Height,
			FilesizeBytes: f.Filesize,
			VCodec:        f.VCodec,
			ACodec:        f.ACodec,
			URL:           f.URL,
			Note:          f.FormatNote,
			ABRKbps:       f.ABR,
		})
	}

	return m
}

// durationSeconds prefers the numeric field, then the colon-delimited
// string. Parse failures mean zero, never an error.
func durationSeconds(raw *backend.RawInfo) int {
	if raw.Duration > 0 {
		return int(raw.Duration)
	}
	return parseClockDuration(raw.DurationString)
}

// parseClockDuration turns "SS", "MM:SS" or "HH:MM:SS" into seconds.
// Anything it cannot parse is zero.
func parseClockDuration(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// bestThumbnail prefers the single thumbnail field, else the candidate with
// the largest pixel area among entries that have a URL.
func bestThumbnail(raw *backend.RawInfo) string {
	if raw.Thumbnail != "" {
		return raw.Thumbnail
	}
	best, bestArea := "", -1
	for _, t := range raw.Thumbnails {
		if t.URL == "" {
			continue
		}
		if area := t.Width * t.Height; area > bestArea {
			best, bestArea = t.URL, area
		}
	}
	return best
}

func uploaderName(p platform.ID, raw *backend.RawInfo) string {
	fields, ok := uploaderFields[p]
	if !ok {
		fields = defaultUploaderFields
	}
	for _, name := range fields {
		if v := rawField(raw, name); v != "" {
			return v
		}
	}
	return ""
}

func rawField(raw *backend.RawInfo, name string) string {
	switch name {
	case "uploader":
		return raw.Uploader
	case "creator":
		return raw.Creator
	case "channel":
		return raw.Channel
	case "uploader_id":
		return raw.UploaderID
	}
	return ""
}

func engagement(raw *backend.RawInfo) map[string]int64 {
	counts := make(map[string]int64)
	if raw.LikeCount != nil {
		counts["likes"] = *raw.LikeCount
	}
	if raw.CommentCount != nil {
		counts["comments"] = *raw.CommentCount
	}
	if raw.RepostCount != nil {
		counts["reposts"] = *raw.RepostCount
	}
	if len(counts) == 0 {
		return nil
	}
	return counts
}
