// Package selector partitions and ranks the variants of a canonical record
// into the three buckets the API exposes.
package selector

import (
	"sort"

	"mediagate/pkg/models"
	"mediagate/pkg/platform"
)

const (
	maxVideoOnly = 5
	maxAudioOnly = 3

	// fallbackHeight is assumed for synthesized direct links when the record
	// carries no height. A guess, kept as documented policy.
	fallbackHeight = 720
)

// Buckets is the selector output. Combined keeps every entry; the other two
// are truncated to the limits above.
type Buckets struct {
	Combined  []models.MediaVariant
	VideoOnly []models.MediaVariant
	AudioOnly []models.MediaVariant
}

// directFallbackPlatforms often return a single pre-muxed link instead of a
// format list; for those a combined variant is synthesized from it.
var directFallbackPlatforms = map[platform.ID]bool{
	platform.TikTok:    true,
	platform.Instagram: true,
	platform.Facebook:  true,
	platform.Twitter:   true,
	platform.Reddit:    true,
	platform.Pinterest: true,
	platform.LinkedIn:  true,
}

// Select is deterministic for a given variants sequence: the partition
// follows the codec rule, video buckets drop variants without a usable
// height (they cannot be ranked), sorting is stable so first-seen wins ties.
func Select(m *models.CanonicalMedia) Buckets {
	var b Buckets

	for _, v := range m.Variants {
		switch {
		case v.HasVideo() && v.HasAudio():
			if v.Height > 0 {
				b.Combined = append(b.Combined, v)
			}
		case v.HasVideo():
			if v.Height > 0 {
				b.VideoOnly = append(b.VideoOnly, v)
			}
		case v.HasAudio():
			b.AudioOnly = append(b.AudioOnly, v)
		}
	}

	sort.SliceStable(b.Combined, func(i, j int) bool {
		return b.Combined[i].Height > b.Combined[j].Height
	})
	sort.SliceStable(b.VideoOnly, func(i, j int) bool {
		return b.VideoOnly[i].Height > b.VideoOnly[j].Height
	})
	sort.SliceStable(b.AudioOnly, func(i, j int) bool {
		return b.AudioOnly[i].ABRKbps > b.AudioOnly[j].ABRKbps
	})

	if len(b.VideoOnly) > maxVideoOnly {
		b.VideoOnly = b.VideoOnly[:maxVideoOnly]
	}
	if len(b.AudioOnly) > maxAudioOnly {
		b.AudioOnly = b.AudioOnly[:maxAudioOnly]
	}

	if len(b.Combined) == 0 && m.DirectURL != "" && directFallbackPlatforms[m.Platform] {
		b.Combined = append(b.Combined, synthesizeDirect(m))
	}

	return b
}

func synthesizeDirect(m *models.CanonicalMedia) models.MediaVariant {
	height := m.Height
	if height == 0 {
		height = fallbackHeight
	}
	ext := m.DirectExt
	if ext == "" {
		ext = "mp4"
	}
	return models.MediaVariant{
		FormatID: "direct",
		Ext:      ext,
		Height:   height,
		URL:      m.DirectURL,
	}
}
