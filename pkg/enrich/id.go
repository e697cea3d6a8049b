package enrich

import "regexp"

var (
	youtubeIDRe = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube|youtu|youtube-nocookie)\.(?:com|be)/(?:watch\?v=|embed/|v/|.+\?v=|shorts/|live/)?([^&=%\?/]{11})`)
	validIDRe   = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// YouTubeID extracts the 11-character video id from the usual URL shapes,
// or accepts a bare id. Empty means the input is not recognizable.
func YouTubeID(input string) string {
	if m := youtubeIDRe.FindStringSubmatch(input); len(m) >= 2 {
		return m[1]
	}
	if validIDRe.MatchString(input) {
		return input
	}
	return ""
}
