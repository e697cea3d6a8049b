package platform

import (
	"regexp"
	"strings"
)

// ID identifies the hosting platform inferred from a URL.
type ID string

const (
	YouTube     ID = "youtube"
	TikTok      ID = "tiktok"
	Instagram   ID = "instagram"
	Facebook    ID = "facebook"
	Twitter     ID = "twitter"
	Vimeo       ID = "vimeo"
	Reddit      ID = "reddit"
	Dailymotion ID = "dailymotion"
	Twitch      ID = "twitch"
	SoundCloud  ID = "soundcloud"
	Pinterest   ID = "pinterest"
	LinkedIn    ID = "linkedin"
	Unknown     ID = "unknown"
)

type rule struct {
	id ID
	re *regexp.Regexp
}

// rules are checked in order and the first match wins. The order is fixed so
// classification stays reproducible when domains could overlap (short-link
// domains vs. generic ones).
var rules = []rule{
	{YouTube, regexp.MustCompile(`(?:youtube(?:-nocookie)?\.com|youtu\.be)`)},
	{TikTok, regexp.MustCompile(`tiktok\.com`)},
	{Instagram, regexp.MustCompile(`(?:instagram\.com|instagr\.am)`)},
	{Facebook, regexp.MustCompile(`(?:facebook\.com|fb\.watch)`)},
	{Twitter, regexp.MustCompile(`(?:twitter\.com|(?:^|[^a-z0-9])x\.com)`)},
	{Vimeo, regexp.MustCompile(`vimeo\.com`)},
	{Reddit, regexp.MustCompile(`(?:reddit\.com|redd\.it)`)},
	{Dailymotion, regexp.MustCompile(`(?:dailymotion\.com|dai\.ly)`)},
	{Twitch, regexp.MustCompile(`twitch\.tv`)},
	{SoundCloud, regexp.MustCompile(`soundcloud\.com`)},
	{Pinterest, regexp.MustCompile(`(?:pinterest\.[a-z]+|pin\.it)`)},
	{LinkedIn, regexp.MustCompile(`linkedin\.com`)},
}

// Classify maps a raw URL string to a platform ID. It never fails: input is
// lowercased, matched against the ordered rule list, and anything
// unrecognized maps to Unknown.
func Classify(rawURL string) ID {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	for _, r := range rules {
		if r.re.MatchString(s) {
			return r.id
		}
	}
	return Unknown
}
