// Package format holds the display formatters for the API boundary. All of
// them are total: absent or zero inputs yield the zero-valued string.
package format

import "fmt"

// Duration renders seconds in the H:MM:SS style of the API contract, hours
// unpadded: Duration(3661) == "1:01:01", Duration(320) == "0:05:20".
func Duration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Views abbreviates counts at the thousand and million thresholds.
func Views(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM views", float64(n)/1e6)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK views", float64(n)/1e3)
	default:
		return fmt.Sprintf("%d views", n)
	}
}

// FileSize renders bytes as decimal megabytes. Unknown sizes (zero or
// negative) render empty so the boundary can omit the field.
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/1e6)
}
