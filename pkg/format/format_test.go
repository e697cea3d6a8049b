package format

import "testing"

func TestDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{3661, "1:01:01"},
		{320, "0:05:20"},
		{0, "0:00:00"},
		{59, "0:00:59"},
		{3600, "1:00:00"},
		{-5, "0:00:00"},
		{86400 + 61, "24:01:01"},
	}
	for _, tt := range tests {
		if got := Duration(tt.seconds); got != tt.want {
			t.Errorf("Duration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestViews(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 views"},
		{999, "999 views"},
		{1000, "1.0K views"},
		{1500, "1.5K views"},
		{999_999, "1000.0K views"},
		{2_000_000, "2.0M views"},
		{1_234_567, "1.2M views"},
	}
	for _, tt := range tests {
		if got := Views(tt.n); got != tt.want {
			t.Errorf("Views(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, ""},
		{-1, ""},
		{1_500_000, "1.5 MB"},
		{1_048_576, "1.0 MB"},
		{123_456_789, "123.5 MB"},
	}
	for _, tt := range tests {
		if got := FileSize(tt.bytes); got != tt.want {
			t.Errorf("FileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
