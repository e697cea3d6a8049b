package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mediagate/pkg/backend"
	"mediagate/pkg/models"
	"mediagate/pkg/platform"
	"mediagate/pkg/resolver"
)

// fakeBackend counts invocations and replays a canned result per call.
type fakeBackend struct {
	mu    sync.Mutex
	calls int

	info    *backend.RawInfo
	err     error
	panicOn bool

	lastCfg resolver.Config
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Fetch(ctx context.Context, url string, cfg resolver.Config) (*backend.RawInfo, error) {
	f.mu.Lock()
	f.calls++
	f.lastCfg = cfg
	f.mu.Unlock()

	if f.panicOn {
		panic("backend exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestResolveSuccess(t *testing.T) {
	fb := &fakeBackend{info: &backend.RawInfo{
		ID:       "abc",
		Title:    "a title",
		Duration: 60,
		Formats: []backend.RawFormat{
			{FormatID: "22", Height: 720, VCodec: "avc1", ACodec: "mp4a", URL: "https://cdn/22"},
		},
	}}
	s := NewService(fb, nil, 0)

	m, gerr := s.Resolve(context.Background(), "https://www.tiktok.com/@u/video/1")
	if gerr != nil {
		t.Fatalf("Resolve() error = %v", gerr)
	}
	if m.Platform != platform.TikTok {
		t.Errorf("Platform = %q", m.Platform)
	}
	if m.DurationSeconds != 60 || len(m.Variants) != 1 {
		t.Errorf("unexpected record %+v", m)
	}
	if fb.lastCfg.UserAgent == "" {
		t.Error("backend must receive the platform config")
	}
}

func TestResolveClassifiesDownloadError(t *testing.T) {
	fb := &fakeBackend{err: &backend.DownloadError{Msg: "Login required to view this video"}}
	s := NewService(fb, nil, 0)

	m, gerr := s.Resolve(context.Background(), "https://www.instagram.com/reel/x/")
	if m != nil {
		t.Fatal("no record may accompany an error")
	}
	if gerr == nil || gerr.Kind != KindAuthRequired {
		t.Fatalf("gerr = %v, want AuthRequired", gerr)
	}
	if len(gerr.Suggestions) == 0 {
		t.Error("AuthRequired must carry suggestions")
	}
}

func TestResolveWrapsTransportError(t *testing.T) {
	fb := &fakeBackend{err: errors.New("exec: file busy")}
	s := NewService(fb, nil, 0)

	_, gerr := s.Resolve(context.Background(), "https://vimeo.com/1")
	if gerr == nil || gerr.Kind != KindUnknown {
		t.Fatalf("gerr = %v, want Unknown", gerr)
	}
}

func TestResolveRecoversPanics(t *testing.T) {
	fb := &fakeBackend{panicOn: true}
	s := NewService(fb, nil, 0)

	m, gerr := s.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if m != nil {
		t.Fatal("panic must not yield a record")
	}
	if gerr == nil || gerr.Kind != KindUnknown {
		t.Fatalf("gerr = %v, want Unknown from recovered panic", gerr)
	}
	if gerr.Platform != platform.YouTube {
		t.Errorf("Platform = %q", gerr.Platform)
	}
}

func TestResolveCachesResults(t *testing.T) {
	fb := &fakeBackend{info: &backend.RawInfo{ID: "abc", Title: "t"}}
	s := NewService(fb, nil, time.Minute)

	for i := 0; i < 3; i++ {
		if _, gerr := s.Resolve(context.Background(), "https://youtu.be/abc"); gerr != nil {
			t.Fatalf("Resolve() error = %v", gerr)
		}
	}
	if got := fb.callCount(); got != 1 {
		t.Errorf("backend called %d times, want 1 (cached)", got)
	}

	// fragments do not split cache entries
	if _, gerr := s.Resolve(context.Background(), "https://youtu.be/abc#t=10"); gerr != nil {
		t.Fatalf("Resolve() error = %v", gerr)
	}
	if got := fb.callCount(); got != 1 {
		t.Errorf("backend called %d times after fragment variant, want 1", got)
	}
}

func TestResolveErrorsAreNotCached(t *testing.T) {
	fb := &fakeBackend{err: &backend.DownloadError{Msg: "HTTP Error 429"}}
	s := NewService(fb, nil, time.Minute)

	s.Resolve(context.Background(), "https://youtu.be/abc")
	s.Resolve(context.Background(), "https://youtu.be/abc")

	if got := fb.callCount(); got != 2 {
		t.Errorf("backend called %d times, failures must not be cached", got)
	}
}

type fakeEnricher struct {
	title string
	err   error
	calls int
}

func (f *fakeEnricher) Title(string) (string, error) {
	f.calls++
	return f.title, f.err
}

func TestResolveEnrichesMissingYouTubeTitle(t *testing.T) {
	fb := &fakeBackend{info: &backend.RawInfo{ID: "abc"}}
	en := &fakeEnricher{title: "recovered title"}
	s := NewService(fb, en, 0)

	m, gerr := s.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if gerr != nil {
		t.Fatalf("Resolve() error = %v", gerr)
	}
	if m.Title != "recovered title" {
		t.Errorf("Title = %q", m.Title)
	}
}

func TestResolveSkipsEnrichmentWhenTitled(t *testing.T) {
	fb := &fakeBackend{info: &backend.RawInfo{ID: "abc", Title: "already here"}}
	en := &fakeEnricher{title: "other"}
	s := NewService(fb, en, 0)

	m, _ := s.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if m.Title != "already here" || en.calls != 0 {
		t.Errorf("Title = %q, enricher calls = %d", m.Title, en.calls)
	}
}

func TestResolveEnrichmentFailureIsNotFatal(t *testing.T) {
	fb := &fakeBackend{info: &backend.RawInfo{ID: "abc"}}
	en := &fakeEnricher{err: errors.New("oembed down")}
	s := NewService(fb, en, 0)

	m, gerr := s.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if gerr != nil {
		t.Fatalf("Resolve() error = %v", gerr)
	}
	if m.Title != "" {
		t.Errorf("Title = %q, want empty when enrichment fails", m.Title)
	}
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"https://YouTu.be/abc", "https://youtu.be/abc", true},
		{" https://youtu.be/abc ", "https://youtu.be/abc", true},
		{"https://youtu.be/abc#frag", "https://youtu.be/abc", true},
		{"https://youtu.be/abc?t=1", "https://youtu.be/abc", false},
		{"https://youtu.be/ABC", "https://youtu.be/abc", false},
	}
	for _, tt := range tests {
		if got := cacheKey(tt.a) == cacheKey(tt.b); got != tt.same {
			t.Errorf("cacheKey(%q) == cacheKey(%q): %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}

func TestResultCacheEviction(t *testing.T) {
	c := newResultCache(time.Minute, 2)
	c.put("a", &models.CanonicalMedia{ID: "a"})
	c.put("b", &models.CanonicalMedia{ID: "b"})
	c.put("c", &models.CanonicalMedia{ID: "c"})

	if _, ok := c.get("a"); ok {
		t.Error("oldest entry should be evicted when the cache is full")
	}
	if m, ok := c.get("c"); !ok || m.ID != "c" {
		t.Error("newest entry must survive eviction")
	}
}

func TestResultCacheExpiry(t *testing.T) {
	c := newResultCache(time.Millisecond, 8)
	c.put("a", &models.CanonicalMedia{ID: "a"})
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.get("a"); ok {
		t.Error("expired entries must not be returned")
	}
}
