// Package api is the HTTP boundary: routing, the shared-secret gate, and
// the response shaping on top of the gateway core.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mediagate/pkg/format"
	"mediagate/pkg/gateway"
	"mediagate/pkg/models"
	"mediagate/pkg/selector"
)

const (
	serviceName    = "mediagate"
	serviceVersion = "1.0.0"
)

type Server struct {
	Port    int
	Gateway *gateway.Service
	// APIKey gates the data endpoints. Set once at startup, never mutated.
	APIKey string
	WebUI  bool
	Debug  bool
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("Starting API server", "addr", fmt.Sprintf("http://localhost:%d", s.Port), "web_ui", s.WebUI)
	return http.ListenAndServe(addr, s.Router())
}

// Router builds the full handler tree; exported so tests can drive it
// through httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware)

	if s.WebUI {
		r.Get("/", s.handleWebIndex)
	} else {
		r.Get("/", s.handleIndex)
	}
	r.Get("/health", s.handleHealth)
	if s.Debug {
		// testing convenience only, never enabled in normal operation
		r.Get("/api/get-key", s.handleGetKey)
	}

	r.Group(func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Post("/api/video-info", s.handleVideoInfo)
		r.Post("/api/download-links", s.handleDownloadLinks)
	})

	return r
}

// corsMiddleware answers preflights and opens the API to browser callers,
// mirroring the permissive posture of the original service.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get("X-API-Key")
		if provided == "" || provided != s.APIKey {
			s.respondJSON(w, http.StatusUnauthorized, errorResponse{
				Error: "Unauthorized: Invalid or missing API key",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"name":        serviceName,
		"version":     serviceVersion,
		"description": "Platform-aware media resolution gateway",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetKey(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"api_key": s.APIKey})
}

func (s *Server) handleVideoInfo(w http.ResponseWriter, r *http.Request) {
	url, ok := s.decodeURL(w, r)
	if !ok {
		return
	}

	media, gerr := s.Gateway.Resolve(r.Context(), url)
	if gerr != nil {
		s.respondExtractionError(w, gerr)
		return
	}

	resp := videoInfoResponse{
		ID:          media.ID,
		Title:       media.Title,
		Thumbnail:   media.ThumbnailURL,
		Duration:    format.Duration(media.DurationSeconds),
		ViewCount:   format.Views(media.ViewCount),
		Uploader:    media.Uploader,
		Platform:    string(media.Platform),
		Description: media.Description,
		Engagement:  media.Engagement,
		Formats:     make([]formatJSON, 0, len(media.Variants)),
	}
	for _, v := range media.Variants {
		resp.Formats = append(resp.Formats, toFormatJSON(v, ""))
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownloadLinks(w http.ResponseWriter, r *http.Request) {
	url, ok := s.decodeURL(w, r)
	if !ok {
		return
	}

	media, gerr := s.Gateway.Resolve(r.Context(), url)
	if gerr != nil {
		s.respondExtractionError(w, gerr)
		return
	}

	buckets := selector.Select(media)
	resp := downloadLinksResponse{
		Platform:       string(media.Platform),
		VideoWithAudio: labeledFormats(buckets.Combined),
		VideoOnly:      labeledFormats(buckets.VideoOnly),
		AudioOnly:      labeledFormats(buckets.AudioOnly),
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// decodeURL parses the request body and rejects missing URLs before the
// gateway (and therefore the backend) is ever touched.
func (s *Server) decodeURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: "URL is required",
			Kind:  string(gateway.KindInvalidInput),
		})
		return "", false
	}
	return req.URL, true
}

// All classified extraction failures are the caller's or the upstream
// content's problem, so every one of them is a 400; the kind field carries
// the finer taxonomy.
func (s *Server) respondExtractionError(w http.ResponseWriter, gerr *gateway.Error) {
	s.respondJSON(w, http.StatusBadRequest, errorResponse{
		Error:         gerr.Human(),
		Kind:          string(gerr.Kind),
		Platform:      string(gerr.Platform),
		OriginalError: gerr.Message,
		Suggestions:   gerr.Suggestions,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("JSON encoding failed", "err", err)
	}
}

type errorResponse struct {
	Error         string   `json:"error"`
	Kind          string   `json:"kind,omitempty"`
	Platform      string   `json:"platform,omitempty"`
	OriginalError string   `json:"original_error,omitempty"`
	Suggestions   []string `json:"suggestions,omitempty"`
}

type videoInfoResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Thumbnail   string           `json:"thumbnail,omitempty"`
	Duration    string           `json:"duration"`
	ViewCount   string           `json:"view_count"`
	Uploader    string           `json:"uploader,omitempty"`
	Platform    string           `json:"platform"`
	Description string           `json:"description,omitempty"`
	Engagement  map[string]int64 `json:"engagement,omitempty"`
	Formats     []formatJSON     `json:"formats"`
}

type downloadLinksResponse struct {
	Platform       string       `json:"platform"`
	VideoWithAudio []formatJSON `json:"video_with_audio"`
	VideoOnly      []formatJSON `json:"video_only"`
	AudioOnly      []formatJSON `json:"audio_only"`
}

type formatJSON struct {
	FormatID          string  `json:"format_id"`
	Ext               string  `json:"ext"`
	Height            int     `json:"height,omitempty"`
	Width             int     `json:"width,omitempty"`
	Filesize          int64   `json:"filesize,omitempty"`
	FilesizeFormatted string  `json:"filesize_formatted,omitempty"`
	VCodec            string  `json:"vcodec,omitempty"`
	ACodec            string  `json:"acodec,omitempty"`
	URL               string  `json:"url"`
	FormatNote        string  `json:"format_note,omitempty"`
	ABR               float64 `json:"abr,omitempty"`
	Quality           string  `json:"quality,omitempty"`
}

func toFormatJSON(v models.MediaVariant, quality string) formatJSON {
	return formatJSON{
		FormatID:          v.FormatID,
		Ext:               v.Ext,
		Height:            v.Height,
		Width:             v.Width,
		Filesize:          v.FilesizeBytes,
		FilesizeFormatted: format.FileSize(v.FilesizeBytes),
		VCodec:            v.VCodec,
		ACodec:            v.ACodec,
		URL:               v.URL,
		FormatNote:        v.Note,
		ABR:               v.ABRKbps,
		Quality:           quality,
	}
}

// labeledFormats attaches the human quality label each bucket entry carries
// on the download-links endpoint.
func labeledFormats(bucket []models.MediaVariant) []formatJSON {
	out := make([]formatJSON, 0, len(bucket))
	for _, v := range bucket {
		out = append(out, toFormatJSON(v, qualityLabel(v)))
	}
	return out
}

func qualityLabel(v models.MediaVariant) string {
	if v.Height > 0 {
		return strconv.Itoa(v.Height) + "p"
	}
	if v.ABRKbps > 0 {
		return fmt.Sprintf("%.0fkbps", v.ABRKbps)
	}
	return "Unknown quality"
}
