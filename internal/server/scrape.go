package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/amsync/internal/extract"
	"github.com/desertthunder/amsync/internal/models"
	"github.com/desertthunder/amsync/internal/services"
	"github.com/desertthunder/amsync/internal/shared"
)

// NoTracksMessage is reported when a page yields no tracks.
const NoTracksMessage = "No tracks found. The playlist may be empty or private."

// ScrapeRequest is the body of POST /api/scrape.
type ScrapeRequest struct {
	URL string `json:"url"`
}

// ScrapeResponse is the successful reply. Error is set only when no tracks were found.
type ScrapeResponse struct {
	Tracks       []models.Track `json:"tracks"`
	PlaylistName string         `json:"playlistName"`
	Error        string         `json:"error,omitempty"`
}

// ScrapeHandler extracts the track listing of an Apple Music playlist page.
type ScrapeHandler struct {
	fetcher services.PageFetcher
	logger  *log.Logger
}

// NewScrapeHandler creates a handler that fetches pages with fetcher.
func NewScrapeHandler(fetcher services.PageFetcher, logger *log.Logger) *ScrapeHandler {
	return &ScrapeHandler{fetcher: fetcher, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ScrapeHandler) Routes() []string {
	return []string{"/api/scrape"}
}

// ServeHTTP handles POST requests; preflight requests are answered by [CORS].
func (h *ScrapeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
		return
	}

	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: fmt.Sprintf("Internal error: %v", err)})
		return
	}

	if !services.IsAppleMusicURL(req.URL) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid Apple Music URL"})
		return
	}

	doc, err := h.fetcher.FetchPage(r.Context(), req.URL)
	switch {
	case errors.Is(err, shared.ErrFetchFailed):
		h.logger.Warn("fetch failed", "url", req.URL, "error", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: fmt.Sprintf("Failed to fetch Apple Music page: %v", err)})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: fmt.Sprintf("Internal error: %v", err)})
		return
	}

	result := extract.Extract(doc)
	h.logger.Debug("scraped playlist", "url", req.URL, "tracks", len(result.Tracks), "strategy", result.Strategy)

	resp := ScrapeResponse{Tracks: result.Tracks, PlaylistName: result.PlaylistName}
	if len(result.Tracks) == 0 {
		resp.Error = NoTracksMessage
	}
	writeJSON(w, http.StatusOK, resp)
}
