package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/services"
)

// PlaylistService is the subset of [services.PlaylistService] exposed over HTTP.
type PlaylistService interface {
	FindPlaylistByID(ctx context.Context, id string) (models.Playlist, error)
	FindMusicByID(ctx context.Context, id string) (models.Music, error)
	FindMusicsByPlaylistID(ctx context.Context, playlistID string) (models.MusicSet, error)
	AddMusicsToPlaylist(ctx context.Context, musics models.MusicSet, playlistID string) error
	FindMusicInPlaylistByMusicID(playlist models.Playlist, musicID string) (models.Music, error)
	RemoveMusicFromPlaylistByMusicID(ctx context.Context, playlistID, musicID string) error
}

// PlaylistResponse is the JSON shape of a playlist.
type PlaylistResponse struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Musics []models.Music `json:"musics"`
}

// Envelope wraps list payloads in request and response bodies.
type Envelope[T any] struct {
	Data T `json:"data"`
}

// MusicInput is one element of the add-musics request body.
type MusicInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlaylistHandler serves the playlist and music endpoints under /api/v1.
type PlaylistHandler struct {
	svc PlaylistService
}

// NewPlaylistHandler creates a PlaylistHandler backed by svc
func NewPlaylistHandler(svc PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlaylistHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/api/v1/playlists/{playlistId}", Handler: h.getPlaylist},
		{Method: http.MethodGet, Pattern: "/api/v1/playlists/{playlistId}/musics", Handler: h.listMusics},
		{Method: http.MethodPost, Pattern: "/api/v1/playlists/{playlistId}/musics", Handler: h.addMusics},
		{Method: http.MethodGet, Pattern: "/api/v1/playlists/{playlistId}/musics/{musicId}", Handler: h.getPlaylistMusic},
		{Method: http.MethodDelete, Pattern: "/api/v1/playlists/{playlistId}/musics/{musicId}", Handler: h.removeMusic},
		{Method: http.MethodGet, Pattern: "/api/v1/musics/{musicId}", Handler: h.getMusic},
	}
}

func (h *PlaylistHandler) getPlaylist(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.FindPlaylistByID(r.Context(), r.PathValue("playlistId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PlaylistResponse{ID: p.ID, Name: p.Name, Musics: p.Musics.Slice()})
}

func (h *PlaylistHandler) listMusics(w http.ResponseWriter, r *http.Request) {
	musics, err := h.svc.FindMusicsByPlaylistID(r.Context(), r.PathValue("playlistId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope[[]models.Music]{Data: musics.Slice()})
}

func (h *PlaylistHandler) addMusics(w http.ResponseWriter, r *http.Request) {
	playlistID := r.PathValue("playlistId")

	musics, err := decodeMusicInputs(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.AddMusicsToPlaylist(r.Context(), musics, playlistID); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.FindPlaylistByID(r.Context(), playlistID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Envelope[[]models.Music]{Data: p.Musics.Slice()})
}

func (h *PlaylistHandler) getPlaylistMusic(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.FindPlaylistByID(r.Context(), r.PathValue("playlistId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	m, err := h.svc.FindMusicInPlaylistByMusicID(p, r.PathValue("musicId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *PlaylistHandler) removeMusic(w http.ResponseWriter, r *http.Request) {
	err := h.svc.RemoveMusicFromPlaylistByMusicID(r.Context(), r.PathValue("playlistId"), r.PathValue("musicId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PlaylistHandler) getMusic(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.FindMusicByID(r.Context(), r.PathValue("musicId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// decodeMusicInputs parses {"data":[{"id":...}]} into a set, reporting shape problems as a validation error.
func decodeMusicInputs(r *http.Request) (models.MusicSet, error) {
	var body Envelope[[]MusicInput]
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		return nil, services.ValidationFailed(services.FieldError{Field: "body", Message: "must be valid JSON"})
	}

	if len(body.Data) == 0 {
		return nil, services.ValidationFailed(services.FieldError{Field: "data", Message: "must not be empty"})
	}

	var fields []services.FieldError
	musics := make(models.MusicSet, len(body.Data))
	for i, in := range body.Data {
		if strings.TrimSpace(in.ID) == "" {
			fields = append(fields, services.FieldError{Field: fmt.Sprintf("data[%d].id", i), Message: "must not be blank"})
			continue
		}
		musics.Add(models.Music{ID: in.ID, Title: in.Name})
	}

	if len(fields) > 0 {
		return nil, services.ValidationFailed(fields...)
	}
	return musics, nil
}

// HealthHandler reports liveness.
type HealthHandler struct{}

func (HealthHandler) Routes() []Route {
	return []Route{{Method: http.MethodGet, Pattern: "/health", Handler: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}}}
}

// RouterOptions configures [NewAPIRouter].
type RouterOptions struct {
	Logger *log.Logger
	// Auth enables token authentication on the API routes when set.
	Auth services.Authenticator
	// RateLimit in requests per second; zero disables limiting.
	RateLimit float64
	Burst     int
}

// NewAPIRouter wires the health and playlist routes with logging, rate limiting and optional authentication.
//
// The health route is never authenticated.
func NewAPIRouter(svc PlaylistService, opts RouterOptions) *BasicRouter {
	router := NewBasicRouter()
	if opts.Logger != nil {
		router.Use(Logging(opts.Logger))
	}
	if opts.RateLimit > 0 {
		router.Use(RateLimit(opts.RateLimit, opts.Burst))
	}

	router.Handler(HealthHandler{})

	if opts.Auth != nil {
		logger := opts.Logger
		if logger == nil {
			logger = log.Default()
		}
		router.Use(Authenticate(opts.Auth, logger))
	}
	router.Handler(NewPlaylistHandler(svc))

	return router
}
