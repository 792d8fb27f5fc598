package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/services"
	"github.com/desertthunder/mymusic/internal/shared"
	tu "github.com/desertthunder/mymusic/internal/testing"
)

type cliHarness struct {
	t      *testing.T
	runner *Runner
	output *bytes.Buffer
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	config := shared.DefaultConfig()
	config.Export.Directory = t.TempDir()
	config.Export.RateLimit = 1000

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
		DB:     newTestDB(t),
	})
	return &cliHarness{t: t, runner: runner, output: output}
}

// run executes the root command with args and returns what it printed.
func (h *cliHarness) run(args ...string) (string, error) {
	h.t.Helper()
	h.output.Reset()
	err := h.runner.Command().Run(context.Background(), append([]string{"mymusic"}, args...))
	return h.output.String(), err
}

func (h *cliHarness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

func (h *cliHarness) seed() {
	h.t.Helper()
	h.mustRun("artist", "create", "--name", "Band", "--id", "a1")
	h.mustRun("music", "create", "--title", "First Song", "--artist-id", "a1", "--id", "m1")
	h.mustRun("music", "create", "--title", "Second Song", "--id", "m2")
	h.mustRun("playlist", "create", "--name", "Mix", "--id", "p1")
}

func TestCatalogCommands(t *testing.T) {
	h := newHarness(t)
	h.seed()

	t.Run("artist list", func(t *testing.T) {
		out := h.mustRun("artist", "list")
		if !strings.Contains(out, "a1\tBand") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("music list filtered by artist", func(t *testing.T) {
		out := h.mustRun("music", "list", "--artist-id", "a1", "--json")
		var musics []models.Music
		if err := json.Unmarshal([]byte(out), &musics); err != nil {
			t.Fatalf("invalid JSON %q: %v", out, err)
		}
		if len(musics) != 1 || musics[0].ID != "m1" || musics[0].ArtistName() != "Band" {
			t.Errorf("unexpected musics %+v", musics)
		}
	})

	t.Run("music show", func(t *testing.T) {
		out := h.mustRun("music", "show", "--id", "m1")
		if !strings.Contains(out, "Band - First Song (m1)") {
			t.Errorf("unexpected output %q", out)
		}

		_, err := h.run("music", "show", "--id", "nope")
		if services.KindOf(err) != services.KindMusicNotFound {
			t.Errorf("expected MusicNotFound, got %v", err)
		}
	})

	t.Run("music create with unknown artist", func(t *testing.T) {
		if _, err := h.run("music", "create", "--title", "Ghost", "--artist-id", "missing"); err == nil {
			t.Error("expected error for unknown artist")
		}
	})

	t.Run("playlist list", func(t *testing.T) {
		out := h.mustRun("playlist", "list")
		if !strings.Contains(out, "p1\tMix") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("missing required flag", func(t *testing.T) {
		if _, err := h.run("playlist", "show"); err == nil {
			t.Error("expected error without --id")
		}
	})
}

func TestPlaylistCommands(t *testing.T) {
	h := newHarness(t)
	h.seed()

	t.Run("empty playlist musics is an error", func(t *testing.T) {
		_, err := h.run("playlist", "musics", "--id", "p1")
		if services.KindOf(err) != services.KindMusicsAndArtistsNotFound {
			t.Fatalf("expected MusicsAndArtistsNotFound, got %v", err)
		}

		out := h.mustRun("playlist", "show", "--id", "p1")
		if !strings.Contains(out, "Musics: 0") {
			t.Errorf("expected show to accept an empty playlist, got %q", out)
		}
	})

	t.Run("add is all or nothing", func(t *testing.T) {
		_, err := h.run("playlist", "add", "--id", "p1", "--music", "m1", "--music", "nope")
		if services.KindOf(err) != services.KindMusicNotFound {
			t.Fatalf("expected MusicNotFound, got %v", err)
		}
		if _, err := h.run("playlist", "musics", "--id", "p1"); services.KindOf(err) != services.KindMusicsAndArtistsNotFound {
			t.Errorf("expected playlist to stay empty, got %v", err)
		}
	})

	t.Run("add musics", func(t *testing.T) {
		out := h.mustRun("playlist", "add", "--id", "p1", "--music", "m1", "--music", "m2")
		if !strings.Contains(out, "Added 2 musics") {
			t.Errorf("unexpected output %q", out)
		}

		h.mustRun("playlist", "add", "--id", "p1", "-m", "m1")

		out = h.mustRun("playlist", "musics", "--id", "p1", "--json")
		var musics []models.Music
		if err := json.Unmarshal([]byte(out), &musics); err != nil {
			t.Fatalf("invalid JSON %q: %v", out, err)
		}
		if len(musics) != 2 || musics[0].ID != "m1" || musics[1].ID != "m2" {
			t.Errorf("unexpected musics %+v", musics)
		}
	})

	t.Run("show as JSON", func(t *testing.T) {
		out := h.mustRun("playlist", "show", "--id", "p1", "--json")
		var export models.PlaylistExport
		if err := json.Unmarshal([]byte(out), &export); err != nil {
			t.Fatalf("invalid JSON %q: %v", out, err)
		}
		if export.Playlist.Name != "Mix" || len(export.Musics) != 2 {
			t.Errorf("unexpected export %+v", export)
		}
	})

	t.Run("export", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		out := h.mustRun("playlist", "export", "--id", "p1", "--id", "missing", "--format", "csv", "--output", dir, "--workers", "2")

		if !strings.Contains(out, "Exported: 1/2") || !strings.Contains(out, "missing") {
			t.Errorf("unexpected output %q", out)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "export_manifest.json"))
	})

	t.Run("export rejects unknown format", func(t *testing.T) {
		_, err := h.run("playlist", "export", "--id", "p1", "--format", "xml")
		if err == nil || !strings.Contains(err.Error(), "xml") {
			t.Errorf("expected invalid format error, got %v", err)
		}
	})

	t.Run("remove", func(t *testing.T) {
		out := h.mustRun("playlist", "remove", "--id", "p1", "--music", "m1")
		if !strings.Contains(out, "Removed music m1") {
			t.Errorf("unexpected output %q", out)
		}

		_, err := h.run("playlist", "remove", "--id", "p1", "--music", "m1")
		if services.KindOf(err) != services.KindMusicNotFoundInPlaylist {
			t.Errorf("expected MusicNotFoundInPlaylist, got %v", err)
		}
	})

	t.Run("unknown playlist", func(t *testing.T) {
		for _, args := range [][]string{
			{"playlist", "show", "--id", "404"},
			{"playlist", "musics", "--id", "404"},
			{"playlist", "add", "--id", "404", "--music", "m1"},
			{"playlist", "remove", "--id", "404", "--music", "m1"},
		} {
			if _, err := h.run(args...); services.KindOf(err) != services.KindPlaylistNotFound {
				t.Errorf("%v: expected PlaylistNotFound, got %v", args, err)
			}
		}
	})
}

func TestRouter(t *testing.T) {
	h := newHarness(t)
	h.seed()
	h.mustRun("playlist", "add", "--id", "p1", "--music", "m2")

	router, err := h.runner.router(context.Background())
	if err != nil {
		t.Fatalf("router failed: %v", err)
	}

	tests := []struct {
		path   string
		status int
	}{
		{path: "/health", status: http.StatusOK},
		{path: "/api/v1/playlists/p1", status: http.StatusOK},
		{path: "/api/v1/playlists/p1/musics/m2", status: http.StatusOK},
		{path: "/api/v1/playlists/p1/musics/m1", status: http.StatusNotFound},
		{path: "/api/v1/playlists/404", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}

	t.Run("authentication enabled", func(t *testing.T) {
		h.runner.config.Auth = shared.AuthConfig{TokenProviderURL: "http://localhost:1"}
		defer func() { h.runner.config.Auth = shared.AuthConfig{} }()

		router, err := h.runner.router(context.Background())
		if err != nil {
			t.Fatalf("router failed: %v", err)
		}

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/playlists/p1", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 without credentials, got %d", rec.Code)
		}
	})
}
