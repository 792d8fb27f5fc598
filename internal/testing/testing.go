// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/mymusic/internal/models"
)

// MemoryStore is an in-memory entity store test double for services.Store.
//
// Every successful SavePlaylist call is recorded in Saves. Setting one of the *Err fields makes
// the matching method fail.
type MemoryStore struct {
	mu        sync.Mutex
	musics    map[string]models.Music
	playlists map[string]models.Playlist
	Saves     []models.Playlist

	GetMusicErr    error
	GetPlaylistErr error
	GetMusicsErr   error
	SaveErr        error
	// BeforeSave runs before a save is applied, outside the store's lock. A save whose context
	// expired meanwhile is rejected with the context's error.
	BeforeSave func(models.Playlist)
}

// NewMemoryStore creates a store seeded with the given musics.
func NewMemoryStore(musics ...models.Music) *MemoryStore {
	s := &MemoryStore{musics: make(map[string]models.Music), playlists: make(map[string]models.Playlist)}
	for _, m := range musics {
		s.musics[m.ID] = m
	}
	return s
}

// PutPlaylist stores p without recording a save.
func (s *MemoryStore) PutPlaylist(p models.Playlist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlists[p.ID] = p.Clone()
}

// PutMusic stores m.
func (s *MemoryStore) PutMusic(m models.Music) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.musics[m.ID] = m
}

// Playlist returns a copy of the stored playlist.
func (s *MemoryStore) Playlist(id string) (models.Playlist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[id]
	return p.Clone(), ok
}

// SaveCount returns the number of recorded saves.
func (s *MemoryStore) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Saves)
}

func (s *MemoryStore) GetMusicByID(ctx context.Context, id string) (models.Music, bool, error) {
	if s.GetMusicErr != nil {
		return models.Music{}, false, s.GetMusicErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.musics[id]
	return m, ok, nil
}

func (s *MemoryStore) GetPlaylistByID(ctx context.Context, id string) (models.Playlist, bool, error) {
	if s.GetPlaylistErr != nil {
		return models.Playlist{}, false, s.GetPlaylistErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[id]
	if !ok {
		return models.Playlist{}, false, nil
	}
	return p.Clone(), true, nil
}

func (s *MemoryStore) GetMusicsByPlaylistID(ctx context.Context, playlistID string) (models.MusicSet, error) {
	if s.GetMusicsErr != nil {
		return nil, s.GetMusicsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[playlistID]
	if !ok {
		return models.MusicSet{}, nil
	}
	return p.Musics.Clone(), nil
}

func (s *MemoryStore) SavePlaylist(ctx context.Context, p models.Playlist) error {
	if s.BeforeSave != nil {
		s.BeforeSave(p)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlists[p.ID] = p.Clone()
	s.Saves = append(s.Saves, p.Clone())
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// RoundTripFunc adapts a function to [http.RoundTripper]
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
