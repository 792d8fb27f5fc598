package services

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/mymusic/internal/models"
)

// PlaylistService enforces playlist membership rules on top of a [Store].
//
// Every mutation loads the playlist, validates the request against the store, then saves the
// whole playlist once. Any failure aborts before the save. Mutations on the same playlist are
// serialized; reads are not.
type PlaylistService struct {
	store   Store
	locks   *keyedMutex
	timeout time.Duration
}

// NewPlaylistService creates a PlaylistService backed by store.
//
// A positive timeout bounds every store-facing operation.
func NewPlaylistService(store Store, timeout time.Duration) *PlaylistService {
	return &PlaylistService{store: store, locks: newKeyedMutex(), timeout: timeout}
}

func (s *PlaylistService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// FindPlaylistByID returns the playlist or a PlaylistNotFound error.
func (s *PlaylistService) FindPlaylistByID(ctx context.Context, id string) (models.Playlist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.findPlaylist(ctx, id)
}

func (s *PlaylistService) findPlaylist(ctx context.Context, id string) (models.Playlist, error) {
	p, ok, err := s.store.GetPlaylistByID(ctx, id)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("failed to load playlist %s: %w", id, err)
	}
	if !ok {
		return models.Playlist{}, PlaylistNotFound(id)
	}
	if p.Musics == nil {
		p.Musics = models.MusicSet{}
	}
	return p, nil
}

// FindMusicByID returns the music or a MusicNotFound error.
func (s *PlaylistService) FindMusicByID(ctx context.Context, id string) (models.Music, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.findMusic(ctx, id)
}

func (s *PlaylistService) findMusic(ctx context.Context, id string) (models.Music, error) {
	m, ok, err := s.store.GetMusicByID(ctx, id)
	if err != nil {
		return models.Music{}, fmt.Errorf("failed to load music %s: %w", id, err)
	}
	if !ok {
		return models.Music{}, MusicNotFound(id)
	}
	return m, nil
}

// FindMusicsByPlaylistID returns the musics of an existing playlist.
//
// An empty playlist is reported as MusicsAndArtistsNotFound rather than an empty set. Callers
// relying on this rule should not treat it as a missing playlist.
func (s *PlaylistService) FindMusicsByPlaylistID(ctx context.Context, playlistID string) (models.MusicSet, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.findPlaylist(ctx, playlistID); err != nil {
		return nil, err
	}

	musics, err := s.store.GetMusicsByPlaylistID(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load musics of playlist %s: %w", playlistID, err)
	}
	if len(musics) == 0 {
		return nil, MusicsAndArtistsNotFound()
	}
	return musics, nil
}

// AddMusicsToPlaylist adds every music of musics to the playlist, all or nothing.
//
// Each input is resolved by ID against the store and the stored record is what gets added. When
// several IDs are missing, which one is reported is unspecified. Musics already in the playlist
// are kept once.
func (s *PlaylistService) AddMusicsToPlaylist(ctx context.Context, musics models.MusicSet, playlistID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	unlock := s.locks.Lock(playlistID)
	defer unlock()

	p, err := s.findPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}

	resolved := make(models.MusicSet, len(musics))
	for id := range musics {
		m, err := s.findMusic(ctx, id)
		if err != nil {
			return err
		}
		resolved.Add(m)
	}

	updated := p.Clone()
	updated.Musics = updated.Musics.Union(resolved)

	if err := s.store.SavePlaylist(ctx, updated); err != nil {
		return fmt.Errorf("failed to save playlist %s: %w", playlistID, err)
	}
	return nil
}

// FindMusicInPlaylistByMusicID looks musicID up in the given playlist value without touching the store.
func (s *PlaylistService) FindMusicInPlaylistByMusicID(playlist models.Playlist, musicID string) (models.Music, error) {
	m, ok := playlist.Musics.Get(musicID)
	if !ok {
		return models.Music{}, MusicNotFoundInPlaylist(musicID)
	}
	return m, nil
}

// RemoveMusicFromPlaylistByMusicID removes one music from the playlist and saves it.
func (s *PlaylistService) RemoveMusicFromPlaylistByMusicID(ctx context.Context, playlistID, musicID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	unlock := s.locks.Lock(playlistID)
	defer unlock()

	p, err := s.findPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}

	if _, err := s.FindMusicInPlaylistByMusicID(p, musicID); err != nil {
		return err
	}

	updated := p.Clone()
	updated.Musics.Remove(musicID)

	if err := s.store.SavePlaylist(ctx, updated); err != nil {
		return fmt.Errorf("failed to save playlist %s: %w", playlistID, err)
	}
	return nil
}
