package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
)

// Store implements services.Store on top of the SQLite repositories.
//
// Missing rows are reported as ok == false; every other failure is returned as an error.
type Store struct {
	Artists   *ArtistRepository
	Musics    *MusicRepository
	Playlists *PlaylistRepository
}

// NewStore creates a Store whose repositories share db
func NewStore(db *sql.DB) *Store {
	return &Store{
		Artists:   NewArtistRepository(db),
		Musics:    NewMusicRepository(db),
		Playlists: NewPlaylistRepository(db),
	}
}

func (s *Store) GetMusicByID(ctx context.Context, id string) (models.Music, bool, error) {
	m, err := s.Musics.Get(ctx, id)
	if errors.Is(err, shared.ErrMusicNotFound) {
		return models.Music{}, false, nil
	}
	if err != nil {
		return models.Music{}, false, err
	}
	return *m, true, nil
}

func (s *Store) GetPlaylistByID(ctx context.Context, id string) (models.Playlist, bool, error) {
	p, err := s.Playlists.Get(ctx, id)
	if errors.Is(err, shared.ErrPlaylistNotFound) {
		return models.Playlist{}, false, nil
	}
	if err != nil {
		return models.Playlist{}, false, err
	}
	return *p, true, nil
}

func (s *Store) GetMusicsByPlaylistID(ctx context.Context, playlistID string) (models.MusicSet, error) {
	return s.Musics.ListByPlaylist(ctx, playlistID)
}

func (s *Store) SavePlaylist(ctx context.Context, playlist models.Playlist) error {
	return s.Playlists.Save(ctx, playlist)
}
