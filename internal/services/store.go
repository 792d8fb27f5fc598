package services

import (
	"context"

	"github.com/desertthunder/mymusic/internal/models"
)

// MusicStore reads catalog musics.
//
// A missing music is reported with ok == false and a nil error. Errors are reserved for
// infrastructure failures.
type MusicStore interface {
	GetMusicByID(ctx context.Context, id string) (music models.Music, ok bool, err error)
}

// PlaylistStore reads and persists playlists.
//
// SavePlaylist is a whole-entity upsert: the saved playlist's music set replaces the stored one.
// Saving the same playlist twice leaves the store unchanged.
type PlaylistStore interface {
	GetPlaylistByID(ctx context.Context, id string) (playlist models.Playlist, ok bool, err error)
	GetMusicsByPlaylistID(ctx context.Context, playlistID string) (models.MusicSet, error)
	SavePlaylist(ctx context.Context, playlist models.Playlist) error
}

// Store is the entity store the [PlaylistService] depends on.
type Store interface {
	MusicStore
	PlaylistStore
}
