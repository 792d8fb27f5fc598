package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
)

// PlaylistRepository persists [models.Playlist] records together with their music membership.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new, empty playlist, generating an ID when it has none.
func (r *PlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if playlist.ID == "" {
		playlist.ID = shared.GenerateID()
	}

	sequence, err := NextSequence(ctx, r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO playlists (id, sequence, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		playlist.ID, sequence, playlist.Name, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	if playlist.Musics == nil {
		playlist.Musics = models.MusicSet{}
	}
	return nil
}

// Get retrieves a playlist by ID with its musics hydrated
func (r *PlaylistRepository) Get(ctx context.Context, id string) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM playlists WHERE id = ?", id).Scan(&playlist.ID, &playlist.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	musics, err := listByPlaylist(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	playlist.Musics = musics

	return &playlist, nil
}

// List retrieves all playlists in insertion order without their musics.
func (r *PlaylistRepository) List(ctx context.Context) ([]*models.Playlist, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM playlists ORDER BY sequence ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		var p models.Playlist
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// Save upserts playlist and makes its stored membership equal to playlist.Musics, in one transaction.
//
// Links to musics that stay in the playlist keep their original added_at.
func (r *PlaylistRepository) Save(ctx context.Context, playlist models.Playlist) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sequence int
	err = tx.QueryRowContext(ctx, "SELECT sequence FROM playlists WHERE id = ?", playlist.ID).Scan(&sequence)
	if errors.Is(err, sql.ErrNoRows) {
		sequence, err = nextSequence(ctx, tx, "playlists")
	}
	if err != nil {
		return fmt.Errorf("failed to resolve playlist sequence: %w", err)
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO playlists (id, sequence, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at
	`, playlist.ID, sequence, playlist.Name, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert playlist: %w", err)
	}

	ids := playlist.Musics.IDs()

	unlink := "DELETE FROM playlist_musics WHERE playlist_id = ?"
	args := []any{playlist.ID}
	if len(ids) > 0 {
		unlink += " AND music_id NOT IN (" + strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",") + ")"
		for _, id := range ids {
			args = append(args, id)
		}
	}
	if _, err := tx.ExecContext(ctx, unlink, args...); err != nil {
		return fmt.Errorf("failed to unlink musics: %w", err)
	}

	for _, id := range ids {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO playlist_musics (playlist_id, music_id, added_at) VALUES (?, ?, ?) ON CONFLICT(playlist_id, music_id) DO NOTHING",
			playlist.ID, id, now,
		)
		if err != nil {
			return fmt.Errorf("failed to link music %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit playlist: %w", err)
	}

	return nil
}
