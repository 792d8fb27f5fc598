package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
)

const musicColumns = `m.id, m.title, a.id, a.name`

// MusicRepository persists [models.Music] records and resolves their artist.
type MusicRepository struct {
	db *sql.DB
}

// NewMusicRepository creates a new MusicRepository with the given database connection
func NewMusicRepository(db *sql.DB) *MusicRepository {
	return &MusicRepository{db: db}
}

// Create inserts music, generating an ID when it has none. The referenced artist must exist.
func (r *MusicRepository) Create(ctx context.Context, music *models.Music) error {
	if strings.TrimSpace(music.Title) == "" {
		return fmt.Errorf("validation failed: %w: music title is required", shared.ErrInvalidInput)
	}

	sequence, err := NextSequence(ctx, r.db, "musics")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if music.ID == "" {
		music.ID = shared.GenerateID()
	}

	var artistID sql.NullString
	if id := music.ArtistID(); id != "" {
		artistID = sql.NullString{String: id, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO musics (id, sequence, title, artist_id) VALUES (?, ?, ?, ?)",
		music.ID, sequence, music.Title, artistID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert music: %w", err)
	}

	return nil
}

// Get retrieves a music by ID with its artist
func (r *MusicRepository) Get(ctx context.Context, id string) (*models.Music, error) {
	query := `
		SELECT ` + musicColumns + `
		FROM musics m
		LEFT JOIN artists a ON a.id = m.artist_id
		WHERE m.id = ?
	`

	music, err := scanMusic(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrMusicNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan music: %w", err)
	}
	return music, nil
}

// List retrieves all musics matching the given criteria.
//
// Supported criteria: "artist_id" (string).
func (r *MusicRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Music, error) {
	query := `
		SELECT ` + musicColumns + `
		FROM musics m
		LEFT JOIN artists a ON a.id = m.artist_id
		WHERE 1 = 1
	`

	args := []any{}

	if artistID, ok := criteria["artist_id"].(string); ok && artistID != "" {
		query += " AND m.artist_id = ?"
		args = append(args, artistID)
	}

	query += " ORDER BY m.sequence ASC"

	return queryMusics(ctx, r.db, query, args...)
}

// ListByPlaylist returns the musics linked to the playlist as a set.
func (r *MusicRepository) ListByPlaylist(ctx context.Context, playlistID string) (models.MusicSet, error) {
	return listByPlaylist(ctx, r.db, playlistID)
}

func listByPlaylist(ctx context.Context, q querier, playlistID string) (models.MusicSet, error) {
	query := `
		SELECT ` + musicColumns + `
		FROM playlist_musics pm
		JOIN musics m ON m.id = pm.music_id
		LEFT JOIN artists a ON a.id = m.artist_id
		WHERE pm.playlist_id = ?
	`

	musics, err := queryMusics(ctx, q, query, playlistID)
	if err != nil {
		return nil, err
	}

	set := make(models.MusicSet, len(musics))
	for _, m := range musics {
		set.Add(*m)
	}
	return set, nil
}

func queryMusics(ctx context.Context, q querier, query string, args ...any) ([]*models.Music, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query musics: %w", err)
	}
	defer rows.Close()

	var musics []*models.Music
	for rows.Next() {
		music, err := scanMusic(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan music: %w", err)
		}
		musics = append(musics, music)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return musics, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanMusic scans a [musicColumns] row into a [models.Music]
func scanMusic(row scanner) (*models.Music, error) {
	var (
		music      models.Music
		artistID   sql.NullString
		artistName sql.NullString
	)

	if err := row.Scan(&music.ID, &music.Title, &artistID, &artistName); err != nil {
		return nil, err
	}

	if artistID.Valid {
		music.Artist = &models.Artist{ID: artistID.String, Name: artistName.String}
	}

	return &music, nil
}
