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

// ArtistRepository persists [models.Artist] records.
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new ArtistRepository with the given database connection
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Create inserts artist, generating an ID when it has none.
func (r *ArtistRepository) Create(ctx context.Context, artist *models.Artist) error {
	if strings.TrimSpace(artist.Name) == "" {
		return fmt.Errorf("validation failed: %w: artist name is required", shared.ErrInvalidInput)
	}

	sequence, err := NextSequence(ctx, r.db, "artists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if artist.ID == "" {
		artist.ID = shared.GenerateID()
	}

	_, err = r.db.ExecContext(ctx, "INSERT INTO artists (id, sequence, name) VALUES (?, ?, ?)", artist.ID, sequence, artist.Name)
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}

	return nil
}

// Get retrieves an artist by ID
func (r *ArtistRepository) Get(ctx context.Context, id string) (*models.Artist, error) {
	var artist models.Artist
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM artists WHERE id = ?", id).Scan(&artist.ID, &artist.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrArtistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan artist: %w", err)
	}
	return &artist, nil
}

// List retrieves all artists in insertion order
func (r *ArtistRepository) List(ctx context.Context) ([]*models.Artist, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM artists ORDER BY sequence ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []*models.Artist
	for rows.Next() {
		var a models.Artist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}
