package main

import (
	"context"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/urfave/cli/v3"
)

// MusicList prints the music catalog, optionally restricted to one artist.
func (r *Runner) MusicList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	criteria := map[string]any{}
	if artistID := cmd.String("artist-id"); artistID != "" {
		criteria["artist_id"] = artistID
	}

	musics, err := r.store.Musics.List(ctx, criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if musics == nil {
			musics = []*models.Music{}
		}
		return r.writeJSON(musics, true)
	}

	if len(musics) == 0 {
		return r.writePlain("No musics found\n")
	}
	list := make([]models.Music, len(musics))
	for i, m := range musics {
		list[i] = *m
	}
	r.writeMusics(list)
	return nil
}

// MusicCreate adds a music to the catalog.
func (r *Runner) MusicCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	music := models.Music{ID: cmd.String("id"), Title: cmd.String("title")}
	if artistID := cmd.String("artist-id"); artistID != "" {
		artist, err := r.store.Artists.Get(ctx, artistID)
		if err != nil {
			return err
		}
		music.Artist = artist
	}

	if err := r.store.Musics.Create(ctx, &music); err != nil {
		return err
	}

	r.logger.Info("music created", "id", music.ID, "title", music.Title)
	return r.writePlain("✓ Created music '%s' (%s)\n", music.Title, music.ID)
}

// MusicShow prints one music.
func (r *Runner) MusicShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	music, err := r.service.FindMusicByID(ctx, cmd.String("id"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(music, true)
	}
	r.writeMusics([]models.Music{music})
	return nil
}

// ArtistList prints every artist.
func (r *Runner) ArtistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	artists, err := r.store.Artists.List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if artists == nil {
			artists = []*models.Artist{}
		}
		return r.writeJSON(artists, true)
	}

	if len(artists) == 0 {
		return r.writePlain("No artists found\n")
	}
	for _, a := range artists {
		r.writePlain("%s\t%s\n", a.ID, a.Name)
	}
	return nil
}

// ArtistCreate adds an artist.
func (r *Runner) ArtistCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	artist := models.Artist{ID: cmd.String("id"), Name: cmd.String("name")}
	if err := r.store.Artists.Create(ctx, &artist); err != nil {
		return err
	}

	r.logger.Info("artist created", "id", artist.ID, "name", artist.Name)
	return r.writePlain("✓ Created artist '%s' (%s)\n", artist.Name, artist.ID)
}
