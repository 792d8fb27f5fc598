package main

import (
	"context"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/urfave/cli/v3"
)

// PlaylistList prints every stored playlist.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	playlists, err := r.store.Playlists.List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if playlists == nil {
			playlists = []*models.Playlist{}
		}
		return r.writeJSON(playlists, true)
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists found\n")
	}
	for _, p := range playlists {
		r.writePlain("%s\t%s\n", p.ID, p.Name)
	}
	return nil
}

// PlaylistCreate stores a new empty playlist.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	playlist := models.Playlist{ID: cmd.String("id"), Name: cmd.String("name")}
	if err := r.store.Playlists.Create(ctx, &playlist); err != nil {
		return err
	}

	r.logger.Info("playlist created", "id", playlist.ID, "name", playlist.Name)
	return r.writePlain("✓ Created playlist '%s' (%s)\n", playlist.Name, playlist.ID)
}

// PlaylistShow prints a playlist with its members. Unlike [Runner.PlaylistMusics], an empty
// playlist is not an error here.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	playlist, err := r.service.FindPlaylistByID(ctx, cmd.String("id"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(models.NewPlaylistExport(playlist, playlist.Musics), true)
	}

	r.writePlainHeader(playlist.Name)
	r.writePlain("ID: %s\n", playlist.ID)
	r.writePlain("Musics: %d\n", playlist.Musics.Len())
	r.writeMusics(playlist.Musics.Slice())
	return nil
}

// PlaylistMusics prints the musics of a playlist.
func (r *Runner) PlaylistMusics(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	musics, err := r.service.FindMusicsByPlaylistID(ctx, cmd.String("id"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(musics.Slice(), true)
	}
	r.writeMusics(musics.Slice())
	return nil
}

// PlaylistAdd adds the given musics to a playlist. Nothing is added when any ID is unknown.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	playlistID := cmd.String("id")
	musics := models.MusicSet{}
	for _, id := range cmd.StringSlice("music") {
		musics.Add(models.Music{ID: id})
	}

	if err := r.service.AddMusicsToPlaylist(ctx, musics, playlistID); err != nil {
		return err
	}

	r.logger.Info("musics added", "playlist", playlistID, "count", musics.Len())
	return r.writePlain("✓ Added %d musics to playlist %s\n", musics.Len(), playlistID)
}

// PlaylistRemove removes one music from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	playlistID, musicID := cmd.String("id"), cmd.String("music")
	if err := r.service.RemoveMusicFromPlaylistByMusicID(ctx, playlistID, musicID); err != nil {
		return err
	}

	r.logger.Info("music removed", "playlist", playlistID, "music", musicID)
	return r.writePlain("✓ Removed music %s from playlist %s\n", musicID, playlistID)
}

func (r *Runner) writeMusics(musics []models.Music) {
	for i, m := range musics {
		if artist := m.ArtistName(); artist != "" {
			r.writePlain("%d. %s - %s (%s)\n", i+1, artist, m.Title, m.ID)
		} else {
			r.writePlain("%d. %s (%s)\n", i+1, m.Title, m.ID)
		}
	}
}
