package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// seedCatalog creates one artist and the given musics by that artist
func seedCatalog(t *testing.T, db *sql.DB, musicIDs ...string) {
	t.Helper()
	ctx := context.Background()

	artist := &models.Artist{ID: "artist-1", Name: "Nina Simone"}
	if err := NewArtistRepository(db).Create(ctx, artist); err != nil {
		t.Fatalf("failed to create artist: %v", err)
	}

	repo := NewMusicRepository(db)
	for _, id := range musicIDs {
		if err := repo.Create(ctx, &models.Music{ID: id, Title: "Song " + id, Artist: artist}); err != nil {
			t.Fatalf("failed to create music %s: %v", id, err)
		}
	}
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(ctx, db, "playlists")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(ctx, db, "unknown"); err == nil {
		t.Error("expected error for table without sequence")
	}
}

func TestArtistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create generates ID", func(t *testing.T) {
		repo := NewArtistRepository(setupTestDB(t))
		artist := &models.Artist{Name: "Alice Coltrane"}

		if err := repo.Create(ctx, artist); err != nil {
			t.Fatalf("failed to create artist: %v", err)
		}
		if artist.ID == "" {
			t.Error("artist ID should be set after creation")
		}
	})

	t.Run("Create requires name", func(t *testing.T) {
		repo := NewArtistRepository(setupTestDB(t))
		if err := repo.Create(ctx, &models.Artist{Name: "  "}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Get and List", func(t *testing.T) {
		repo := NewArtistRepository(setupTestDB(t))
		for _, name := range []string{"first", "second"} {
			if err := repo.Create(ctx, &models.Artist{ID: name, Name: name}); err != nil {
				t.Fatalf("failed to create artist: %v", err)
			}
		}

		got, err := repo.Get(ctx, "second")
		if err != nil {
			t.Fatalf("failed to get artist: %v", err)
		}
		if got.Name != "second" {
			t.Errorf("expected name second, got %s", got.Name)
		}

		artists, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list artists: %v", err)
		}
		if len(artists) != 2 || artists[0].ID != "first" {
			t.Errorf("expected artists in insertion order, got %+v", artists)
		}

		if _, err := repo.Get(ctx, "missing"); !errors.Is(err, shared.ErrArtistNotFound) {
			t.Errorf("expected ErrArtistNotFound, got %v", err)
		}
	})
}

func TestMusicRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Get joins artist", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db, "m1")

		music, err := NewMusicRepository(db).Get(ctx, "m1")
		if err != nil {
			t.Fatalf("failed to get music: %v", err)
		}
		if music.Title != "Song m1" {
			t.Errorf("expected title Song m1, got %s", music.Title)
		}
		if music.ArtistName() != "Nina Simone" {
			t.Errorf("expected artist Nina Simone, got %q", music.ArtistName())
		}
	})

	t.Run("Music without artist", func(t *testing.T) {
		repo := NewMusicRepository(setupTestDB(t))
		if err := repo.Create(ctx, &models.Music{ID: "solo", Title: "Untitled"}); err != nil {
			t.Fatalf("failed to create music: %v", err)
		}

		music, err := repo.Get(ctx, "solo")
		if err != nil {
			t.Fatalf("failed to get music: %v", err)
		}
		if music.Artist != nil {
			t.Errorf("expected no artist, got %+v", music.Artist)
		}
	})

	t.Run("Create rejects unknown artist", func(t *testing.T) {
		repo := NewMusicRepository(setupTestDB(t))
		err := repo.Create(ctx, &models.Music{Title: "x", Artist: &models.Artist{ID: "ghost"}})
		if err == nil {
			t.Fatal("expected foreign key error")
		}
	})

	t.Run("Create requires title", func(t *testing.T) {
		repo := NewMusicRepository(setupTestDB(t))
		if err := repo.Create(ctx, &models.Music{}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		_, err := NewMusicRepository(setupTestDB(t)).Get(ctx, "missing")
		if !errors.Is(err, shared.ErrMusicNotFound) {
			t.Errorf("expected ErrMusicNotFound, got %v", err)
		}
	})

	t.Run("List by artist", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db, "m1", "m2")
		repo := NewMusicRepository(db)
		if err := repo.Create(ctx, &models.Music{ID: "m3", Title: "No artist"}); err != nil {
			t.Fatalf("failed to create music: %v", err)
		}

		all, err := repo.List(ctx, nil)
		if err != nil {
			t.Fatalf("failed to list musics: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 musics, got %d", len(all))
		}

		byArtist, err := repo.List(ctx, map[string]any{"artist_id": "artist-1"})
		if err != nil {
			t.Fatalf("failed to list musics: %v", err)
		}
		if len(byArtist) != 2 || byArtist[0].ID != "m1" || byArtist[1].ID != "m2" {
			t.Errorf("expected m1 and m2 in order, got %+v", byArtist)
		}
	})
}

func TestPlaylistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create and Get empty", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))
		playlist := &models.Playlist{Name: "Road trip"}

		if err := repo.Create(ctx, playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}
		if playlist.ID == "" {
			t.Fatal("playlist ID should be set after creation")
		}

		got, err := repo.Get(ctx, playlist.ID)
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if got.Name != "Road trip" || got.Musics.Len() != 0 {
			t.Errorf("unexpected playlist %+v", got)
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		_, err := NewPlaylistRepository(setupTestDB(t)).Get(ctx, "missing")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("Save replaces membership", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db, "m1", "m2", "m3")
		repo := NewPlaylistRepository(db)

		playlist := models.Playlist{ID: "p1", Name: "mix", Musics: models.NewMusicSet(models.Music{ID: "m1"}, models.Music{ID: "m2"})}
		if err := repo.Save(ctx, playlist); err != nil {
			t.Fatalf("failed to save playlist: %v", err)
		}

		playlist.Musics = models.NewMusicSet(models.Music{ID: "m2"}, models.Music{ID: "m3"})
		playlist.Name = "renamed"
		if err := repo.Save(ctx, playlist); err != nil {
			t.Fatalf("failed to save playlist again: %v", err)
		}

		got, err := repo.Get(ctx, "p1")
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if got.Name != "renamed" {
			t.Errorf("expected name renamed, got %s", got.Name)
		}
		if !got.Musics.Equal(playlist.Musics) {
			t.Errorf("expected musics %v, got %v", playlist.Musics.IDs(), got.Musics.IDs())
		}
		if m, _ := got.Musics.Get("m3"); m.ArtistName() != "Nina Simone" {
			t.Errorf("expected hydrated music with artist, got %+v", m)
		}
	})

	t.Run("Save is idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db, "m1")
		repo := NewPlaylistRepository(db)

		playlist := models.Playlist{ID: "p1", Musics: models.NewMusicSet(models.Music{ID: "m1"})}
		for range 2 {
			if err := repo.Save(ctx, playlist); err != nil {
				t.Fatalf("failed to save playlist: %v", err)
			}
		}

		var links int
		if err := db.QueryRow("SELECT COUNT(*) FROM playlist_musics WHERE playlist_id = 'p1'").Scan(&links); err != nil {
			t.Fatalf("failed to count links: %v", err)
		}
		if links != 1 {
			t.Errorf("expected 1 link, got %d", links)
		}

		playlists, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 1 {
			t.Errorf("expected 1 playlist, got %d", len(playlists))
		}
	})

	t.Run("Save to empty set", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db, "m1")
		repo := NewPlaylistRepository(db)

		if err := repo.Save(ctx, models.Playlist{ID: "p1", Musics: models.NewMusicSet(models.Music{ID: "m1"})}); err != nil {
			t.Fatalf("failed to save playlist: %v", err)
		}
		if err := repo.Save(ctx, models.Playlist{ID: "p1", Musics: models.MusicSet{}}); err != nil {
			t.Fatalf("failed to save empty playlist: %v", err)
		}

		got, err := repo.Get(ctx, "p1")
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if got.Musics.Len() != 0 {
			t.Errorf("expected empty playlist, got %v", got.Musics.IDs())
		}
	})

	t.Run("Save with unknown music rolls back", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db, "m1")
		repo := NewPlaylistRepository(db)

		if err := repo.Save(ctx, models.Playlist{ID: "p1", Name: "before", Musics: models.NewMusicSet(models.Music{ID: "m1"})}); err != nil {
			t.Fatalf("failed to save playlist: %v", err)
		}

		err := repo.Save(ctx, models.Playlist{ID: "p1", Name: "after", Musics: models.NewMusicSet(models.Music{ID: "ghost"})})
		if err == nil {
			t.Fatal("expected error linking unknown music")
		}

		got, err := repo.Get(ctx, "p1")
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if got.Name != "before" || !got.Musics.Contains("m1") {
			t.Errorf("expected playlist untouched after failed save, got %+v", got)
		}
	})
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedCatalog(t, db, "m1")
	store := NewStore(db)

	if err := store.Playlists.Create(ctx, &models.Playlist{ID: "p1"}); err != nil {
		t.Fatalf("failed to create playlist: %v", err)
	}

	t.Run("GetMusicByID", func(t *testing.T) {
		if _, ok, err := store.GetMusicByID(ctx, "m1"); !ok || err != nil {
			t.Errorf("expected music m1, got ok=%v err=%v", ok, err)
		}
		if _, ok, err := store.GetMusicByID(ctx, "missing"); ok || err != nil {
			t.Errorf("expected absent music without error, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("GetPlaylistByID", func(t *testing.T) {
		if _, ok, err := store.GetPlaylistByID(ctx, "p1"); !ok || err != nil {
			t.Errorf("expected playlist p1, got ok=%v err=%v", ok, err)
		}
		if _, ok, err := store.GetPlaylistByID(ctx, "missing"); ok || err != nil {
			t.Errorf("expected absent playlist without error, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("SavePlaylist and GetMusicsByPlaylistID", func(t *testing.T) {
		if err := store.SavePlaylist(ctx, models.Playlist{ID: "p1", Musics: models.NewMusicSet(models.Music{ID: "m1"})}); err != nil {
			t.Fatalf("failed to save playlist: %v", err)
		}

		musics, err := store.GetMusicsByPlaylistID(ctx, "p1")
		if err != nil {
			t.Fatalf("failed to get musics: %v", err)
		}
		if !musics.Contains("m1") || musics.Len() != 1 {
			t.Errorf("expected {m1}, got %v", musics.IDs())
		}
	})

	t.Run("Closed database surfaces errors", func(t *testing.T) {
		closed := setupTestDB(t)
		closed.Close()
		s := NewStore(closed)

		if _, _, err := s.GetMusicByID(ctx, "m1"); err == nil {
			t.Error("expected error from closed database")
		}
		if _, _, err := s.GetPlaylistByID(ctx, "p1"); err == nil {
			t.Error("expected error from closed database")
		}
	})
}
