package shared

import (
	"database/sql"
	"testing"
)

func migratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("%s: %v", query, err)
	}
}

func count(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("%s: %v", query, err)
	}
	return n
}

func TestMigrations(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}
		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i, m := range migrations {
			if i > 0 && m.Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", m.Version, migrations[i-1].Version)
			}
			if m.Name == "" || m.Up == "" || m.Down == "" {
				t.Errorf("migration version %d is incomplete: %+v", m.Version, m)
			}
		}
	})

	t.Run("applies every version once", func(t *testing.T) {
		db := migratedDB(t)
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		migrations, _ := loadMigrations()
		applied, err := AppliedVersions(db)
		if err != nil {
			t.Fatalf("failed to read applied versions: %v", err)
		}
		if len(applied) != len(migrations) {
			t.Errorf("expected %d applied versions, got %d", len(migrations), len(applied))
		}
		for _, m := range migrations {
			if !applied[m.Version] {
				t.Errorf("expected version %d to be applied", m.Version)
			}
		}

		for _, table := range []string{"artists", "musics", "playlists", "playlist_musics"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist: %v", table, err)
			}
		}
	})

	t.Run("schema constraints", func(t *testing.T) {
		db := migratedDB(t)
		mustExec(t, db, "INSERT INTO artists (id, sequence, name) VALUES ('a1', 1, 'Band')")
		mustExec(t, db, "INSERT INTO musics (id, sequence, title, artist_id) VALUES ('m1', 1, 'Song', 'a1')")
		mustExec(t, db, "INSERT INTO playlists (id, sequence, name) VALUES ('p1', 1, 'Mix')")
		mustExec(t, db, "INSERT INTO playlist_musics (playlist_id, music_id) VALUES ('p1', 'm1')")

		tests := []struct {
			name  string
			query string
		}{
			{name: "duplicate membership", query: "INSERT INTO playlist_musics (playlist_id, music_id) VALUES ('p1', 'm1')"},
			{name: "unknown music", query: "INSERT INTO playlist_musics (playlist_id, music_id) VALUES ('p1', 'nope')"},
			{name: "unknown playlist", query: "INSERT INTO playlist_musics (playlist_id, music_id) VALUES ('nope', 'm1')"},
			{name: "unknown artist", query: "INSERT INTO musics (id, sequence, title, artist_id) VALUES ('m2', 2, 'Other', 'nope')"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := db.Exec(tt.query); err == nil {
					t.Error("expected constraint violation")
				}
			})
		}

		t.Run("deleting an artist keeps its musics", func(t *testing.T) {
			mustExec(t, db, "DELETE FROM artists WHERE id = 'a1'")
			if n := count(t, db, "SELECT COUNT(*) FROM musics WHERE id = 'm1' AND artist_id IS NULL"); n != 1 {
				t.Errorf("expected music to lose its artist, got %d rows", n)
			}
		})

		t.Run("deleting a playlist drops its membership", func(t *testing.T) {
			mustExec(t, db, "DELETE FROM playlists WHERE id = 'p1'")
			if n := count(t, db, "SELECT COUNT(*) FROM playlist_musics"); n != 0 {
				t.Errorf("expected membership to cascade, got %d rows", n)
			}
		})
	})

	t.Run("RollbackMigration", func(t *testing.T) {
		db := migratedDB(t)
		before := count(t, db, "SELECT COUNT(*) FROM schema_migrations")

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}
		if after := count(t, db, "SELECT COUNT(*) FROM schema_migrations"); after != before-1 {
			t.Errorf("expected %d applied migrations after rollback, got %d", before-1, after)
		}
		if _, err := db.Exec("SELECT 1 FROM playlist_musics LIMIT 1"); err == nil {
			t.Error("playlist_musics should be dropped after rollback")
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing is left to rollback")
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to re-apply migrations: %v", err)
		}
		if after := count(t, db, "SELECT COUNT(*) FROM schema_migrations"); after != before {
			t.Errorf("expected %d applied migrations after re-applying, got %d", before, after)
		}
	})
}
