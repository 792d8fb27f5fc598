// Package repositories implements SQLite persistence for artists, musics and playlists.
//
// Key Implementations:
//   - [ArtistRepository] : artist records
//   - [MusicRepository] : music records joined with their artist, plus playlist membership lookups
//   - [PlaylistRepository] : playlists with membership kept in the playlist_musics junction table
//   - [Store] : adapter exposing the repositories as the playlist service's entity store
//
// [PlaylistRepository.Save] replaces a playlist's membership as a whole inside one transaction.
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated
// sequence tables, giving entities a stable insertion order independent of their IDs.
package repositories
