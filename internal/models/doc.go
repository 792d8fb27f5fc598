// Package models defines the entities shared by the playlist service, its persistence layer and its outer surfaces.
//
//   - [Artist] : performer referenced by a music
//   - [Music] : catalog song, identified by ID
//   - [MusicSet] : unordered set of musics keyed by ID
//   - [Playlist] : named set of musics, possibly empty
//   - [PlaylistExport] : playlist snapshot with a stable music ordering, used by exports
//
// Entities compare by identifier. Membership changes on a playlist always happen on a copy of its
// [MusicSet] that is then saved as a whole.
package models
