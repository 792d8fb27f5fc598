// Package services implements the playlist domain service and its collaborators.
//
// # Playlist Service
//
// [PlaylistService] is the only place membership rules live. It reads musics and playlists
// through the [Store] interface and writes a playlist back as a whole:
//   - lookups fail with a typed [*Error] when an entity is missing
//   - additions are all or nothing and resolve each music against the store first
//   - removals require the music to already be in the playlist
//   - an empty playlist is reported as [ErrMusicsAndArtistsNotFound] by [PlaylistService.FindMusicsByPlaylistID]
//
// Mutations of the same playlist are serialized in process so concurrent additions and removals
// cannot overwrite each other.
//
// # Errors
//
// Domain failures are [*Error] values tagged with a [Kind]. Use [errors.Is] with the exported
// sentinels ([ErrPlaylistNotFound], [ErrMusicNotFound], ...) to match a kind, or [errors.As] to
// read the offending ID. Store failures are wrapped and never carry a [Kind].
//
// # Token Provider
//
// [TokenProvider] asks a remote token provider whether a caller's name and token are valid. It is
// used by the HTTP server's authentication middleware. Calls to the provider can themselves be
// authenticated with OAuth2 client credentials via [NewTokenProviderFromConfig].
package services
