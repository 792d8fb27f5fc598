// Package server exposes the playlist service over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support. [BasicRouter] registers
// method patterns on an [http.ServeMux] and wraps each handler with the middleware added before
// it, first added running first.
//
// Handlers implement [Handler] and return their own [Route] list, so a group of endpoints is
// registered in one call.
//
// # Endpoints
//
// [PlaylistHandler] serves:
//   - GET /api/v1/playlists/{playlistId}
//   - GET /api/v1/playlists/{playlistId}/musics
//   - POST /api/v1/playlists/{playlistId}/musics
//   - GET /api/v1/playlists/{playlistId}/musics/{musicId}
//   - DELETE /api/v1/playlists/{playlistId}/musics/{musicId}
//   - GET /api/v1/musics/{musicId}
//
// [HealthHandler] serves GET /health.
//
// # Errors
//
// Failures are written as [ErrorResponse]. [StatusFor] maps not-found kinds to 404, validation to
// 400, rejected credentials and token provider failures to 401 and store deadlines to 504.
//
// # Middleware
//
// [Logging], [RateLimit] and [Authenticate] are installed by [NewAPIRouter]. Authentication reads
// the name and token request headers and asks a [services.Authenticator] to validate them.
package server
