// Package tasks runs long playlist operations with progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] exports many playlists at once:
//   - a producer fetches playlists through a [PlaylistReader], throttled by a token bucket limiter
//   - a pool of workers writes each playlist with the formatter package
//   - a manifest summarizing every playlist is written to the output directory
//
// A playlist that cannot be fetched, including an empty one, is recorded as a failed export and
// does not stop the others.
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel. Sends never block: when the
// channel is full the update is dropped.
package tasks
