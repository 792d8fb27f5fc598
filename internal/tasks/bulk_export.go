package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/mymusic/internal/formatter"
	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
)

const (
	defaultWorkers   = 5
	maxWorkers       = 10
	defaultRateLimit = 5.0
	manifestFilename = "export_manifest.json"
)

// PlaylistReader is the read side of the playlist service used by exports.
type PlaylistReader interface {
	FindPlaylistByID(ctx context.Context, id string) (models.Playlist, error)
	FindMusicsByPlaylistID(ctx context.Context, playlistID string) (models.MusicSet, error)
}

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: playlist_export_{epoch})
	NumWorkers int     // Concurrent writers (default: 5, max: 10)
	RateLimit  float64 // Playlist fetches per second (default: 5)
}

// PlaylistExportResult is the outcome of exporting one playlist.
type PlaylistExportResult struct {
	PlaylistID   string
	PlaylistName string
	Musics       int
	Files        []string
	Error        error
}

// Success reports whether the playlist was exported.
func (r PlaylistExportResult) Success() bool {
	return r.Error == nil
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	TotalPlaylists    int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []PlaylistExportResult
}

type exportJob struct {
	export *models.PlaylistExport
}

// Exporter exports playlists read through a [PlaylistReader].
type Exporter struct {
	playlists PlaylistReader
}

// NewExporter creates an Exporter backed by playlists
func NewExporter(playlists PlaylistReader) *Exporter {
	return &Exporter{playlists: playlists}
}

// Export fetches one playlist with its musics as a [models.PlaylistExport].
//
// Empty playlists fail the same way the playlist service reports them.
func (e *Exporter) Export(ctx context.Context, id string) (*models.PlaylistExport, error) {
	p, err := e.playlists.FindPlaylistByID(ctx, id)
	if err != nil {
		return nil, err
	}
	musics, err := e.playlists.FindMusicsByPlaylistID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewPlaylistExport(p, musics), nil
}

// BulkExport exports multiple playlists concurrently with rate limiting and progress tracking.
//
// A rate-limited producer fetches playlists and feeds a pool of writers. Individual failures are
// recorded in the result and the manifest; only setup and manifest failures abort the export.
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.playlists == nil {
		return nil, fmt.Errorf("%w: playlist service not initialized", shared.ErrServiceUnavailable)
	}

	format, err := formatter.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	opts.Format = format

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("playlist_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalPlaylists:  len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan exportJob, len(ids))
	results := make(chan PlaylistExportResult, len(ids))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go exportWorker(&wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, id := range ids {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			sendProgress(prog, fetchingPlaylistUpdate(i+1, len(ids), id))

			export, err := e.Export(ctx, id)
			if err != nil {
				results <- PlaylistExportResult{
					PlaylistID:   id,
					PlaylistName: fmt.Sprintf("Unknown (%s)", id),
					Error:        fmt.Errorf("failed to fetch playlist: %w", err),
				}
				continue
			}

			jobs <- exportJob{export: export}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success() {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.PlaylistName, len(res.Files)))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(ids), res.PlaylistName, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export interrupted: %w", err)
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestFilename)
	if err := formatter.WriteManifest(result.Manifest(opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	sendProgress(prog, manifestUpdate(manifestPath))

	return result, nil
}

// exportWorker writes every job it receives until jobs is closed.
func exportWorker(wg *sync.WaitGroup, jobs <-chan exportJob, results chan<- PlaylistExportResult, opts BulkExportOpts) {
	defer wg.Done()

	for job := range jobs {
		res := PlaylistExportResult{
			PlaylistID:   job.export.Playlist.ID,
			PlaylistName: job.export.Playlist.Name,
			Musics:       len(job.export.Musics),
		}
		res.Files, res.Error = formatter.WriteExport(job.export, opts.OutputDir, opts.Format)
		results <- res
	}
}

// Manifest converts the result into a [formatter.Manifest].
func (r *BulkExportResult) Manifest(format string) *formatter.Manifest {
	m := &formatter.Manifest{
		ExportedAt:      time.Now().UTC(),
		Format:          format,
		OutputDirectory: r.OutputDirectory,
		Total:           r.TotalPlaylists,
		Successful:      r.SuccessfulExports,
		Failed:          r.FailedExports,
		Playlists:       make([]formatter.ManifestEntry, 0, len(r.Results)),
	}

	for _, res := range r.Results {
		entry := formatter.ManifestEntry{
			PlaylistID:   res.PlaylistID,
			PlaylistName: res.PlaylistName,
			Musics:       res.Musics,
			Success:      res.Success(),
			Files:        res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Playlists = append(m.Playlists, entry)
	}

	return m
}
