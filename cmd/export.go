package main

import (
	"context"

	"github.com/desertthunder/mymusic/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistExport writes playlists to files, falling back to the [export] config section for
// options that are not given as flags.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Format:     r.config.Export.Format,
		OutputDir:  r.config.Export.Directory,
		NumWorkers: r.config.Export.Workers,
		RateLimit:  r.config.Export.RateLimit,
	}
	if format := cmd.String("format"); format != "" {
		opts.Format = format
	}
	if output := cmd.String("output"); output != "" {
		opts.OutputDir = output
	}
	if workers := cmd.Int("workers"); workers > 0 {
		opts.NumWorkers = int(workers)
	}
	if rate := cmd.Float("rate"); rate > 0 {
		opts.RateLimit = rate
	}

	ids := cmd.StringSlice("id")
	r.logger.Info("starting export", "playlists", len(ids), "format", opts.Format, "output", opts.OutputDir)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchPlaylist:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ExportPlaylist:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := tasks.NewExporter(r.service).BulkExport(ctx, progressCh, ids, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Exported: %d/%d\n", result.SuccessfulExports, result.TotalPlaylists)

	if result.FailedExports > 0 {
		r.writePlain("\nFailed to export %d playlists:\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success() {
				r.writePlain("  - %s: %v\n", res.PlaylistID, res.Error)
			}
		}
	}

	return nil
}
