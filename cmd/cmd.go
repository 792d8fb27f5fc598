// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func idFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{Name: "id", Usage: usage, Required: true}
}

func jsonFlag() *cli.BoolFlag {
	return &cli.BoolFlag{Name: "json", Usage: "Output JSON"}
}

// setupCommand prepares the config file and database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the playlist HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides server.port)",
			},
		},
		Action: r.Serve,
	}
}

// playlistCommand handles playlist operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List playlists",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.PlaylistList,
			},
			{
				Name:  "create",
				Usage: "Create an empty playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Playlist name", Required: true},
					&cli.StringFlag{Name: "id", Usage: "Playlist ID (generated when omitted)"},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:   "show",
				Usage:  "Show a playlist",
				Flags:  []cli.Flag{idFlag("Playlist ID"), jsonFlag()},
				Action: r.PlaylistShow,
			},
			{
				Name:   "musics",
				Usage:  "List the musics of a playlist",
				Flags:  []cli.Flag{idFlag("Playlist ID"), jsonFlag()},
				Action: r.PlaylistMusics,
			},
			{
				Name:  "add",
				Usage: "Add musics to a playlist, all or nothing",
				Flags: []cli.Flag{
					idFlag("Playlist ID"),
					&cli.StringSliceFlag{Name: "music", Aliases: []string{"m"}, Usage: "Music ID to add (repeatable)", Required: true},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a music from a playlist",
				Flags: []cli.Flag{
					idFlag("Playlist ID"),
					&cli.StringFlag{Name: "music", Aliases: []string{"m"}, Usage: "Music ID to remove", Required: true},
				},
				Action: r.PlaylistRemove,
			},
			{
				Name:  "export",
				Usage: "Export playlists to files",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "id", Usage: "Playlist ID to export (repeatable)", Required: true},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Export format: json, csv, markdown, txt"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory"},
					&cli.IntFlag{Name: "workers", Usage: "Number of concurrent writers"},
					&cli.FloatFlag{Name: "rate", Usage: "Playlists fetched per second"},
				},
				Action: r.PlaylistExport,
			},
			{
				Name:   "tui",
				Usage:  "Browse a playlist interactively",
				Flags:  []cli.Flag{idFlag("Playlist ID")},
				Action: r.PlaylistTUI,
			},
		},
	}
}

// musicCommand handles music catalog operations
func musicCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "music",
		Usage: "Music catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List musics",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "artist-id", Usage: "Only musics by this artist"},
					jsonFlag(),
				},
				Action: r.MusicList,
			},
			{
				Name:  "create",
				Usage: "Create a music",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Music title", Required: true},
					&cli.StringFlag{Name: "artist-id", Usage: "Existing artist ID"},
					&cli.StringFlag{Name: "id", Usage: "Music ID (generated when omitted)"},
				},
				Action: r.MusicCreate,
			},
			{
				Name:   "show",
				Usage:  "Show a music",
				Flags:  []cli.Flag{idFlag("Music ID"), jsonFlag()},
				Action: r.MusicShow,
			},
		},
	}
}

// artistCommand handles artist operations
func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artist",
		Usage: "Artist operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List artists",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.ArtistList,
			},
			{
				Name:  "create",
				Usage: "Create an artist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Artist name", Required: true},
					&cli.StringFlag{Name: "id", Usage: "Artist ID (generated when omitted)"},
				},
				Action: r.ArtistCreate,
			},
		},
	}
}
