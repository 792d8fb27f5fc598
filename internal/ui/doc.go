// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI shows the musics of a single playlist:
//  1. [ListView] : Browse the playlist's musics
//  2. [ConfirmView] : Confirm removal of the selected music
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving
// messages via the Msg union type. All reads and writes go through a [PlaylistService], so the
// membership rules are the same as for the CLI and the HTTP API. A playlist without musics is
// rendered as the service's "no musics" error instead of an empty list.
//
// Keyboard navigation uses vim-style bindings (j/k, d, y/n, r, q) with contextual help displayed
// via charmbracelet/bubbles/help.
package ui
