package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mymusic/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var _ tea.Msg = Msg{}

const (
	MsgMusicsLoaded MsgKind = iota
	MsgMusicRemoved
)

type musicsLoaded struct {
	playlist models.Playlist
	musics   models.MusicSet
	err      error
}

type musicRemoved struct {
	music models.Music
	err   error
}

// musicsLoadedMsg is the constructor for [MsgMusicsLoaded]
func musicsLoadedMsg(playlist models.Playlist, musics models.MusicSet, err error) Msg {
	return Msg{kind: MsgMusicsLoaded, data: musicsLoaded{playlist, musics, err}}
}

// musicRemovedMsg is the constructor for [MsgMusicRemoved]
func musicRemovedMsg(music models.Music, err error) Msg {
	return Msg{kind: MsgMusicRemoved, data: musicRemoved{music, err}}
}
