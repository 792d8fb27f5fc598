package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	ConfirmView
)

// PlaylistService is the subset of [services.PlaylistService] the TUI needs.
type PlaylistService interface {
	FindPlaylistByID(ctx context.Context, id string) (models.Playlist, error)
	FindMusicsByPlaylistID(ctx context.Context, playlistID string) (models.MusicSet, error)
	RemoveMusicFromPlaylistByMusicID(ctx context.Context, playlistID, musicID string) error
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	service    PlaylistService
	playlistID string
	playlist   models.Playlist
	view       ViewState
	musicList  list.Model
	pending    *models.Music
	empty      error
	status     string
	err        error
	width      int
	height     int
	help       help.Model
	keys       keyMap
}

// NewModel creates a TUI model for a single playlist.
func NewModel(ctx context.Context, service PlaylistService, playlistID string) *Model {
	m := &Model{
		ctx:        ctx,
		service:    service,
		playlistID: playlistID,
		view:       ListView,
		help:       help.New(),
		keys:       newKeyMap(),
	}
	m.musicList = m.newList(nil)
	return m
}

// Init loads the playlist and its musics.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.musicList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgMusicsLoaded:
			return m.handleLoaded(msg.data.(musicsLoaded))
		case MsgMusicRemoved:
			return m.handleRemoved(msg.data.(musicRemoved))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.musicList, cmd = m.musicList.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case ConfirmView:
		return m.renderConfirm()
	default:
		return m.renderList()
	}
}

// IsEmpty reports whether the last load found the playlist without musics.
func (m *Model) IsEmpty() bool {
	return errors.Is(m.empty, services.ErrMusicsAndArtistsNotFound)
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.musicList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.musicList, cmd = m.musicList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.reload):
		m.status = ""
		return m, m.load()
	case key.Matches(msg, m.keys.remove):
		if m.err != nil || m.empty != nil {
			return m, nil
		}
		if item, ok := m.musicList.SelectedItem().(musicItem); ok {
			music := item.music
			m.pending = &music
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.musicList, cmd = m.musicList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		music := *m.pending
		m.pending = nil
		m.view = ListView
		return m, m.remove(music)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.pending = nil
		m.view = ListView
	}
	return m, nil
}

func (m *Model) handleLoaded(msg musicsLoaded) (tea.Model, tea.Cmd) {
	m.err = nil
	m.empty = nil
	if msg.err != nil {
		if services.KindOf(msg.err) != services.KindMusicsAndArtistsNotFound {
			m.err = msg.err
			return m, nil
		}
		m.empty = msg.err
	}
	m.playlist = msg.playlist
	m.musicList.Title = m.listTitle()
	return m, m.musicList.SetItems(musicItems(msg.musics))
}

func (m *Model) handleRemoved(msg musicRemoved) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = styles.err.Render(msg.err.Error())
		return m, nil
	}
	m.status = styles.ok.Render(fmt.Sprintf("✓ Removed '%s'", msg.music.Title))
	return m, m.load()
}

func (m *Model) newList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), max(m.width-4, 0), max(m.height-8, 0))
	l.Title = m.listTitle()
	l.SetShowHelp(false)
	return l
}

func (m *Model) listTitle() string {
	return fmt.Sprintf("Musics in '%s'", m.playlistName())
}

func (m *Model) playlistName() string {
	if m.playlist.Name != "" {
		return m.playlist.Name
	}
	return m.playlistID
}

// load fetches the playlist first so an unknown id is reported before the musics lookup.
func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.service.FindPlaylistByID(m.ctx, m.playlistID)
		if err != nil {
			return musicsLoadedMsg(models.Playlist{}, nil, err)
		}
		musics, err := m.service.FindMusicsByPlaylistID(m.ctx, m.playlistID)
		return musicsLoadedMsg(playlist, musics, err)
	}
}

func (m *Model) remove(music models.Music) tea.Cmd {
	return func() tea.Msg {
		err := m.service.RemoveMusicFromPlaylistByMusicID(m.ctx, m.playlistID, music.ID)
		return musicRemovedMsg(music, err)
	}
}

func (m *Model) renderList() string {
	body := m.musicList.View()
	if m.empty != nil {
		title := styles.title.Render(m.listTitle())
		body = fmt.Sprintf("%s\n%s", title, styles.warn.Render(m.empty.Error()))
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.status != "" {
		return fmt.Sprintf("%s\n\n%s\n%s", body, m.status, helpView)
	}
	return fmt.Sprintf("%s\n\n%s", body, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Remove '%s' from '%s'?", m.pending.Title, m.playlistName()))
	artist := m.pending.ArtistName()
	if artist == "" {
		artist = "-"
	}
	info := fmt.Sprintf("\nMusic: %s\nArtist: %s\n", m.pending.ID, artist)

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n%s\n%s", title, info, styles.status.Render(helpView))
}
