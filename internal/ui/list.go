package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mymusic/internal/models"
)

var _ list.Item = musicItem{}

// musicItem wraps [models.Music] to implement [list.Item].
type musicItem struct {
	music models.Music
}

func (i musicItem) FilterValue() string { return i.music.Title }
func (i musicItem) Title() string       { return i.music.Title }
func (i musicItem) Description() string {
	if name := i.music.ArtistName(); name != "" {
		return fmt.Sprintf("%s • %s", name, i.music.ID)
	}
	return i.music.ID
}

func musicItems(musics models.MusicSet) []list.Item {
	items := make([]list.Item, 0, musics.Len())
	for _, m := range musics.Slice() {
		items = append(items, musicItem{music: m})
	}
	return items
}
