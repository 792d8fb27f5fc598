// package models defines the data model for the playlist service
package models

import "sort"

// Artist is the performer of a [Music]. Artists are created outside the playlist service and only read by it.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Music is a single song known to the catalog.
//
// Two musics are the same music when their IDs match; the remaining fields are informational.
type Music struct {
	ID     string  `json:"id"`
	Title  string  `json:"name"`
	Artist *Artist `json:"artist,omitempty"`
}

// Equal reports whether m and o identify the same music.
func (m Music) Equal(o Music) bool {
	return m.ID == o.ID
}

// ArtistName returns the artist's name or an empty string when the music has no artist.
func (m Music) ArtistName() string {
	if m.Artist == nil {
		return ""
	}
	return m.Artist.Name
}

// ArtistID returns the artist's ID or an empty string when the music has no artist.
func (m Music) ArtistID() string {
	if m.Artist == nil {
		return ""
	}
	return m.Artist.ID
}

// MusicSet is an unordered collection of musics keyed by music ID.
//
// Ranging over the map directly yields an unspecified order. Use [MusicSet.Slice] for stable output.
type MusicSet map[string]Music

// NewMusicSet builds a set from the given musics, collapsing duplicates by ID (last one wins).
func NewMusicSet(musics ...Music) MusicSet {
	s := make(MusicSet, len(musics))
	for _, m := range musics {
		s[m.ID] = m
	}
	return s
}

// Add inserts m, replacing any music with the same ID. Adding a present music is a no-op for membership.
func (s MusicSet) Add(m Music) {
	s[m.ID] = m
}

// Remove deletes the music with the given ID if present.
func (s MusicSet) Remove(id string) {
	delete(s, id)
}

// Contains reports whether a music with the given ID is in the set.
func (s MusicSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Get returns the music with the given ID.
func (s MusicSet) Get(id string) (Music, bool) {
	m, ok := s[id]
	return m, ok
}

// Len returns the number of musics in the set.
func (s MusicSet) Len() int {
	return len(s)
}

// Clone returns a shallow copy that can be mutated without affecting s.
func (s MusicSet) Clone() MusicSet {
	c := make(MusicSet, len(s))
	for id, m := range s {
		c[id] = m
	}
	return c
}

// Union returns a new set holding every music of s and o.
func (s MusicSet) Union(o MusicSet) MusicSet {
	u := s.Clone()
	for id, m := range o {
		u[id] = m
	}
	return u
}

// Equal reports whether both sets hold the same music IDs.
func (s MusicSet) Equal(o MusicSet) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Contains(id) {
			return false
		}
	}
	return true
}

// IDs returns the music IDs sorted ascending.
func (s MusicSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Slice returns the musics ordered by ID.
func (s MusicSet) Slice() []Music {
	out := make([]Music, 0, len(s))
	for _, id := range s.IDs() {
		out = append(out, s[id])
	}
	return out
}

// Playlist is a named set of musics. A playlist may be empty.
type Playlist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Musics MusicSet `json:"-"`
}

// Equal reports whether p and o identify the same playlist.
func (p Playlist) Equal(o Playlist) bool {
	return p.ID == o.ID
}

// Clone returns a copy of p whose music set can be mutated independently.
func (p Playlist) Clone() Playlist {
	c := p
	if p.Musics != nil {
		c.Musics = p.Musics.Clone()
	} else {
		c.Musics = MusicSet{}
	}
	return c
}

// PlaylistExport represents a playlist together with its ordered music listing
type PlaylistExport struct {
	Playlist Playlist `json:"playlist"`
	Musics   []Music  `json:"musics"`
}

// NewPlaylistExport snapshots p with its musics ordered by ID.
func NewPlaylistExport(p Playlist, musics MusicSet) *PlaylistExport {
	return &PlaylistExport{Playlist: Playlist{ID: p.ID, Name: p.Name}, Musics: musics.Slice()}
}
