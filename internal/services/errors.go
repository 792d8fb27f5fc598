package services

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a domain failure raised by the [PlaylistService].
type Kind int

const (
	KindPlaylistNotFound Kind = iota + 1
	KindMusicNotFound
	KindMusicNotFoundInPlaylist
	KindMusicsAndArtistsNotFound
	KindValidationFailed
)

// String returns the identifier of the kind used in API error bodies.
func (k Kind) String() string {
	switch k {
	case KindPlaylistNotFound:
		return "PlaylistNotFound"
	case KindMusicNotFound:
		return "MusicNotFound"
	case KindMusicNotFoundInPlaylist:
		return "MusicNotFoundInPlaylist"
	case KindMusicsAndArtistsNotFound:
		return "MusicsAndArtistsNotFound"
	case KindValidationFailed:
		return "ValidationFailed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	return fmt.Sprintf("Field: %s -  Error: %s", f.Field, f.Message)
}

// Error is the domain error returned by the playlist service.
//
// ID carries the offending entity ID for the not-found kinds and Fields the invalid input for
// [KindValidationFailed].
type Error struct {
	Kind   Kind
	ID     string
	Fields []FieldError
}

// Sentinels for use with [errors.Is]. They match any error of the same kind regardless of ID.
var (
	ErrPlaylistNotFound         = &Error{Kind: KindPlaylistNotFound}
	ErrMusicNotFound            = &Error{Kind: KindMusicNotFound}
	ErrMusicNotFoundInPlaylist  = &Error{Kind: KindMusicNotFoundInPlaylist}
	ErrMusicsAndArtistsNotFound = &Error{Kind: KindMusicsAndArtistsNotFound}
	ErrValidationFailed         = &Error{Kind: KindValidationFailed}
)

func PlaylistNotFound(id string) *Error {
	return &Error{Kind: KindPlaylistNotFound, ID: id}
}

func MusicNotFound(id string) *Error {
	return &Error{Kind: KindMusicNotFound, ID: id}
}

func MusicNotFoundInPlaylist(id string) *Error {
	return &Error{Kind: KindMusicNotFoundInPlaylist, ID: id}
}

func MusicsAndArtistsNotFound() *Error {
	return &Error{Kind: KindMusicsAndArtistsNotFound}
}

func ValidationFailed(fields ...FieldError) *Error {
	return &Error{Kind: KindValidationFailed, Fields: fields}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindPlaylistNotFound:
		return fmt.Sprintf("Playlist with Id %s not found 🙁", e.ID)
	case KindMusicNotFound:
		return fmt.Sprintf("Music with Id %s not found 🙁", e.ID)
	case KindMusicNotFoundInPlaylist:
		return fmt.Sprintf("Music with Id %s not found in playlist 🙁", e.ID)
	case KindMusicsAndArtistsNotFound:
		return "Musics and artists not found 🙁"
	case KindValidationFailed:
		if len(e.Fields) == 0 {
			return "Validation of body request failed."
		}
		msgs := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			msgs[i] = f.String()
		}
		return "Validation of body request failed. " + strings.Join(msgs, "; ")
	default:
		return e.Kind.String()
	}
}

// Is matches errors of the same kind. When target carries an ID, the IDs must match too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.ID == "" || t.ID == e.ID
}

// KindOf returns the kind of the first [*Error] in err's chain, or zero when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
