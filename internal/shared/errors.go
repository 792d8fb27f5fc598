package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Persistence errors
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrMusicNotFound    = fmt.Errorf("music not found")
	ErrArtistNotFound   = fmt.Errorf("artist not found")

	// Input validation errors
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrInvalidFlag  = fmt.Errorf("invalid flag value")
)
