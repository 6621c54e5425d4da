// package services implements clients for the external music catalog
package services

import (
	"context"
	"errors"
	"fmt"

	"vibedj/internal/shared"
)

// Catalog defines the music catalog operations required for playlist assembly.
//
// Methods take a bearer access token per call; the credential is
// caller-supplied and no token state is shared between requests.
type Catalog interface {
	// UserProfile retrieves the profile of the token's owner. Used to validate
	// the credential before any write operation.
	UserProfile(ctx context.Context, token string) (*SpotifyUser, error)

	// SearchTracks runs a track search query and returns up to limit results.
	SearchTracks(ctx context.Context, token, query string, limit int) ([]SpotifyTrack, error)

	// CreatePlaylist creates a private playlist for the given user.
	CreatePlaylist(ctx context.Context, token, userID, name, description string) (*SpotifyPlaylist, error)

	// AddTracks appends track URIs to a playlist. Rejects batches over the
	// service's per-call maximum.
	AddTracks(ctx context.Context, token, playlistID string, uris []string) error

	// Name returns the catalog name (e.g. "Spotify").
	Name() string
}

// APIError is a non-2xx response from the catalog API.
//
// Unwraps to [shared.ErrTokenExpired] for 401 responses so callers can detect
// credential failures with errors.Is, and to [shared.ErrAPIRequest] otherwise.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalog API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog API error: status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == 401 {
		return shared.ErrTokenExpired
	}
	return shared.ErrAPIRequest
}

// IsAuthError reports whether the error is a credential rejection (HTTP 401).
func IsAuthError(err error) bool {
	return errors.Is(err, shared.ErrTokenExpired)
}
