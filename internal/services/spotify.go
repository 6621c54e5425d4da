// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"vibedj/internal/shared"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// MaxTracksPerAdd is Spotify's per-call limit on the add-tracks endpoint.
	MaxTracksPerAdd = 100

	requestTimeout = 15 * time.Second
)

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Product     string `json:"product"` // premium, free, etc.
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	DurationMS int             `json:"duration_ms"`
	Explicit   bool            `json:"explicit"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

// PrimaryArtist returns the first artist's name, or empty when none is listed.
func (t SpotifyTrack) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0].Name
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyPlaylist represents a Spotify playlist.
type SpotifyPlaylist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Public       bool         `json:"public"`
	URI          string       `json:"uri"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// URL returns the playlist's public web URL.
func (p SpotifyPlaylist) URL() string {
	return p.ExternalURLs.Spotify
}

type searchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SpotifyService implements [Catalog] for the Spotify Web API.
//
// The service is stateless with respect to user credentials: every method
// takes the bearer token for that call, so one instance can serve concurrent
// requests with different tokens. Requests go through a shared rate limiter.
type SpotifyService struct {
	config     *oauth2.Config
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSpotifyService creates a Spotify service with the given OAuth2 credentials.
// client_id and client_secret are required; there are no embedded defaults.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-read-private",
			"user-read-email",
			"playlist-modify-public",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		baseURL:    spotifyBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(10), 1),
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// GetOAuthConfig returns the underlying OAuth2 config for callback exchange.
func (s *SpotifyService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// doRequest performs an authenticated HTTP request to the Spotify API.
//
// Non-2xx responses return an [*APIError] carrying the status code and body.
func (s *SpotifyService) doRequest(ctx context.Context, token, method, endpoint string, body, result any) error {
	if token == "" {
		return shared.ErrNotAuthenticated
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// UserProfile retrieves the profile of the token's owner.
func (s *SpotifyService) UserProfile(ctx context.Context, token string) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, token, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchTracks runs a track search query, capped at 50 results per Spotify's limit.
func (s *SpotifyService) SearchTracks(ctx context.Context, token, query string, limit int) ([]SpotifyTrack, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d&market=US", url.QueryEscape(query), limit)

	var response searchResponse
	if err := s.doRequest(ctx, token, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	return response.Tracks.Items, nil
}

// CreatePlaylist creates a private playlist for the given user.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, token, userID, name, description string) (*SpotifyPlaylist, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", shared.ErrInvalidArgument)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name is required", shared.ErrInvalidArgument)
	}

	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      false,
	}

	var playlist SpotifyPlaylist
	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	if err := s.doRequest(ctx, token, http.MethodPost, endpoint, body, &playlist); err != nil {
		return nil, err
	}

	return &playlist, nil
}

// AddTracks appends track URIs to a playlist. Batches over [MaxTracksPerAdd] are rejected.
func (s *SpotifyService) AddTracks(ctx context.Context, token, playlistID string, uris []string) error {
	if len(uris) == 0 {
		return fmt.Errorf("%w: no track URIs provided", shared.ErrInvalidArgument)
	}
	if len(uris) > MaxTracksPerAdd {
		return fmt.Errorf("%w: maximum %d tracks per request", shared.ErrInvalidArgument, MaxTracksPerAdd)
	}

	body := map[string]any{"uris": uris}
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	return s.doRequest(ctx, token, http.MethodPost, endpoint, body, nil)
}
