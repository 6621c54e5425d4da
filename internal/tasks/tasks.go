// package tasks implements playlist assembly against the music catalog.
//
// The core abstraction is AssemblyEngine, which validates the caller's
// credential, creates the playlist container, resolves each song against the
// catalog, and populates the playlist in bounded batches. Operations emit
// progress updates via channels for non-blocking status reporting.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"vibedj/internal/playlist"
	"vibedj/internal/services"
	"vibedj/internal/shared"
)

// AssemblyRequest describes the playlist to build.
type AssemblyRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Songs       []playlist.Song `json:"songs"`
}

// FoundTrack summarizes one successful song resolution.
type FoundTrack struct {
	Original   string `json:"original"`
	URI        string `json:"spotify"`
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
}

// SearchError records a song whose resolution failed at the transport level.
type SearchError struct {
	Song  playlist.Song `json:"song"`
	Error string        `json:"error"`
}

// AssemblyResult is the aggregated report for one assembly call.
//
// Once the playlist container is created the call cannot fail: unresolved
// songs and rejected batches are recorded here rather than surfaced as errors.
type AssemblyResult struct {
	PlaylistID     string          `json:"playlistId"`
	PlaylistURL    string          `json:"playlistUrl"`
	PlaylistName   string          `json:"playlistName"`
	TracksAdded    int             `json:"tracksAdded"`
	TracksNotFound int             `json:"tracksNotFound"`
	TotalTracks    int             `json:"totalTracks"`
	NotFound       []playlist.Song `json:"notFoundTracks"`
	Found          []FoundTrack    `json:"foundTracks"`
	SearchErrors   []SearchError   `json:"searchErrors,omitempty"`
}

// AssemblyEngine orchestrates playlist creation and population.
type AssemblyEngine struct {
	catalog   services.Catalog
	resolver  *services.Resolver
	logger    *log.Logger
	batchSize int
}

// NewAssemblyEngine creates an engine backed by the given catalog.
func NewAssemblyEngine(catalog services.Catalog, logger *log.Logger) *AssemblyEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AssemblyEngine{
		catalog:   catalog,
		resolver:  services.NewResolver(catalog),
		logger:    logger,
		batchSize: services.MaxTracksPerAdd,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *AssemblyEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full or absent a reader, skip this update
	}
}

// Assemble validates the credential, creates the playlist, resolves every song
// in input order, and adds matches in batches.
//
// Credential rejection returns an error wrapping [shared.ErrTokenExpired]
// before any playlist is created; a rejected creation call returns an error
// wrapping [shared.ErrPlaylistCreation]. After creation succeeds the call
// always returns a result: per-song resolution failures and per-batch add
// failures are recorded in it, never fatal.
func (e *AssemblyEngine) Assemble(ctx context.Context, progress chan<- ProgressUpdate, token string, req AssemblyRequest) (*AssemblyResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: access token is required", shared.ErrNotAuthenticated)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}

	e.sendProgress(progress, validateUserUpdate())

	user, err := e.catalog.UserProfile(ctx, token)
	if err != nil {
		if services.IsAuthError(err) {
			return nil, fmt.Errorf("credential validation failed: %w", err)
		}
		return nil, fmt.Errorf("%w: failed to validate user: %v", shared.ErrAPIRequest, err)
	}

	e.logger.Info("user validated", "user", user.ID)
	e.sendProgress(progress, createPlaylistUpdate(req.Name))

	created, err := e.catalog.CreatePlaylist(ctx, token, user.ID, req.Name, req.Description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrPlaylistCreation, err)
	}

	e.logger.Info("playlist created", "id", created.ID, "name", created.Name)

	result := &AssemblyResult{
		PlaylistID:   created.ID,
		PlaylistURL:  created.URL(),
		PlaylistName: created.Name,
		TotalTracks:  len(req.Songs),
	}

	uris := e.resolveSongs(ctx, progress, token, req.Songs, result)
	e.addInBatches(ctx, progress, token, created.ID, uris, result)

	result.TracksNotFound = len(result.NotFound)

	e.logger.Info("assembly complete",
		"playlist", created.ID,
		"added", result.TracksAdded,
		"not_found", result.TracksNotFound,
		"total", result.TotalTracks)

	return result, nil
}

// resolveSongs resolves each song sequentially in input order and returns the
// matched URIs in resolution order.
//
// Resolution results are memoized per call, so a repeated (title, artist) pair
// costs no extra search traffic while the output ordering is unchanged.
func (e *AssemblyEngine) resolveSongs(ctx context.Context, progress chan<- ProgressUpdate, token string, songs []playlist.Song, result *AssemblyResult) []string {
	var uris []string
	cache := make(map[string]*services.Match)

	for i, song := range songs {
		e.sendProgress(progress, searchTrackUpdate(i+1, len(songs), song.Title, song.Artist))

		key := strings.ToLower(song.Title) + "\x00" + strings.ToLower(song.Artist)
		match, seen := cache[key]

		if !seen {
			var err error
			match, err = e.resolver.Resolve(ctx, token, song.Title, song.Artist)
			switch {
			case err == nil:
				cache[key] = match
			case errors.Is(err, shared.ErrTrackNotFound):
				cache[key] = nil
			default:
				// Transport-level failure; recorded but the cache is left
				// unset so a later duplicate still gets a fresh attempt.
				e.logger.Warn("search error", "title", song.Title, "artist", song.Artist, "error", err)
				result.SearchErrors = append(result.SearchErrors, SearchError{Song: song, Error: err.Error()})
				result.NotFound = append(result.NotFound, song)
				continue
			}
		}

		if match == nil {
			e.logger.Debug("no match", "title", song.Title, "artist", song.Artist)
			result.NotFound = append(result.NotFound, song)
			continue
		}

		uris = append(uris, match.URI)
		result.Found = append(result.Found, FoundTrack{
			Original:   fmt.Sprintf("%s by %s", song.Title, song.Artist),
			URI:        match.URI,
			TrackName:  match.Title,
			ArtistName: match.Artist,
		})
	}

	return uris
}

// addInBatches submits URIs in bounded batches. A rejected batch is logged and
// skipped; remaining batches are still attempted. TracksAdded counts only
// confirmed batches.
func (e *AssemblyEngine) addInBatches(ctx context.Context, progress chan<- ProgressUpdate, token, playlistID string, uris []string, result *AssemblyResult) {
	if len(uris) == 0 {
		return
	}

	totalBatches := (len(uris) + e.batchSize - 1) / e.batchSize

	for i := 0; i < len(uris); i += e.batchSize {
		end := i + e.batchSize
		if end > len(uris) {
			end = len(uris)
		}
		batch := uris[i:end]
		batchNum := i/e.batchSize + 1

		e.sendProgress(progress, addTracksUpdate(batchNum, totalBatches, len(batch)))

		if err := e.catalog.AddTracks(ctx, token, playlistID, batch); err != nil {
			e.logger.Warn("failed to add batch", "batch", batchNum, "size", len(batch), "error", err)
			continue
		}

		result.TracksAdded += len(batch)
	}
}
