package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"vibedj/internal/playlist"
	"vibedj/internal/services"
	"vibedj/internal/shared"
)

// stubCatalog implements [services.Catalog] with programmable behavior for
// each engine phase.
type stubCatalog struct {
	profileErr  error
	createErr   error
	addErr      error
	addErrBatch int // 1-based batch index to fail, 0 fails none (unless addErr set)

	tracksFor func(query string) []services.SpotifyTrack

	searchCalls int
	addCalls    [][]string
}

func (s *stubCatalog) Name() string { return "Stub" }

func (s *stubCatalog) UserProfile(ctx context.Context, token string) (*services.SpotifyUser, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return &services.SpotifyUser{ID: "user_1", DisplayName: "Stub User"}, nil
}

func (s *stubCatalog) SearchTracks(ctx context.Context, token, query string, limit int) ([]services.SpotifyTrack, error) {
	s.searchCalls++
	if s.tracksFor == nil {
		return nil, nil
	}
	return s.tracksFor(query), nil
}

func (s *stubCatalog) CreatePlaylist(ctx context.Context, token, userID, name, description string) (*services.SpotifyPlaylist, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &services.SpotifyPlaylist{ID: "pl_1", Name: name}, nil
}

func (s *stubCatalog) AddTracks(ctx context.Context, token, playlistID string, uris []string) error {
	s.addCalls = append(s.addCalls, uris)
	if s.addErr != nil && (s.addErrBatch == 0 || s.addErrBatch == len(s.addCalls)) {
		return s.addErr
	}
	return nil
}

// exactMatches returns a search stub that answers any query containing one of
// the given titles with an exact-match track.
func exactMatches(titles map[string]string) func(string) []services.SpotifyTrack {
	return func(query string) []services.SpotifyTrack {
		lower := strings.ToLower(query)
		for title, artist := range titles {
			if strings.Contains(lower, strings.ToLower(title)) {
				return []services.SpotifyTrack{{
					URI:     "spotify:track:" + strings.ReplaceAll(strings.ToLower(title), " ", "_"),
					Name:    title,
					Artists: []services.SpotifyArtist{{Name: artist}},
				}}
			}
		}
		return nil
	}
}

func songList(pairs ...[2]string) []playlist.Song {
	songs := make([]playlist.Song, 0, len(pairs))
	for _, p := range pairs {
		songs = append(songs, playlist.Song{Title: p[0], Artist: p[1], Genre: "Pop", Energy: 5})
	}
	return songs
}

func TestAssemblyEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("Input Validation", func(t *testing.T) {
		engine := NewAssemblyEngine(&stubCatalog{}, nil)

		t.Run("Missing Token", func(t *testing.T) {
			_, err := engine.Assemble(ctx, nil, "", AssemblyRequest{Name: "x"})
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("Missing Name", func(t *testing.T) {
			_, err := engine.Assemble(ctx, nil, "token", AssemblyRequest{})
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("Nil Catalog", func(t *testing.T) {
			engine := NewAssemblyEngine(nil, nil)
			_, err := engine.Assemble(ctx, nil, "token", AssemblyRequest{Name: "x"})
			if !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})

	t.Run("Credential Rejected Before Creation", func(t *testing.T) {
		catalog := &stubCatalog{
			profileErr: &services.APIError{StatusCode: 401, Body: "expired"},
		}
		engine := NewAssemblyEngine(catalog, nil)

		_, err := engine.Assemble(ctx, nil, "stale", AssemblyRequest{Name: "Mix", Songs: songList([2]string{"A", "B"})})
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}

		if len(catalog.addCalls) != 0 {
			t.Error("expected no writes after credential rejection")
		}
	})

	t.Run("Profile Transport Error", func(t *testing.T) {
		catalog := &stubCatalog{profileErr: errors.New("dial tcp: timeout")}
		engine := NewAssemblyEngine(catalog, nil)

		_, err := engine.Assemble(ctx, nil, "token", AssemblyRequest{Name: "Mix"})
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Creation Failure", func(t *testing.T) {
		catalog := &stubCatalog{createErr: errors.New("forbidden")}
		engine := NewAssemblyEngine(catalog, nil)

		_, err := engine.Assemble(ctx, nil, "token", AssemblyRequest{Name: "Mix"})
		if !errors.Is(err, shared.ErrPlaylistCreation) {
			t.Errorf("expected ErrPlaylistCreation, got %v", err)
		}
	})

	t.Run("Partial Resolution", func(t *testing.T) {
		catalog := &stubCatalog{
			tracksFor: exactMatches(map[string]string{
				"Happy":       "Pharrell Williams",
				"Stay":        "Rihanna",
				"Golden":      "Harry Styles",
				"Uptown Funk": "Mark Ronson",
			}),
		}
		engine := NewAssemblyEngine(catalog, nil)

		songs := songList(
			[2]string{"Happy", "Pharrell Williams"},
			[2]string{"Stay", "Rihanna"},
			[2]string{"Ghost Track", "Nobody"},
			[2]string{"Golden", "Harry Styles"},
			[2]string{"Another Ghost", "Nobody"},
			[2]string{"Uptown Funk", "Mark Ronson"},
		)

		result, err := engine.Assemble(ctx, nil, "token", AssemblyRequest{Name: "Mix", Songs: songs})
		if err != nil {
			t.Fatalf("expected result despite misses, got %v", err)
		}

		if result.TotalTracks != 6 {
			t.Errorf("expected total 6, got %d", result.TotalTracks)
		}
		if result.TracksAdded != 4 {
			t.Errorf("expected 4 added, got %d", result.TracksAdded)
		}
		if result.TracksNotFound != 2 {
			t.Errorf("expected 2 not found, got %d", result.TracksNotFound)
		}
		if len(result.Found) != 4 {
			t.Errorf("expected 4 found entries, got %d", len(result.Found))
		}
		if len(result.NotFound) != 2 {
			t.Errorf("expected 2 not-found entries, got %d", len(result.NotFound))
		}

		if result.NotFound[0].Title != "Ghost Track" || result.NotFound[1].Title != "Another Ghost" {
			t.Errorf("unexpected not-found entries: %+v", result.NotFound)
		}

		// Input order preserved among matches.
		wantOrder := []string{"Happy", "Stay", "Golden", "Uptown Funk"}
		for i, want := range wantOrder {
			if result.Found[i].TrackName != want {
				t.Errorf("position %d: expected %q, got %q", i, want, result.Found[i].TrackName)
			}
		}
	})

	t.Run("Batching", func(t *testing.T) {
		t.Run("Splits Over Limit", func(t *testing.T) {
			catalog := &stubCatalog{}
			engine := NewAssemblyEngine(catalog, nil)
			engine.batchSize = 100

			uris := make([]string, 150)
			for i := range uris {
				uris[i] = fmt.Sprintf("spotify:track:%d", i)
			}

			result := &AssemblyResult{}
			engine.addInBatches(ctx, nil, "token", "pl_1", uris, result)

			if len(catalog.addCalls) != 2 {
				t.Fatalf("expected 2 batches, got %d", len(catalog.addCalls))
			}
			if len(catalog.addCalls[0]) != 100 {
				t.Errorf("expected first batch of 100, got %d", len(catalog.addCalls[0]))
			}
			if len(catalog.addCalls[1]) != 50 {
				t.Errorf("expected second batch of 50, got %d", len(catalog.addCalls[1]))
			}
			if result.TracksAdded != 150 {
				t.Errorf("expected 150 added, got %d", result.TracksAdded)
			}
		})

		t.Run("Failed Batch Skipped", func(t *testing.T) {
			catalog := &stubCatalog{addErr: errors.New("server error"), addErrBatch: 1}
			engine := NewAssemblyEngine(catalog, nil)
			engine.batchSize = 2

			result := &AssemblyResult{}
			engine.addInBatches(ctx, nil, "token", "pl_1", []string{"a", "b", "c"}, result)

			if len(catalog.addCalls) != 2 {
				t.Fatalf("expected both batches attempted, got %d", len(catalog.addCalls))
			}
			if result.TracksAdded != 1 {
				t.Errorf("expected only the confirmed batch counted, got %d", result.TracksAdded)
			}
		})

		t.Run("No URIs No Calls", func(t *testing.T) {
			catalog := &stubCatalog{}
			engine := NewAssemblyEngine(catalog, nil)

			result := &AssemblyResult{}
			engine.addInBatches(ctx, nil, "token", "pl_1", nil, result)

			if len(catalog.addCalls) != 0 {
				t.Errorf("expected no add calls, got %d", len(catalog.addCalls))
			}
		})
	})

	t.Run("Duplicate Songs Hit Cache", func(t *testing.T) {
		catalog := &stubCatalog{
			tracksFor: exactMatches(map[string]string{"Happy": "Pharrell Williams"}),
		}
		engine := NewAssemblyEngine(catalog, nil)

		songs := songList(
			[2]string{"Happy", "Pharrell Williams"},
			[2]string{"happy", "pharrell williams"},
			[2]string{"Happy", "Pharrell Williams"},
		)

		result, err := engine.Assemble(ctx, nil, "token", AssemblyRequest{Name: "Mix", Songs: songs})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if result.TracksAdded != 3 {
			t.Errorf("expected all 3 occurrences added, got %d", result.TracksAdded)
		}

		// The first occurrence resolves with one query; duplicates must not
		// search again.
		if catalog.searchCalls != 1 {
			t.Errorf("expected 1 search call, got %d", catalog.searchCalls)
		}
	})

	t.Run("Progress Updates", func(t *testing.T) {
		t.Run("Phases Reported In Order", func(t *testing.T) {
			catalog := &stubCatalog{
				tracksFor: exactMatches(map[string]string{"Happy": "Pharrell Williams"}),
			}
			engine := NewAssemblyEngine(catalog, nil)

			progress := make(chan ProgressUpdate, 64)
			_, err := engine.Assemble(ctx, progress, "token", AssemblyRequest{
				Name:  "Mix",
				Songs: songList([2]string{"Happy", "Pharrell Williams"}),
			})
			if err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			close(progress)

			var phases []Phase
			for update := range progress {
				phases = append(phases, update.Phase)
			}

			want := []Phase{ValidateUser, CreatePlaylist, SearchTracks, AddTracks}
			if len(phases) != len(want) {
				t.Fatalf("expected %d updates, got %d", len(want), len(phases))
			}
			for i := range want {
				if phases[i] != want[i] {
					t.Errorf("update %d: expected phase %s, got %s", i, want[i], phases[i])
				}
			}
		})

		t.Run("Nil Channel Is Fine", func(t *testing.T) {
			catalog := &stubCatalog{}
			engine := NewAssemblyEngine(catalog, nil)

			_, err := engine.Assemble(ctx, nil, "token", AssemblyRequest{Name: "Mix"})
			if err != nil {
				t.Errorf("expected success without a progress channel, got %v", err)
			}
		})

		t.Run("Full Channel Never Blocks", func(t *testing.T) {
			catalog := &stubCatalog{
				tracksFor: exactMatches(map[string]string{"Happy": "Pharrell Williams"}),
			}
			engine := NewAssemblyEngine(catalog, nil)

			// Unbuffered channel with no reader: every send must be dropped.
			progress := make(chan ProgressUpdate)

			done := make(chan struct{})
			go func() {
				defer close(done)
				engine.Assemble(ctx, progress, "token", AssemblyRequest{
					Name:  "Mix",
					Songs: songList([2]string{"Happy", "Pharrell Williams"}),
				})
			}()

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("assembly blocked on progress channel")
			}
		})
	})

	t.Run("Transport Errors Recorded", func(t *testing.T) {
		// Searches fail entirely for one song: it lands in both NotFound and
		// SearchErrors, and the assembly still succeeds.
		engine := NewAssemblyEngine(&erroringCatalog{
			stubCatalog:           &stubCatalog{},
			failQueriesContaining: "Broken",
		}, nil)

		songs := songList([2]string{"Broken Song", "Artist"})
		result, err := engine.Assemble(ctx, nil, "token", AssemblyRequest{Name: "Mix", Songs: songs})
		if err != nil {
			t.Fatalf("expected result, got %v", err)
		}

		if len(result.SearchErrors) != 1 {
			t.Fatalf("expected 1 search error, got %d", len(result.SearchErrors))
		}
		if result.SearchErrors[0].Song.Title != "Broken Song" {
			t.Errorf("unexpected search error song %q", result.SearchErrors[0].Song.Title)
		}
		if result.TracksNotFound != 1 {
			t.Errorf("expected song counted as not found, got %d", result.TracksNotFound)
		}
	})
}

// erroringCatalog fails every search whose query contains a marker string.
type erroringCatalog struct {
	*stubCatalog
	failQueriesContaining string
}

func (e *erroringCatalog) SearchTracks(ctx context.Context, token, query string, limit int) ([]services.SpotifyTrack, error) {
	if strings.Contains(query, e.failQueriesContaining) {
		return nil, errors.New("connection reset")
	}
	return e.stubCatalog.SearchTracks(ctx, token, query, limit)
}

func TestPhaseString(t *testing.T) {
	cases := map[Phase]string{
		ValidateUser:   "validate_user",
		CreatePlaylist: "create_playlist",
		SearchTracks:   "search_tracks",
		AddTracks:      "add_tracks",
		Phase(99):      "",
	}

	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
