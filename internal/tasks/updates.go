package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or HTTP layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	ValidateUser Phase = iota
	CreatePlaylist
	SearchTracks
	AddTracks
)

func (p Phase) String() string {
	switch p {
	case ValidateUser:
		return "validate_user"
	case CreatePlaylist:
		return "create_playlist"
	case SearchTracks:
		return "search_tracks"
	case AddTracks:
		return "add_tracks"
	default:
		return ""
	}
}

func validateUserUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateUser,
		Step:    1,
		Total:   1,
		Message: "Validating Spotify credentials...",
	}
}

func createPlaylistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist %q...", name),
	}
}

func searchTrackUpdate(step, total int, title, artist string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Searching %q by %s...", step, total, title, artist),
	}
}

func addTracksUpdate(step, total, batchLen int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Adding batch %d/%d (%d tracks)...", step, total, batchLen),
	}
}
