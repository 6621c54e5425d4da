package formatter

import (
	"encoding/csv"
	"strings"
	"testing"

	"vibedj/internal/playlist"
	"vibedj/internal/tasks"
)

func samplePlaylist() playlist.Playlist {
	return playlist.Playlist{
		Songs: []playlist.Song{
			{Title: "Happy", Artist: "Pharrell Williams", Genre: "Pop", Energy: 8, Reason: "Feel-good anthem"},
			{Title: "Stay", Artist: "Rihanna", Genre: "Pop/R&B", Energy: 4, Reason: "Smooth and emotional"},
		},
		DJComment:   "Enjoy the set!",
		OverallVibe: "Feel-good classics",
	}
}

func TestPlaylistToCSV(t *testing.T) {
	data, err := PlaylistToCSV(samplePlaylist())
	if err != nil {
		t.Fatalf("failed to render CSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}

	header := records[0]
	want := []string{"Title", "Artist", "Genre", "Energy", "Reason"}
	for i, col := range want {
		if header[i] != col {
			t.Errorf("header column %d: expected %q, got %q", i, col, header[i])
		}
	}

	if records[1][0] != "Happy" || records[1][3] != "8" {
		t.Errorf("unexpected first row %v", records[1])
	}
}

func TestPlaylistToMarkdown(t *testing.T) {
	out := string(PlaylistToMarkdown("Road Trip", samplePlaylist()))

	if !strings.HasPrefix(out, "# Road Trip\n") {
		t.Error("expected title heading")
	}
	if !strings.Contains(out, "| 1 | Happy | Pharrell Williams | Pop | 8 |") {
		t.Errorf("expected table row, got:\n%s", out)
	}
	if !strings.Contains(out, "> Enjoy the set!") {
		t.Error("expected DJ comment as blockquote")
	}
	if !strings.Contains(out, "_Feel-good classics_") {
		t.Error("expected vibe as italic line")
	}

	t.Run("Omits Empty Sections", func(t *testing.T) {
		out := string(PlaylistToMarkdown("Bare", playlist.Playlist{Songs: samplePlaylist().Songs}))

		if strings.Contains(out, ">") {
			t.Error("expected no blockquote without a DJ comment")
		}
	})
}

func TestPlaylistToText(t *testing.T) {
	out := string(PlaylistToText(samplePlaylist()))

	if !strings.Contains(out, "1. Happy - Pharrell Williams") {
		t.Errorf("expected numbered entry, got:\n%s", out)
	}
	if !strings.Contains(out, "Energy: 8/10") {
		t.Error("expected energy rendered out of 10")
	}
	if !strings.Contains(out, "DJ Comment: Enjoy the set!") {
		t.Error("expected DJ comment line")
	}
	if !strings.Contains(out, "Overall Vibe: Feel-good classics") {
		t.Error("expected overall vibe line")
	}
}

func TestReportToText(t *testing.T) {
	result := &tasks.AssemblyResult{
		PlaylistName: "My Mix",
		PlaylistURL:  "https://open.spotify.com/playlist/pl_1",
		TracksAdded:  2,
		TotalTracks:  3,
		Found: []tasks.FoundTrack{
			{Original: "Happy by Pharrell Williams", TrackName: "Happy", ArtistName: "Pharrell Williams"},
		},
		NotFound: []playlist.Song{
			{Title: "Ghost Track", Artist: "Nobody"},
		},
		SearchErrors: []tasks.SearchError{
			{Song: playlist.Song{Title: "Broken", Artist: "Artist"}, Error: "connection reset"},
		},
	}

	out := string(ReportToText(result))

	if !strings.Contains(out, "Playlist: My Mix") {
		t.Error("expected playlist name")
	}
	if !strings.Contains(out, "Tracks added: 2/3") {
		t.Error("expected add counts")
	}
	if !strings.Contains(out, "✓ Happy by Pharrell Williams") {
		t.Error("expected matched section")
	}
	if !strings.Contains(out, "✗ Ghost Track by Nobody") {
		t.Error("expected not-found section")
	}
	if !strings.Contains(out, "! Broken by Artist: connection reset") {
		t.Error("expected search error section")
	}

	t.Run("Omits Empty Sections", func(t *testing.T) {
		out := string(ReportToText(&tasks.AssemblyResult{PlaylistName: "Empty"}))

		if strings.Contains(out, "Not found") || strings.Contains(out, "Search errors") {
			t.Error("expected empty sections omitted")
		}
	})
}
