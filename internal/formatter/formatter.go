// package formatter renders playlists and assembly reports for CLI output (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"vibedj/internal/playlist"
	"vibedj/internal/tasks"
)

// PlaylistToCSV converts a playlist to CSV with columns: Title, Artist, Genre, Energy, Reason
func PlaylistToCSV(pl playlist.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Artist", "Genre", "Energy", "Reason"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range pl.Songs {
		record := []string{
			song.Title,
			song.Artist,
			song.Genre,
			strconv.Itoa(song.Energy),
			song.Reason,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// PlaylistToMarkdown converts a playlist to a Markdown document.
func PlaylistToMarkdown(title string, pl playlist.Playlist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	if pl.OverallVibe != "" {
		buf.WriteString(fmt.Sprintf("_%s_\n\n", pl.OverallVibe))
	}

	buf.WriteString("| # | Title | Artist | Genre | Energy |\n")
	buf.WriteString("|---|-------|--------|-------|--------|\n")
	for i, song := range pl.Songs {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %d |\n",
			i+1, song.Title, song.Artist, song.Genre, song.Energy))
	}

	if pl.DJComment != "" {
		buf.WriteString(fmt.Sprintf("\n> %s\n", pl.DJComment))
	}

	return buf.Bytes()
}

// PlaylistToText converts a playlist to a numbered plain-text listing.
func PlaylistToText(pl playlist.Playlist) []byte {
	var buf bytes.Buffer

	for i, song := range pl.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Title, song.Artist))
		buf.WriteString(fmt.Sprintf("   Genre: %s | Energy: %d/10\n", song.Genre, song.Energy))
		if song.Reason != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", song.Reason))
		}
	}

	if pl.DJComment != "" {
		buf.WriteString(fmt.Sprintf("\nDJ Comment: %s\n", pl.DJComment))
	}
	if pl.OverallVibe != "" {
		buf.WriteString(fmt.Sprintf("Overall Vibe: %s\n", pl.OverallVibe))
	}

	return buf.Bytes()
}

// ReportToText renders an assembly report for terminal display.
func ReportToText(result *tasks.AssemblyResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", result.PlaylistName))
	buf.WriteString(fmt.Sprintf("URL: %s\n", result.PlaylistURL))
	buf.WriteString(fmt.Sprintf("Tracks added: %d/%d\n", result.TracksAdded, result.TotalTracks))

	if len(result.Found) > 0 {
		buf.WriteString("\nMatched:\n")
		for _, t := range result.Found {
			buf.WriteString(fmt.Sprintf("  ✓ %s → %s by %s\n", t.Original, t.TrackName, t.ArtistName))
		}
	}

	if len(result.NotFound) > 0 {
		buf.WriteString("\nNot found:\n")
		for _, s := range result.NotFound {
			buf.WriteString(fmt.Sprintf("  ✗ %s by %s\n", s.Title, s.Artist))
		}
	}

	if len(result.SearchErrors) > 0 {
		buf.WriteString("\nSearch errors:\n")
		for _, e := range result.SearchErrors {
			buf.WriteString(fmt.Sprintf("  ! %s by %s: %s\n", e.Song.Title, e.Song.Artist, e.Error))
		}
	}

	return buf.Bytes()
}
