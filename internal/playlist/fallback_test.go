package playlist

import (
	"strings"
	"testing"
)

func TestFallback(t *testing.T) {
	t.Run("Bucket Selection", func(t *testing.T) {
		t.Run("Party Keywords", func(t *testing.T) {
			pl := Fallback("birthday party bangers")

			if pl.Songs[0].Title != "Uptown Funk" {
				t.Errorf("expected party bucket, got %q", pl.Songs[0].Title)
			}
		})

		t.Run("Chill Keywords", func(t *testing.T) {
			pl := Fallback("something to relax to")

			if pl.Songs[0].Title != "Stay" {
				t.Errorf("expected chill bucket, got %q", pl.Songs[0].Title)
			}
		})

		t.Run("Workout Keywords", func(t *testing.T) {
			pl := Fallback("Gym session")

			if pl.Songs[0].Title != "Eye of the Tiger" {
				t.Errorf("expected workout bucket, got %q", pl.Songs[0].Title)
			}
		})

		t.Run("Case Insensitive", func(t *testing.T) {
			pl := Fallback("PARTY TIME")

			if pl.Songs[0].Title != "Uptown Funk" {
				t.Errorf("expected party bucket for uppercase vibe, got %q", pl.Songs[0].Title)
			}
		})

		t.Run("Unmatched Vibe Uses Default", func(t *testing.T) {
			pl := Fallback("melancholy rainy tuesday")

			if pl.Songs[0].Title != "Happy" {
				t.Errorf("expected default bucket, got %q", pl.Songs[0].Title)
			}
		})
	})

	t.Run("Shape", func(t *testing.T) {
		pl := Fallback("anything")

		if len(pl.Songs) != 6 {
			t.Errorf("expected 6 songs, got %d", len(pl.Songs))
		}
		if pl.DJComment == "" {
			t.Error("expected DJ comment to be set")
		}
		if pl.OverallVibe == "" {
			t.Error("expected overall vibe to be set")
		}

		for i, song := range pl.Songs {
			if song.Title == "" || song.Artist == "" || song.Genre == "" || song.Reason == "" {
				t.Errorf("song %d has empty fields: %+v", i, song)
			}
			if song.Energy < 1 || song.Energy > 10 {
				t.Errorf("song %d energy out of range: %d", i, song.Energy)
			}
		}
	})

	t.Run("Vibe Interpolated Into Comment", func(t *testing.T) {
		pl := Fallback("road trip")

		if !strings.Contains(pl.DJComment, "road trip") {
			t.Errorf("expected vibe in DJ comment, got %q", pl.DJComment)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := Fallback("chill evening")
		second := Fallback("chill evening")

		if len(first.Songs) != len(second.Songs) {
			t.Fatal("expected identical playlists")
		}
		for i := range first.Songs {
			if first.Songs[i] != second.Songs[i] {
				t.Errorf("song %d differs between calls", i)
			}
		}
		if first.DJComment != second.DJComment {
			t.Error("DJ comment differs between calls")
		}
	})

	t.Run("Callers Own The Slice", func(t *testing.T) {
		first := Fallback("party")
		first.Songs[0].Title = "mutated"

		second := Fallback("party")
		if second.Songs[0].Title == "mutated" {
			t.Error("expected fallback to return a fresh copy")
		}
	})
}
