package playlist

import (
	"regexp"
	"strconv"
	"strings"
)

// ParserOpts controls optional parsing behavior.
type ParserOpts struct {
	// QuoteHeuristic enables the best-effort capture of quoted-title lines that
	// mention music keywords. It is a low-confidence extension and off by default.
	QuoteHeuristic bool
}

var (
	numberedLine = regexp.MustCompile(`^\d+\.\s*(.+)`)
	quotedTitle  = regexp.MustCompile(`["']([^"']+)["']`)
)

var musicKeywords = []string{"song", "track", "music", "artist", "album", "feat", "ft"}

// commentMode tracks which free-text block continuation lines belong to.
type commentMode int

const (
	modeNone commentMode = iota
	modeComment
	modeVibe
)

// Parse extracts a structured playlist from raw model output.
//
// It never fails: input that yields no songs produces an empty playlist, which
// callers must treat as a parse failure and replace with fallback content.
func Parse(raw string) Playlist {
	return ParseWithOpts(raw, ParserOpts{})
}

// ParseWithOpts is Parse with explicit options.
//
// Lines are classified independently, first matching rule wins: pipe-delimited
// song lines, numbered entries, DJ comment lines, vibe lines. Unclassified
// lines extend the most recent comment or vibe block, otherwise they are ignored.
func ParseWithOpts(raw string, opts ParserOpts) Playlist {
	var result Playlist
	mode := modeNone

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, "|") {
			if song, ok := parsePipeLine(line); ok {
				result.Songs = append(result.Songs, song)
				mode = modeNone
				continue
			}
		}

		if m := numberedLine.FindStringSubmatch(line); m != nil {
			result.Songs = append(result.Songs, parseNumberedEntry(m[1]))
			mode = modeNone
			continue
		}

		if text, ok := matchLabeled(line, "dj comment:", "dj says:"); ok {
			result.DJComment = text
			mode = modeComment
			continue
		}

		if text, ok := matchLabeled(line, "overall vibe:", "vibe:"); ok {
			result.OverallVibe = text
			mode = modeVibe
			continue
		}

		if opts.QuoteHeuristic {
			if song, ok := sniffQuotedSong(line); ok {
				result.Songs = append(result.Songs, song)
				mode = modeNone
				continue
			}
		}

		switch mode {
		case modeComment:
			result.DJComment = appendText(result.DJComment, line)
		case modeVibe:
			result.OverallVibe = appendText(result.OverallVibe, line)
		}
	}

	result.DJComment = strings.TrimSpace(result.DJComment)
	result.OverallVibe = strings.TrimSpace(result.OverallVibe)
	return result
}

// parsePipeLine parses "Title | Artist | Genre | Energy | Reason".
// Requires at least three fields; energy and reason are optional.
func parsePipeLine(line string) (Song, bool) {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 {
		return Song{}, false
	}

	song := Song{
		Title:  orDefault(parts[0], UnknownTitle),
		Artist: orDefault(parts[1], UnknownArtist),
		Genre:  orDefault(parts[2], DefaultGenre),
		Energy: DefaultEnergy,
		Reason: DefaultReason,
	}

	if len(parts) >= 4 {
		if energy, err := strconv.Atoi(parts[3]); err == nil {
			song.Energy = clampEnergy(energy)
		}
	}
	if len(parts) >= 5 && parts[4] != "" {
		song.Reason = parts[4]
	}

	return song, true
}

// parseNumberedEntry extracts title/artist from the remainder of a "N. ..." line,
// trying "Title - Artist" then "Title by Artist" before falling back to title only.
func parseNumberedEntry(text string) Song {
	title := UnknownTitle
	artist := UnknownArtist

	switch {
	case strings.Contains(text, " - "):
		parts := strings.SplitN(text, " - ", 2)
		title = orDefault(strings.TrimSpace(parts[0]), UnknownTitle)
		artist = orDefault(strings.TrimSpace(parts[1]), UnknownArtist)
	case strings.Contains(text, " by "):
		parts := strings.SplitN(text, " by ", 2)
		title = orDefault(strings.TrimSpace(parts[0]), UnknownTitle)
		artist = orDefault(strings.TrimSpace(parts[1]), UnknownArtist)
	default:
		title = orDefault(strings.TrimSpace(text), UnknownTitle)
	}

	return Song{
		Title:  title,
		Artist: artist,
		Genre:  DefaultGenre,
		Energy: DefaultEnergy,
		Reason: DefaultReason,
	}
}

// matchLabeled reports whether the line contains one of the labels
// (case-insensitive) and returns everything after the first colon.
func matchLabeled(line string, labels ...string) (string, bool) {
	lower := strings.ToLower(line)
	for _, label := range labels {
		if strings.Contains(lower, label) {
			if idx := strings.Index(line, ":"); idx >= 0 {
				return strings.TrimSpace(line[idx+1:]), true
			}
			return "", true
		}
	}
	return "", false
}

// sniffQuotedSong captures lines that look like they mention a song via quotes
// or music keywords. Best-effort only.
func sniffQuotedSong(line string) (Song, bool) {
	if len(line) <= 10 || len(line) >= 200 {
		return Song{}, false
	}

	hasQuotes := strings.ContainsAny(line, `"'`)
	lower := strings.ToLower(line)
	hasKeyword := false
	for _, kw := range musicKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasQuotes && !hasKeyword {
		return Song{}, false
	}

	quoted := quotedTitle.FindAllStringSubmatch(line, 2)
	if len(quoted) == 0 {
		return Song{}, false
	}

	artist := UnknownArtist
	if len(quoted) > 1 {
		artist = quoted[1][1]
	}

	return Song{
		Title:  quoted[0][1],
		Artist: artist,
		Genre:  DefaultGenre,
		Energy: DefaultEnergy,
		Reason: DefaultReason,
	}, true
}

func appendText(existing, line string) string {
	if existing == "" {
		return line
	}
	return existing + " " + line
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
