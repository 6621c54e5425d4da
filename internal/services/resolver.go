package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"vibedj/internal/shared"
)

const (
	// searchLimit caps results fetched per query strategy.
	searchLimit = 10

	// acceptThreshold is the minimum combined title+artist score for a
	// candidate to count as a match. Candidates at or below it are rejected.
	acceptThreshold = 30.0
)

var nonSearchChars = regexp.MustCompile(`[^\w\s\-']`)

// Match is the catalog track selected for a searched (title, artist) pair.
type Match struct {
	URI    string
	Title  string
	Artist string
	Score  float64
}

// Resolver finds the closest catalog track for a loosely specified
// (title, artist) pair using multiple query strategies and a scoring heuristic.
//
// This is a best-effort matcher: wrong tracks with similar names and missed
// tracks phrased unusually are accepted costs.
type Resolver struct {
	catalog Catalog
}

// NewResolver creates a Resolver backed by the given catalog.
func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve searches the catalog for the best match of title/artist.
//
// Query strategies are tried in order from most to least specific; the first
// strategy whose best-scoring candidate clears the acceptance threshold wins.
// Individual strategy failures (transport or service errors) are swallowed and
// the next strategy is tried. When every strategy is exhausted without an
// acceptable candidate, Resolve returns [shared.ErrTrackNotFound], unless every
// single strategy failed at the transport level, in which case the last
// transport error is returned so callers can tell outage from absence.
func (r *Resolver) Resolve(ctx context.Context, token, title, artist string) (*Match, error) {
	cleanTitle := sanitize(title)
	cleanArtist := sanitize(artist)

	var lastErr error
	answered := false

	for _, query := range searchStrategies(cleanTitle, cleanArtist) {
		tracks, err := r.catalog.SearchTracks(ctx, token, query, searchLimit)
		if err != nil {
			// Transient failure: move on to the next formulation.
			lastErr = err
			continue
		}

		answered = true
		if len(tracks) == 0 {
			continue
		}

		best, score := bestCandidate(tracks, cleanTitle, cleanArtist)
		if score > acceptThreshold {
			return &Match{
				URI:    best.URI,
				Title:  best.Name,
				Artist: best.PrimaryArtist(),
				Score:  score,
			}, nil
		}
	}

	if !answered && lastErr != nil {
		return nil, fmt.Errorf("search failed for %q by %q: %w", title, artist, lastErr)
	}

	return nil, fmt.Errorf("%w: %q by %q", shared.ErrTrackNotFound, title, artist)
}

// searchStrategies returns the ordered query formulations for a cleaned pair.
func searchStrategies(title, artist string) []string {
	strategies := []string{
		fmt.Sprintf(`track:"%s" artist:"%s"`, title, artist),
		fmt.Sprintf(`"%s" "%s"`, title, artist),
		fmt.Sprintf("%s %s", title, artist),
		title,
	}

	if words := strings.Fields(title); len(words) > 1 {
		strategies = append(strategies, words[0])
	}

	return strategies
}

// bestCandidate scores every track and returns the highest scorer.
func bestCandidate(tracks []SpotifyTrack, title, artist string) (SpotifyTrack, float64) {
	best := tracks[0]
	bestScore := -1.0

	for _, track := range tracks {
		score := scoreTitle(track.Name, title) + scoreArtist(track.PrimaryArtist(), artist)
		if score > bestScore {
			best = track
			bestScore = score
		}
	}

	return best, bestScore
}

// scoreTitle rates a candidate title against the search title on a 0-100 scale.
func scoreTitle(candidate, search string) float64 {
	candidate = strings.ToLower(candidate)
	search = strings.ToLower(search)

	switch {
	case candidate == search:
		return 100
	case strings.Contains(candidate, search):
		return 80
	case strings.Contains(search, candidate):
		return 60
	default:
		return wordOverlap(search, candidate) * 40
	}
}

// scoreArtist rates a candidate artist against the search artist on a 0-50 scale.
func scoreArtist(candidate, search string) float64 {
	candidate = strings.ToLower(candidate)
	search = strings.ToLower(search)

	switch {
	case candidate == search:
		return 50
	case strings.Contains(candidate, search):
		return 40
	case strings.Contains(search, candidate):
		return 30
	default:
		return wordOverlap(search, candidate) * 20
	}
}

// wordOverlap returns the fraction of search words contained in the candidate.
func wordOverlap(search, candidate string) float64 {
	words := strings.Fields(search)
	if len(words) == 0 {
		return 0
	}

	matched := 0
	for _, word := range words {
		if strings.Contains(candidate, word) {
			matched++
		}
	}

	return float64(matched) / float64(len(words))
}

// sanitize strips characters outside word, space, hyphen, and apostrophe classes.
func sanitize(s string) string {
	return strings.TrimSpace(nonSearchChars.ReplaceAllString(s, ""))
}
