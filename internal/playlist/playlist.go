// Package playlist defines the playlist data model, the tolerant text parser
// for model output, and the static fallback catalog.
package playlist

// Sentinel and default field values for songs that arrive incomplete.
const (
	UnknownTitle  = "Unknown Song"
	UnknownArtist = "Unknown Artist"

	DefaultGenre  = "Pop"
	DefaultEnergy = 5
	DefaultReason = "Great track for this vibe"

	// Defaults used when the model never produced a comment or vibe line.
	DefaultDJComment   = "Here's a curated playlist that matches your vibe perfectly!"
	DefaultOverallVibe = "A carefully selected mix that captures the essence of your request."
)

// Song is one entry in a generated playlist. Fields are never mutated after construction.
type Song struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Genre  string `json:"genre"`
	Energy int    `json:"energy"` // 1-10
	Reason string `json:"reason"`
}

// Playlist is a structured playlist extracted from model output or served from the fallback catalog.
//
// Songs preserve source order; an empty Songs slice means parsing failed and the
// caller must substitute fallback content before responding.
type Playlist struct {
	Songs       []Song `json:"playlist"`
	DJComment   string `json:"djComment"`
	OverallVibe string `json:"overallVibe"`
}

// Empty reports whether no songs were extracted.
func (p Playlist) Empty() bool {
	return len(p.Songs) == 0
}

// ApplyDefaults fills in the DJ comment and overall vibe when the parser never set them.
func (p *Playlist) ApplyDefaults() {
	if p.DJComment == "" {
		p.DJComment = DefaultDJComment
	}
	if p.OverallVibe == "" {
		p.OverallVibe = DefaultOverallVibe
	}
}

// clampEnergy bounds an energy value into the documented 1-10 range.
func clampEnergy(energy int) int {
	if energy < 1 {
		return 1
	}
	if energy > 10 {
		return 10
	}
	return energy
}
