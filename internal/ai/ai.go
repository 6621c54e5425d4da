// Package ai defines the [Generator] interface for text generation providers
// and implements it for the Groq chat completions API.
package ai

import (
	"context"
	"fmt"
)

// Generator produces free text from a prompt.
//
// Implementations are black boxes: one prompt string in, one response string
// out. No structural guarantee exists on the output, which is why the playlist
// parser is tolerant.
type Generator interface {
	// Generate sends the prompt and returns the raw model response text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name (e.g. "Groq").
	Name() string
}

// BuildPrompt returns the playlist generation prompt for a vibe description.
//
// The prompt requests pipe-delimited song lines plus DJ comment and overall
// vibe trailer lines. Models do not always comply, so callers must run the
// response through the tolerant parser.
func BuildPrompt(vibe string) string {
	return fmt.Sprintf(`Create a playlist for: %q

Format each song exactly like this:
Title | Artist | Genre | Energy | Reason

Example:
Happy | Pharrell Williams | Pop | 8 | Feel-good anthem
Uptown Funk | Bruno Mars | Funk | 9 | Party starter
Blinding Lights | The Weeknd | Pop | 7 | Retro vibes

Create 6 songs in this exact format. Then add:
DJ Comment: [your comment]
Overall Vibe: [description]`, vibe)
}
