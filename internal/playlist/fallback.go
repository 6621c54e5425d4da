package playlist

import (
	"fmt"
	"strings"
)

// fallbackBucket maps vibe keywords to a hand-authored playlist.
// Buckets are matched in declaration order, first hit wins.
type fallbackBucket struct {
	keywords  []string
	songs     []Song
	djComment func(vibe string) string
	vibe      string
}

var fallbackBuckets = []fallbackBucket{
	{
		keywords: []string{"party", "dance", "celebration"},
		songs: []Song{
			{Title: "Uptown Funk", Artist: "Mark Ronson ft. Bruno Mars", Genre: "Funk/Pop", Energy: 9, Reason: "Irresistible party starter"},
			{Title: "Can't Stop the Feeling!", Artist: "Justin Timberlake", Genre: "Pop", Energy: 8, Reason: "Pure joy and energy"},
			{Title: "September", Artist: "Earth, Wind & Fire", Genre: "Funk/Soul", Energy: 9, Reason: "Timeless party classic"},
			{Title: "I Gotta Feeling", Artist: "The Black Eyed Peas", Genre: "Pop/Dance", Energy: 8, Reason: "Ultimate party anthem"},
			{Title: "Good as Hell", Artist: "Lizzo", Genre: "Pop/R&B", Energy: 8, Reason: "Confidence booster"},
			{Title: "Levitating", Artist: "Dua Lipa", Genre: "Pop/Dance", Energy: 8, Reason: "Modern dance floor hit"},
		},
		djComment: func(vibe string) string {
			return fmt.Sprintf("Perfect for %s! These tracks will get everyone moving and create an amazing atmosphere.", vibe)
		},
		vibe: "High-energy celebration music that brings people together",
	},
	{
		keywords: []string{"chill", "relax", "calm"},
		songs: []Song{
			{Title: "Stay", Artist: "Rihanna", Genre: "Pop/R&B", Energy: 4, Reason: "Smooth and emotional"},
			{Title: "Blinding Lights", Artist: "The Weeknd", Genre: "Synth-pop", Energy: 6, Reason: "Chill retro vibes"},
			{Title: "Watermelon Sugar", Artist: "Harry Styles", Genre: "Pop", Energy: 5, Reason: "Light and breezy"},
			{Title: "Golden", Artist: "Harry Styles", Genre: "Pop/Rock", Energy: 5, Reason: "Warm and comforting"},
			{Title: "Adorn", Artist: "Miguel", Genre: "R&B", Energy: 4, Reason: "Smooth and soulful"},
			{Title: "Best Part", Artist: "Daniel Caesar ft. H.E.R.", Genre: "R&B", Energy: 3, Reason: "Intimate and mellow"},
		},
		djComment: func(vibe string) string {
			return fmt.Sprintf("Perfect for %s! These tracks create a peaceful, relaxing atmosphere.", vibe)
		},
		vibe: "Smooth, laid-back tracks for unwinding and relaxation",
	},
	{
		keywords: []string{"workout", "energy", "pump", "gym"},
		songs: []Song{
			{Title: "Eye of the Tiger", Artist: "Survivor", Genre: "Rock", Energy: 9, Reason: "The training montage standard"},
			{Title: "Stronger", Artist: "Kanye West", Genre: "Hip-Hop", Energy: 8, Reason: "Relentless forward drive"},
			{Title: "Till I Collapse", Artist: "Eminem", Genre: "Hip-Hop", Energy: 9, Reason: "Push through the last rep"},
			{Title: "Can't Hold Us", Artist: "Macklemore & Ryan Lewis", Genre: "Hip-Hop/Pop", Energy: 9, Reason: "Ceiling-breaking tempo"},
			{Title: "Physical", Artist: "Dua Lipa", Genre: "Pop/Dance", Energy: 8, Reason: "Cardio-ready pulse"},
			{Title: "POWER", Artist: "Kanye West", Genre: "Hip-Hop", Energy: 8, Reason: "Heavy-lift intensity"},
		},
		djComment: func(vibe string) string {
			return fmt.Sprintf("Perfect for %s! These tracks keep the intensity high from warm-up to cool-down.", vibe)
		},
		vibe: "High-tempo motivation for training and movement",
	},
}

// defaultBucket serves any vibe that matches no keyword bucket.
var defaultBucket = fallbackBucket{
	songs: []Song{
		{Title: "Happy", Artist: "Pharrell Williams", Genre: "Pop", Energy: 8, Reason: "Universal feel-good vibes"},
		{Title: "Count on Me", Artist: "Bruno Mars", Genre: "Pop", Energy: 6, Reason: "Warm and friendly"},
		{Title: "Three Little Birds", Artist: "Bob Marley", Genre: "Reggae", Energy: 5, Reason: "Positive and peaceful"},
		{Title: "Here Comes the Sun", Artist: "The Beatles", Genre: "Rock/Pop", Energy: 6, Reason: "Timeless optimism"},
		{Title: "What a Wonderful World", Artist: "Louis Armstrong", Genre: "Jazz", Energy: 4, Reason: "Appreciation for life"},
		{Title: "Lovely Day", Artist: "Bill Withers", Genre: "Soul", Energy: 6, Reason: "Perfect for any mood"},
	},
	djComment: func(vibe string) string {
		return fmt.Sprintf("Here's a curated playlist for %q - these tracks work great for any occasion!", vibe)
	},
	vibe: "Feel-good classics that bring joy and positivity",
}

// Fallback returns a themed static playlist for the given vibe text.
//
// Pure and deterministic: the same vibe always selects the same bucket and
// identical song lists. Never touches the network; this is the degrade path
// when generation or parsing fails.
func Fallback(vibe string) Playlist {
	lower := strings.ToLower(vibe)

	bucket := defaultBucket
	for _, b := range fallbackBuckets {
		if matchesany(lower, b.keywords) {
			bucket = b
			break
		}
	}

	songs := make([]Song, len(bucket.songs))
	copy(songs, bucket.songs)

	return Playlist{
		Songs:       songs,
		DJComment:   bucket.djComment(vibe),
		OverallVibe: bucket.vibe,
	}
}

func matchesany(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
