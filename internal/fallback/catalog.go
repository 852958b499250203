// Package fallback holds the canned date ideas served when the model call fails.
package fallback

import (
	"strings"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/random"
)

// Entry is one canned date idea keyed by duration and vibe tags
type Entry struct {
	Duration string `json:"duration"`
	Vibe     string `json:"vibe"`
	Idea     string `json:"idea"`
}

// Catalog is an ordered, read-only list of entries
type Catalog []Entry

// DefaultCatalog is the built-in date deck
var DefaultCatalog = Catalog{
	{
		Duration: "30 Mins",
		Vibe:     "Lazy",
		Idea:     "**Coffee & Crossword**\nFind a crossword online (like NYT mini). Screen share and solve it together while sipping coffee. No rush, just teamwork.",
	},
	{
		Duration: "30 Mins",
		Vibe:     "Lazy",
		Idea:     "**Spotify DJ Session**\nStart a Spotify 'Jam' session. Take turns playing one song that describes your mood right now. Lie in bed and just listen.",
	},
	{
		Duration: "1 Hour",
		Vibe:     "Active",
		Idea:     "**The Wikipedia Race**\nStart at the same random Wikipedia page. Race to get to the page for 'Steve Jobs' using only blue links. Loser buys dinner next visit!",
	},
	{
		Duration: "1 Hour",
		Vibe:     "Fun",
		Idea:     "**Virtual House Tour**\nGo on Zillow/Rightmove. Pick a random city (e.g., Tokyo) and find the craziest $10M house. Tour it together on screen share and critique the furniture.",
	},
	{
		Duration: "2 Hours",
		Vibe:     "Romantic",
		Idea:     "**Dinner & A Movie (Synced)**\nOrder the exact same cuisine (e.g., Thai). Start a movie on 'Teleparty' or count down '3, 2, 1' to press play. Eat and watch together.",
	},
	{
		Duration: "2 Hours",
		Vibe:     "Sexy",
		Idea:     "**The Question Game (Deep)**\nFind a list of '36 Questions to Fall in Love'. Turn off the lights, light a candle, and ask them back and forth. No phones allowed except for the call.",
	},
	{
		Duration: "Any",
		Vibe:     "Any",
		Idea:     "**PowerPoint Night**\nMake a silly 5-slide presentation on a random topic (e.g., 'Why I would survive a zombie apocalypse') and present it to each other.",
	},
}

// Matches reports whether the entry applies to the requested tags.
// The entry's tags must be substrings of the requested ones; "Any" is a
// literal tag, not a wildcard.
func (e Entry) Matches(duration, vibe string) bool {
	return strings.Contains(duration, e.Duration) && strings.Contains(vibe, e.Vibe)
}

// Match returns every entry matching the requested tags, in catalog order
func (c Catalog) Match(duration, vibe string) Catalog {
	var matches Catalog
	for _, entry := range c {
		if entry.Matches(duration, vibe) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// Select picks uniformly among matching entries, or among the whole catalog
// when nothing matches. The second return value reports whether a match was found.
// An empty catalog yields a zero Entry.
func (c Catalog) Select(duration, vibe string, rng random.Source) (Entry, bool) {
	if len(c) == 0 {
		return Entry{}, false
	}
	if rng == nil {
		rng = random.Global
	}

	pool, matched := c.Match(duration, vibe), true
	if len(pool) == 0 {
		pool, matched = c, false
	}
	return pool[rng.IntN(len(pool))], matched
}
