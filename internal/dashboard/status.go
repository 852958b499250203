// Package dashboard backs the shared mood board, weather, distance and
// countdown widgets.
package dashboard

import (
	"context"
)

// JustNow is the last_updated marker written on every update
const JustNow = "Just now"

// Status is one person's mood entry
type Status struct {
	Mood        string `json:"mood"`
	Rating      int    `json:"rating"`
	LastUpdated string `json:"last_updated"`
}

// Board maps a person's name to their current status
type Board map[string]Status

// StatusUpdate overwrites a single person's entry. Rating is expected in 1-10
// but is not validated.
type StatusUpdate struct {
	User   string `json:"user"`
	Mood   string `json:"mood"`
	Rating int    `json:"rating"`
}

// Store persists the board
type Store interface {
	Load(ctx context.Context) (Board, error)
	Update(ctx context.Context, update StatusUpdate) (Board, error)
}

// DefaultBoard is the seed written when no board exists yet
func DefaultBoard() Board {
	return Board{
		"Veer":  {Mood: "Missing you", Rating: 5, LastUpdated: JustNow},
		"Rishi": {Mood: "Excited for the weekend", Rating: 8, LastUpdated: JustNow},
	}
}

func (u StatusUpdate) status() Status {
	return Status{Mood: u.Mood, Rating: u.Rating, LastUpdated: JustNow}
}
