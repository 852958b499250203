package models

// LoveLetterRequest asks for a short note matching the partner's mood.
// Length is accepted for compatibility and ignored.
// Pointer fields make a missing key a 400 while an empty value still passes.
type LoveLetterRequest struct {
	Mood   *string `json:"mood" binding:"required"`
	Length string  `json:"length"`
}

// LoveLetterResponse is the letter endpoint's body
type LoveLetterResponse struct {
	Status       string `json:"status"`
	Recipient    string `json:"recipient"`
	MoodDetected string `json:"mood_detected"`
	AIMessage    string `json:"ai_message"`
	Source       string `json:"source"`
}

// DateGenRequest carries free-form tags, e.g. "30 Mins" and "Lazy"
type DateGenRequest struct {
	Duration *string `json:"duration" binding:"required"`
	Vibe     *string `json:"vibe" binding:"required"`
}

// DateGenResponse is the date planner endpoint's body
type DateGenResponse struct {
	DateIdea string `json:"date_idea"`
	Source   string `json:"source"`
}

// StatusUpdateRequest is the body of a status board update.
// Rating 0 is legal; only a missing key is rejected.
type StatusUpdateRequest struct {
	User   *string `json:"user" binding:"required"`
	Mood   *string `json:"mood" binding:"required"`
	Rating *int    `json:"rating" binding:"required"`
}
