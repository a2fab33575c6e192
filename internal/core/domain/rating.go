package domain

import "time"

const (
	MinScore = 1
	MaxScore = 5
)

// ValidScore reports whether score is inside the 1..5 star range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// Rating is one user's score for one store. At most one rating exists per
// (UserID, StoreID) pair; the persistence layer enforces this with a unique
// compound index so concurrent submissions cannot create duplicates.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
