package entries

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one day's wellness log record owned by a single user.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	Date       time.Time `json:"date"`
	Sleep      float64   `json:"sleep"`
	Stress     int       `json:"stress"`
	Symptoms   int       `json:"symptoms"`
	Mood       int       `json:"mood"`
	Engagement int       `json:"engagement"`
	Drugs      *string   `json:"drugs,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
