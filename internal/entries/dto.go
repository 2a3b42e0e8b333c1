package entries

import (
	"time"
)

// CreateEntryRequest is the raw create payload. Required numeric fields
// are pointers so that a present zero (sleep: 0 is a legal value) can be
// told apart from an absent field.
type CreateEntryRequest struct {
	Date       *string  `json:"date"`
	Sleep      *float64 `json:"sleep"`
	Stress     *int     `json:"stress"`
	Symptoms   *int     `json:"symptoms"`
	Mood       *int     `json:"mood"`
	Engagement *int     `json:"engagement"`
	Drugs      string   `json:"drugs"`
	Notes      string   `json:"notes"`
}

// UpdateEntryRequest is the partial update payload: any subset of fields
// may be supplied. Ownership fields (id, userId) are not part of the
// allowed set, and the handler decodes this strictly so unknown fields
// are rejected rather than silently dropped.
type UpdateEntryRequest struct {
	Date       *string  `json:"date"`
	Sleep      *float64 `json:"sleep"`
	Stress     *int     `json:"stress"`
	Symptoms   *int     `json:"symptoms"`
	Mood       *int     `json:"mood"`
	Engagement *int     `json:"engagement"`
	Drugs      *string  `json:"drugs"`
	Notes      *string  `json:"notes"`
}

// EntryFields is the validated, normalized form of a create payload.
type EntryFields struct {
	Date       time.Time
	Sleep      float64
	Stress     int
	Symptoms   int
	Mood       int
	Engagement int
	Drugs      *string
	Notes      *string
}

// EntryPatch is the validated form of a partial update: nil means "leave
// the stored value alone".
type EntryPatch struct {
	Date       *time.Time
	Sleep      *float64
	Stress     *int
	Symptoms   *int
	Mood       *int
	Engagement *int
	Drugs      *string
	Notes      *string
}

// IsEmpty reports whether the patch would change nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.Date == nil && p.Sleep == nil && p.Stress == nil && p.Symptoms == nil &&
		p.Mood == nil && p.Engagement == nil && p.Drugs == nil && p.Notes == nil
}
