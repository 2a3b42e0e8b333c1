package entries

import (
	"fmt"
	"time"

	"github.com/wellpulse/wellpulse/internal/platform/httpx"
)

// Validation rules, applied in order with the first failure winning:
// required fields, then the sleep range, then each 1..10 scale checked
// independently so the error names the specific field.

// scaleChecks fixes the order the scale fields are validated in.
var scaleChecks = []struct {
	name string
	pick func(*CreateEntryRequest) *int
}{
	{"Stress", func(r *CreateEntryRequest) *int { return r.Stress }},
	{"Symptoms", func(r *CreateEntryRequest) *int { return r.Symptoms }},
	{"Mood", func(r *CreateEntryRequest) *int { return r.Mood }},
	{"Engagement", func(r *CreateEntryRequest) *int { return r.Engagement }},
}

// Validate normalizes a create payload or rejects it with a
// field-specific validation error.
func (r *CreateEntryRequest) Validate() (EntryFields, error) {
	var fields EntryFields

	if r.Date == nil || *r.Date == "" || r.Sleep == nil || r.Stress == nil ||
		r.Symptoms == nil || r.Mood == nil || r.Engagement == nil {
		return fields, httpx.ValidationError("Missing required fields")
	}

	date, err := parseDate(*r.Date)
	if err != nil {
		return fields, httpx.ValidationError("Invalid date format")
	}

	if *r.Sleep < 0 || *r.Sleep > 24 {
		return fields, httpx.ValidationError("Sleep hours must be between 0 and 24")
	}

	for _, check := range scaleChecks {
		if err := validateScale(*check.pick(r), check.name); err != nil {
			return fields, err
		}
	}

	fields = EntryFields{
		Date:       date,
		Sleep:      *r.Sleep,
		Stress:     *r.Stress,
		Symptoms:   *r.Symptoms,
		Mood:       *r.Mood,
		Engagement: *r.Engagement,
		Drugs:      optionalText(r.Drugs),
		Notes:      optionalText(r.Notes),
	}
	return fields, nil
}

// Validate turns a partial update payload into a patch, applying the
// same range rules to every field that is present.
func (r *UpdateEntryRequest) Validate() (EntryPatch, error) {
	var patch EntryPatch

	if r.Date != nil {
		date, err := parseDate(*r.Date)
		if err != nil {
			return patch, httpx.ValidationError("Invalid date format")
		}
		patch.Date = &date
	}

	if r.Sleep != nil {
		if *r.Sleep < 0 || *r.Sleep > 24 {
			return patch, httpx.ValidationError("Sleep hours must be between 0 and 24")
		}
		patch.Sleep = r.Sleep
	}

	scales := []struct {
		name  string
		value *int
	}{
		{"Stress", r.Stress},
		{"Symptoms", r.Symptoms},
		{"Mood", r.Mood},
		{"Engagement", r.Engagement},
	}
	for _, s := range scales {
		if s.value == nil {
			continue
		}
		if err := validateScale(*s.value, s.name); err != nil {
			return patch, err
		}
	}
	patch.Stress = r.Stress
	patch.Symptoms = r.Symptoms
	patch.Mood = r.Mood
	patch.Engagement = r.Engagement

	// Empty strings are treated as absent: free text is passed through
	// verbatim or omitted, never stored empty.
	if r.Drugs != nil {
		patch.Drugs = optionalText(*r.Drugs)
	}
	if r.Notes != nil {
		patch.Notes = optionalText(*r.Notes)
	}

	return patch, nil
}

func validateScale(value int, name string) error {
	if value < 1 || value > 10 {
		return httpx.ValidationError(fmt.Sprintf("%s must be between 1 and 10", name))
	}
	return nil
}

// parseDate accepts a calendar date or a full timestamp; the stored
// value is always a timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
