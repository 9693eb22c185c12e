package models

import "time"

// Growth is the yearly growth figure shown on the landing page. Year is
// unique.
type Growth struct {
	Year      int       `json:"year" validate:"required,min=1900,max=2100"`
	Growth    float64   `json:"growth" validate:"gte=0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
