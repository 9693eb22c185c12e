package models

import (
	"strings"
	"time"
)

// Review is a customer review of a tyre. TyreID is nil once the tyre has
// been removed.
type Review struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	TyreID    *string   `json:"tyre"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewInput is the body of POST /review. ProductID is accepted as an alias
// of TyreID.
type ReviewInput struct {
	Name      string `json:"name" validate:"required,max=100"`
	Location  string `json:"location" validate:"max=100"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,max=500"`
	TyreID    string `json:"tyre" validate:"required"`
	ProductID string `json:"productId,omitempty" validate:"-"`
}

// Normalize trims the free-text fields and resolves the product alias.
func (in *ReviewInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Comment = strings.TrimSpace(in.Comment)
	in.TyreID = strings.TrimSpace(in.TyreID)
	if in.TyreID == "" {
		in.TyreID = strings.TrimSpace(in.ProductID)
	}
}

// ReviewApproval is the body of PATCH /review/{id}/approve. Approved is a
// pointer so that a missing field can be told apart from false.
type ReviewApproval struct {
	Approved *bool `json:"approved" validate:"required"`
}
