package models

import (
	"strings"
	"time"
)

// Enquiry is a customer question about a tyre.
type Enquiry struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"enquirie"`
	TyreID    *string   `json:"product"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EnquiryInput is the body of POST /enquiry/{id}; TyreID comes from the path.
type EnquiryInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"enquirie" validate:"required,max=2000"`
	TyreID  string `json:"-" validate:"required"`
}

// Normalize trims every field.
func (in *EnquiryInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	in.TyreID = strings.TrimSpace(in.TyreID)
}
