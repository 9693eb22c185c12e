package models

import (
	"strings"
	"time"
)

// Subscriber is a newsletter subscription. Email is stored lowercase and is
// unique.
type Subscriber struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// SubscribeRequest is the body of POST /newsletter/subscribe and
// DELETE /newsletter/subscribers.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Normalize lowercases and trims the address.
func (r *SubscribeRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// ContactRequest is the body of POST /contact/general.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,max=30"`
	Message string `json:"message" validate:"required,max=2000"`
}

// Normalize trims every field.
func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Message = strings.TrimSpace(r.Message)
}
