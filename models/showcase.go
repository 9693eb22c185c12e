package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ShowcaseKind identifies one of the image-card collections shown on the
// marketing pages.
type ShowcaseKind string

const (
	ShowcaseStory         ShowcaseKind = "story"
	ShowcaseTrustedStory  ShowcaseKind = "trustedstory"
	ShowcaseTestimonial   ShowcaseKind = "testimonial"
	ShowcaseShopByVehicle ShowcaseKind = "sbv"
)

// ShowcaseItem is the stored form of a collection item; the typed body is
// kept as JSON.
type ShowcaseItem struct {
	ID        string
	Kind      ShowcaseKind
	Body      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document is a typed collection item. It marshals flat: the body fields next
// to _id, createdAt and updatedAt.
type Document[T any] struct {
	ID        string
	Data      T
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d Document[T]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(d.Data)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("document body is not an object: %w", err)
	}

	fields["_id"] = d.ID
	fields["createdAt"] = d.CreatedAt
	fields["updatedAt"] = d.UpdatedAt

	return json.Marshal(fields)
}

type Story struct {
	Title   string `json:"title" validate:"required,max=150"`
	Summary string `json:"summary" validate:"required,max=500"`
	Image   string `json:"image" validate:"required,imageurl"`
}

func (s Story) WithImage(url string) Story {
	s.Image = url
	return s
}

type TrustedStory struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description" validate:"required,max=500"`
	Image       string `json:"image" validate:"required,imageurl"`
}

func (s TrustedStory) WithImage(url string) TrustedStory {
	s.Image = url
	return s
}

type Testimonial struct {
	Name     string `json:"name" validate:"required,max=100"`
	Comment  string `json:"comment" validate:"required,max=500"`
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Avatar   string `json:"avatar" validate:"omitempty,imageurl"`
	IsActive bool   `json:"isActive"`
}

// NewTestimonial returns a testimonial carrying the creation defaults.
func NewTestimonial() Testimonial {
	return Testimonial{Rating: 5, IsActive: true}
}

func (t Testimonial) WithImage(url string) Testimonial {
	t.Avatar = url
	return t
}

type ShopByVehicle struct {
	Type       string `json:"type" validate:"required,max=100"`
	Image      string `json:"image" validate:"required,imageurl"`
	ButtonText string `json:"buttonText" validate:"required,max=50"`
}

func (s ShopByVehicle) WithImage(url string) ShopByVehicle {
	s.Image = url
	return s
}
