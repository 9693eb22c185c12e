package models

import (
	"encoding/json"
	"time"
)

// SectionKind identifies a single-document page section. Each kind has at
// most one row in storage.
type SectionKind string

const (
	SectionAbout      SectionKind = "about"
	SectionFaq        SectionKind = "faq"
	SectionFooter     SectionKind = "footer"
	SectionHero       SectionKind = "hero"
	SectionJourney    SectionKind = "journey"
	SectionNewsletter SectionKind = "newsletter"
	SectionVehicles   SectionKind = "vehicles"
)

// Section is the stored form of a singleton section: the typed body is kept
// as JSON.
type Section struct {
	Kind      SectionKind     `json:"kind"`
	Body      json.RawMessage `json:"body"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// IconCard is a small icon + title + text block used by several sections.
type IconCard struct {
	Icon        string `json:"icon" validate:"required"`
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

// ---- About ----

type About struct {
	Hero struct {
		Title    string `json:"title" validate:"required,max=200"`
		Subtitle string `json:"subtitle" validate:"max=500"`
		Image    string `json:"image" validate:"required"`
		Video    string `json:"video,omitempty"`
	} `json:"hero"`
	Vision struct {
		Title       string `json:"title" validate:"required,max=200"`
		Description string `json:"description" validate:"required,max=2000"`
	} `json:"vision"`
	CoreValues []IconCard `json:"coreValues" validate:"min=1,dive"`
	Model      struct {
		Title       string `json:"title" validate:"required,max=200"`
		Description string `json:"description" validate:"max=2000"`
		Image       string `json:"image" validate:"required"`
	} `json:"model"`
	HowItWorks []IconCard `json:"howItWorks" validate:"min=1,dive"`
	WideRange  struct {
		Title       string   `json:"title" validate:"max=200"`
		Description string   `json:"description" validate:"max=2000"`
		Images      []string `json:"images" validate:"dive,required"`
		Video       string   `json:"video,omitempty"`
	} `json:"wideRange"`
}

// ---- FAQ ----

type FaqItem struct {
	Question string `json:"q" validate:"required,max=500"`
	Answer   string `json:"a" validate:"required,max=2000"`
}

type FaqCategory struct {
	Category string    `json:"category" validate:"required,max=100"`
	Items    []FaqItem `json:"items" validate:"dive"`
}

type Faq struct {
	Faqs []FaqCategory `json:"faqs" validate:"dive"`
}

// CategoryIndex returns the position of the named category or -1.
func (f Faq) CategoryIndex(name string) int {
	for i, c := range f.Faqs {
		if c.Category == name {
			return i
		}
	}
	return -1
}

// ---- Footer ----

type FooterLink struct {
	Label string `json:"label" validate:"required,max=100"`
	Path  string `json:"path" validate:"required,max=300"`
}

type FooterLinkSection struct {
	Title string       `json:"title" validate:"required,max=100"`
	Links []FooterLink `json:"links" validate:"dive"`
}

type FooterSocialLink struct {
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

type Footer struct {
	Company struct {
		Name        string `json:"name" validate:"required,max=200"`
		Description string `json:"description" validate:"required,max=500"`
	} `json:"company"`
	QuickLinks   FooterLinkSection `json:"quickLinks"`
	SupportLinks FooterLinkSection `json:"supportLinks"`
	ContactInfo  struct {
		Address string `json:"address"`
		Phone   string `json:"phone"`
		Email   string `json:"email" validate:"omitempty,email"`
	} `json:"contactInfo"`
	SocialLinks []FooterSocialLink `json:"socialLinks" validate:"dive"`
}

// ---- Hero ----

type Hero struct {
	Title    string     `json:"title" validate:"required,max=200"`
	Subtitle string     `json:"subtitle" validate:"required,max=500"`
	Image    string     `json:"image" validate:"required"`
	Features []IconCard `json:"features" validate:"dive"`
}

// ---- Journey ----

type Milestone struct {
	Year  int    `json:"year" validate:"required,min=1900,max=2100"`
	Event string `json:"event" validate:"required,max=500"`
}

type Journey struct {
	Journey []Milestone `json:"journey" validate:"dive"`
}

// ---- Newsletter ----

type Newsletter struct {
	Title      string `json:"title" validate:"required,max=150"`
	Subtitle   string `json:"subtitle" validate:"required,max=300"`
	ButtonText string `json:"buttonText" validate:"required,max=50"`
	IsActive   bool   `json:"isActive"`
}

// ---- Vehicle catalog ----

// VehicleCategory is one of the catalog groups.
type VehicleCategory string

const (
	VehicleCar        VehicleCategory = "car"
	VehicleTwoWheeler VehicleCategory = "twoWheeler"
	VehicleTruck      VehicleCategory = "truck"
)

type VehicleBrand struct {
	Name   string   `json:"name" validate:"required,max=100"`
	Models []string `json:"models" validate:"dive,required"`
}

type VehicleCatalog struct {
	Car        []VehicleBrand `json:"car" validate:"dive"`
	TwoWheeler []VehicleBrand `json:"twoWheeler" validate:"dive"`
	Truck      []VehicleBrand `json:"truck" validate:"dive"`
}

// Brands returns a pointer to the brand list of category, or nil for an
// unknown category.
func (c *VehicleCatalog) Brands(category VehicleCategory) *[]VehicleBrand {
	switch category {
	case VehicleCar:
		return &c.Car
	case VehicleTwoWheeler:
		return &c.TwoWheeler
	case VehicleTruck:
		return &c.Truck
	}
	return nil
}

// BrandModelInput is the body of POST /vehicle/{category}/add.
type BrandModelInput struct {
	Brand string `json:"brandName" validate:"required,max=100"`
	Model string `json:"modelName" validate:"omitempty,max=100"`
}
