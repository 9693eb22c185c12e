package service

import (
	"context"

	"github.com/MKhiriev/go-tyre-shop/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// Authenticate parses tokenString and resolves its subject to a live
	// account. Any failure is reported as [ErrTokenIsExpiredOrInvalid].
	Authenticate(ctx context.Context, tokenString string) (models.Identity, error)
}

type UserService interface {
	GetUser(ctx context.Context, id string) (models.User, error)
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	Dashboard(ctx context.Context) (models.Dashboard, error)
}

type TyreService interface {
	CreateTyre(ctx context.Context, in models.TyreInput, images []models.UploadedFile) (models.Tyre, error)
	// GetTyre looks the tyre up by id first and by slug second.
	GetTyre(ctx context.Context, idOrSlug string) (models.Tyre, error)
	ListTyres(ctx context.Context, filter models.TyreFilter) ([]models.Tyre, int64, error)
	UpdateTyre(ctx context.Context, update models.TyreUpdate, images []models.UploadedFile) (models.Tyre, error)
	DeleteTyre(ctx context.Context, id string) error
}

type ReviewService interface {
	CreateReview(ctx context.Context, in models.ReviewInput) (models.Review, error)
	ListReviews(ctx context.Context) ([]models.Review, error)
	ListApprovedReviews(ctx context.Context, tyreID string) ([]models.Review, error)
	SetApproved(ctx context.Context, id string, approval models.ReviewApproval) (models.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

type EnquiryService interface {
	CreateEnquiry(ctx context.Context, in models.EnquiryInput) (models.Enquiry, error)
	ListEnquiries(ctx context.Context) ([]models.Enquiry, error)
	DeleteEnquiry(ctx context.Context, id string) error
}

// SectionService manages one singleton page section with a typed body.
// Uploaded files are pushed to the media host and bound into the body
// before it is validated.
type SectionService[T any] interface {
	Create(ctx context.Context, body T, uploads models.Uploads) (T, error)
	// Upsert creates the section or replaces its body.
	Upsert(ctx context.Context, body T, uploads models.Uploads) (T, error)
	Get(ctx context.Context) (T, error)
	Replace(ctx context.Context, body T, uploads models.Uploads) (T, error)
	// Mutate edits the stored body under a row lock.
	Mutate(ctx context.Context, mutate func(body *T) error) (T, error)
	Delete(ctx context.Context) error
}

type FaqService interface {
	SectionService[models.Faq]
	AddCategory(ctx context.Context, category string) (models.Faq, error)
	DeleteCategory(ctx context.Context, category string) (models.Faq, error)
	AddQuestion(ctx context.Context, category string, item models.FaqItem) (models.Faq, error)
}

type HeroService interface {
	SectionService[models.Hero]
	AddFeature(ctx context.Context, feature models.IconCard, icon *models.UploadedFile) (models.Hero, error)
	UpdateFeature(ctx context.Context, index int, feature models.IconCard, icon *models.UploadedFile) (models.Hero, error)
	DeleteFeature(ctx context.Context, index int) (models.Hero, error)
}

type JourneyService interface {
	SectionService[models.Journey]
	AddMilestone(ctx context.Context, milestone models.Milestone) (models.Journey, error)
	UpdateMilestone(ctx context.Context, index int, milestone models.Milestone) (models.Journey, error)
	DeleteMilestone(ctx context.Context, index int) (models.Journey, error)
}

type VehicleService interface {
	SectionService[models.VehicleCatalog]
	ListBrands(ctx context.Context, category models.VehicleCategory) ([]models.VehicleBrand, error)
	AddBrandModel(ctx context.Context, category models.VehicleCategory, in models.BrandModelInput) (models.VehicleCatalog, error)
	DeleteBrand(ctx context.Context, category models.VehicleCategory, brand string) (models.VehicleCatalog, error)
	DeleteModel(ctx context.Context, category models.VehicleCategory, brand, model string) (models.VehicleCatalog, error)
}

// ShowcaseService manages one image-card collection.
type ShowcaseService[T any] interface {
	Create(ctx context.Context, item T, upload *models.UploadedFile) (models.Document[T], error)
	Get(ctx context.Context, id string) (models.Document[T], error)
	List(ctx context.Context) ([]models.Document[T], error)
	// Update decodes patch over the stored item, so absent fields keep their
	// value. A given upload replaces the image.
	Update(ctx context.Context, id string, patch []byte, upload *models.UploadedFile) (models.Document[T], error)
	Delete(ctx context.Context, id string) error
}

type GrowthService interface {
	CreateGrowth(ctx context.Context, growth models.Growth) (models.Growth, error)
	ListGrowth(ctx context.Context) ([]models.Growth, error)
	GetGrowth(ctx context.Context, year int) (models.Growth, error)
	UpdateGrowth(ctx context.Context, year int, growth float64) (models.Growth, error)
	DeleteGrowth(ctx context.Context, year int) error
	DeleteAllGrowth(ctx context.Context) (int64, error)
}

type NewsletterService interface {
	SectionService[models.Newsletter]
	Subscribe(ctx context.Context, req models.SubscribeRequest) (models.Subscriber, error)
	ListSubscribers(ctx context.Context) ([]models.Subscriber, error)
	Unsubscribe(ctx context.Context, req models.SubscribeRequest) error
}

type ContactService interface {
	SendContact(ctx context.Context, req models.ContactRequest) error
}

type HealthService interface {
	Ping(ctx context.Context) error
	Version() string
}
