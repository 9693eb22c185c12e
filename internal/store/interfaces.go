package store

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-tyre-shop/models"
)

// ErrorClassificator decides how a failed database operation is reported.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	// UpdateUser applies a partial update. A non-nil Password must already be hashed.
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type TyreRepository interface {
	CreateTyre(ctx context.Context, tyre models.Tyre) (models.Tyre, error)
	FindTyreByID(ctx context.Context, id string) (models.Tyre, error)
	FindTyreBySlug(ctx context.Context, slug string) (models.Tyre, error)
	TyreExists(ctx context.Context, id string) (bool, error)
	ListTyres(ctx context.Context, filter models.TyreFilter) ([]models.Tyre, int64, error)
	// UpdateTyre applies update under a row lock, merges images and
	// recomputes the discount. Reference lists are never written.
	UpdateTyre(ctx context.Context, update models.TyreUpdate) (models.Tyre, error)
	DeleteTyre(ctx context.Context, id string) error
}

// ChildRepository is the storage side of the linked mutation protocol for one
// child kind.
type ChildRepository[T any] interface {
	// CreateLinked inserts child and pushes its id into the parent list in
	// one transaction.
	CreateLinked(ctx context.Context, child T) (T, error)

	// DeleteLinked deletes the child and pulls its id from the parent list in
	// one transaction. It returns the parent id the child pointed to, nil if
	// none.
	DeleteLinked(ctx context.Context, childID string) (*string, error)
}

type ReviewRepository interface {
	ChildRepository[models.Review]

	ListReviews(ctx context.Context) ([]models.Review, error)
	ListApprovedReviewsByTyre(ctx context.Context, tyreID string) ([]models.Review, error)
	SetReviewApproved(ctx context.Context, id string, approved bool) (models.Review, error)
}

type EnquiryRepository interface {
	ChildRepository[models.Enquiry]

	ListEnquiries(ctx context.Context) ([]models.Enquiry, error)
}

// SectionMutator edits a section body. It receives the current body and
// returns the new one.
type SectionMutator func(body json.RawMessage) (json.RawMessage, error)

type SectionRepository interface {
	// CreateSection fails with [ErrSectionAlreadyExists] if kind exists.
	CreateSection(ctx context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error)
	// UpsertSection creates the section or replaces its body.
	UpsertSection(ctx context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error)
	GetSection(ctx context.Context, kind models.SectionKind) (models.Section, error)
	ReplaceSection(ctx context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error)
	// MutateSection runs mutate on the locked row and stores the result.
	MutateSection(ctx context.Context, kind models.SectionKind, mutate SectionMutator) (models.Section, error)
	DeleteSection(ctx context.Context, kind models.SectionKind) error
}

// SectionCache keeps read copies of singleton sections.
//
// Every Invalidate bumps a per-kind generation. A reader takes the
// generation before it loads from the database and passes it to Set, which
// stores nothing when a write has invalidated the kind in the meantime.
type SectionCache interface {
	Get(ctx context.Context, kind models.SectionKind) (models.Section, error)
	Generation(ctx context.Context, kind models.SectionKind) (int64, error)
	Set(ctx context.Context, section models.Section, generation int64) error
	Invalidate(ctx context.Context, kind models.SectionKind) error
}

// ShowcaseMutator edits a showcase item body.
type ShowcaseMutator func(body json.RawMessage) (json.RawMessage, error)

type ShowcaseRepository interface {
	CreateItem(ctx context.Context, item models.ShowcaseItem) (models.ShowcaseItem, error)
	GetItem(ctx context.Context, kind models.ShowcaseKind, id string) (models.ShowcaseItem, error)
	ListItems(ctx context.Context, kind models.ShowcaseKind) ([]models.ShowcaseItem, error)
	UpdateItem(ctx context.Context, kind models.ShowcaseKind, id string, mutate ShowcaseMutator) (models.ShowcaseItem, error)
	DeleteItem(ctx context.Context, kind models.ShowcaseKind, id string) error
}

type GrowthRepository interface {
	CreateGrowth(ctx context.Context, growth models.Growth) (models.Growth, error)
	ListGrowth(ctx context.Context) ([]models.Growth, error)
	GetGrowth(ctx context.Context, year int) (models.Growth, error)
	UpdateGrowth(ctx context.Context, year int, growth float64) (models.Growth, error)
	DeleteGrowth(ctx context.Context, year int) error
	DeleteAllGrowth(ctx context.Context) (int64, error)
}

type SubscriberRepository interface {
	Subscribe(ctx context.Context, email string) (models.Subscriber, error)
	ListSubscribers(ctx context.Context) ([]models.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
}

type DashboardRepository interface {
	Dashboard(ctx context.Context) (models.Dashboard, error)
}
