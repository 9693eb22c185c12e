package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is the vehicle class a tyre is made for.
type Category string

const (
	CategoryCar   Category = "Car"
	CategoryBike  Category = "Bike"
	CategoryTruck Category = "Truck"
	CategoryBus   Category = "Bus"
	CategorySUV   Category = "SUV"
	CategoryOther Category = "Other"
)

// MaxTyreImages is the number of images a tyre keeps. Newer uploads push the
// oldest ones out.
const MaxTyreImages = 5

// Tyre is the product of the catalog and the parent document of reviews and
// enquiries. Reviews and Enquiries are only ever changed by the linked
// mutation helpers of the store.
type Tyre struct {
	ID          string          `json:"_id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Category    Category        `json:"category"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	OldPrice    decimal.Decimal `json:"oldPrice"`
	Discount    int             `json:"discount"`
	Rating      float64         `json:"rating"`
	Dealer      string          `json:"dealer"`
	Stock       bool            `json:"stock"`
	Popular     bool            `json:"popular"`
	Description string          `json:"description"`
	Images      []string        `json:"image"`
	Reviews     []string        `json:"reviews"`
	Enquiries   []string        `json:"enquiries"`
	UserID      *string         `json:"user"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Tyre model.
func (t Tyre) TableName() string {
	return "tyres"
}

// TyreInput is the validated payload of a tyre creation.
type TyreInput struct {
	Slug        string           `json:"slug" validate:"required,slug,max=200"`
	Name        string           `json:"name" validate:"required,max=200"`
	Brand       string           `json:"brand" validate:"required,max=100"`
	Category    Category         `json:"category" validate:"required,oneof=Car Bike Truck Bus SUV Other"`
	Size        string           `json:"size" validate:"required,max=50"`
	Price       decimal.Decimal  `json:"price" validate:"gt=0"`
	OldPrice    *decimal.Decimal `json:"oldPrice,omitempty" validate:"omitempty,gte=0"`
	Rating      float64          `json:"rating" validate:"gte=0,lte=5"`
	Dealer      string           `json:"dealer" validate:"max=200"`
	Stock       bool             `json:"stock"`
	Popular     bool             `json:"popular"`
	Description string           `json:"description" validate:"max=500"`
}

// TyreUpdate is a partial tyre update. Nil fields stay untouched.
// NewImages are appended to the current images, keeping at most
// [MaxTyreImages] of the newest ones.
type TyreUpdate struct {
	ID          string           `json:"-"`
	Slug        *string          `json:"slug,omitempty" validate:"omitempty,slug,max=200"`
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Brand       *string          `json:"brand,omitempty" validate:"omitempty,min=1,max=100"`
	Category    *Category        `json:"category,omitempty" validate:"omitempty,oneof=Car Bike Truck Bus SUV Other"`
	Size        *string          `json:"size,omitempty" validate:"omitempty,min=1,max=50"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gt=0"`
	OldPrice    *decimal.Decimal `json:"oldPrice,omitempty" validate:"omitempty,gte=0"`
	Rating      *float64         `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Dealer      *string          `json:"dealer,omitempty" validate:"omitempty,max=200"`
	Stock       *bool            `json:"stock,omitempty"`
	Popular     *bool            `json:"popular,omitempty"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	NewImages   []string         `json:"-"`
}

// TyreFilter narrows the public tyre listing.
type TyreFilter struct {
	Brand    string
	Category Category
	Popular  *bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     uint64
	Limit    uint64
}

// ComputeDiscount returns the whole-percent discount of price against
// oldPrice, rounded half up. It is 0 whenever oldPrice is not greater than
// price.
func ComputeDiscount(price, oldPrice decimal.Decimal) int {
	if !oldPrice.GreaterThan(price) || !oldPrice.IsPositive() {
		return 0
	}

	pct := oldPrice.Sub(price).Div(oldPrice).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// MergeImages appends added to current and keeps only the newest
// [MaxTyreImages] entries.
func MergeImages(current, added []string) []string {
	merged := make([]string, 0, len(current)+len(added))
	merged = append(merged, current...)
	merged = append(merged, added...)
	if len(merged) > MaxTyreImages {
		merged = merged[len(merged)-MaxTyreImages:]
	}
	return merged
}
