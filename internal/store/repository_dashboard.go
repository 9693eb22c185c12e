package store

import (
	"context"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
)

type dashboardRepository struct {
	*DB
	logger *logger.Logger
}

func NewDashboardRepository(db *DB, logger *logger.Logger) DashboardRepository {
	return &dashboardRepository{
		DB:     db,
		logger: logger,
	}
}

// Dashboard counts every entity in one round trip.
func (d *dashboardRepository) Dashboard(ctx context.Context) (models.Dashboard, error) {
	log := logger.FromContext(ctx)

	var dashboard models.Dashboard
	err := d.QueryRowContext(ctx, dashboardCounts).Scan(
		&dashboard.Tyres,
		&dashboard.Reviews,
		&dashboard.PendingReviews,
		&dashboard.Enquiries,
		&dashboard.Subscribers,
		&dashboard.Stories,
		&dashboard.TrustedStories,
		&dashboard.Testimonials,
		&dashboard.ShopByVehicle,
		&dashboard.GrowthRecords,
		&dashboard.SectionsPresent,
	)
	if err != nil {
		log.Err(err).Str("func", "dashboardRepository.Dashboard").Msg("failed to count entities")
		return models.Dashboard{}, d.classify(err, ErrExecutingQuery)
	}

	return dashboard, nil
}
