package service

import (
	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	TyreService    TyreService
	ReviewService  ReviewService
	EnquiryService EnquiryService

	AboutService      SectionService[models.About]
	FooterService     SectionService[models.Footer]
	FaqService        FaqService
	HeroService       HeroService
	JourneyService    JourneyService
	VehicleService    VehicleService
	NewsletterService NewsletterService

	StoryService         ShowcaseService[models.Story]
	TrustedStoryService  ShowcaseService[models.TrustedStory]
	TestimonialService   ShowcaseService[models.Testimonial]
	ShopByVehicleService ShowcaseService[models.ShopByVehicle]

	GrowthService  GrowthService
	ContactService ContactService
	HealthService  HealthService
}

func NewServices(storages *store.Storages, adapters *adapter.Adapters, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	validator := validators.NewRequestValidator()
	adminMail := cfg.Adapter.AdminMailbox()

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, validator, cfg.App, logger),
		UserService:    NewUserService(storages.UserRepository, storages.DashboardRepository, validator, logger),
		TyreService:    NewTyreService(storages.TyreRepository, adapters.Uploader, validator, adapters.Publisher, logger),
		ReviewService:  NewReviewService(storages.TyreRepository, storages.ReviewRepository, validator, adapters.Publisher, cfg.Workers, logger),
		EnquiryService: NewEnquiryService(storages.TyreRepository, storages.EnquiryRepository, validator, adapters.MailQueue, adminMail, adapters.Publisher, cfg.Workers, logger),

		AboutService:      NewAboutService(storages.SectionRepository, adapters.Uploader, validator, cfg.Workers, logger),
		FooterService:     NewFooterService(storages.SectionRepository, adapters.Uploader, validator, cfg.Workers, logger),
		FaqService:        NewFaqService(storages.SectionRepository, validator, cfg.Workers, logger),
		HeroService:       NewHeroService(storages.SectionRepository, adapters.Uploader, validator, cfg.Workers, logger),
		JourneyService:    NewJourneyService(storages.SectionRepository, validator, cfg.Workers, logger),
		VehicleService:    NewVehicleService(storages.SectionRepository, validator, cfg.Workers, logger),
		NewsletterService: NewNewsletterService(storages.SectionRepository, storages.SubscriberRepository, validator, adapters.Publisher, cfg.Workers, logger),

		StoryService:         NewShowcaseService[models.Story](models.ShowcaseStory, storages.ShowcaseRepository, adapters.Uploader, validator, logger),
		TrustedStoryService:  NewShowcaseService[models.TrustedStory](models.ShowcaseTrustedStory, storages.ShowcaseRepository, adapters.Uploader, validator, logger),
		TestimonialService:   NewShowcaseService[models.Testimonial](models.ShowcaseTestimonial, storages.ShowcaseRepository, adapters.Uploader, validator, logger),
		ShopByVehicleService: NewShowcaseService[models.ShopByVehicle](models.ShowcaseShopByVehicle, storages.ShowcaseRepository, adapters.Uploader, validator, logger),

		GrowthService:  NewGrowthService(storages.GrowthRepository, validator, logger),
		ContactService: NewContactService(adapters.Notifier, adminMail, validator, logger),
		HealthService:  NewHealthService(storages.DB, cfg.App, logger),
	}
}
