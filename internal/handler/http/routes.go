package http

import (
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// apiPrefix is the root of every API route.
const apiPrefix = "/api/v1"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/healthz", h.healthz)

	router.Route(apiPrefix, func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/logout", h.logout)
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Get("/me", h.me)
				r.Patch("/me/update", h.updateMe)
				r.Get("/dashboard", h.dashboard)
				r.Delete("/{id}", h.deleteUser)
			})
		})

		r.Route("/tyre", func(r chi.Router) {
			r.Get("/", h.listTyres)
			r.Get("/{idOrSlug}", h.getTyre)
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Post("/", h.createTyre)
				r.Patch("/{id}", h.updateTyre)
				r.Delete("/{id}", h.deleteTyre)
			})
		})

		r.Route("/review", func(r chi.Router) {
			r.Post("/", h.createReview)
			r.Get("/", h.listReviews)
			r.Get("/tyre/{tyreId}", h.listTyreReviews)
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Patch("/{id}/approve", h.approveReview)
				r.Delete("/{id}", h.deleteReview)
			})
		})

		r.Route("/enquiry", func(r chi.Router) {
			r.Post("/{id}", h.createEnquiry)
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Get("/", h.listEnquiries)
				r.Delete("/{id}", h.deleteEnquiry)
			})
		})

		h.sectionRoutes(r)
		h.showcaseRoutes(r)

		r.Route("/growth", func(r chi.Router) {
			r.Get("/", h.listGrowth)
			r.Get("/{year}", h.getGrowth)
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Post("/", h.createGrowth)
				r.Delete("/", h.deleteAllGrowth)
				r.Put("/{year}", h.updateGrowth)
				r.Delete("/{year}", h.deleteGrowth)
			})
		})

		r.Post("/contact/general", h.sendContact)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) sectionRoutes(r chi.Router) {
	about := &sectionController[models.About]{
		h:   h,
		svc: h.services.AboutService,
		fileFields: []string{
			"heroImage", "heroVideo", "modelImage", "coreValueIcons",
			"howItWorksIcons", "wideRangeImages", "wideRangeVideo",
		},
		res: resource{
			invalid:  "All sections (hero, vision, coreValues, model, howItWorks, wideRange) are required.",
			notFound: "About page not found.",
			exists:   "About page already exists. Use update instead.",
		},
		messages: sectionMessages{
			created: "About page created successfully.",
			updated: "About page updated successfully.",
			deleted: "About page deleted successfully.",
		},
	}
	r.Route("/about", about.mount)

	footer := &sectionController[models.Footer]{
		h:          h,
		svc:        h.services.FooterService,
		fileFields: []string{"icons"},
		res: resource{
			invalid:  "All required footer sections must be provided.",
			notFound: "Footer not found",
			exists:   "Footer already exists. Please update instead.",
		},
		messages: sectionMessages{
			created: "Footer created successfully",
			updated: "Footer updated successfully",
			deleted: "Footer deleted successfully",
		},
	}
	r.Route("/footer", footer.mount)

	faq := &sectionController[models.Faq]{
		h:   h,
		svc: h.services.FaqService,
		res: faqResource,
		messages: sectionMessages{
			created: "FAQ created successfully.",
			updated: "FAQ data updated successfully.",
			deleted: "FAQ data deleted successfully.",
		},
	}
	r.Route("/faq", func(r chi.Router) {
		faq.mount(r)
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/category", h.addFaqCategory)
			r.Delete("/category/{category}", h.deleteFaqCategory)
			r.Post("/category/{category}/question", h.addFaqQuestion)
		})
	})

	hero := &sectionController[models.Hero]{
		h:          h,
		svc:        h.services.HeroService,
		fileFields: []string{heroImageField, heroFeatureIconsField},
		res:        heroResource,
		messages: sectionMessages{
			fetched: "Hero section fetch successfully.",
			created: "Hero section created successfully with features.",
			updated: "Hero section updated successfully.",
			deleted: "Hero section deleted successfully.",
		},
	}
	r.Route("/hero", func(r chi.Router) {
		hero.mount(r)
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/feature", h.addHeroFeature)
			r.Put("/feature/{index}", h.updateHeroFeature)
			r.Delete("/feature/{index}", h.deleteHeroFeature)
		})
	})

	journey := &sectionController[models.Journey]{
		h:      h,
		svc:    h.services.JourneyService,
		res:    journeyResource,
		upsert: true,
		messages: sectionMessages{
			created: "Journey created/updated successfully.",
			updated: "Journey created/updated successfully.",
			deleted: "Journey deleted successfully.",
		},
	}
	r.Route("/journey", func(r chi.Router) {
		journey.mount(r)
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/add", h.addMilestone)
			r.Put("/update/{index}", h.updateMilestone)
			r.Delete("/delete/{index}", h.deleteMilestone)
		})
	})

	vehicle := &sectionController[models.VehicleCatalog]{
		h:      h,
		svc:    h.services.VehicleService,
		res:    vehicleResource,
		upsert: true,
		messages: sectionMessages{
			created: "Vehicle data created/updated successfully.",
			updated: "Vehicle data created/updated successfully.",
			deleted: "Vehicle deleted successfully",
		},
	}
	r.Route("/vehicle", func(r chi.Router) {
		vehicle.mount(r)
		r.Get("/{category}", h.listVehicleBrands)
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/{category}/add", h.addVehicleBrandModel)
			r.Delete("/{category}/{brand}", h.deleteVehicleBrand)
			r.Delete("/{category}/{brand}/{model}", h.deleteVehicleModel)
		})
	})

	newsletter := &sectionController[models.Newsletter]{
		h:   h,
		svc: h.services.NewsletterService,
		res: newsletterResource,
		messages: sectionMessages{
			created: "Newsletter created successfully",
			updated: "Newsletter updated successfully",
			deleted: "Newsletter deleted successfully",
		},
	}
	r.Route("/newsletter", func(r chi.Router) {
		newsletter.mount(r)
		r.Post("/subscribe", h.subscribe)
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/subscribers", h.listSubscribers)
			r.Delete("/subscribers", h.unsubscribe)
		})
	})
}

func (h *Handler) showcaseRoutes(r chi.Router) {
	story := &showcaseController[models.Story]{
		h:          h,
		svc:        h.services.StoryService,
		imageField: "story_img",
		res:        resource{invalid: "Title and summary are required", notFound: "Story not found", exists: "A story with this title already exists"},
		messages: showcaseMessages{
			created: "Story created successfully",
			updated: "Story updated successfully",
			deleted: "Story deleted successfully",
		},
	}
	r.Route("/story", story.mount)

	trusted := &showcaseController[models.TrustedStory]{
		h:          h,
		svc:        h.services.TrustedStoryService,
		imageField: "story_img",
		res:        resource{invalid: "Title and description are required.", notFound: "Trusted story not found.", exists: "A trusted story with this title already exists."},
		messages: showcaseMessages{
			created: "Trusted story created successfully.",
			updated: "Trusted story updated successfully.",
			deleted: "Trusted story deleted successfully.",
		},
	}
	r.Route("/trustedstory", trusted.mount)

	testimonial := &showcaseController[models.Testimonial]{
		h:          h,
		svc:        h.services.TestimonialService,
		imageField: "avatar",
		res:        resource{invalid: "Name and comment are required", notFound: "Testimonial not found"},
		messages: showcaseMessages{
			created: "Testimonial created successfully",
			updated: "Testimonial updated successfully",
			deleted: "Testimonial deleted successfully",
		},
		newItem: models.NewTestimonial,
	}
	r.Route("/testimonial", testimonial.mount)

	sbv := &showcaseController[models.ShopByVehicle]{
		h:          h,
		svc:        h.services.ShopByVehicleService,
		imageField: "image",
		res:        resource{invalid: "Type, image, and button text are required", notFound: "Vehicle not found"},
		messages: showcaseMessages{
			created: "Vehicle created successfully",
			updated: "Vehicle updated successfully",
			deleted: "Vehicle deleted successfully",
		},
	}
	r.Route("/sbv", sbv.mount)
}
