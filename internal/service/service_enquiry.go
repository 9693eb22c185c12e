package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

type enquiryService struct {
	tyres     store.TyreRepository
	enquiries store.EnquiryRepository
	linker    childLinker[models.Enquiry]
	validator validators.Validator
	notifier  adapter.Notifier
	adminMail string
	events    eventEmitter
	ids       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewEnquiryService(
	tyres store.TyreRepository,
	enquiries store.EnquiryRepository,
	validator validators.Validator,
	notifier adapter.Notifier,
	adminMail string,
	publisher adapter.EventPublisher,
	cfg config.Workers,
	logger *logger.Logger,
) EnquiryService {
	return &enquiryService{
		tyres:     tyres,
		enquiries: enquiries,
		linker:    childLinker[models.Enquiry]{tyres: tyres, children: enquiries, policy: newRetryPolicy(cfg)},
		validator: validator,
		notifier:  notifier,
		adminMail: adminMail,
		events:    newEventEmitter(publisher),
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

// CreateEnquiry stores the enquiry, links it to its tyre and mails the shop.
// The mail goes out after the commit and its failure is only logged.
func (e *enquiryService) CreateEnquiry(ctx context.Context, in models.EnquiryInput) (models.Enquiry, error) {
	in.Normalize()
	if err := e.validator.Validate(ctx, in); err != nil {
		return models.Enquiry{}, err
	}

	created, err := e.linker.create(ctx, in.TyreID, models.Enquiry{
		ID:      e.ids.Generate(),
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		TyreID:  &in.TyreID,
	})
	if err != nil {
		return models.Enquiry{}, err
	}

	e.sendReceipt(ctx, created)
	e.events.emit(ctx, models.EventEnquiryCreated, in.TyreID, created)

	return created, nil
}

func (e *enquiryService) sendReceipt(ctx context.Context, enquiry models.Enquiry) {
	var tyre *models.Tyre
	if enquiry.TyreID != nil {
		found, err := e.tyres.FindTyreByID(ctx, *enquiry.TyreID)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "enquiryService.sendReceipt").Msg("tyre details unavailable for mail")
		} else {
			tyre = &found
		}
	}

	notify(ctx, e.notifier, e.adminMail, "New Tyre Enquiry Received from "+enquiry.Name, enquiryMailBody(enquiry, tyre))
}

func enquiryMailBody(enquiry models.Enquiry, tyre *models.Tyre) string {
	var b strings.Builder

	b.WriteString("<h3>Customer Enquiry</h3>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(enquiry.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(enquiry.Email))
	fmt.Fprintf(&b, "<p><strong>Enquiry:</strong> %s</p>", html.EscapeString(enquiry.Message))

	if tyre == nil {
		return b.String()
	}

	b.WriteString("<hr/><h3>Tyre Details</h3>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(tyre.Name))
	fmt.Fprintf(&b, "<p><strong>Brand:</strong> %s</p>", html.EscapeString(tyre.Brand))
	fmt.Fprintf(&b, "<p><strong>Category:</strong> %s</p>", html.EscapeString(string(tyre.Category)))
	fmt.Fprintf(&b, "<p><strong>Size:</strong> %s</p>", html.EscapeString(tyre.Size))
	fmt.Fprintf(&b, "<p><strong>Price:</strong> %s</p>", tyre.Price.StringFixed(2))
	fmt.Fprintf(&b, "<p><strong>Discount:</strong> %d%%</p>", tyre.Discount)
	for _, img := range tyre.Images {
		fmt.Fprintf(&b, `<img src="%s" width="150" style="margin:5px"/>`, html.EscapeString(img))
	}

	return b.String()
}

func (e *enquiryService) ListEnquiries(ctx context.Context) ([]models.Enquiry, error) {
	return e.enquiries.ListEnquiries(ctx)
}

func (e *enquiryService) DeleteEnquiry(ctx context.Context, id string) error {
	tyreID, err := e.linker.delete(ctx, id, store.ErrEnquiryNotFound)
	if err != nil {
		return err
	}

	key := ""
	if tyreID != nil {
		key = *tyreID
	}
	e.events.emit(ctx, models.EventEnquiryDeleted, key, map[string]string{"_id": id})
	return nil
}
