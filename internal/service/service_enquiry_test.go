package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminMail = "admin@tyres.example.com"

func newTestEnquiryService(tyres *mockTyreRepository, enquiries *mockEnquiryRepository, notifier *mockNotifier, publisher *mockPublisher) EnquiryService {
	return NewEnquiryService(tyres, enquiries, validators.NewRequestValidator(), notifier, testAdminMail, publisher, testWorkers, logger.Nop())
}

func validEnquiryInput() models.EnquiryInput {
	return models.EnquiryInput{
		Name:    "Ravi",
		Email:   "ravi@example.com",
		Message: "Do you have this in stock?",
		TyreID:  testTyreID,
	}
}

func TestEnquiryService_CreateEnquiry_MailsTyreDetails(t *testing.T) {
	tyres := &mockTyreRepository{
		findByIDFn: func(_ context.Context, id string) (models.Tyre, error) {
			return models.Tyre{
				ID:       id,
				Name:     "Pilot <Sport>",
				Brand:    "Michelin",
				Category: models.CategoryCar,
				Size:     "225/45 R17",
				Price:    decimal.NewFromInt(90),
				Discount: 10,
				Images:   []string{"https://img/1.png"},
			}, nil
		},
	}
	notifier := &mockNotifier{}
	publisher := &mockPublisher{}
	svc := newTestEnquiryService(tyres, &mockEnquiryRepository{}, notifier, publisher)

	created, err := svc.CreateEnquiry(context.Background(), validEnquiryInput())

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.TyreID)
	assert.Equal(t, testTyreID, *created.TyreID)

	require.Len(t, notifier.sent, 1)
	mail := notifier.sent[0]
	assert.Equal(t, testAdminMail, mail.to)
	assert.Equal(t, "New Tyre Enquiry Received from Ravi", mail.subject)
	assert.Contains(t, mail.body, "Pilot &lt;Sport&gt;")
	assert.Contains(t, mail.body, "90.00")
	assert.Contains(t, mail.body, "10%")
	assert.Contains(t, mail.body, "https://img/1.png")

	assert.Equal(t, []string{models.EventEnquiryCreated}, publisher.types())
}

func TestEnquiryService_CreateEnquiry_StalledMailAndBrokerDoNotDelayResponse(t *testing.T) {
	release := make(chan struct{})
	notifier := &mockNotifier{sendFn: func(context.Context, string, string, string) error {
		<-release
		return nil
	}}
	broker := &mockPublisher{block: release}
	mail := adapter.NewMailQueue(notifier, 4, logger.Nop())
	events := adapter.NewPublishQueue(broker, 4, logger.Nop())
	svc := NewEnquiryService(&mockTyreRepository{}, &mockEnquiryRepository{}, validators.NewRequestValidator(), mail, testAdminMail, events, testWorkers, logger.Nop())

	start := time.Now()
	_, err := svc.CreateEnquiry(context.Background(), validEnquiryInput())

	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)

	close(release)
	require.NoError(t, mail.Close())
	require.NoError(t, events.Close())
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "New Tyre Enquiry Received from Ravi", notifier.sent[0].subject)
	assert.Equal(t, []string{models.EventEnquiryCreated}, broker.types())
}

func TestEnquiryService_CreateEnquiry_MailFailureIsNotFatal(t *testing.T) {
	notifier := &mockNotifier{
		sendFn: func(context.Context, string, string, string) error { return errors.New("smtp down") },
	}
	svc := newTestEnquiryService(&mockTyreRepository{}, &mockEnquiryRepository{}, notifier, &mockPublisher{})

	_, err := svc.CreateEnquiry(context.Background(), validEnquiryInput())

	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	assert.NotContains(t, notifier.sent[0].body, "Tyre Details", "tyre lookup failed, mail goes out without details")
}

func TestEnquiryService_CreateEnquiry_MissingFields(t *testing.T) {
	tyres := &mockTyreRepository{
		existsFn: func(context.Context, string) (bool, error) {
			t.Fatal("storage must not be reached")
			return false, nil
		},
	}
	notifier := &mockNotifier{}
	svc := newTestEnquiryService(tyres, &mockEnquiryRepository{}, notifier, &mockPublisher{})

	_, err := svc.CreateEnquiry(context.Background(), models.EnquiryInput{Name: "Ravi", TyreID: testTyreID})

	var verr *validators.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.MissingOnly())
	assert.Empty(t, notifier.sent)
}

func TestEnquiryService_CreateEnquiry_UnknownTyre(t *testing.T) {
	tyres := &mockTyreRepository{
		existsFn: func(context.Context, string) (bool, error) { return false, nil },
	}
	enquiries := &mockEnquiryRepository{
		createLinkedFn: func(context.Context, models.Enquiry) (models.Enquiry, error) {
			t.Fatal("transaction must not start")
			return models.Enquiry{}, nil
		},
	}
	notifier := &mockNotifier{}
	svc := newTestEnquiryService(tyres, enquiries, notifier, &mockPublisher{})

	_, err := svc.CreateEnquiry(context.Background(), validEnquiryInput())

	require.ErrorIs(t, err, store.ErrTyreNotFound)
	assert.Empty(t, notifier.sent)
}

func TestEnquiryService_CreateEnquiry_TyreLookupFails(t *testing.T) {
	tyres := &mockTyreRepository{
		existsFn: func(context.Context, string) (bool, error) { return false, errStorage },
	}
	svc := newTestEnquiryService(tyres, &mockEnquiryRepository{}, &mockNotifier{}, &mockPublisher{})

	_, err := svc.CreateEnquiry(context.Background(), validEnquiryInput())

	require.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, store.ErrTyreNotFound)
}

func TestEnquiryService_DeleteEnquiry(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		repoErr error
		wantErr error
		events  int
	}{
		{name: "linked", id: testItemID, events: 1},
		{name: "orphan", id: testItemID, events: 1},
		{name: "missing", id: testItemID, repoErr: store.ErrEnquiryNotFound, wantErr: store.ErrEnquiryNotFound},
		{name: "malformed id", id: "abc", wantErr: store.ErrEnquiryNotFound},
		{name: "conflicts exhausted", id: testItemID, repoErr: store.ErrTransactionConflict, wantErr: store.ErrTransactionConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher := &mockPublisher{}
			enquiries := &mockEnquiryRepository{
				deleteLinkedFn: func(_ context.Context, id string) (*string, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					if tt.name == "orphan" {
						return nil, nil
					}
					parent := testTyreID
					return &parent, nil
				},
			}
			svc := newTestEnquiryService(&mockTyreRepository{}, enquiries, &mockNotifier{}, publisher)

			err := svc.DeleteEnquiry(context.Background(), tt.id)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Len(t, publisher.types(), tt.events)
		})
	}
}
