package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/mock"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Tests in this file drive the adapter boundary with generated mocks, so
// the call order across adapters is asserted too.

func TestEnquiryService_CreateEnquiry_MailThenEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)
	publisher := mock.NewMockEventPublisher(ctrl)

	svc := NewEnquiryService(&mockTyreRepository{}, &mockEnquiryRepository{}, validators.NewRequestValidator(),
		notifier, testAdminMail, publisher, testWorkers, logger.Nop())

	gomock.InOrder(
		notifier.EXPECT().
			Send(gomock.Any(), testAdminMail, "New Tyre Enquiry Received from Ravi", gomock.Any()).
			Return(nil),
		publisher.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event models.Event) error {
				assert.Equal(t, models.EventEnquiryCreated, event.Type)
				assert.Equal(t, testTyreID, event.Key)
				assert.NotEmpty(t, event.ID)
				return errors.New("broker down")
			}),
	)

	_, err := svc.CreateEnquiry(context.Background(), validEnquiryInput())
	require.NoError(t, err)
}

func TestTyreService_CreateTyre_UploadsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	uploader := mock.NewMockMediaUploader(ctrl)

	files := images("front.png", "side.png")
	gomock.InOrder(
		uploader.EXPECT().Upload(gomock.Any(), files[0]).Return(models.Media{URL: "https://cdn/front.png"}, nil),
		uploader.EXPECT().Upload(gomock.Any(), files[1]).Return(models.Media{URL: "https://cdn/side.png"}, nil),
	)

	var saved models.Tyre
	tyres := &mockTyreRepository{
		createFn: func(_ context.Context, tyre models.Tyre) (models.Tyre, error) {
			saved = tyre
			return tyre, nil
		},
	}
	svc := NewTyreService(tyres, uploader, validators.NewRequestValidator(), nil, logger.Nop())

	_, err := svc.CreateTyre(context.Background(), validTyreInput(), files)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/front.png", "https://cdn/side.png"}, saved.Images)
}

func TestContactService_NoRetryOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)
	notifier.EXPECT().Send(gomock.Any(), testAdminMail, contactSubject, gomock.Any()).Return(errors.New("refused")).Times(1)

	svc := NewContactService(notifier, testAdminMail, validators.NewRequestValidator(), logger.Nop())
	err := svc.SendContact(context.Background(), models.ContactRequest{
		Name: "Kiran", Email: "kiran@example.com", Phone: "123", Message: "Hello",
	})

	require.Error(t, err)
}
