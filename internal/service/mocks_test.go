package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/models"
)

var errStorage = errors.New("storage error")

// fast retry settings so conflict tests do not sleep for long
var testWorkers = config.Workers{RetryAttempts: 3, RetryBackoff: 1}

const (
	testTyreID   = "0190d6f4-8c2b-7c3e-9a51-3f2a7b9c1d01"
	testReviewID = "0190d6f4-8c2b-7c3e-9a51-3f2a7b9c1d02"
	testUserID   = "0190d6f4-8c2b-7c3e-9a51-3f2a7b9c1d03"
	testItemID   = "0190d6f4-8c2b-7c3e-9a51-3f2a7b9c1d04"
)

// ─────────────────────────────────────────────
// Mock: store.TyreRepository
// ─────────────────────────────────────────────

type mockTyreRepository struct {
	createFn     func(ctx context.Context, tyre models.Tyre) (models.Tyre, error)
	findByIDFn   func(ctx context.Context, id string) (models.Tyre, error)
	findBySlugFn func(ctx context.Context, slug string) (models.Tyre, error)
	existsFn     func(ctx context.Context, id string) (bool, error)
	listFn       func(ctx context.Context, filter models.TyreFilter) ([]models.Tyre, int64, error)
	updateFn     func(ctx context.Context, update models.TyreUpdate) (models.Tyre, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (m *mockTyreRepository) CreateTyre(ctx context.Context, tyre models.Tyre) (models.Tyre, error) {
	if m.createFn != nil {
		return m.createFn(ctx, tyre)
	}
	return tyre, nil
}

func (m *mockTyreRepository) FindTyreByID(ctx context.Context, id string) (models.Tyre, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.Tyre{}, store.ErrTyreNotFound
}

func (m *mockTyreRepository) FindTyreBySlug(ctx context.Context, slug string) (models.Tyre, error) {
	if m.findBySlugFn != nil {
		return m.findBySlugFn(ctx, slug)
	}
	return models.Tyre{}, store.ErrTyreNotFound
}

func (m *mockTyreRepository) TyreExists(ctx context.Context, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return true, nil
}

func (m *mockTyreRepository) ListTyres(ctx context.Context, filter models.TyreFilter) ([]models.Tyre, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTyreRepository) UpdateTyre(ctx context.Context, update models.TyreUpdate) (models.Tyre, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, update)
	}
	return models.Tyre{ID: update.ID}, nil
}

func (m *mockTyreRepository) DeleteTyre(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.ReviewRepository / store.EnquiryRepository
// ─────────────────────────────────────────────

type mockReviewRepository struct {
	createLinkedFn func(ctx context.Context, review models.Review) (models.Review, error)
	deleteLinkedFn func(ctx context.Context, id string) (*string, error)
	listFn         func(ctx context.Context) ([]models.Review, error)
	listByTyreFn   func(ctx context.Context, tyreID string) ([]models.Review, error)
	setApprovedFn  func(ctx context.Context, id string, approved bool) (models.Review, error)
}

func (m *mockReviewRepository) CreateLinked(ctx context.Context, review models.Review) (models.Review, error) {
	if m.createLinkedFn != nil {
		return m.createLinkedFn(ctx, review)
	}
	return review, nil
}

func (m *mockReviewRepository) DeleteLinked(ctx context.Context, id string) (*string, error) {
	if m.deleteLinkedFn != nil {
		return m.deleteLinkedFn(ctx, id)
	}
	return nil, nil
}

func (m *mockReviewRepository) ListReviews(ctx context.Context) ([]models.Review, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockReviewRepository) ListApprovedReviewsByTyre(ctx context.Context, tyreID string) ([]models.Review, error) {
	if m.listByTyreFn != nil {
		return m.listByTyreFn(ctx, tyreID)
	}
	return nil, nil
}

func (m *mockReviewRepository) SetReviewApproved(ctx context.Context, id string, approved bool) (models.Review, error) {
	if m.setApprovedFn != nil {
		return m.setApprovedFn(ctx, id, approved)
	}
	return models.Review{ID: id, Approved: approved}, nil
}

type mockEnquiryRepository struct {
	createLinkedFn func(ctx context.Context, enquiry models.Enquiry) (models.Enquiry, error)
	deleteLinkedFn func(ctx context.Context, id string) (*string, error)
	listFn         func(ctx context.Context) ([]models.Enquiry, error)
}

func (m *mockEnquiryRepository) CreateLinked(ctx context.Context, enquiry models.Enquiry) (models.Enquiry, error) {
	if m.createLinkedFn != nil {
		return m.createLinkedFn(ctx, enquiry)
	}
	return enquiry, nil
}

func (m *mockEnquiryRepository) DeleteLinked(ctx context.Context, id string) (*string, error) {
	if m.deleteLinkedFn != nil {
		return m.deleteLinkedFn(ctx, id)
	}
	return nil, nil
}

func (m *mockEnquiryRepository) ListEnquiries(ctx context.Context) ([]models.Enquiry, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn      func(ctx context.Context, user models.User) (models.User, error)
	findByEmailFn func(ctx context.Context, email string) (models.User, error)
	findByIDFn    func(ctx context.Context, id string) (models.User, error)
	updateFn      func(ctx context.Context, id string, update models.UserUpdate) (models.User, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return models.User{UserID: id}, nil
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Fake: store.SectionRepository
// ─────────────────────────────────────────────

// memSectionRepository keeps sections in memory and mimics the store errors.
type memSectionRepository struct {
	mu       sync.Mutex
	sections map[models.SectionKind]json.RawMessage
	mutateFn func() error
}

func newMemSectionRepository() *memSectionRepository {
	return &memSectionRepository{sections: map[models.SectionKind]json.RawMessage{}}
}

func (m *memSectionRepository) seed(kind models.SectionKind, body any) {
	raw, _ := json.Marshal(body)
	m.sections[kind] = raw
}

func (m *memSectionRepository) CreateSection(_ context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sections[kind]; ok {
		return models.Section{}, store.ErrSectionAlreadyExists
	}
	m.sections[kind] = body
	return models.Section{Kind: kind, Body: body}, nil
}

func (m *memSectionRepository) UpsertSection(_ context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sections[kind] = body
	return models.Section{Kind: kind, Body: body}, nil
}

func (m *memSectionRepository) GetSection(_ context.Context, kind models.SectionKind) (models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.sections[kind]
	if !ok {
		return models.Section{}, store.ErrSectionNotFound
	}
	return models.Section{Kind: kind, Body: body}, nil
}

func (m *memSectionRepository) ReplaceSection(_ context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sections[kind]; !ok {
		return models.Section{}, store.ErrSectionNotFound
	}
	m.sections[kind] = body
	return models.Section{Kind: kind, Body: body}, nil
}

func (m *memSectionRepository) MutateSection(_ context.Context, kind models.SectionKind, mutate store.SectionMutator) (models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mutateFn != nil {
		if err := m.mutateFn(); err != nil {
			return models.Section{}, err
		}
	}
	body, ok := m.sections[kind]
	if !ok {
		return models.Section{}, store.ErrSectionNotFound
	}
	updated, err := mutate(body)
	if err != nil {
		return models.Section{}, err
	}
	m.sections[kind] = updated
	return models.Section{Kind: kind, Body: updated}, nil
}

func (m *memSectionRepository) DeleteSection(_ context.Context, kind models.SectionKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sections[kind]; !ok {
		return store.ErrSectionNotFound
	}
	delete(m.sections, kind)
	return nil
}

// ─────────────────────────────────────────────
// Fake: store.ShowcaseRepository
// ─────────────────────────────────────────────

type memShowcaseRepository struct {
	items map[string]models.ShowcaseItem
}

func newMemShowcaseRepository() *memShowcaseRepository {
	return &memShowcaseRepository{items: map[string]models.ShowcaseItem{}}
}

func (m *memShowcaseRepository) CreateItem(_ context.Context, item models.ShowcaseItem) (models.ShowcaseItem, error) {
	m.items[item.ID] = item
	return item, nil
}

func (m *memShowcaseRepository) GetItem(_ context.Context, kind models.ShowcaseKind, id string) (models.ShowcaseItem, error) {
	item, ok := m.items[id]
	if !ok || item.Kind != kind {
		return models.ShowcaseItem{}, store.ErrItemNotFound
	}
	return item, nil
}

func (m *memShowcaseRepository) ListItems(_ context.Context, kind models.ShowcaseKind) ([]models.ShowcaseItem, error) {
	var items []models.ShowcaseItem
	for _, item := range m.items {
		if item.Kind == kind {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *memShowcaseRepository) UpdateItem(ctx context.Context, kind models.ShowcaseKind, id string, mutate store.ShowcaseMutator) (models.ShowcaseItem, error) {
	item, err := m.GetItem(ctx, kind, id)
	if err != nil {
		return models.ShowcaseItem{}, err
	}
	body, err := mutate(item.Body)
	if err != nil {
		return models.ShowcaseItem{}, err
	}
	item.Body = body
	m.items[id] = item
	return item, nil
}

func (m *memShowcaseRepository) DeleteItem(_ context.Context, kind models.ShowcaseKind, id string) error {
	if item, ok := m.items[id]; !ok || item.Kind != kind {
		return store.ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

// ─────────────────────────────────────────────
// Mocks: adapters
// ─────────────────────────────────────────────

type mockUploader struct {
	mu       sync.Mutex
	uploaded []models.UploadedFile
	uploadFn func(ctx context.Context, file models.UploadedFile) (models.Media, error)
}

func (m *mockUploader) Upload(ctx context.Context, file models.UploadedFile) (models.Media, error) {
	m.mu.Lock()
	m.uploaded = append(m.uploaded, file)
	m.mu.Unlock()
	if m.uploadFn != nil {
		return m.uploadFn(ctx, file)
	}
	return models.Media{URL: "https://media.example.com/" + file.Filename, PublicID: file.Filename}, nil
}

type sentMail struct {
	to, subject, body string
}

type mockNotifier struct {
	mu     sync.Mutex
	sent   []sentMail
	sendFn func(ctx context.Context, to, subject, body string) error
}

func (m *mockNotifier) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	m.mu.Unlock()
	if m.sendFn != nil {
		return m.sendFn(ctx, to, subject, body)
	}
	return nil
}

type mockPublisher struct {
	mu     sync.Mutex
	events []models.Event
	err    error
	// block, when set, holds every Publish until it is closed.
	block chan struct{}
}

func (m *mockPublisher) Publish(_ context.Context, event models.Event) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.Type)
	}
	return types
}
