package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sectionRowColumns = []string{"kind", "body", "created_at", "updated_at"}

func sectionRows(kind models.SectionKind, body string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(sectionRowColumns).AddRow(string(kind), []byte(body), now, now)
}

// ---- Repository ----

func TestCreateSection_SecondCreateConflicts(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSectionRepository(newDBFromSQL(db), logger.Nop())
	body := json.RawMessage(`{"title":"Hello"}`)

	mock.ExpectQuery("INSERT INTO site_sections").
		WithArgs("hero", []byte(body)).
		WillReturnRows(sectionRows(models.SectionHero, string(body)))
	mock.ExpectQuery("INSERT INTO site_sections").
		WithArgs("hero", []byte(body)).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	created, err := repo.CreateSection(testContext(), models.SectionHero, body)
	require.NoError(t, err)
	assert.JSONEq(t, string(body), string(created.Body))

	_, err = repo.CreateSection(testContext(), models.SectionHero, body)
	require.ErrorIs(t, err, ErrSectionAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSection_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSectionRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM site_sections").WithArgs("faq").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSection(testContext(), models.SectionFaq)
	require.ErrorIs(t, err, ErrSectionNotFound)
}

func TestMutateSection_LocksAndStores(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSectionRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT body FROM site_sections WHERE kind = \\$1 FOR UPDATE").
		WithArgs("journey").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"milestones":[]}`)))
	mock.ExpectQuery("UPDATE site_sections").
		WithArgs([]byte(`{"milestones":[1]}`), "journey").
		WillReturnRows(sectionRows(models.SectionJourney, `{"milestones":[1]}`))
	mock.ExpectCommit()

	section, err := repo.MutateSection(testContext(), models.SectionJourney, func(body json.RawMessage) (json.RawMessage, error) {
		assert.JSONEq(t, `{"milestones":[]}`, string(body))
		return json.RawMessage(`{"milestones":[1]}`), nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.SectionJourney, section.Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMutateSection_MutatorErrorRollsBack(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSectionRepository(newDBFromSQL(db), logger.Nop())
	errIndex := errors.New("index out of range")

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{}`)))
	mock.ExpectRollback()

	_, err := repo.MutateSection(testContext(), models.SectionHero, func(json.RawMessage) (json.RawMessage, error) {
		return nil, errIndex
	})
	require.ErrorIs(t, err, errIndex)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMutateSection_Missing(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSectionRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.MutateSection(testContext(), models.SectionFaq, func(b json.RawMessage) (json.RawMessage, error) {
		t.Fatal("mutator must not run")
		return b, nil
	})
	require.ErrorIs(t, err, ErrSectionNotFound)
}

func TestDeleteSection(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSectionRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec("DELETE FROM site_sections").WithArgs("about").WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.DeleteSection(testContext(), models.SectionAbout), ErrSectionNotFound)
}

// ---- Cache decorator ----

type fakeSectionRepo struct {
	SectionRepository
	gets    int
	section models.Section
	// afterRead runs once the row has been read but before it is returned.
	afterRead func()
}

func (f *fakeSectionRepo) GetSection(context.Context, models.SectionKind) (models.Section, error) {
	f.gets++
	section := f.section
	if f.afterRead != nil {
		hook := f.afterRead
		f.afterRead = nil
		hook()
	}
	return section, nil
}

func (f *fakeSectionRepo) ReplaceSection(_ context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error) {
	f.section = models.Section{Kind: kind, Body: body}
	return f.section, nil
}

type mapSectionCache struct {
	entries     map[models.SectionKind]models.Section
	generations map[models.SectionKind]int64
	failGet     bool
}

func newMapSectionCache() *mapSectionCache {
	return &mapSectionCache{
		entries:     map[models.SectionKind]models.Section{},
		generations: map[models.SectionKind]int64{},
	}
}

func (m *mapSectionCache) Get(_ context.Context, kind models.SectionKind) (models.Section, error) {
	if m.failGet {
		return models.Section{}, errors.New("redis down")
	}
	s, ok := m.entries[kind]
	if !ok {
		return models.Section{}, ErrCacheMiss
	}
	return s, nil
}

func (m *mapSectionCache) Generation(_ context.Context, kind models.SectionKind) (int64, error) {
	return m.generations[kind], nil
}

func (m *mapSectionCache) Set(_ context.Context, s models.Section, generation int64) error {
	if m.generations[s.Kind] != generation {
		return nil
	}
	m.entries[s.Kind] = s
	return nil
}

// Invalidate refuses a cancelled context the way a real client would.
func (m *mapSectionCache) Invalidate(ctx context.Context, kind models.SectionKind) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.generations[kind]++
	delete(m.entries, kind)
	return nil
}

func TestCachedSectionRepository_ReadThroughAndInvalidate(t *testing.T) {
	inner := &fakeSectionRepo{section: models.Section{Kind: models.SectionFooter, Body: json.RawMessage(`{"v":1}`)}}
	cache := newMapSectionCache()
	repo := NewCachedSectionRepository(inner, cache)
	ctx := testContext()

	_, err := repo.GetSection(ctx, models.SectionFooter)
	require.NoError(t, err)
	_, err = repo.GetSection(ctx, models.SectionFooter)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets, "second read must be served from cache")

	_, err = repo.ReplaceSection(ctx, models.SectionFooter, json.RawMessage(`{"v":2}`))
	require.NoError(t, err)
	assert.NotContains(t, cache.entries, models.SectionFooter)

	got, err := repo.GetSection(ctx, models.SectionFooter)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got.Body))
	assert.Equal(t, 2, inner.gets)
}

func TestCachedSectionRepository_CacheFailureFallsBack(t *testing.T) {
	inner := &fakeSectionRepo{section: models.Section{Kind: models.SectionHero, Body: json.RawMessage(`{}`)}}
	cache := newMapSectionCache()
	cache.failGet = true
	repo := NewCachedSectionRepository(inner, cache)

	_, err := repo.GetSection(testContext(), models.SectionHero)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets)
}

func TestCachedSectionRepository_WriteDuringReadDoesNotCacheOldBody(t *testing.T) {
	inner := &fakeSectionRepo{section: models.Section{Kind: models.SectionHero, Body: json.RawMessage(`"old"`)}}
	cache := newMapSectionCache()
	repo := NewCachedSectionRepository(inner, cache)
	ctx := testContext()

	// the reader has loaded "old" when an admin replaces the section
	inner.afterRead = func() {
		_, err := repo.ReplaceSection(ctx, models.SectionHero, json.RawMessage(`"new"`))
		require.NoError(t, err)
	}

	got, err := repo.GetSection(ctx, models.SectionHero)
	require.NoError(t, err)
	assert.JSONEq(t, `"old"`, string(got.Body))
	assert.NotContains(t, cache.entries, models.SectionHero, "old body must not be cached after the write")

	got, err = repo.GetSection(ctx, models.SectionHero)
	require.NoError(t, err)
	assert.JSONEq(t, `"new"`, string(got.Body))
	assert.JSONEq(t, `"new"`, string(cache.entries[models.SectionHero].Body))
}

func TestCachedSectionRepository_InvalidatesAfterRequestCancelled(t *testing.T) {
	inner := &fakeSectionRepo{section: models.Section{Kind: models.SectionAbout, Body: json.RawMessage(`{"v":1}`)}}
	cache := newMapSectionCache()
	repo := NewCachedSectionRepository(inner, cache)

	_, err := repo.GetSection(testContext(), models.SectionAbout)
	require.NoError(t, err)
	require.Contains(t, cache.entries, models.SectionAbout)

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	_, err = repo.ReplaceSection(ctx, models.SectionAbout, json.RawMessage(`{"v":2}`))
	require.NoError(t, err)
	assert.NotContains(t, cache.entries, models.SectionAbout)
	assert.Equal(t, int64(1), cache.generations[models.SectionAbout])
}

func TestNopSectionCache_AlwaysMisses(t *testing.T) {
	var cache SectionCache = nopSectionCache{}
	generation, err := cache.Generation(context.Background(), models.SectionHero)
	require.NoError(t, err)
	require.NoError(t, cache.Set(context.Background(), models.Section{Kind: models.SectionHero}, generation))

	_, err = cache.Get(context.Background(), models.SectionHero)
	require.ErrorIs(t, err, ErrCacheMiss)
}
