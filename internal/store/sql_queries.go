package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/jackc/pgx/v5/pgtype"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	userColumns = `id, username, email, password, created_at, updated_at`

	createUser = `INSERT INTO users (id, username, email, password)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1;`

	deleteUser = `DELETE FROM users WHERE id = $1;`
)

const (
	tyreColumns = `id, slug, name, brand, category, size, price, old_price, discount, rating,
		dealer, stock, popular, description, images, reviews, enquiries, user_id, created_at, updated_at`

	createTyre = `INSERT INTO tyres (
			id, slug, name, brand, category, size, price, old_price, discount, rating,
			dealer, stock, popular, description, images, user_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + tyreColumns + `;`

	findTyreByID = `SELECT ` + tyreColumns + `
		FROM tyres
		WHERE id = $1;`

	findTyreBySlug = `SELECT ` + tyreColumns + `
		FROM tyres
		WHERE slug = $1;`

	lockTyreByID = `SELECT ` + tyreColumns + `
		FROM tyres
		WHERE id = $1
		FOR UPDATE;`

	tyreExists = `SELECT EXISTS (SELECT 1 FROM tyres WHERE id = $1);`

	deleteTyre = `DELETE FROM tyres WHERE id = $1;`
)

const (
	reviewColumns = `id, name, location, rating, comment, tyre_id, approved, created_at, updated_at`

	createReview = `INSERT INTO reviews (id, name, location, rating, comment, tyre_id, approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + reviewColumns + `;`

	listReviews = `SELECT ` + reviewColumns + `
		FROM reviews
		ORDER BY created_at DESC;`

	listApprovedReviewsByTyre = `SELECT ` + reviewColumns + `
		FROM reviews
		WHERE tyre_id = $1 AND approved
		ORDER BY created_at DESC;`

	setReviewApproved = `UPDATE reviews
		SET approved = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + reviewColumns + `;`
)

const (
	enquiryColumns = `id, name, email, message, tyre_id, created_at, updated_at`

	createEnquiry = `INSERT INTO enquiries (id, name, email, message, tyre_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + enquiryColumns + `;`

	listEnquiries = `SELECT ` + enquiryColumns + `
		FROM enquiries
		ORDER BY created_at DESC;`
)

const (
	sectionColumns = `kind, body, created_at, updated_at`

	createSection = `INSERT INTO site_sections (kind, body)
		VALUES ($1, $2)
		RETURNING ` + sectionColumns + `;`

	upsertSection = `INSERT INTO site_sections (kind, body)
		VALUES ($1, $2)
		ON CONFLICT (kind) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()
		RETURNING ` + sectionColumns + `;`

	getSection = `SELECT ` + sectionColumns + `
		FROM site_sections
		WHERE kind = $1;`

	lockSection = `SELECT body
		FROM site_sections
		WHERE kind = $1
		FOR UPDATE;`

	replaceSection = `UPDATE site_sections
		SET body = $1, updated_at = NOW()
		WHERE kind = $2
		RETURNING ` + sectionColumns + `;`

	deleteSection = `DELETE FROM site_sections WHERE kind = $1;`
)

const (
	showcaseColumns = `id, kind, body, created_at, updated_at`

	createShowcaseItem = `INSERT INTO showcase_items (id, kind, body)
		VALUES ($1, $2, $3)
		RETURNING ` + showcaseColumns + `;`

	getShowcaseItem = `SELECT ` + showcaseColumns + `
		FROM showcase_items
		WHERE kind = $1 AND id = $2;`

	lockShowcaseItem = `SELECT body
		FROM showcase_items
		WHERE kind = $1 AND id = $2
		FOR UPDATE;`

	listShowcaseItems = `SELECT ` + showcaseColumns + `
		FROM showcase_items
		WHERE kind = $1
		ORDER BY created_at DESC;`

	updateShowcaseItem = `UPDATE showcase_items
		SET body = $1, updated_at = NOW()
		WHERE kind = $2 AND id = $3
		RETURNING ` + showcaseColumns + `;`

	deleteShowcaseItem = `DELETE FROM showcase_items WHERE kind = $1 AND id = $2;`
)

const (
	growthColumns = `year, growth, created_at, updated_at`

	createGrowth = `INSERT INTO growth (year, growth)
		VALUES ($1, $2)
		RETURNING ` + growthColumns + `;`

	listGrowth = `SELECT ` + growthColumns + `
		FROM growth
		ORDER BY year;`

	getGrowth = `SELECT ` + growthColumns + `
		FROM growth
		WHERE year = $1;`

	updateGrowth = `UPDATE growth
		SET growth = $1, updated_at = NOW()
		WHERE year = $2
		RETURNING ` + growthColumns + `;`

	deleteGrowth    = `DELETE FROM growth WHERE year = $1;`
	deleteAllGrowth = `DELETE FROM growth;`
)

const (
	subscribe = `INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		RETURNING email, subscribed_at;`

	listSubscribers = `SELECT email, subscribed_at
		FROM newsletter_subscribers
		ORDER BY subscribed_at DESC;`

	unsubscribe = `DELETE FROM newsletter_subscribers WHERE email = $1;`
)

const dashboardCounts = `SELECT
		(SELECT COUNT(*) FROM tyres),
		(SELECT COUNT(*) FROM reviews),
		(SELECT COUNT(*) FROM reviews WHERE NOT approved),
		(SELECT COUNT(*) FROM enquiries),
		(SELECT COUNT(*) FROM newsletter_subscribers),
		(SELECT COUNT(*) FROM showcase_items WHERE kind = 'story'),
		(SELECT COUNT(*) FROM showcase_items WHERE kind = 'trustedstory'),
		(SELECT COUNT(*) FROM showcase_items WHERE kind = 'testimonial'),
		(SELECT COUNT(*) FROM showcase_items WHERE kind = 'sbv'),
		(SELECT COUNT(*) FROM growth),
		(SELECT COUNT(*) FROM site_sections);`

// textArray adapts a Go string slice for scanning a PostgreSQL array column
// (text[] or uuid[]) through database/sql.
func textArray(dst *[]string) sql.Scanner {
	return pgtype.NewMap().SQLScanner(dst)
}

// buildListTyresQuery builds the filtered, paginated listing and its
// matching count query.
func buildListTyresQuery(filter models.TyreFilter) (string, []any, string, []any, error) {
	where := sq.And{}
	if filter.Brand != "" {
		where = append(where, sq.ILike{"brand": filter.Brand})
	}
	if filter.Category != "" {
		where = append(where, sq.Eq{"category": string(filter.Category)})
	}
	if filter.Popular != nil {
		where = append(where, sq.Eq{"popular": *filter.Popular})
	}
	if filter.MinPrice != nil {
		where = append(where, sq.GtOrEq{"price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		where = append(where, sq.LtOrEq{"price": *filter.MaxPrice})
	}

	listBuilder := psql.Select(tyreColumns).From("tyres").OrderBy("created_at DESC")
	countBuilder := psql.Select("COUNT(*)").From("tyres")
	if len(where) > 0 {
		listBuilder = listBuilder.Where(where)
		countBuilder = countBuilder.Where(where)
	}

	if filter.Limit > 0 {
		listBuilder = listBuilder.Limit(filter.Limit)
		if filter.Page > 1 {
			listBuilder = listBuilder.Offset((filter.Page - 1) * filter.Limit)
		}
	}

	listQuery, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return "", nil, "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return "", nil, "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return listQuery, listArgs, countQuery, countArgs, nil
}

// buildUpdateTyreQuery builds the UPDATE for a locked tyre row. merged holds
// the row after update was applied; only the fields update names are set.
// Reference lists are never part of the statement.
func buildUpdateTyreQuery(update models.TyreUpdate, merged models.Tyre) (string, []any, error) {
	set := map[string]any{
		"discount":   merged.Discount,
		"updated_at": sq.Expr("NOW()"),
	}

	if update.Slug != nil {
		set["slug"] = merged.Slug
	}
	if update.Name != nil {
		set["name"] = merged.Name
	}
	if update.Brand != nil {
		set["brand"] = merged.Brand
	}
	if update.Category != nil {
		set["category"] = string(merged.Category)
	}
	if update.Size != nil {
		set["size"] = merged.Size
	}
	if update.Price != nil {
		set["price"] = merged.Price
	}
	if update.OldPrice != nil {
		set["old_price"] = merged.OldPrice
	}
	if update.Rating != nil {
		set["rating"] = merged.Rating
	}
	if update.Dealer != nil {
		set["dealer"] = merged.Dealer
	}
	if update.Stock != nil {
		set["stock"] = merged.Stock
	}
	if update.Popular != nil {
		set["popular"] = merged.Popular
	}
	if update.Description != nil {
		set["description"] = merged.Description
	}
	if len(update.NewImages) > 0 {
		set["images"] = merged.Images
	}

	query, args, err := psql.Update("tyres").
		SetMap(set).
		Where(sq.Eq{"id": update.ID}).
		Suffix("RETURNING " + tyreColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateUserQuery builds a partial user update.
func buildUpdateUserQuery(id string, update models.UserUpdate) (string, []any, error) {
	set := map[string]any{"updated_at": sq.Expr("NOW()")}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}

	query, args, err := psql.Update("users").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
