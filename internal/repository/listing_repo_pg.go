package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/rente/internal/domain"
)

// ListingFilter is the composable search over active listings. Zero-valued
// fields are skipped; the remaining conditions are AND-combined.
type ListingFilter struct {
	Query        string
	MinPrice     *float64
	MaxPrice     *float64
	Location     string
	Rooms        *int
	PropertyType domain.PropertyType
	Ordering     string // "price_asc", "price_desc", "date" or empty
}

func (f ListingFilter) IsZero() bool {
	return f.Query == "" && f.MinPrice == nil && f.MaxPrice == nil &&
		f.Location == "" && f.Rooms == nil && f.PropertyType == "" && f.Ordering == ""
}

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Search(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id int64) error
	RecordView(ctx context.Context, listingID, userID int64) error
}

type PGListingRepository struct {
	db *pgxpool.Pool
}

func NewListingRepository(db *pgxpool.Pool) ListingRepository {
	return &PGListingRepository{db: db}
}

const listingColumns = `l.id, l.owner_id, l.title, l.description, l.location, l.price, l.rooms,
	l.property_type, l.is_active, l.views_count, l.created_at,
	count(r.id) AS reviews_count, ROUND(avg(r.rating)::numeric, 1) AS average_rating`

const listingGroupBy = `GROUP BY l.id`

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	if err := row.Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Location, &l.Price, &l.Rooms,
		&l.PropertyType, &l.IsActive, &l.ViewsCount, &l.CreatedAt,
		&l.ReviewsCount, &l.AverageRating); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PGListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	err := r.db.QueryRow(ctx, `INSERT INTO listings (owner_id, title, description, location, price, rooms, property_type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, views_count, created_at`,
		listing.OwnerID, listing.Title, listing.Description, listing.Location,
		listing.Price, listing.Rooms, listing.PropertyType, listing.IsActive).
		Scan(&listing.ID, &listing.ViewsCount, &listing.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "listings_title_location_key") {
			return domain.NewValidationError("title", "a listing with this title and location already exists")
		}
		return err
	}
	return nil
}

func (r *PGListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	row := r.db.QueryRow(ctx, `SELECT `+listingColumns+`
		FROM listings l LEFT JOIN reviews r ON r.listing_id = l.id
		WHERE l.id=$1 `+listingGroupBy, id)
	l, err := scanListing(row)
	if err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

// buildSearchQuery composes the filtered select over active listings. Every
// set filter field becomes one AND condition with a positional argument; the
// keyword matches title or description case-insensitively as a substring.
func buildSearchQuery(filter ListingFilter) (string, []any) {
	var (
		conds = []string{"l.is_active = TRUE"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		conds = append(conds, fmt.Sprintf("(l.title ILIKE %s OR l.description ILIKE %s)", p, p))
	}
	if filter.MinPrice != nil {
		conds = append(conds, "l.price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "l.price <= "+arg(*filter.MaxPrice))
	}
	if filter.Location != "" {
		conds = append(conds, "l.location ILIKE "+arg("%"+filter.Location+"%"))
	}
	if filter.Rooms != nil {
		conds = append(conds, "l.rooms = "+arg(*filter.Rooms))
	}
	if filter.PropertyType != "" {
		conds = append(conds, "l.property_type = "+arg(string(filter.PropertyType)))
	}

	orderBy := "l.id"
	switch filter.Ordering {
	case "price_asc":
		orderBy = "l.price ASC, l.id"
	case "price_desc":
		orderBy = "l.price DESC, l.id"
	case "date":
		orderBy = "l.created_at DESC, l.id"
	}

	query := `SELECT ` + listingColumns + `
		FROM listings l LEFT JOIN reviews r ON r.listing_id = l.id
		WHERE ` + strings.Join(conds, " AND ") + `
		` + listingGroupBy + `
		ORDER BY ` + orderBy

	return query, args
}

func (r *PGListingRepository) Search(ctx context.Context, filter ListingFilter) ([]domain.Listing, error) {
	query, args := buildSearchQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

func (r *PGListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	cmd, err := r.db.Exec(ctx, `UPDATE listings SET title=$1, description=$2, location=$3, price=$4, rooms=$5, property_type=$6, is_active=$7
		WHERE id=$8`,
		listing.Title, listing.Description, listing.Location, listing.Price,
		listing.Rooms, listing.PropertyType, listing.IsActive, listing.ID)
	if err != nil {
		if isUniqueViolation(err, "listings_title_location_key") {
			return domain.NewValidationError("title", "a listing with this title and location already exists")
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGListingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecordView bumps the view counter atomically and appends the view fact in
// the same transaction, so N calls always land as exactly N increments and
// N history rows.
func (r *PGListingRepository) RecordView(ctx context.Context, listingID, userID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var views int64
	if err := tx.QueryRow(ctx, `UPDATE listings SET views_count = views_count + 1 WHERE id=$1 RETURNING views_count`, listingID).Scan(&views); err != nil {
		return notFound(err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO view_history (user_id, listing_id) VALUES ($1, $2)`, userID, listingID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

var _ ListingRepository = (*PGListingRepository)(nil)
