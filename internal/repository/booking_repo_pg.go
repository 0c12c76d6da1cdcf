package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/rente/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `b.id, b.listing_id, b.tenant_id, b.start_date, b.end_date, b.status, b.created_at, l.owner_id`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (listing_id, tenant_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		booking.ListingID, booking.TenantID, booking.StartDate, booking.EndDate, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt)
}

// GetByID joins the listing so the caller gets the owner needed for access
// decisions in one round trip.
func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+`
		FROM bookings b JOIN listings l ON l.id = b.listing_id
		WHERE b.id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.ListingID, &b.TenantID, &b.StartDate, &b.EndDate, &b.Status, &b.CreatedAt, &b.ListingOwnerID); err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings b SET status=$1
		FROM listings l
		WHERE b.id=$2 AND l.id = b.listing_id
		RETURNING `+bookingColumns, status, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.ListingID, &b.TenantID, &b.StartDate, &b.EndDate, &b.Status, &b.CreatedAt, &b.ListingOwnerID); err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// ListForUser returns the union scope: bookings the user made as a tenant
// plus bookings on listings the user owns.
func (r *PGBookingRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`
		FROM bookings b JOIN listings l ON l.id = b.listing_id
		WHERE b.tenant_id=$1 OR l.owner_id=$1
		ORDER BY b.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.ListingID, &b.TenantID, &b.StartDate, &b.EndDate, &b.Status, &b.CreatedAt, &b.ListingOwnerID); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
