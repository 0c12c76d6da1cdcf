package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/rente/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error)
}

type PGReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	return &PGReviewRepository{db: db}
}

func (r *PGReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.db.QueryRow(ctx, `INSERT INTO reviews (listing_id, author_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		review.ListingID, review.AuthorID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt)
}

func (r *PGReviewRepository) ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `SELECT id, listing_id, author_id, rating, comment, created_at
		FROM reviews WHERE listing_id=$1 ORDER BY created_at DESC, id DESC`, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.ListingID, &rev.AuthorID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

var _ ReviewRepository = (*PGReviewRepository)(nil)
