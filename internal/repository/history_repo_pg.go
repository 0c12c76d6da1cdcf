package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/rente/internal/domain"
)

type HistoryRepository interface {
	AddSearch(ctx context.Context, userID int64, query string) error
	ListViews(ctx context.Context, userID int64) ([]domain.ViewHistory, error)
	ListSearches(ctx context.Context, userID int64) ([]domain.SearchHistory, error)
}

type PGHistoryRepository struct {
	db *pgxpool.Pool
}

func NewHistoryRepository(db *pgxpool.Pool) HistoryRepository {
	return &PGHistoryRepository{db: db}
}

func (r *PGHistoryRepository) AddSearch(ctx context.Context, userID int64, query string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO search_history (user_id, query) VALUES ($1, $2)`, userID, query)
	return err
}

func (r *PGHistoryRepository) ListViews(ctx context.Context, userID int64) ([]domain.ViewHistory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, listing_id, viewed_at
		FROM view_history WHERE user_id=$1 ORDER BY viewed_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []domain.ViewHistory
	for rows.Next() {
		var v domain.ViewHistory
		if err := rows.Scan(&v.ID, &v.UserID, &v.ListingID, &v.ViewedAt); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *PGHistoryRepository) ListSearches(ctx context.Context, userID int64) ([]domain.SearchHistory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, query, searched_at
		FROM search_history WHERE user_id=$1 ORDER BY searched_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []domain.SearchHistory
	for rows.Next() {
		var s domain.SearchHistory
		if err := rows.Scan(&s.ID, &s.UserID, &s.Query, &s.SearchedAt); err != nil {
			return nil, err
		}
		searches = append(searches, s)
	}
	return searches, rows.Err()
}

var _ HistoryRepository = (*PGHistoryRepository)(nil)
