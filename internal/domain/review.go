package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listing_id"`
	AuthorID  int64     `json:"author_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ViewHistory and SearchHistory are append-only facts, never updated.

type ViewHistory struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ListingID int64     `json:"listing_id"`
	ViewedAt  time.Time `json:"viewed_at"`
}

type SearchHistory struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Query      string    `json:"query"`
	SearchedAt time.Time `json:"searched_at"`
}
