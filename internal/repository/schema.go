package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied at startup. The unique index on (title, location) and
// the rating check enforce at the storage layer what the services also
// validate, so concurrent writers cannot slip past the application checks.
// Every foreign key cascades: deleting a user removes their listings,
// bookings, reviews and history; deleting a listing removes its bookings
// and reviews.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'tenant',
	is_staff      BOOLEAN NOT NULL DEFAULT FALSE,
	is_superuser  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS listings (
	id            BIGSERIAL PRIMARY KEY,
	owner_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL,
	location      TEXT NOT NULL,
	price         NUMERIC(10,2) NOT NULL CHECK (price >= 0),
	rooms         INTEGER NOT NULL CHECK (rooms > 0),
	property_type TEXT NOT NULL,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	views_count   BIGINT NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (title, location)
);

CREATE TABLE IF NOT EXISTS bookings (
	id         BIGSERIAL PRIMARY KEY,
	listing_id BIGINT NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
	tenant_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	start_date DATE NOT NULL,
	end_date   DATE NOT NULL,
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reviews (
	id         BIGSERIAL PRIMARY KEY,
	listing_id BIGINT NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
	author_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS view_history (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	listing_id BIGINT NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
	viewed_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS search_history (
	id          BIGSERIAL PRIMARY KEY,
	user_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	query       TEXT NOT NULL,
	searched_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
