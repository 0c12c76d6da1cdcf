package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/rente/internal/domain"
)

func TestBuildSearchQueryKeyword(t *testing.T) {
	query, args := buildSearchQuery(ListingFilter{Query: "loft"})

	assert.Contains(t, query, "l.is_active = TRUE")
	assert.Contains(t, query, "(l.title ILIKE $1 OR l.description ILIKE $1)")
	require.Len(t, args, 1)
	assert.Equal(t, "%loft%", args[0])
}

func TestBuildSearchQueryCombinesFilters(t *testing.T) {
	minPrice, maxPrice := 500.0, 2000.0
	rooms := 2
	query, args := buildSearchQuery(ListingFilter{
		Query:        "loft",
		MinPrice:     &minPrice,
		MaxPrice:     &maxPrice,
		Location:     "Paris",
		Rooms:        &rooms,
		PropertyType: domain.PropertyLoft,
	})

	assert.Contains(t, query, "(l.title ILIKE $1 OR l.description ILIKE $1)")
	assert.Contains(t, query, "AND l.price >= $2")
	assert.Contains(t, query, "AND l.price <= $3")
	assert.Contains(t, query, "AND l.location ILIKE $4")
	assert.Contains(t, query, "AND l.rooms = $5")
	assert.Contains(t, query, "AND l.property_type = $6")
	assert.Equal(t, []any{"%loft%", 500.0, 2000.0, "%Paris%", 2, "loft"}, args)
}

func TestBuildSearchQueryOrdering(t *testing.T) {
	cases := []struct {
		ordering string
		want     string
	}{
		{"price_asc", "ORDER BY l.price ASC, l.id"},
		{"price_desc", "ORDER BY l.price DESC, l.id"},
		{"date", "ORDER BY l.created_at DESC, l.id"},
		{"", "ORDER BY l.id"},
		{"bogus", "ORDER BY l.id"},
	}

	for _, tc := range cases {
		query, args := buildSearchQuery(ListingFilter{Ordering: tc.ordering})
		assert.Contains(t, query, tc.want, "ordering %q", tc.ordering)
		assert.Empty(t, args)
	}
}

func TestBuildSearchQueryAggregates(t *testing.T) {
	query, _ := buildSearchQuery(ListingFilter{})

	assert.Contains(t, query, "count(r.id) AS reviews_count")
	assert.Contains(t, query, "ROUND(avg(r.rating)::numeric, 1) AS average_rating")
	assert.Contains(t, query, "GROUP BY l.id")
}
