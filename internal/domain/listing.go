package domain

import "time"

type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyStudio     PropertyType = "studio"
	PropertyPenthouse  PropertyType = "penthouse"
	PropertyDuplex     PropertyType = "duplex"
	PropertyLoft       PropertyType = "loft"
	PropertyRoom       PropertyType = "room"
	PropertyMaisonette PropertyType = "maisonette"
	PropertyBungalow   PropertyType = "bungalow"
	PropertyTownhouse  PropertyType = "townhouse"
	PropertyFarmhouse  PropertyType = "farmhouse"
	PropertyOther      PropertyType = "other"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertyApartment, PropertyHouse, PropertyStudio, PropertyPenthouse,
		PropertyDuplex, PropertyLoft, PropertyRoom, PropertyMaisonette,
		PropertyBungalow, PropertyTownhouse, PropertyFarmhouse, PropertyOther:
		return true
	}
	return false
}

type Listing struct {
	ID           int64        `json:"id"`
	OwnerID      int64        `json:"owner_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Location     string       `json:"location"`
	Price        float64      `json:"price"`
	Rooms        int          `json:"rooms"`
	PropertyType PropertyType `json:"property_type"`
	IsActive     bool         `json:"is_active"`
	ViewsCount   int64        `json:"views_count"`
	CreatedAt    time.Time    `json:"created_at"`

	// Aggregates over the listing's reviews. AverageRating is nil when the
	// listing has no reviews yet.
	ReviewsCount  int64    `json:"reviews_count"`
	AverageRating *float64 `json:"average_rating"`
}
