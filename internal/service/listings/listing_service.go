package listings

import (
	"context"

	"go.uber.org/zap"

	"github.com/Domenick1991/rente/internal/authz"
	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/repository"
)

type ListingUseCase interface {
	Create(ctx context.Context, actor *domain.User, input ListingInput) (*domain.Listing, error)
	Search(ctx context.Context, actor *domain.User, filter repository.ListingFilter) ([]domain.Listing, error)
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Update(ctx context.Context, actor *domain.User, id int64, input ListingInput) (*domain.Listing, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
	RecordView(ctx context.Context, actor *domain.User, id int64) error
}

// Cache holds the default search page. Any listing write drops it.
type Cache interface {
	GetListings(ctx context.Context) ([]domain.Listing, error)
	SetListings(ctx context.Context, listings []domain.Listing) error
	InvalidateListings(ctx context.Context) error
}

type ListingInput struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Location     string              `json:"location"`
	Price        float64             `json:"price"`
	Rooms        int                 `json:"rooms"`
	PropertyType domain.PropertyType `json:"property_type"`
	IsActive     *bool               `json:"is_active"`
}

type ListingService struct {
	listings repository.ListingRepository
	history  repository.HistoryRepository
	cache    Cache
	logger   *zap.Logger
}

func NewListingService(listings repository.ListingRepository, history repository.HistoryRepository, cache Cache, logger *zap.Logger) *ListingService {
	return &ListingService{listings: listings, history: history, cache: cache, logger: logger}
}

func validate(input ListingInput) error {
	fields := map[string]string{}
	if input.Title == "" {
		fields["title"] = "title is required"
	}
	if input.Location == "" {
		fields["location"] = "location is required"
	}
	if input.Price < 0 {
		fields["price"] = "price must not be negative"
	}
	if input.Rooms <= 0 {
		fields["rooms"] = "rooms must be a positive integer"
	}
	if !input.PropertyType.Valid() {
		fields["property_type"] = "unknown property type"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (s *ListingService) Create(ctx context.Context, actor *domain.User, input ListingInput) (*domain.Listing, error) {
	if err := authz.CanWriteListing(actor, true); err != nil {
		return nil, err
	}
	if err := validate(input); err != nil {
		return nil, err
	}

	listing := &domain.Listing{
		OwnerID:      actor.ID,
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		Price:        input.Price,
		Rooms:        input.Rooms,
		PropertyType: input.PropertyType,
		IsActive:     true,
	}
	if input.IsActive != nil {
		listing.IsActive = *input.IsActive
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	s.dropCache(ctx)
	return listing, nil
}

// Search runs the composable filter over active listings. A keyword search
// by an authenticated user is recorded in their search history even when it
// matches nothing; a failed history write is logged and does not block the
// results. The unfiltered page is served through the cache.
func (s *ListingService) Search(ctx context.Context, actor *domain.User, filter repository.ListingFilter) ([]domain.Listing, error) {
	if filter.Query != "" && actor != nil {
		if err := s.history.AddSearch(ctx, actor.ID, filter.Query); err != nil {
			s.logger.Warn("record search history", zap.Error(err))
		}
	}

	if filter.IsZero() && s.cache != nil {
		if cached, err := s.cache.GetListings(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	listings, err := s.listings.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.IsZero() && s.cache != nil {
		if err := s.cache.SetListings(ctx, listings); err != nil {
			s.logger.Warn("cache listings", zap.Error(err))
		}
	}
	return listings, nil
}

func (s *ListingService) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	return s.listings.GetByID(ctx, id)
}

func (s *ListingService) Update(ctx context.Context, actor *domain.User, id int64, input ListingInput) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanModifyListing(actor, true, listing); err != nil {
		return nil, err
	}
	if err := validate(input); err != nil {
		return nil, err
	}

	listing.Title = input.Title
	listing.Description = input.Description
	listing.Location = input.Location
	listing.Price = input.Price
	listing.Rooms = input.Rooms
	listing.PropertyType = input.PropertyType
	if input.IsActive != nil {
		listing.IsActive = *input.IsActive
	}

	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.dropCache(ctx)
	return listing, nil
}

func (s *ListingService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanModifyListing(actor, true, listing); err != nil {
		return err
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}
	s.dropCache(ctx)
	return nil
}

// RecordView is not idempotent: every call bumps the counter and appends a
// history fact.
func (s *ListingService) RecordView(ctx context.Context, actor *domain.User, id int64) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if err := s.listings.RecordView(ctx, id, actor.ID); err != nil {
		return err
	}
	s.dropCache(ctx)
	return nil
}

func (s *ListingService) dropCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListings(ctx); err != nil {
		s.logger.Warn("invalidate listings cache", zap.Error(err))
	}
}

var _ ListingUseCase = (*ListingService)(nil)
