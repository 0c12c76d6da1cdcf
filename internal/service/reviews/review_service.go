package reviews

import (
	"context"

	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/repository"
)

type ReviewUseCase interface {
	Create(ctx context.Context, actor *domain.User, listingID int64, input CreateReviewInput) (*domain.Review, error)
	ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error)
}

type CreateReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewService struct {
	reviews  repository.ReviewRepository
	listings repository.ListingRepository
}

func NewReviewService(reviews repository.ReviewRepository, listings repository.ListingRepository) *ReviewService {
	return &ReviewService{reviews: reviews, listings: listings}
}

// Create stores a review under the listing from the route. The listing and
// author always come from the server side; payload values for either are
// ignored.
func (s *ReviewService) Create(ctx context.Context, actor *domain.User, listingID int64, input CreateReviewInput) (*domain.Review, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domain.NewValidationError("rating", "rating must be between 1 and 5")
	}

	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ListingID: listingID,
		AuthorID:  actor.ID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	return s.reviews.ListByListing(ctx, listingID)
}

var _ ReviewUseCase = (*ReviewService)(nil)
