package history

import (
	"context"

	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/repository"
)

type HistoryUseCase interface {
	ListViews(ctx context.Context, actor *domain.User) ([]domain.ViewHistory, error)
	ListSearches(ctx context.Context, actor *domain.User) ([]domain.SearchHistory, error)
}

// HistoryService exposes the requester's own append-only facts.
type HistoryService struct {
	history repository.HistoryRepository
}

func NewHistoryService(history repository.HistoryRepository) *HistoryService {
	return &HistoryService{history: history}
}

func (s *HistoryService) ListViews(ctx context.Context, actor *domain.User) ([]domain.ViewHistory, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.history.ListViews(ctx, actor.ID)
}

func (s *HistoryService) ListSearches(ctx context.Context, actor *domain.User) ([]domain.SearchHistory, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.history.ListSearches(ctx, actor.ID)
}

var _ HistoryUseCase = (*HistoryService)(nil)
