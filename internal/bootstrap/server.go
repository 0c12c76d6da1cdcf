package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Domenick1991/rente/api"
	"github.com/Domenick1991/rente/config"
	"github.com/Domenick1991/rente/internal/service/bookings"
	"github.com/Domenick1991/rente/internal/service/history"
	"github.com/Domenick1991/rente/internal/service/listings"
	"github.com/Domenick1991/rente/internal/service/reviews"
	"github.com/Domenick1991/rente/internal/service/users"
	"github.com/Domenick1991/rente/internal/token"
)

// Services bundles everything the HTTP surface needs.
type Services struct {
	Users    users.UserUseCase
	Listings listings.ListingUseCase
	Bookings bookings.BookingUseCase
	Reviews  reviews.ReviewUseCase
	History  history.HistoryUseCase
	Tokens   *token.Manager
}

// NewRouter mounts every handler under /api. Identity resolution runs for
// every request; the individual routes decide whether anonymous access is
// allowed.
func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.Authenticate(svc.Tokens))

	group := router.Group("/api")
	api.NewAuthHandler(svc.Users, cfg.Auth.SecureCookies).Register(group)
	api.NewListingHandler(svc.Listings).Register(group)
	api.NewBookingHandler(svc.Bookings).Register(group)
	api.NewReviewHandler(svc.Reviews).Register(group)
	api.NewHistoryHandler(svc.History).Register(group)

	return router
}

// Run serves the API and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services, logger *zap.Logger) error {
	server := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, svc),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("address", cfg.HTTP.Address))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
