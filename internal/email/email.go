package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/Domenick1991/rente/internal/kafka"
)

// Sender is the notification stub: real delivery is out of scope, so events
// are logged where a mail gateway call would go.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.logger.Info("booking notification",
		zap.String("type", event.Type),
		zap.Int64("booking_id", event.BookingID),
		zap.Int64("listing_id", event.ListingID),
		zap.Int64("tenant_id", event.TenantID),
		zap.String("status", event.Status),
	)
	return nil
}
