package booking

import (
	"context"

	"go.uber.org/zap"

	"skybook/models"
	"skybook/services/duffel"
)

// Service is the inbound tool contract consumed by the conversation layer and
// the REST surface: one operation per workflow stage.
type Service interface {
	Search(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResult, error)
	GetOffer(ctx context.Context, offerID string) (*models.OfferSnapshot, error)
	CreateOrder(ctx context.Context, input models.OrderInput) (*models.OrderResult, error)
}

// DefaultBookingService runs the three-stage booking workflow against the
// provider gateway. Every call is a pure function of its arguments and the
// provider's current response; no state is shared across turns.
type DefaultBookingService struct {
	Gateway *duffel.Client
	Logger  *zap.Logger

	// Reference carrier, ranked first in search results so sandbox bookings
	// stay reproducible.
	ReferenceCarrierName string
	ReferenceCarrierCode string
}
