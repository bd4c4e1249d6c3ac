package booking

import (
	"context"
	"net/http"

	"skybook/models"
	"skybook/services/duffel"
)

const endpointOffers = "air/offers"

// GetOffer re-fetches one offer to capture its current price, currency and the
// authoritative passenger identifier list. It is always called immediately
// before purchase because both can change between search and purchase. A
// soft-expiry fault (offer gone but purchase may still be attempted with
// fallback pricing) is distinguishable from a hard failure via errors.As.
func (s *DefaultBookingService) GetOffer(ctx context.Context, offerID string) (*models.OfferSnapshot, error) {
	data, fault := s.Gateway.Request(ctx, http.MethodGet, endpointOffers+"/"+offerID, nil)
	if fault != nil {
		return nil, fault
	}

	var offer duffel.Offer
	if fault := duffel.Decode(endpointOffers, data, &offer); fault != nil {
		return nil, fault
	}
	if offer.ID == "" {
		return nil, &duffel.Fault{
			Kind:         duffel.FaultStaleOfferSoft,
			OfferExpired: true,
			Message:      "No offer data returned",
		}
	}

	return &models.OfferSnapshot{
		OfferID:       offer.ID,
		TotalAmount:   offer.TotalAmount,
		TotalCurrency: offer.TotalCurrency,
		PassengerIDs:  passengerIDs(offer.Passengers),
	}, nil
}
