package booking

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap"

	"skybook/models"
	"skybook/services/duffel"
)

const (
	maxQuotes    = 5
	notAvailable = "N/A"

	endpointOfferRequests = "air/offer_requests"
)

// Search submits one multi-passenger offer request and projects the ranked
// results into display-ready quotes. Zero offers is a distinct "no matches"
// outcome, not an error.
func (s *DefaultBookingService) Search(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResult, error) {
	count := criteria.Passengers
	if count < 1 {
		count = 1
	}
	passengers := make([]duffel.PassengerTypeParams, count)
	for i := range passengers {
		passengers[i] = duffel.PassengerTypeParams{Type: "adult"}
	}

	params := duffel.OfferRequestParams{
		Slices: []duffel.SliceParams{{
			Origin:        criteria.Origin,
			Destination:   criteria.Destination,
			DepartureDate: criteria.DepartureDate,
		}},
		Passengers: passengers,
		CabinClass: "economy",
	}

	data, fault := s.Gateway.Request(ctx, http.MethodPost, endpointOfferRequests, params)
	if fault != nil {
		s.Logger.Warn("flight search failed",
			zap.String("origin", criteria.Origin),
			zap.String("destination", criteria.Destination),
			zap.String("kind", string(fault.Kind)))
		return nil, fault
	}

	var request duffel.OfferRequest
	if fault := duffel.Decode(endpointOfferRequests, data, &request); fault != nil {
		return nil, fault
	}

	result := &models.SearchResult{
		Origin:         criteria.Origin,
		Destination:    criteria.Destination,
		PassengerIDs:   passengerIDs(request.Passengers),
		OfferRequestID: request.ID,
	}

	if len(request.Offers) == 0 {
		result.NoMatches = true
		return result, nil
	}

	offers := s.rankOffers(request.Offers)
	if len(offers) > maxQuotes {
		offers = offers[:maxQuotes]
	}
	for _, offer := range offers {
		result.Quotes = append(result.Quotes, projectQuote(offer))
	}

	s.Logger.Info("flight search completed",
		zap.String("offer_request_id", request.ID),
		zap.Int("quotes", len(result.Quotes)))
	return result, nil
}

// rankOffers moves reference-carrier offers ahead of everything else while
// preserving the relative order of the rest.
func (s *DefaultBookingService) rankOffers(offers []duffel.Offer) []duffel.Offer {
	ranked := make([]duffel.Offer, len(offers))
	copy(ranked, offers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return s.offerRank(ranked[i]) < s.offerRank(ranked[j])
	})
	return ranked
}

func (s *DefaultBookingService) offerRank(offer duffel.Offer) int {
	if offer.Owner.Name == s.ReferenceCarrierName || offer.Owner.IATACode == s.ReferenceCarrierCode {
		return 0
	}
	return 1
}

func projectQuote(offer duffel.Offer) models.Quote {
	quote := models.Quote{
		OfferID:       offer.ID,
		Airline:       offer.Owner.Name,
		TotalAmount:   offer.TotalAmount,
		TotalCurrency: offer.TotalCurrency,
		Departure:     notAvailable,
		Arrival:       notAvailable,
	}

	if len(offer.Slices) == 0 {
		return quote
	}
	first := offer.Slices[0]
	quote.Duration = first.Duration
	if n := len(first.Segments); n > 0 {
		quote.Stops = n - 1
		quote.Departure = clockTime(first.Segments[0].DepartingAt)
		quote.Arrival = clockTime(first.Segments[n-1].ArrivingAt)
	}
	return quote
}

// clockTime extracts HH:MM from a provider timestamp. Provider data is
// occasionally incomplete for codeshare segments, so a missing or malformed
// value maps to the "N/A" sentinel instead of failing the whole search.
func clockTime(ts string) string {
	_, clock, found := strings.Cut(ts, "T")
	if !found || len(clock) < 5 {
		return notAvailable
	}
	return clock[:5]
}

func passengerIDs(passengers []duffel.Passenger) []string {
	ids := make([]string, 0, len(passengers))
	for _, p := range passengers {
		ids = append(ids, p.ID)
	}
	return ids
}
