package models

// SearchCriteria describes a one-way, multi-passenger flight search.
type SearchCriteria struct {
	Origin        string `json:"origin" binding:"required"`
	Destination   string `json:"destination" binding:"required"`
	DepartureDate string `json:"departure_date" binding:"required"` // YYYY-MM-DD, must be after today
	Passengers    int    `json:"passengers"`
}

// Quote is the display-ready projection of a provider offer. It is created
// fresh on every search response and never mutated; a later refresh supersedes
// it rather than updating it.
type Quote struct {
	OfferID       string `json:"offer_id"`
	Airline       string `json:"airline"`
	TotalAmount   string `json:"total_amount"`
	TotalCurrency string `json:"total_currency"`
	Duration      string `json:"duration"`
	Stops         int    `json:"stops"`
	Departure     string `json:"departure"` // HH:MM clock time, or "N/A"
	Arrival       string `json:"arrival"`   // HH:MM clock time, or "N/A"
}

// SearchResult carries everything the presentation layer needs to render a
// search outcome without re-deriving any business decision.
type SearchResult struct {
	Quotes         []Quote  `json:"flights"`
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	PassengerIDs   []string `json:"passenger_ids"`
	OfferRequestID string   `json:"offer_request_id"` // correlation only, never resubmitted
	NoMatches      bool     `json:"no_matches,omitempty"`
}

// OfferSnapshot is the authoritative state of one offer at a point in time,
// re-fetched immediately before purchase. Not cached across workflow runs;
// provider offers have a short validity window.
type OfferSnapshot struct {
	OfferID       string   `json:"offer_id"`
	TotalAmount   string   `json:"total_amount"`
	TotalCurrency string   `json:"total_currency"`
	PassengerIDs  []string `json:"passenger_ids"` // ordered; binds positionally to passenger records
}

// PassengerRecord holds the traveller details required by the provider to
// finalize an order. ID always originates from the most recent OfferSnapshot;
// it is never synthesized here.
type PassengerRecord struct {
	ID          string `json:"id"`
	GivenName   string `json:"given_name" binding:"required"`
	FamilyName  string `json:"family_name" binding:"required"`
	Gender      string `json:"gender"` // "m" or "f"
	Title       string `json:"title"`  // mr, ms, mrs, miss, dr
	BornOn      string `json:"born_on"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"` // E.164, e.g. +14155552671
}

// OrderInput is the inbound payload for order creation. FallbackAmount and
// FallbackCurrency are only used when the pre-purchase refresh soft-fails.
type OrderInput struct {
	OfferID          string            `json:"offer_id" binding:"required"`
	Passengers       []PassengerRecord `json:"passengers" binding:"required"`
	PaymentType      string            `json:"payment_type"`
	FallbackAmount   string            `json:"total_amount,omitempty"`
	FallbackCurrency string            `json:"total_currency,omitempty"`
}

// OrderResult is the terminal artifact of the booking workflow.
type OrderResult struct {
	BookingReference string `json:"booking_reference"`
	OrderID          string `json:"order_id"`
}
