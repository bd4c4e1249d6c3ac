package duffel

import (
	"encoding/json"

	"skybook/models"
)

// Wire schemas for the three endpoints this service uses. Only this package
// knows the provider's payload shapes; callers work with the decoded structs.

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Errors []APIError `json:"errors"`
}

// Carrier identifies an airline in a provider offer.
type Carrier struct {
	Name     string `json:"name"`
	IATACode string `json:"iata_code"`
}

type Segment struct {
	DepartingAt string `json:"departing_at"`
	ArrivingAt  string `json:"arriving_at"`
}

type Slice struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Passenger struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

// Offer is a priced, time-bounded itinerary proposal.
type Offer struct {
	ID            string      `json:"id"`
	Owner         Carrier     `json:"owner"`
	TotalAmount   string      `json:"total_amount"`
	TotalCurrency string      `json:"total_currency"`
	Slices        []Slice     `json:"slices"`
	Passengers    []Passenger `json:"passengers"`
}

// OfferRequest is the response of the offer-request endpoint: the assigned
// passenger identifiers plus the offers found for the criteria.
type OfferRequest struct {
	ID         string      `json:"id"`
	Passengers []Passenger `json:"passengers"`
	Offers     []Offer     `json:"offers"`
}

// Order is the response of the order-creation endpoint.
type Order struct {
	ID               string `json:"id"`
	BookingReference string `json:"booking_reference"`
}

// Request payloads.

type SliceParams struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

type PassengerTypeParams struct {
	Type string `json:"type"`
}

type OfferRequestParams struct {
	Slices     []SliceParams         `json:"slices"`
	Passengers []PassengerTypeParams `json:"passengers"`
	CabinClass string                `json:"cabin_class"`
}

type PaymentParams struct {
	Type     string `json:"type"`
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

type OrderParams struct {
	SelectedOffers []string                 `json:"selected_offers"`
	Payments       []PaymentParams          `json:"payments"`
	Passengers     []models.PassengerRecord `json:"passengers"`
}

// Decode unmarshals a successful response body into the endpoint's schema. A
// body that does not match routes through the unrecognized-shape fallback
// rather than silent field access.
func Decode(endpoint string, data json.RawMessage, v any) *Fault {
	if err := json.Unmarshal(data, v); err != nil {
		return UnrecognizedShape(endpoint, err)
	}
	return nil
}
