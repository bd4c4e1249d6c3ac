package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"skybook/models"
	"skybook/services/duffel"
)

const (
	endpointOrders     = "air/orders"
	defaultPaymentType = "balance"
)

// CreateOrder finalizes a purchase. It refreshes the offer first: a fresh
// snapshot always overrides caller-supplied fallback pricing, and its
// passenger identifiers are bound to the supplied records positionally. When
// the refresh soft-fails and no fallback pricing exists, the purchase stops
// before any order submission because it cannot be priced.
func (s *DefaultBookingService) CreateOrder(ctx context.Context, input models.OrderInput) (*models.OrderResult, error) {
	amount := input.FallbackAmount
	currency := input.FallbackCurrency
	passengers := make([]models.PassengerRecord, len(input.Passengers))
	copy(passengers, input.Passengers)

	snapshot, err := s.GetOffer(ctx, input.OfferID)
	switch {
	case err == nil:
		amount = snapshot.TotalAmount
		currency = snapshot.TotalCurrency
		if err := bindPassengerIDs(passengers, snapshot.PassengerIDs); err != nil {
			return nil, err
		}
	case isSoftExpiry(err):
		if amount == "" || currency == "" {
			return nil, &duffel.Fault{
				Kind:    duffel.FaultStaleOfferHard,
				Message: "This offer has expired. Please search for flights again to get a fresh offer.",
			}
		}
	default:
		return nil, err
	}

	paymentType := input.PaymentType
	if paymentType == "" {
		paymentType = defaultPaymentType
	}

	params := duffel.OrderParams{
		SelectedOffers: []string{input.OfferID},
		Payments: []duffel.PaymentParams{{
			Type:     paymentType,
			Currency: currency,
			Amount:   amount,
		}},
		Passengers: passengers,
	}

	data, fault := s.Gateway.Request(ctx, http.MethodPost, endpointOrders, params)
	if fault != nil {
		if fault.Kind == duffel.FaultStaleOfferHard {
			return nil, &duffel.Fault{
				Kind:   duffel.FaultStaleOfferHard,
				Errors: fault.Errors,
				Message: fmt.Sprintf(
					"This flight offer has expired or is no longer available. In Test Mode, please try booking a %q flight for guaranteed success.",
					s.ReferenceCarrierName),
			}
		}
		return nil, fault
	}

	var order duffel.Order
	if fault := duffel.Decode(endpointOrders, data, &order); fault != nil {
		return nil, fault
	}

	s.Logger.Info("order created",
		zap.String("booking_reference", order.BookingReference),
		zap.String("order_id", order.ID))
	return &models.OrderResult{
		BookingReference: order.BookingReference,
		OrderID:          order.ID,
	}, nil
}

// bindPassengerIDs pairs snapshot passenger identifiers with passenger records
// positionally: the first identifier binds to the first record. Identifiers
// are always provider-issued, never synthesized here.
func bindPassengerIDs(passengers []models.PassengerRecord, ids []string) error {
	if len(passengers) != len(ids) {
		return &duffel.Fault{
			Kind: duffel.FaultValidation,
			Message: fmt.Sprintf(
				"passenger count (%d) does not match the offer's passenger list (%d); please search again",
				len(passengers), len(ids)),
		}
	}
	for i := range passengers {
		passengers[i].ID = ids[i]
	}
	return nil
}

func isSoftExpiry(err error) bool {
	var fault *duffel.Fault
	return errors.As(err, &fault) && fault.OfferExpired
}
