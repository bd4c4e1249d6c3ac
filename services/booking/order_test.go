package booking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybook/models"
	"skybook/services/duffel"
)

type capturedOrder struct {
	Data struct {
		SelectedOffers []string               `json:"selected_offers"`
		Payments       []duffel.PaymentParams   `json:"payments"`
		Passengers     []models.PassengerRecord `json:"passengers"`
	} `json:"data"`
}

func orderInput() models.OrderInput {
	return models.OrderInput{
		OfferID: "off_123",
		Passengers: []models.PassengerRecord{{
			Title:       "mr",
			GivenName:   "Ada",
			FamilyName:  "Lovelace",
			Gender:      "f",
			BornOn:      "1990-12-10",
			Email:       "ada@example.com",
			PhoneNumber: "+14155550123",
		}},
	}
}

func TestCreateOrderFreshPriceOverridesFallback(t *testing.T) {
	var order capturedOrder
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/air/offers/off_123":
			w.Write([]byte(`{"data":{"id":"off_123","total_amount":"450.00","total_currency":"USD","passengers":[{"id":"pas_fresh"}]}}`))
		case "/air/orders":
			b, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(b, &order))
			w.Write([]byte(`{"data":{"id":"ord_1","booking_reference":"ABC123"}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	input := orderInput()
	input.FallbackAmount = "400.00"
	input.FallbackCurrency = "GBP"

	result, err := svc.CreateOrder(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "ABC123", result.BookingReference)
	assert.Equal(t, "ord_1", result.OrderID)

	require.Len(t, order.Data.Payments, 1)
	assert.Equal(t, "450.00", order.Data.Payments[0].Amount)
	assert.Equal(t, "USD", order.Data.Payments[0].Currency)
	assert.Equal(t, []string{"off_123"}, order.Data.SelectedOffers)
	require.Len(t, order.Data.Passengers, 1)
	assert.Equal(t, "pas_fresh", order.Data.Passengers[0].ID)
}

func TestCreateOrderDefaultsPaymentTypeToBalance(t *testing.T) {
	var order capturedOrder
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/air/offers/off_123":
			w.Write([]byte(`{"data":{"id":"off_123","total_amount":"450.00","total_currency":"USD","passengers":[{"id":"pas_1"}]}}`))
		case "/air/orders":
			b, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(b, &order))
			w.Write([]byte(`{"data":{"id":"ord_1","booking_reference":"ABC123"}}`))
		}
	}))
	defer srv.Close()

	_, err := svc.CreateOrder(context.Background(), orderInput())

	require.NoError(t, err)
	require.Len(t, order.Data.Payments, 1)
	assert.Equal(t, "balance", order.Data.Payments[0].Type)
}

func TestCreateOrderSoftExpiryUsesFallbackPricing(t *testing.T) {
	var order capturedOrder
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/air/offers/off_123":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":[{"message":"The resource you requested does not exist"}]}`))
		case "/air/orders":
			b, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(b, &order))
			w.Write([]byte(`{"data":{"id":"ord_1","booking_reference":"ABC123"}}`))
		}
	}))
	defer srv.Close()

	input := orderInput()
	input.FallbackAmount = "400.00"
	input.FallbackCurrency = "GBP"

	result, err := svc.CreateOrder(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "ABC123", result.BookingReference)
	require.Len(t, order.Data.Payments, 1)
	assert.Equal(t, "400.00", order.Data.Payments[0].Amount)
	assert.Equal(t, "GBP", order.Data.Payments[0].Currency)
}

func TestCreateOrderSoftExpiryWithoutFallbackStopsBeforeSubmit(t *testing.T) {
	ordersHit := false
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/air/offers/off_123":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":[{"message":"The resource you requested does not exist"}]}`))
		case "/air/orders":
			ordersHit = true
		}
	}))
	defer srv.Close()

	_, err := svc.CreateOrder(context.Background(), orderInput())

	require.Error(t, err)
	var fault *duffel.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, duffel.FaultStaleOfferHard, fault.Kind)
	assert.Contains(t, fault.Message, "search for flights again")
	assert.False(t, ordersHit)
}

func TestCreateOrderOfferNoLongerAvailableSuggestsReferenceCarrier(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/air/offers/off_123":
			w.Write([]byte(`{"data":{"id":"off_123","total_amount":"450.00","total_currency":"USD","passengers":[{"id":"pas_1"}]}}`))
		case "/air/orders":
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"errors":[{"code":"offer_no_longer_available","message":"The offer is no longer available"}]}`))
		}
	}))
	defer srv.Close()

	_, err := svc.CreateOrder(context.Background(), orderInput())

	require.Error(t, err)
	var fault *duffel.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, duffel.FaultStaleOfferHard, fault.Kind)
	assert.Contains(t, fault.Message, `"Duffel Airways"`)
}

func TestCreateOrderPassengerCountMismatchIsValidation(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":"off_123","total_amount":"450.00","total_currency":"USD","passengers":[{"id":"pas_1"},{"id":"pas_2"}]}}`))
	}))
	defer srv.Close()

	_, err := svc.CreateOrder(context.Background(), orderInput())

	require.Error(t, err)
	var fault *duffel.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, duffel.FaultValidation, fault.Kind)
	assert.Contains(t, fault.Message, "please search again")
}

func TestCreateOrderDoesNotMutateInputPassengers(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/air/offers/off_123":
			w.Write([]byte(`{"data":{"id":"off_123","total_amount":"450.00","total_currency":"USD","passengers":[{"id":"pas_1"}]}}`))
		case "/air/orders":
			w.Write([]byte(`{"data":{"id":"ord_1","booking_reference":"ABC123"}}`))
		}
	}))
	defer srv.Close()

	input := orderInput()
	_, err := svc.CreateOrder(context.Background(), input)

	require.NoError(t, err)
	assert.Empty(t, input.Passengers[0].ID)
}
