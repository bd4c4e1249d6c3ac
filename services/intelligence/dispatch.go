package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/spf13/cast"

	"skybook/models"
	"skybook/services/duffel"
)

// dispatch executes one tool call and builds the function response the model
// consumes. Structured results are also attached to out for the frontend.
func (s *DefaultAIService) dispatch(ctx context.Context, call genai.FunctionCall, out *models.AIResponse) genai.Part {
	switch call.Name {
	case "search_flights":
		return s.dispatchSearch(ctx, call, out)
	case "get_offer":
		return s.dispatchGetOffer(ctx, call)
	case "create_order":
		return s.dispatchCreateOrder(ctx, call, out)
	default:
		return genai.FunctionResponse{
			Name:     call.Name,
			Response: map[string]any{"success": false, "error": "unknown tool: " + call.Name},
		}
	}
}

func (s *DefaultAIService) dispatchSearch(ctx context.Context, call genai.FunctionCall, out *models.AIResponse) genai.Part {
	criteria := models.SearchCriteria{
		Origin:        cast.ToString(call.Args["origin"]),
		Destination:   cast.ToString(call.Args["destination"]),
		DepartureDate: cast.ToString(call.Args["departure_date"]),
		Passengers:    cast.ToInt(call.Args["passengers"]),
	}
	if criteria.Passengers < 1 {
		criteria.Passengers = 1
	}

	result, err := s.bookSvc.Search(ctx, criteria)
	if err != nil {
		return failureResponse(call.Name, err)
	}
	if result.NoMatches {
		return genai.FunctionResponse{
			Name:     call.Name,
			Response: map[string]any{"success": false, "error": "No flights found for your search criteria."},
		}
	}

	out.Search = result
	out.Actions = quoteActions(result)
	return successResponse(call.Name, result)
}

func (s *DefaultAIService) dispatchGetOffer(ctx context.Context, call genai.FunctionCall) genai.Part {
	snapshot, err := s.bookSvc.GetOffer(ctx, cast.ToString(call.Args["offer_id"]))
	if err != nil {
		return failureResponse(call.Name, err)
	}
	return successResponse(call.Name, snapshot)
}

func (s *DefaultAIService) dispatchCreateOrder(ctx context.Context, call genai.FunctionCall, out *models.AIResponse) genai.Part {
	input := models.OrderInput{
		OfferID:          cast.ToString(call.Args["offer_id"]),
		PaymentType:      cast.ToString(call.Args["payment_type"]),
		FallbackAmount:   cast.ToString(call.Args["total_amount"]),
		FallbackCurrency: cast.ToString(call.Args["total_currency"]),
	}
	if raw, ok := call.Args["passengers"]; ok {
		if b, err := json.Marshal(raw); err == nil {
			_ = json.Unmarshal(b, &input.Passengers)
		}
	}

	order, err := s.bookSvc.CreateOrder(ctx, input)
	if err != nil {
		return failureResponse(call.Name, err)
	}

	out.Booking = order
	return successResponse(call.Name, order)
}

func quoteActions(result *models.SearchResult) []models.AIAction {
	actions := make([]models.AIAction, 0, len(result.Quotes))
	for i, quote := range result.Quotes {
		actions = append(actions, models.AIAction{
			Label:   fmt.Sprintf("Book Flight %d: %s", i+1, quote.Airline),
			Type:    "select_offer",
			OfferID: quote.OfferID,
			Description: fmt.Sprintf("%s to %s at %s %s",
				result.Origin, result.Destination, quote.TotalAmount, quote.TotalCurrency),
		})
	}
	return actions
}

func successResponse(name string, payload any) genai.Part {
	return genai.FunctionResponse{
		Name:     name,
		Response: map[string]any{"success": true, "result": toMap(payload)},
	}
}

// failureResponse renders a fault for the model. A soft-expired offer is
// flagged so the model knows the booking may still proceed with the original
// offer price.
func failureResponse(name string, err error) genai.Part {
	response := map[string]any{"success": false}
	msg := err.Error()

	var fault *duffel.Fault
	if errors.As(err, &fault) {
		msg = fault.UserMessage()
		if fault.OfferExpired {
			response["expired"] = true
			msg += " You can still proceed with booking using the original offer price."
		}
	}

	response["error"] = msg
	return genai.FunctionResponse{Name: name, Response: response}
}

func toMap(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}
	return m
}
