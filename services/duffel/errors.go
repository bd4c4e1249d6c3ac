package duffel

import (
	"fmt"
	"strings"
)

// FaultKind classifies a provider failure for the calling stage.
type FaultKind string

const (
	FaultTransport      FaultKind = "transport_failure"
	FaultValidation     FaultKind = "validation"
	FaultStaleOfferSoft FaultKind = "stale_offer_soft"
	FaultStaleOfferHard FaultKind = "stale_offer_hard"
	FaultUnknown        FaultKind = "unknown_provider_error"
)

// APIError is one entry of a provider error payload.
type APIError struct {
	Code    string `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// Fault is the single error shape every stage consumes. The gateway never
// raises; each failure becomes one of these. Message holds the representative
// error, Errors retains the provider's full list for diagnostics.
type Fault struct {
	Kind         FaultKind
	Message      string
	OfferExpired bool
	Errors       []APIError
}

func (f *Fault) Error() string { return f.Message }

// UserMessage returns the display form carrying the consistent failure marker
// that distinguishes failures from success payloads.
func (f *Fault) UserMessage() string { return "❌ " + f.Message }

const (
	futureDateMessage = "Sorry, the departure date must be in the future. Please choose a date starting from tomorrow or later."

	codeOfferNoLongerAvailable = "offer_no_longer_available"
)

// Normalize folds a provider error list into a single Fault, or nil when the
// list carries no error. The first entry is the representative one. Two message
// shapes are reclassified because they change user guidance: a date-in-past
// validation and the not-found case that usually means the offer expired.
func Normalize(errs []APIError) *Fault {
	if len(errs) == 0 {
		return nil
	}

	first := errs[0]
	msg := first.Message
	if msg == "" {
		if first.Title != "" {
			msg = first.Title
		} else {
			msg = fmt.Sprintf("%+v", first)
		}
	}

	fault := &Fault{Kind: FaultUnknown, Message: msg, Errors: errs}
	lower := strings.ToLower(msg)
	switch {
	case first.Code == codeOfferNoLongerAvailable:
		fault.Kind = FaultStaleOfferHard
	case strings.Contains(msg, "must be after"):
		fault.Kind = FaultValidation
		fault.Message = futureDateMessage
	case strings.Contains(lower, "does not exist") || strings.Contains(lower, "not found"):
		fault.Kind = FaultStaleOfferSoft
		fault.OfferExpired = true
		fault.Message = "Offer may have expired. Error: " + msg
	}

	return fault
}

// TransportFault wraps a network, timeout or marshaling failure. These are
// never retried at this layer.
func TransportFault(err error) *Fault {
	return &Fault{Kind: FaultTransport, Message: err.Error()}
}

// UnrecognizedShape is the named fallback for a successful response whose body
// does not match the endpoint schema.
func UnrecognizedShape(endpoint string, err error) *Fault {
	return &Fault{
		Kind:    FaultUnknown,
		Message: fmt.Sprintf("unrecognized response shape from %s: %v", endpoint, err),
	}
}
