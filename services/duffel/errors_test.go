package duffel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmptyList(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	assert.Nil(t, Normalize([]APIError{}))
}

func TestNormalizePastDateBecomesValidation(t *testing.T) {
	fault := Normalize([]APIError{{
		Code:    "invalid_date",
		Message: "departure_date must be after 2026-08-31",
	}})

	require.NotNil(t, fault)
	assert.Equal(t, FaultValidation, fault.Kind)
	assert.Contains(t, fault.Message, "tomorrow or later")
	assert.False(t, fault.OfferExpired)
}

func TestNormalizeNotFoundIsSoftExpiry(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"does not exist", "The resource you requested does not exist"},
		{"not found", "Offer Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fault := Normalize([]APIError{{Message: tt.message}})

			require.NotNil(t, fault)
			assert.Equal(t, FaultStaleOfferSoft, fault.Kind)
			assert.True(t, fault.OfferExpired)
			assert.Contains(t, fault.Message, "may have expired")
		})
	}
}

func TestNormalizeOfferNoLongerAvailableIsHard(t *testing.T) {
	fault := Normalize([]APIError{{
		Code:    "offer_no_longer_available",
		Message: "The offer is no longer available",
	}})

	require.NotNil(t, fault)
	assert.Equal(t, FaultStaleOfferHard, fault.Kind)
	assert.False(t, fault.OfferExpired)
}

func TestNormalizeUnknownPassesMessageThrough(t *testing.T) {
	fault := Normalize([]APIError{{Code: "rate_limited", Message: "Too many requests"}})

	require.NotNil(t, fault)
	assert.Equal(t, FaultUnknown, fault.Kind)
	assert.Equal(t, "Too many requests", fault.Message)
}

func TestNormalizeKeepsFullErrorList(t *testing.T) {
	errs := []APIError{
		{Message: "first problem"},
		{Message: "second problem"},
	}
	fault := Normalize(errs)

	require.NotNil(t, fault)
	assert.Equal(t, "first problem", fault.Message)
	assert.Len(t, fault.Errors, 2)
}

func TestNormalizeFallsBackToTitle(t *testing.T) {
	fault := Normalize([]APIError{{Title: "Bad Request"}})

	require.NotNil(t, fault)
	assert.Equal(t, "Bad Request", fault.Message)
}

func TestUserMessageCarriesFailureMarker(t *testing.T) {
	fault := Normalize([]APIError{{Message: "boom"}})

	require.NotNil(t, fault)
	assert.Equal(t, "❌ boom", fault.UserMessage())
}
