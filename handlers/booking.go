package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skybook/models"
	"skybook/services/booking"
	"skybook/services/duffel"
)

// BookingHandler exposes the three booking workflow operations over REST.
type BookingHandler struct {
	Service booking.Service
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// SearchFlights handles POST /api/flights/search.
func (h *BookingHandler) SearchFlights(c *gin.Context) {
	var criteria models.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Service.Search(c.Request.Context(), criteria)
	if err != nil {
		respondFault(c, err)
		return
	}
	if result.NoMatches {
		// Zero offers is a neutral outcome, not an error banner.
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "No flights found for your search criteria.",
			"search":  result,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "search": result})
}

// GetOffer handles GET /api/offers/:offerID, the pre-purchase refresh.
func (h *BookingHandler) GetOffer(c *gin.Context) {
	snapshot, err := h.Service.GetOffer(c.Request.Context(), c.Param("offerID"))
	if err != nil {
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "offer": snapshot})
}

// CreateOrder handles POST /api/orders.
func (h *BookingHandler) CreateOrder(c *gin.Context) {
	var input models.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "details": err.Error()})
		return
	}

	order, err := h.Service.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondFault(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"booking_reference": order.BookingReference,
		"order_id":          order.OrderID,
	})
}

// respondFault maps the fault taxonomy onto HTTP statuses while keeping the
// user-facing message and its failure marker intact.
func respondFault(c *gin.Context, err error) {
	var fault *duffel.Fault
	if !errors.As(err, &fault) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "❌ " + err.Error()})
		return
	}

	status := http.StatusBadGateway
	switch fault.Kind {
	case duffel.FaultValidation:
		status = http.StatusBadRequest
	case duffel.FaultStaleOfferSoft, duffel.FaultStaleOfferHard:
		status = http.StatusConflict
	}

	body := gin.H{"success": false, "error": fault.UserMessage(), "kind": fault.Kind}
	if fault.OfferExpired {
		body["expired"] = true
	}
	c.JSON(status, body)
}
