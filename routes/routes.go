package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"skybook/handlers"
)

// RegisterRoutes wires the REST tool surface and the chat endpoint.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ah *handlers.AIHandler) {
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.POST("/flights/search", bh.SearchFlights)
		api.GET("/offers/:offerID", bh.GetOffer)
		api.POST("/orders", bh.CreateOrder)
		api.POST("/ai/chat", ah.HandleChat)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
