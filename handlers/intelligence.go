package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skybook/models"
	ai "skybook/services/intelligence"
	"skybook/utils"
)

// AIHandler exposes the conversational booking agent.
type AIHandler struct {
	Service ai.AIService
}

func NewAIHandler(svc ai.AIService) *AIHandler {
	return &AIHandler{Service: svc}
}

// HandleChat handles POST /api/ai/chat: one conversational turn.
func (h *AIHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	resp, err := h.Service.ProcessUserInput(c.Request.Context(), req)
	if err != nil {
		logger.Error("Chat turn failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Chat turn failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}
