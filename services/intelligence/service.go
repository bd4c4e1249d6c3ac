package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"skybook/models"
	"skybook/services/booking"
)

// maxToolRounds bounds the function-call loop within one turn. The workflow
// needs at most two sequential tool calls (refresh, then order).
const maxToolRounds = 4

const defaultGreeting = "Hello! I'm your flight booking assistant. Where would you like to fly today?"

// AIService drives the conversation loop: it decides which booking tool to
// call, executes it and renders the model's reply.
type AIService interface {
	ProcessUserInput(ctx context.Context, req models.AIRequest) (*models.AIResponse, error)
}

type DefaultAIService struct {
	gemini   *GeminiClient
	ctxStore *RedisContextStore
	bookSvc  booking.Service
	logger   *zap.Logger
}

func NewDefaultAIService(apiKey string, ctxStore *RedisContextStore, bookSvc booking.Service, logger *zap.Logger) *DefaultAIService {
	return &DefaultAIService{
		gemini:   NewGeminiClient(apiKey),
		ctxStore: ctxStore,
		bookSvc:  bookSvc,
		logger:   logger,
	}
}

// ProcessUserInput runs one conversational turn: restore the transcript, let
// the model respond, execute any tool calls it makes and persist the updated
// transcript. Structured tool results ride along on the response so the
// frontend renders quotes and confirmations without re-deriving decisions.
func (s *DefaultAIService) ProcessUserInput(ctx context.Context, req models.AIRequest) (*models.AIResponse, error) {
	if req.UserID == "" {
		req.UserID = uuid.New().String()
	}

	turns, err := s.ctxStore.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load context: %w", err)
	}

	model := s.gemini.Model(systemPrompt(time.Now()))
	chat := model.StartChat()
	chat.History = historyFromTurns(turns)

	resp, err := chat.SendMessage(ctx, genai.Text(req.Text))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}

	out := &models.AIResponse{UserID: req.UserID}
	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}
		replies := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			s.logger.Info("dispatching tool call",
				zap.String("tool", call.Name), zap.String("user_id", req.UserID))
			replies = append(replies, s.dispatch(ctx, call, out))
		}
		resp, err = chat.SendMessage(ctx, replies...)
		if err != nil {
			return nil, fmt.Errorf("gemini generate error: %w", err)
		}
	}

	out.ResponseText = responseText(resp)
	if out.ResponseText == "" {
		out.ResponseText = defaultGreeting
	}

	turns = append(turns,
		models.ChatTurn{Role: "user", Text: req.Text},
		models.ChatTurn{Role: "model", Text: out.ResponseText},
	)
	if err := s.ctxStore.Set(ctx, req.UserID, turns); err != nil {
		s.logger.Warn("failed to persist chat context", zap.Error(err))
	}

	return out, nil
}

// systemPrompt carries the booking guidance plus the current date so relative
// dates like "tomorrow" resolve correctly.
func systemPrompt(now time.Time) string {
	today := now.Format("2006-01-02")
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")

	return fmt.Sprintf(`You are a helpful flight booking assistant.
Your job is to help users find and book flights.
- Greet users warmly and ask how you can help with their travel plans
- When they want to search flights, ask for: origin, destination, and departure date
- IMPORTANT: Today is %s. When the user says "tomorrow", use %s
- Departure dates must be %s or later (no same-day bookings)
- Once you have all details, use the search_flights tool
- NOTE: If using a test API key, "Duffel Airways" is the most reliable airline for booking testing. Recommend it if available.
- When the user selects a flight, extract the offer ID from their message
- First use get_offer to retrieve the latest offer AND the valid passenger IDs
- Collect passenger details: given_name, family_name, email, phone_number, born_on (YYYY-MM-DD), gender (m/f), title (mr/mrs/ms/miss)
- IMPORTANT: Phone numbers MUST be in E.164 format (e.g., +14155552671). Ask the user for a country code if missing.
- Use the passenger IDs returned by get_offer and map them in order (first ID for first passenger). Do NOT make up IDs.
- Once you have all passenger details, use create_order to complete the booking
- Display the booking confirmation with the booking reference when the order is created successfully
- Be conversational and friendly throughout`, today, tomorrow, tomorrow)
}

func historyFromTurns(turns []models.ChatTurn) []*genai.Content {
	history := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		history = append(history, &genai.Content{
			Role:  turn.Role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}
	return history
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

func responseText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
