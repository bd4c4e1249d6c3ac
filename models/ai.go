package models

// AIRequest is the payload coming from the frontend into /api/ai/chat.
type AIRequest struct {
	UserID string `json:"user_id"` // unique user identifier; generated when absent
	Text   string `json:"text"`    // user's message
}

// AIAction is a single button/card action returned alongside a reply, e.g. one
// per bookable flight quote.
type AIAction struct {
	Label       string `json:"label"`              // text on the button
	Type        string `json:"type"`               // e.g. "select_offer"
	OfferID     string `json:"offer_id,omitempty"` // when selecting a flight
	Description string `json:"description,omitempty"`
}

// AIResponse is what the chat handler returns to the frontend. The structured
// fields let the presentation layer render quotes or a confirmation without
// parsing the reply text.
type AIResponse struct {
	UserID       string        `json:"user_id"`
	ResponseText string        `json:"response"`
	Search       *SearchResult `json:"search,omitempty"`
	Booking      *OrderResult  `json:"booking,omitempty"`
	Actions      []AIAction    `json:"actions,omitempty"`
}

// ChatTurn is one entry in the persisted per-user transcript.
type ChatTurn struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}
