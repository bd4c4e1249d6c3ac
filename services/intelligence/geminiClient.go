// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModelName = "models/gemini-1.5-pro"

type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}
	return &GeminiClient{client: client}
}

// Model builds a fresh model handle for one conversational turn, armed with
// the booking tool declarations and the turn's system prompt.
func (g *GeminiClient) Model(systemPrompt string) *genai.GenerativeModel {
	model := g.client.GenerativeModel(geminiModelName)
	model.Tools = []*genai.Tool{bookingTool()}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	return model
}

// bookingTool declares the three operations of the booking workflow for the
// model to call: search, pre-purchase offer refresh and order creation.
func bookingTool() *genai.Tool {
	passengerSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":           {Type: genai.TypeString, Description: "The passenger ID from the get_offer response"},
			"given_name":   {Type: genai.TypeString},
			"family_name":  {Type: genai.TypeString},
			"gender":       {Type: genai.TypeString, Description: "m or f"},
			"title":        {Type: genai.TypeString, Description: "mr, ms, mrs, miss or dr"},
			"born_on":      {Type: genai.TypeString, Description: "YYYY-MM-DD"},
			"email":        {Type: genai.TypeString},
			"phone_number": {Type: genai.TypeString, Description: "E.164 format, e.g. +14155552671"},
		},
		Required: []string{"id", "given_name", "family_name", "gender", "born_on", "email", "phone_number"},
	}

	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "search_flights",
				Description: "Search for flights between two airports on a specific date",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"origin":         {Type: genai.TypeString, Description: "Origin airport code, e.g. JFK"},
						"destination":    {Type: genai.TypeString, Description: "Destination airport code, e.g. LAX"},
						"departure_date": {Type: genai.TypeString, Description: "Date in YYYY-MM-DD format, must be tomorrow or later"},
						"passengers":     {Type: genai.TypeInteger, Description: "Number of passengers"},
					},
					Required: []string{"origin", "destination", "departure_date"},
				},
			},
			{
				Name:        "get_offer",
				Description: "Retrieve the latest version of an offer to get up-to-date pricing and passenger IDs before booking",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"offer_id": {Type: genai.TypeString, Description: "The offer ID from search results"},
					},
					Required: []string{"offer_id"},
				},
			},
			{
				Name:        "create_order",
				Description: "Create a booking order for a selected flight offer",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"offer_id":       {Type: genai.TypeString, Description: "The offer ID to book"},
						"passengers":     {Type: genai.TypeArray, Items: passengerSchema, Description: "Array of passenger objects"},
						"payment_type":   {Type: genai.TypeString, Description: "Payment type: balance or arc_bsp_cash"},
						"total_amount":   {Type: genai.TypeString, Description: "Total amount from the offer, used only if the offer expired"},
						"total_currency": {Type: genai.TypeString, Description: "Currency code, used only if the offer expired"},
					},
					Required: []string{"offer_id", "passengers"},
				},
			},
		},
	}
}
