package duffel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	apiVersion     = "v2"
	requestTimeout = 30 * time.Second
)

// Client is the single low-level transport to the booking provider. It is the
// only component that knows the wire details: base URL, auth header and the
// version header pinning the API revision.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		Logger:     logger,
	}
}

// Request performs one authenticated call. A transport failure never escapes
// as a panic or raw error; every failure becomes a Fault. On success the raw
// "data" member is returned unchanged for the caller to decode.
func (c *Client) Request(ctx context.Context, method, endpoint string, payload any) (json.RawMessage, *Fault) {
	var body io.Reader
	if payload != nil {
		// The provider wraps every request payload in a "data" member.
		data, err := json.Marshal(dataBody{Data: payload})
		if err != nil {
			return nil, TransportFault(err)
		}
		body = bytes.NewBuffer(data)
	}

	url := c.BaseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, TransportFault(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Duffel-Version", apiVersion)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Warn("provider request failed",
			zap.String("endpoint", endpoint), zap.Error(err))
		return nil, TransportFault(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, TransportFault(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, c.errorFault(endpoint, resp.StatusCode, raw)
	}

	var envelope dataEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, UnrecognizedShape(endpoint, err)
	}
	return envelope.Data, nil
}

// errorFault parses a structured error body; an unparseable or empty body is
// folded into a single synthesized entry carrying the status and raw text.
func (c *Client) errorFault(endpoint string, status int, raw []byte) *Fault {
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Errors) == 0 {
		envelope.Errors = []APIError{{
			Message: fmt.Sprintf("HTTP %d: %s", status, string(raw)),
		}}
	}

	fault := Normalize(envelope.Errors)
	c.Logger.Warn("provider returned error",
		zap.String("endpoint", endpoint),
		zap.Int("status", status),
		zap.String("kind", string(fault.Kind)))
	return fault
}

type dataBody struct {
	Data any `json:"data"`
}
