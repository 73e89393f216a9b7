package cancellation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"stayease/internal/shared/config"
)

// RefundStatus tracks what the provider says about the refund
type RefundStatus string

const (
	RefundPending   RefundStatus = "PENDING"
	RefundProcessed RefundStatus = "PROCESSED"
	RefundFailed    RefundStatus = "FAILED"
)

// CancellationResult is what the booking provider returns for a successful
// cancellation. The refund status is owned by the provider; this service
// records it but never marks refunds processed on its own.
type CancellationResult struct {
	BookingID       string          `json:"booking_id"`
	ReferenceNumber string          `json:"reference_number"`
	CancelledAt     time.Time       `json:"cancelled_at"`
	RefundAmount    decimal.Decimal `json:"refund_amount"`
	RefundCurrency  string          `json:"refund_currency"`
	RefundStatus    RefundStatus    `json:"refund_status"`
	Reason          string          `json:"reason"`
}

// ProviderError is a failed provider call that produced an HTTP status
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// ProviderAdapter is the boundary to the external booking provider
type ProviderAdapter interface {
	CancelReservation(ctx context.Context, bookingID, reason, comments string) (*CancellationResult, error)
}

type httpProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider creates a provider adapter talking to the booking
// provider's REST API.
func NewHTTPProvider(cfg config.ProviderConfig) ProviderAdapter {
	return &httpProvider{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type cancelRequest struct {
	BookingID          string `json:"booking_id"`
	Reason             string `json:"reason"`
	AdditionalComments string `json:"additional_comments,omitempty"`
}

func (p *httpProvider) CancelReservation(ctx context.Context, bookingID, reason, comments string) (*CancellationResult, error) {
	payload, err := json.Marshal(cancelRequest{
		BookingID:          bookingID,
		Reason:             reason,
		AdditionalComments: comments,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cancel request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/reservations/%s/cancel", p.baseURL, bookingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build cancel request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("X-API-Key", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		// transport error, no status code for the classifier
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var result CancellationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	return &result, nil
}
