package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	telemetryport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/telemetry"
)

const (
	maxResponseBytes = 32 << 20
	maxErrorBodyLen  = 512
)

// HTTPClient calls the telemetry provider's REST API
type HTTPClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     coreport.Logger
}

// NewHTTPClient creates a telemetry client for baseURL.
// timeout bounds a single call including reading the body.
func NewHTTPClient(baseURL, userAgent string, timeout time.Duration, logger coreport.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchTransactions issues GET {base}/machines/{id}/transactions?start_date=..&end_date=..
func (c *HTTPClient) FetchTransactions(ctx context.Context, req telemetryport.TransactionsRequest) (*telemetryport.TransactionsResponse, error) {
	endpoint := c.transactionsURL(req)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.NewTelemetryTransportError(req.MachineExternalID, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("Requesting telemetry transactions", map[string]any{
		"machine_external_id": req.MachineExternalID,
		"start_date":          req.Window.StartDate(),
		"end_date":            req.Window.EndDate(),
	})

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errs.NewTelemetryTransportError(req.MachineExternalID, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errs.NewTelemetryTransportError(req.MachineExternalID, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.NewTelemetryStatusError(req.MachineExternalID, resp.StatusCode, truncate(body))
	}

	return decodeTransactions(body), nil
}

func (c *HTTPClient) transactionsURL(req telemetryport.TransactionsRequest) string {
	query := url.Values{}
	query.Set("start_date", req.Window.StartDate())
	query.Set("end_date", req.Window.EndDate())

	return fmt.Sprintf("%s/machines/%s/transactions?%s",
		c.baseURL, url.PathEscape(req.MachineExternalID), query.Encode())
}

// decodeTransactions splits a JSON array into raw records.
// Any other body, including one that is not JSON at all, is reported as NotAList.
func decodeTransactions(body []byte) *telemetryport.TransactionsResponse {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return &telemetryport.TransactionsResponse{NotAList: true}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return &telemetryport.TransactionsResponse{NotAList: true}
	}

	// Copy each element so callers never alias the response buffer
	owned := make([]json.RawMessage, len(records))
	for i, record := range records {
		owned[i] = append(json.RawMessage(nil), record...)
	}
	return &telemetryport.TransactionsResponse{Records: owned}
}

func truncate(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBodyLen {
		return text[:maxErrorBodyLen] + "..."
	}
	return text
}
