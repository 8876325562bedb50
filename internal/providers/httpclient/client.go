// Package httpclient implements the registry contracts as JSON calls against
// a single upstream gateway.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"searchorder/internal/providers"
)

const maxResponseBytes = 4 << 20

// Client talks to the registry gateway.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for upstream failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New builds a client for baseURL with a per-request timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ providers.Registry      = (*Client)(nil)
	_ providers.ReportCreator = (*Client)(nil)
)

type matchesResponse[T any] struct {
	Matches []T `json:"matches"`
}

// SearchBankruptcyMatches queries the insolvency index.
func (c *Client) SearchBankruptcyMatches(ctx context.Context, q providers.BankruptcyQuery) ([]providers.BankruptcyRecord, error) {
	var resp matchesResponse[providers.BankruptcyRecord]
	if err := c.doJSON(ctx, providers.ProviderBankruptcy, http.MethodPost, "/bankruptcy/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// SearchRelatedEntityMatches queries the related-entities index.
func (c *Client) SearchRelatedEntityMatches(ctx context.Context, q providers.RelatedEntityQuery) ([]providers.RelatedRecord, error) {
	var resp matchesResponse[providers.RelatedRecord]
	if err := c.doJSON(ctx, providers.ProviderRelatedEntities, http.MethodPost, "/related-entities/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// SearchCourtMatches queries court lists.
func (c *Client) SearchCourtMatches(ctx context.Context, q providers.CourtQuery) ([]providers.CourtRecord, error) {
	var resp matchesResponse[providers.CourtRecord]
	if err := c.doJSON(ctx, providers.ProviderCourt, http.MethodPost, "/court/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// SearchLandTitlePersonNames lists proprietor names in one state.
func (c *Client) SearchLandTitlePersonNames(ctx context.Context, q providers.LandTitlePersonQuery) ([]string, error) {
	var resp struct {
		Success     bool     `json:"success"`
		PersonNames []string `json:"personNames"`
	}
	if err := c.doJSON(ctx, providers.ProviderLandTitle, http.MethodPost, "/land-title/person-names", q, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, unsuccessful(providers.ProviderLandTitle, "person name search in "+q.State)
	}
	return resp.PersonNames, nil
}

// GetLandTitleCounts returns title counts for one state.
func (c *Client) GetLandTitleCounts(ctx context.Context, q providers.LandTitleCountsQuery) (providers.LandTitleCounts, error) {
	var resp struct {
		Success bool `json:"success"`
		providers.LandTitleCounts
	}
	if err := c.doJSON(ctx, providers.ProviderLandTitle, http.MethodPost, "/land-title/counts", q, &resp); err != nil {
		return providers.LandTitleCounts{}, err
	}
	if !resp.Success {
		return providers.LandTitleCounts{}, unsuccessful(providers.ProviderLandTitle, "title counts in "+q.State)
	}
	return resp.LandTitleCounts, nil
}

// SearchOrganisationByName looks organisations up by name or number.
func (c *Client) SearchOrganisationByName(ctx context.Context, term string) ([]providers.OrgSuggestion, error) {
	var resp struct {
		Success bool                      `json:"success"`
		Results []providers.OrgSuggestion `json:"results"`
	}
	path := "/organisations/search?" + url.Values{"term": {term}}.Encode()
	if err := c.doJSON(ctx, providers.ProviderABNLookup, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, unsuccessful(providers.ProviderABNLookup, "organisation search")
	}
	return resp.Results, nil
}

// CheckDataAvailability reports whether a dataset exists for an identifier.
func (c *Client) CheckDataAvailability(ctx context.Context, id, dataType string) (providers.Availability, error) {
	var resp providers.Availability
	path := "/availability/" + url.PathEscape(id) + "?" + url.Values{"type": {dataType}}.Encode()
	if err := c.doJSON(ctx, providers.ProviderASIC, http.MethodGet, path, nil, &resp); err != nil {
		return providers.Availability{}, err
	}
	return resp, nil
}

// CreateReportJob asks the report service to generate one report.
func (c *Client) CreateReportJob(ctx context.Context, req providers.ReportRequest) (providers.ReportResult, error) {
	var resp providers.ReportResult
	if err := c.doJSON(ctx, providers.ProviderReports, http.MethodPost, "/reports", req, &resp); err != nil {
		return providers.ReportResult{}, err
	}
	if resp.Report == "" {
		return providers.ReportResult{}, providers.NewProviderError(providers.ErrorBadData, providers.ProviderReports, "report service returned no file name", nil)
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, providerID, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return providers.NewProviderError(providers.ErrorInternal, providerID, "encode request", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return providers.NewProviderError(providers.ErrorInternal, providerID, "build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		perr := transportError(providerID, err)
		c.logFailure(ctx, providerID, path, perr)
		return perr
	}
	defer resp.Body.Close()

	blob, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return providers.NewProviderError(providers.ErrorBadData, providerID, "read response", err)
	}
	if resp.StatusCode >= 400 {
		perr := statusError(providerID, resp.StatusCode, blob)
		c.logFailure(ctx, providerID, path, perr)
		return perr
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return providers.NewProviderError(providers.ErrorBadData, providerID, "malformed response", err)
	}
	return nil
}

func (c *Client) logFailure(ctx context.Context, providerID, path string, err *providers.ProviderError) {
	if c.logger == nil {
		return
	}
	c.logger.WarnContext(ctx, "registry call failed",
		"provider", providerID,
		"path", path,
		"category", err.Category,
		"error", err,
	)
}

func transportError(providerID string, err error) *providers.ProviderError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return providers.NewProviderError(providers.ErrorTimeout, providerID, "registry timed out", err)
	}
	return providers.NewProviderError(providers.ErrorProviderOutage, providerID, "registry unavailable", err)
}

func statusError(providerID string, status int, body []byte) *providers.ProviderError {
	detail := fmt.Errorf("status=%d body=%s", status, strings.TrimSpace(string(body)))
	switch {
	case status == http.StatusNotFound:
		return providers.NewProviderError(providers.ErrorNotFound, providerID, "no record found", detail)
	case status == http.StatusTooManyRequests:
		return providers.NewProviderError(providers.ErrorRateLimited, providerID, "registry is rate limiting requests", detail)
	case status >= 500:
		return providers.NewProviderError(providers.ErrorProviderOutage, providerID, "registry unavailable", detail)
	default:
		return providers.NewProviderError(providers.ErrorBadData, providerID, "registry rejected the request", detail)
	}
}

func unsuccessful(providerID, what string) *providers.ProviderError {
	return providers.NewProviderError(providers.ErrorUnsuccessful, providerID, what+" was unsuccessful", nil)
}
