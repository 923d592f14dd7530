package listing_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filtercodec"
	"listing-service/internal/core/port"
)

const maxResponseBytes = 4 << 20

// ResponseValidator проверяет тело ответа по JSON-схеме (contracts.Registry).
type ResponseValidator interface {
	Validate(name, version string, body []byte) error
}

// ListingServiceAPIClient - клиент удалённого сервиса выдачи объектов.
type ListingServiceAPIClient struct {
	baseURL    string // Например, "http://catalog-api:8080/api"
	httpClient *http.Client
	validator  ResponseValidator
}

// NewListingServiceAPIClient - конструктор. validator может быть nil.
func NewListingServiceAPIClient(baseURL string, timeout time.Duration, validator ResponseValidator) *ListingServiceAPIClient {
	return &ListingServiceAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		validator:  validator,
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *ListingServiceAPIClient) doRequest(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// FetchListings реализует порт ListingServicePort. Повторов нет: ошибка сразу уходит наверх.
func (c *ListingServiceAPIClient) FetchListings(ctx context.Context, filter domain.Filter) (*domain.ListingPage, error) {
	query := filtercodec.RemoteQuery(filter)
	url := c.baseURL + "/properties?" + query.Encode()

	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ListingServiceAPIClient",
		"method":    "FetchListings",
		"page":      filter.Page,
	})
	clientLogger.Debug("Sending request to listing service.", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodGet, url)
	if err != nil {
		clientLogger.Error("Failed to perform request to listing service", err, nil)
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		clientLogger.Error("Failed to read response body", err, nil)
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrFetchFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("%w: listing service returned status %d, body: %s",
			domain.ErrFetchFailed, resp.StatusCode, string(bytes.TrimSpace(body)))
		clientLogger.Error("Received non-2xx response from listing service", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	if c.validator != nil {
		if err := c.validator.Validate(contracts.ListingPageResponse, contracts.V1, body); err != nil {
			clientLogger.Error("Listing service response violates contract", err, nil)
			return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
		}
	}

	var apiResponse listingPageResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		clientLogger.Error("Failed to decode response from listing service", err, nil)
		return nil, fmt.Errorf("%w: failed to decode response: %w", domain.ErrFetchFailed, err)
	}

	page := apiResponse.toDomain()
	clientLogger.Info("Received listing page.", port.Fields{"items": len(page.Data), "total": page.Total})
	return page, nil
}
