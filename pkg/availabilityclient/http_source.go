package availabilityclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPSource реализация Source поверх HTTP API сервиса доступности
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
	userID     string
}

// NewHTTPSource создает транспорт. userID передается в заголовке X-User-ID, если не пуст.
func NewHTTPSource(baseURL string, timeout time.Duration, userID string) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		userID: userID,
	}
}

// Slots GET /api/v1/tenants/{tenantId}/available-slots
func (s *HTTPSource) Slots(ctx context.Context, p Params) (*SlotsPayload, error) {
	query := url.Values{}
	query.Set("serviceId", p.ServiceID)
	query.Set("date", p.Date.String())
	if p.VariantName != "" {
		query.Set("variantName", p.VariantName)
	}
	if p.SpecialistID != "" {
		query.Set("specialistId", p.SpecialistID)
	}
	if p.TotalDuration > 0 {
		query.Set("totalDuration", strconv.Itoa(p.TotalDuration))
	}
	if p.Any {
		query.Set("any", "true")
	}

	var payload SlotsPayload
	if err := s.get(ctx, p.TenantID, "available-slots", query, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FullyBookedDates GET /api/v1/tenants/{tenantId}/fully-booked-dates
func (s *HTTPSource) FullyBookedDates(ctx context.Context, p MonthParams) (*MonthPayload, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(p.Year))
	query.Set("month", strconv.Itoa(int(p.Month)))
	if p.SpecialistID != "" {
		query.Set("specialistId", p.SpecialistID)
	}
	if p.ServiceID != "" {
		query.Set("serviceId", p.ServiceID)
	}
	if p.VariantName != "" {
		query.Set("variantName", p.VariantName)
	}
	if p.TotalDuration > 0 {
		query.Set("totalDuration", strconv.Itoa(p.TotalDuration))
	}

	var payload MonthPayload
	if err := s.get(ctx, p.TenantID, "fully-booked-dates", query, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (s *HTTPSource) get(ctx context.Context, tenantID, resource string, query url.Values, dst interface{}) error {
	endpoint := fmt.Sprintf("%s/api/v1/tenants/%s/%s?%s",
		s.baseURL, url.PathEscape(tenantID), resource, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.userID != "" {
		req.Header.Set("X-User-ID", s.userID)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var errBody struct {
			Error string `json:"error"`
		}
		message := string(body)
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			message = errBody.Error
		}
		return &StatusError{Code: resp.StatusCode, Message: message}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
