package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const maxTries = 2 // Запрос и одна повторная попытка

// Client клиент для работы с CatalogService
type Client struct {
	baseURL        string
	httpClient     *http.Client
	log            Logger
	initialBackoff time.Duration
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log:            log,
		initialBackoff: 200 * time.Millisecond,
	}
}

// GetService получает услугу тенанта.
// Сетевые ошибки и 5xx повторяются один раз с экспоненциальной задержкой.
func (c *Client) GetService(ctx context.Context, tenantID, serviceID string) (*domain.Service, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialBackoff

	svc, err := backoff.Retry(ctx, func() (*Service, error) {
		return c.fetchService(ctx, tenantID, serviceID)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(maxTries))

	if err != nil {
		if errors.Is(err, ErrServiceNotFound) || errors.Is(err, ErrInvalidResponse) {
			return nil, err
		}
		c.log.Error("CatalogService unavailable for tenant=%s service=%s: %v", tenantID, serviceID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return svc.ToDomain(), nil
}

func (c *Client) fetchService(ctx context.Context, tenantID, serviceID string) (*Service, error) {
	endpoint := fmt.Sprintf("%s/internal/tenants/%s/services/%s",
		c.baseURL, url.PathEscape(tenantID), url.PathEscape(serviceID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: failed to create request: %v", ErrInternal, err))
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("CatalogService request failed for tenant=%s service=%s: %v", tenantID, serviceID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(ErrServiceNotFound)
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInternal, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, backoff.Permanent(fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body)))
	}

	// Парсим ответ
	var svc Service
	if err := json.NewDecoder(resp.Body).Decode(&svc); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err))
	}

	return &svc, nil
}
