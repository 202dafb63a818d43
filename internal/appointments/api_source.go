package appointments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/username/agenda-calendar/internal/calendar"
	"github.com/username/agenda-calendar/pkg/random"
	"go.uber.org/zap"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetries    = 3
	defaultRetryDelay = time.Second
	// ±percent spread applied to each retry delay
	retryJitterPercent = 20.0
)

// APISource fetches appointments from the backend REST API:
// GET {baseURL}/appointments/month/{year}/{month}
type APISource struct {
	baseURL    string
	token      string
	tenantID   string
	cacheTTL   time.Duration
	retries    int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[string]*cachedMonth
	cacheMu    sync.RWMutex
}

type cachedMonth struct {
	data      []Appointment
	fetchedAt time.Time
}

// monthEnvelope is the wrapped response shape {"data": [...]}
type monthEnvelope struct {
	Data []Appointment `json:"data"`
}

// apiError is a non-2xx response from the backend
type apiError struct {
	StatusCode int
	Body       string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// NewAPISource creates a new APISource. A zero timeout uses the default;
// a zero cacheTTL disables caching.
func NewAPISource(baseURL, token, tenantID string, timeout, cacheTTL time.Duration, logger *zap.Logger) *APISource {
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &APISource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		tenantID:   tenantID,
		cacheTTL:   cacheTTL,
		retries:    defaultRetries,
		retryDelay: defaultRetryDelay,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		cache:  make(map[string]*cachedMonth),
	}
}

// SetRetries overrides the number of attempts per request (minimum 1)
func (s *APISource) SetRetries(retries int) {
	if retries < 1 {
		retries = 1
	}
	s.retries = retries
}

// MonthAppointments returns the appointments of the month, from cache when fresh
func (s *APISource) MonthAppointments(ctx context.Context, year int, month time.Month) ([]Appointment, error) {
	ref := calendar.MonthReference{Year: year, Month: month}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	cacheKey := ref.String()

	s.cacheMu.RLock()
	if cached, ok := s.cache[cacheKey]; ok {
		if time.Since(cached.fetchedAt) < s.cacheTTL {
			s.cacheMu.RUnlock()
			s.logger.Debug("Using cached appointments",
				zap.String("month", cacheKey))
			return cached.data, nil
		}
	}
	s.cacheMu.RUnlock()

	path := fmt.Sprintf("/appointments/month/%d/%d", year, int(month))

	var raw json.RawMessage
	if err := s.doRequest(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch appointments for %s: %w", cacheKey, err)
	}

	appts, err := parseMonthResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse appointments for %s: %w", cacheKey, err)
	}

	if s.cacheTTL > 0 {
		s.cacheMu.Lock()
		s.cache[cacheKey] = &cachedMonth{
			data:      appts,
			fetchedAt: time.Now(),
		}
		s.cacheMu.Unlock()
	}

	s.logger.Info("Appointments fetched",
		zap.String("month", cacheKey),
		zap.Int("count", len(appts)))

	return appts, nil
}

// ClearCache clears the cache
func (s *APISource) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache = make(map[string]*cachedMonth)
	s.logger.Info("Appointment cache cleared")
}

// parseMonthResponse accepts either a bare array or {"data": [...]}
func parseMonthResponse(raw json.RawMessage) ([]Appointment, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Appointment{}, nil
	}

	if trimmed[0] == '[' {
		var appts []Appointment
		if err := json.Unmarshal(trimmed, &appts); err != nil {
			return nil, err
		}
		return appts, nil
	}

	var envelope monthEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return []Appointment{}, nil
	}
	return envelope.Data, nil
}

// doRequest performs an HTTP request with retries on transport errors and 5xx responses
func (s *APISource) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var payload []byte
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = jsonData
	}

	url := s.baseURL + path

	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		err := s.doRequestOnce(ctx, method, url, payload, result)
		if err == nil {
			return nil
		}

		lastErr = err
		if !retryable(err) || ctx.Err() != nil {
			return err
		}

		s.logger.Warn("Request failed, retrying",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", s.retries),
			zap.Error(err))

		if attempt < s.retries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(random.Backoff(s.retryDelay, attempt, retryJitterPercent)):
			}
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", s.retries, lastErr)
}

// doRequestOnce performs a single HTTP request
func (s *APISource) doRequestOnce(ctx context.Context, method, url string, payload []byte, result interface{}) error {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	if s.tenantID != "" {
		req.Header.Set("X-Tenant-ID", s.tenantID)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

func retryable(err error) bool {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}
