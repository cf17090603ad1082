package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxHolidayBody     = 1 << 20
)

// URLSource implements Source by fetching the holiday CSV over HTTP
type URLSource struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewURLSource creates a new URLSource instance
func NewURLSource(url string, timeout time.Duration, logger *zap.Logger) *URLSource {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &URLSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (us *URLSource) Name() string {
	return us.url
}

// Load fetches and parses the CSV
func (us *URLSource) Load(ctx context.Context) (*HolidaySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, us.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain")

	us.logger.Debug("Fetching holiday list", zap.String("url", us.url))

	resp, err := us.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("holiday list returned status %d: %s", resp.StatusCode, string(body))
	}

	set, err := ParseHolidayCSV(io.LimitReader(resp.Body, maxHolidayBody), us.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse holiday list: %w", err)
	}

	us.logger.Info("Holiday list fetched",
		zap.String("url", us.url),
		zap.Int("dates", set.Len()))

	return set, nil
}
