package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"
)

// listener count cell on the Icecast status page
var listenerPattern = regexp.MustCompile(`Current Listeners: <td>(\d+)</td>`)

// RadioService proxies listener statistics from the community radio's
// status page.
type RadioService struct {
	statusURL  string
	httpClient *http.Client
}

// NewRadioService creates a new radio service
func NewRadioService(statusURL string) *RadioService {
	return &RadioService{
		statusURL:  statusURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// RadioStats is the scraped listener snapshot
type RadioStats struct {
	Listeners int       `json:"listeners"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Stats fetches the status page and extracts the current listener count
func (s *RadioService) Stats(ctx context.Context) (*RadioStats, error) {
	if s.statusURL == "" {
		return nil, fmt.Errorf("radio status URL not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.statusURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("radio status fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("radio status page returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	listeners, err := ParseListeners(string(body))
	if err != nil {
		return nil, err
	}

	return &RadioStats{
		Listeners: listeners,
		CheckedAt: time.Now(),
	}, nil
}

// ParseListeners extracts the listener count from status page HTML
func ParseListeners(html string) (int, error) {
	m := listenerPattern.FindStringSubmatch(html)
	if m == nil {
		return 0, fmt.Errorf("listener count not found in status page")
	}
	return strconv.Atoi(m[1])
}
