package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gitfit/gitfit-backend/internal/platform/logger"
)

// ReadinessClient fetches the externally fused readiness value [0,1] used as
// the objective-score fallback when a week has no strain samples. Failures
// are expected; callers absorb them into neutral defaults.
type ReadinessClient interface {
	GetReadiness(ctx context.Context, userID uuid.UUID) (float64, error)
}

type httpReadinessClient struct {
	log     *logger.Logger
	baseURL string
	client  *http.Client
}

// NewReadinessClient returns the HTTP client when READINESS_BASE_URL is set,
// otherwise a noop client whose lookups always miss.
func NewReadinessClient(baseLog *logger.Logger) ReadinessClient {
	base := strings.TrimSpace(os.Getenv("READINESS_BASE_URL"))
	if base == "" {
		return &noopReadinessClient{}
	}
	return &httpReadinessClient{
		log:     baseLog.With("client", "ReadinessClient"),
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *httpReadinessClient) GetReadiness(ctx context.Context, userID uuid.UUID) (float64, error) {
	endpoint := fmt.Sprintf("%s/v1/readiness/%s", c.baseURL, url.PathEscape(userID.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("readiness fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("readiness fetch: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Readiness float64 `json:"readiness"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("readiness decode: %w", err)
	}
	if body.Readiness < 0 || body.Readiness > 1 {
		return 0, fmt.Errorf("readiness out of range: %v", body.Readiness)
	}
	return body.Readiness, nil
}

type noopReadinessClient struct{}

func (c *noopReadinessClient) GetReadiness(ctx context.Context, userID uuid.UUID) (float64, error) {
	return 0, fmt.Errorf("readiness source not configured")
}
