package swipe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIURL  = "http://localhost:8090"
	defaultTimeout = 10 * time.Second
	userAgent      = "swipe-recommender"

	JobsPath    = "/jobs"
	WorkersPath = "/workers"
)

// Client reads the job and worker snapshots from the upstream HTTP API.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a Client. Empty apiURL and non-positive timeout fall back to defaults.
func New(logger *zap.Logger, apiURL, token string, timeout time.Duration) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		token:  strings.TrimSpace(token),
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
	}
}

// GetJobs returns all open job postings.
func (c *Client) GetJobs(ctx context.Context) (*Jobs, error) {
	items, err := c.getItems(ctx, fmt.Sprintf("%s%s", c.APIURL, JobsPath))
	if err != nil {
		return nil, fmt.Errorf("get jobs: %w", err)
	}

	jobs, err := DecodeJobs(items)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got jobs from upstream", zap.Int("count", jobs.Len()))
	return jobs, nil
}

// GetWorkers returns all worker profiles.
func (c *Client) GetWorkers(ctx context.Context) (*Workers, error) {
	items, err := c.getItems(ctx, fmt.Sprintf("%s%s", c.APIURL, WorkersPath))
	if err != nil {
		return nil, fmt.Errorf("get workers: %w", err)
	}

	workers, err := DecodeWorkers(items)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got workers from upstream", zap.Int("count", workers.Len()))
	return workers, nil
}
