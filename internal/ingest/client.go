package ingest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/annolint/annolint/internal/record"
	"github.com/annolint/annolint/internal/redact"
)

const defaultMaxRetries = 3

// Client talks to a remote annolint corpus service.
type Client struct {
	httpc      *resty.Client
	log        hclog.Logger
	maxRetries int
}

// New creates a Client for the given endpoint. The token is sent as a bearer
// credential on every request.
func New(endpoint, token string, log hclog.Logger) *Client {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	httpc := resty.New()
	httpc.SetBaseURL(endpoint)
	httpc.SetHeader("Authorization", fmt.Sprintf("Bearer %s", token))
	httpc.SetHeader("Content-Type", "application/json")

	return &Client{
		httpc:      httpc,
		log:        log,
		maxRetries: defaultMaxRetries,
	}
}

// BatchRecord is one issue file in a sync batch.
type BatchRecord struct {
	Snapshot string   `json:"snapshot"`
	Path     string   `json:"path"`
	IssueIDs []string `json:"issue_ids"`
	Content  string   `json:"content"`
}

type batchRequest struct {
	BatchID string        `json:"batch_id"`
	Records []BatchRecord `json:"records"`
}

// PushResult reports the outcome of a batch submission.
type PushResult struct {
	BatchID  string `json:"batch_id"`
	Accepted int    `json:"accepted"`
}

type authError struct {
	status int
}

func (e *authError) Error() string {
	return fmt.Sprintf("authentication error: server returned %d", e.status)
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	_, ok := err.(*authError)
	return ok
}

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited" }

// NewRecord builds a BatchRecord from a parsed issue file using its canonical
// serialization. When redactSecrets is set, secret-shaped strings in the
// content are masked before it leaves the machine.
func NewRecord(snapshot string, f *record.File, redactSecrets bool) (BatchRecord, error) {
	content, err := f.MarshalCanonical()
	if err != nil {
		return BatchRecord{}, fmt.Errorf("serializing %s: %w", f.Path, err)
	}
	body := string(content)
	if redactSecrets {
		body = redact.Secrets(body)
	}
	return BatchRecord{
		Snapshot: snapshot,
		Path:     f.Path,
		IssueIDs: f.IDs,
		Content:  body,
	}, nil
}

// PushBatch submits the records as a single batch. The batch ID is generated
// client-side so retried submissions are idempotent on the server.
func (c *Client) PushBatch(ctx context.Context, records []BatchRecord) (*PushResult, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to push")
	}

	req := batchRequest{
		BatchID: uuid.NewString(),
		Records: records,
	}
	c.log.Debug("pushing batch", "batch_id", req.BatchID, "records", len(records))

	var result PushResult
	err := c.retryWithBackoff(ctx, func() error {
		resp, err := c.httpc.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&result).
			Post("/api/v1/batches")
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
			return &authError{status: resp.StatusCode()}
		case resp.StatusCode() == http.StatusTooManyRequests:
			return &rateLimitError{}
		case resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated:
			return fmt.Errorf("%d on pushing batch '%s'", resp.StatusCode(), req.BatchID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.BatchID == "" {
		result.BatchID = req.BatchID
	}
	return &result, nil
}

func (c *Client) retryWithBackoff(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		// Don't retry auth errors
		if _, ok := lastErr.(*authError); ok {
			return lastErr
		}

		// Only retry rate limit errors
		if _, ok := lastErr.(*rateLimitError); !ok {
			return lastErr
		}

		if attempt < c.maxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			c.log.Warn("rate limited, backing off", "attempt", attempt+1, "wait", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}
