// Package formspree forwards volunteer applications to a Formspree form.
package formspree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/disaster-helper/internal/domain"
)

// Client implements domain.VolunteerSubmitter.
type Client struct {
	formURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client posting to formURL.
func NewClient(formURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		formURL:    formURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SubmitVolunteer posts the application as JSON. Any non-2xx answer is an error.
func (c *Client) SubmitVolunteer(ctx context.Context, app domain.VolunteerApplication) error {
	body, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("marshal application: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.formURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit application: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("formspree API error: status %d: %s", resp.StatusCode, msg)
	}
	c.logger.Info("volunteer application submitted", "email", app.Email)
	return nil
}
