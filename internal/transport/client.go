package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"diplomagen/internal/config"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// HeaderRequestID correlates client logs with backend logs
const HeaderRequestID = "X-Request-ID"

// Source is a named, re-openable file payload
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// GenerateRequest carries the two files of one submission
type GenerateRequest struct {
	Template Source
	Data     Source
}

// Client talks to the diploma generation backend
type Client struct {
	config *config.Config
	http   *http.Client
	logger *log.Logger
}

// NewClient creates a backend client. A nil httpClient gets a default one
// honouring cfg.Server.Timeout.
func NewClient(cfg *config.Config, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Server.Timeout}
	}
	return &Client{
		config: cfg,
		http:   httpClient,
		logger: logger,
	}
}

// Generate uploads both files and returns the artifact once response headers
// arrive. The caller owns the artifact body.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*Artifact, error) {
	if req.Template == nil || req.Data == nil {
		return nil, fmt.Errorf("invalid parameters: template and data must not be nil")
	}

	body, contentType, err := c.buildPayload(req)
	if err != nil {
		return nil, err
	}

	url := c.config.GenerateURL()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	return c.do(ctx, httpReq)
}

// buildPayload encodes the multipart body with the configured field names
func (c *Client) buildPayload(req GenerateRequest) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	parts := []struct {
		field string
		src   Source
	}{
		{c.config.Form.TemplateField, req.Template},
		{c.config.Form.DataField, req.Data},
	}
	for _, p := range parts {
		if err := writePart(mw, p.field, p.src); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart payload: %w", err)
	}
	return buf, mw.FormDataContentType(), nil
}

func writePart(mw *multipart.Writer, field string, src Source) error {
	rc, err := src.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src.Name(), err)
	}
	defer rc.Close()

	w, err := mw.CreateFormFile(field, src.Name())
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", field, err)
	}
	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("failed to read %s: %w", src.Name(), err)
	}
	return nil
}

// FetchSample downloads one of the sample files the backend publishes
func (c *Client) FetchSample(ctx context.Context, endpoint string) (*Artifact, error) {
	url := c.config.Server.URL + endpoint
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create sample request: %w", err)
	}
	return c.do(ctx, httpReq)
}

// do sends req, classifies transport failures and turns non-2xx answers into
// ServerError
func (c *Client) do(ctx context.Context, req *http.Request) (*Artifact, error) {
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	c.logger.Debug("Sending request", "method", req.Method, "url", req.URL.String(), "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		if isNetworkFailure(err) {
			return nil, &NetworkError{URL: req.URL.String(), Err: err}
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	c.logger.Debug("Response received",
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() {
			if err := resp.Body.Close(); err != nil {
				c.logger.Errorf("Failed to close response body: %v", err)
			}
		}()
		return nil, newServerError(resp)
	}

	return newArtifact(resp), nil
}
