package transport

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
)

// Artifact is a successful response whose body has not been read yet
type Artifact struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	Filename      string // from Content-Disposition, may be empty
}

func newArtifact(resp *http.Response) *Artifact {
	return &Artifact{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		Filename:      attachmentFilename(resp.Header.Get("Content-Disposition")),
	}
}

// Bytes materializes the whole body and releases it
func (a *Artifact) Bytes() ([]byte, error) {
	defer a.Body.Close()

	blob, err := io.ReadAll(a.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return blob, nil
}

// Close releases the body without reading it
func (a *Artifact) Close() error {
	return a.Body.Close()
}

func attachmentFilename(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

type errorBody struct {
	Error string `json:"error"`
}

// newServerError derives the user-facing message from a failed response:
// JSON "error" field, then raw text, then the status line
func newServerError(resp *http.Response) *ServerError {
	statusText := http.StatusText(resp.StatusCode)
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		statusText = text
	}

	serverErr := &ServerError{
		StatusCode: resp.StatusCode,
		Status:     statusText,
		Message:    fmt.Sprintf("Error %d: %s", resp.StatusCode, statusText),
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return serverErr
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var body errorBody
		if err := sonic.Unmarshal(raw, &body); err != nil {
			return serverErr
		}
		if msg := strings.TrimSpace(body.Error); msg != "" {
			serverErr.Message = msg
		}
		return serverErr
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		serverErr.Message = text
	}
	return serverErr
}
