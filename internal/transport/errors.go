package transport

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ServerError is a non-2xx answer from the backend
type ServerError struct {
	StatusCode int
	Status     string // status text without the code, e.g. "Bad Request"
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// NetworkError wraps a failure to reach the backend at all
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure reaching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// networkFailureMarkers are substrings of transport failure messages that mean
// the server could not be reached
var networkFailureMarkers = []string{
	"Failed to fetch",
	"NetworkError",
	"connection refused",
	"connection reset",
	"no such host",
	"network is unreachable",
	"no route to host",
	"i/o timeout",
}

// isNetworkFailure reports whether err looks like a transport-level failure
func isNetworkFailure(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	msg := err.Error()
	for _, marker := range networkFailureMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
