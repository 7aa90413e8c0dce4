package remote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cinemind/gateway/internal/model"
)

const (
	authHeader    = "Authorization"
	tokenPrefix   = "Token "
	clientTimeout = 5 * time.Second
)

func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: clientTimeout,
	}
}

// Authorize attaches the opaque credential. The gateway never parses it.
func Authorize(req *http.Request, credential string) {
	if credential != "" {
		req.Header.Set(authHeader, tokenPrefix+credential)
	}
}

// ClassifyQuery maps a read-path status code onto the error taxonomy.
func ClassifyQuery(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return model.ErrUnauthorized
	default:
		return fmt.Errorf("%w: status %d", model.ErrTransient, status)
	}
}

// ClassifyMutation is ClassifyQuery plus the MutationRejected bucket
// for non-auth client errors.
func ClassifyMutation(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return model.ErrUnauthorized
	case status >= 400 && status < 500:
		return fmt.Errorf("%w: status %d", model.ErrMutationRejected, status)
	default:
		return fmt.Errorf("%w: status %d", model.ErrTransient, status)
	}
}

// DecodeJSON parses a response body into an explicit schema once, at the
// boundary. A malformed payload is a transient failure, never a shapeless
// value leaking inward.
func DecodeJSON(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed payload: %w", model.ErrTransient, err)
	}
	return nil
}
