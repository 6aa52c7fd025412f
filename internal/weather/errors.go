package weather

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates a 2xx provider response that is missing
// an expected JSON field.  Handlers surface it as a generic server error.
var ErrMalformedResponse = errors.New("malformed provider response")

// UpstreamError carries a provider's non-2xx status so the route handler
// can forward it to the client.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Message)
}
