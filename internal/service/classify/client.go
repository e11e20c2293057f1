package classify

import (
	"context"
	"errors"
)

// ErrUnavailable marks any failure to obtain a classification: missing
// credentials, transport errors, or a backend-side failure. The wrapped
// cause is for logs only and must never reach the end user verbatim.
var ErrUnavailable = errors.New("classification backend unavailable")

// Message is one turn of bounded history sent to the model backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request pairs the fixed instruction contract with a bounded conversation
// history.
type Request struct {
	Instructions string
	History      []Message
}

// Client issues a single classification attempt against a model backend and
// returns the backend's raw text, trimmed of surrounding whitespace. No
// retries: retry policy, if ever wanted, belongs to the caller.
type Client interface {
	Classify(ctx context.Context, req Request) (string, error)
}
