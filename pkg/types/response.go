// Package types holds the JSON envelopes returned to non-HTML clients.
package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Redirect stands in for a 303 when the client does not want HTML.
type Redirect struct {
	Redirect string `json:"redirect"`
}

// Health is the body of the liveness and readiness probes.
type Health struct {
	Status string `json:"status"`
	Env    string `json:"env,omitempty"`
}
