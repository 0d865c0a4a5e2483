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

// Notification is the toast the page should show after a request.
type Notification struct {
	Message    string `json:"message"`
	DurationMS int64  `json:"duration_ms"`
}
