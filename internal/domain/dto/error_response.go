package dto

import "time"

// ErrorResponse is the JSON body returned for every failed API call.
//
// Message is safe to show to users; ErrorDetails carries the underlying error
// text (if any) for diagnostics.
type ErrorResponse struct {
	Message      string    `json:"message" example:"failed to load upcoming dividends"`
	ErrorDetails string    `json:"error_details,omitempty" example:"failed to fetch: 503 Service Unavailable"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
