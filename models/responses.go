package models

// Response is the envelope of every successful response.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse is the envelope of every failed response.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// NewResponse wraps data into a success envelope.
func NewResponse(status int, data any, message string) Response {
	return Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < 400,
	}
}

// NewErrorResponse builds an error envelope. Errors is never nil.
func NewErrorResponse(status int, message string, errs ...string) ErrorResponse {
	if errs == nil {
		errs = []string{}
	}

	return ErrorResponse{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     errs,
	}
}
