package dto

import "time"

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta carries serving metadata for degradable reads. Cached means the data
// came from the in-process cache, Stale that it outlived its TTL, Degraded
// that the backing store was unreachable.
type Meta struct {
	Cached   bool `json:"cached,omitempty"`
	Stale    bool `json:"stale,omitempty"`
	Degraded bool `json:"degraded,omitempty"`
	Partial  bool `json:"partial,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewSuccessResponseWithMeta creates a success response with serving metadata
func NewSuccessResponseWithMeta(data interface{}, meta Meta) Response {
	resp := Response{
		Success: true,
		Data:    data,
	}
	if meta != (Meta{}) {
		resp.Meta = &meta
	}
	return resp
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// TimestampResponse represents timestamps in response
type TimestampResponse struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
