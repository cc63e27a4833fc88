// Package types defines the JSON envelope shared by every API response.
package types

import "net/http"

// MessageSuccess is the message of every successful envelope.
const MessageSuccess = "success"

// Response is the uniform envelope: code mirrors the HTTP status, data is
// set on success and error on failure.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SuccessResponse creates a successful API response
func SuccessResponse(data any) Response {
	return Response{
		Code:    http.StatusOK,
		Message: MessageSuccess,
		Data:    data,
	}
}

// OK reports whether the envelope carries a success.
func (r Response) OK() bool {
	return r.Code == http.StatusOK
}
