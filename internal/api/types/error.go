package types

import "net/http"

// Error envelope messages.
const (
	MessageFetchFailed   = "fetch failed"
	MessageInvalidFormat = "invalid data format"
	MessageInternal      = "internal error"
	MessageNotFound      = "feed not found"
)

// ErrorResponse creates an error API response
func ErrorResponse(code int, message, detail string) Response {
	return Response{
		Code:    code,
		Message: message,
		Error:   detail,
	}
}

// FetchErrorResponse reports an unreachable or failing upstream.
func FetchErrorResponse(detail string) Response {
	return ErrorResponse(http.StatusInternalServerError, MessageFetchFailed, detail)
}

// FormatErrorResponse reports an upstream document of the wrong shape.
func FormatErrorResponse(detail string) Response {
	return ErrorResponse(http.StatusInternalServerError, MessageInvalidFormat, detail)
}

// InternalErrorResponse creates an internal server error response
func InternalErrorResponse(detail string) Response {
	return ErrorResponse(http.StatusInternalServerError, MessageInternal, detail)
}

// NotFoundErrorResponse reports an unknown feed; the error carries its name.
func NotFoundErrorResponse(name string) Response {
	return ErrorResponse(http.StatusNotFound, MessageNotFound, name)
}
