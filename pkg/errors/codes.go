package errors

import "net/http"

// ErrorCode identifies a failure category. Codes are stable strings so they
// can be emitted as metric labels and returned in API error bodies.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	CodeOK       ErrorCode = "OK"
	CodeUnknown  ErrorCode = "GATEWAY_000"
	CodeInternal ErrorCode = "GATEWAY_001"

	// CodeBadRequest covers malformed request bodies and missing fields.
	CodeBadRequest ErrorCode = "GATEWAY_002"

	// CodeInvalidConfig covers startup-time configuration failures.
	CodeInvalidConfig ErrorCode = "GATEWAY_003"

	// CodeBackendFailure covers any failed call to one of the chemistry
	// backend tools: network error, timeout, non-2xx status, unparseable
	// body. Recovered locally by the dispatcher's fallback branch.
	CodeBackendFailure ErrorCode = "GATEWAY_010"

	// CodeBackendTimeout is a backend failure whose cause was a deadline.
	CodeBackendTimeout ErrorCode = "GATEWAY_011"

	// CodeFallbackFailure means the fallback completion service itself
	// failed. This is the only dispatch error that reaches the caller.
	CodeFallbackFailure ErrorCode = "GATEWAY_012"
)

// HTTPStatus maps an ErrorCode to the HTTP status the handler layer returns.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeBackendFailure, CodeFallbackFailure:
		return http.StatusBadGateway
	case CodeBackendTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
