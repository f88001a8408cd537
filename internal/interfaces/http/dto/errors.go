package dto

import "net/http"

// Error codes returned in ErrorInfo.Code. Domain errors are normalized to
// these before they reach the client.
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation = "ERR_VALIDATION"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeTooLarge     = "ERR_REQUEST_TOO_LARGE"

	ErrCodeTenantRequired = "ERR_TENANT_REQUIRED"
	ErrCodeForbidden      = "ERR_FORBIDDEN"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeIdempotencyConflict = "ERR_IDEMPOTENCY_IN_PROGRESS"

	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Accounting error codes
const (
	ErrCodeChartInconsistent         = "ERR_CHART_OF_ACCOUNTS_INCONSISTENT"
	ErrCodeUnbalancedEntries         = "ERR_UNBALANCED_ENTRIES"
	ErrCodeInvalidEntry              = "ERR_INVALID_ENTRY"
	ErrCodeDestructiveCancelDisabled = "ERR_DESTRUCTIVE_CANCEL_DISABLED"
	ErrCodeNotReversible             = "ERR_NOT_REVERSIBLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,

	ErrCodeTenantRequired: http.StatusBadRequest,
	ErrCodeForbidden:      http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeIdempotencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	// both are server-side defects the caller cannot fix
	ErrCodeChartInconsistent:         http.StatusInternalServerError,
	ErrCodeUnbalancedEntries:         http.StatusInternalServerError,
	ErrCodeInvalidEntry:              http.StatusUnprocessableEntity,
	ErrCodeDestructiveCancelDisabled: http.StatusForbidden,
	ErrCodeNotReversible:             http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainCodeMapping maps the codes carried by domain errors to API codes
var domainCodeMapping = map[string]string{
	"NOT_FOUND":                      ErrCodeNotFound,
	"ALREADY_EXISTS":                 ErrCodeAlreadyExists,
	"INVALID_INPUT":                  ErrCodeInvalidInput,
	"INVALID_STATE":                  ErrCodeInvalidState,
	"CONCURRENT_MODIFICATION":        ErrCodeConcurrencyConflict,
	"CHART_OF_ACCOUNTS_INCONSISTENT": ErrCodeChartInconsistent,
	"UNBALANCED_ENTRIES":             ErrCodeUnbalancedEntries,
	"INVALID_ENTRY":                  ErrCodeInvalidEntry,
	"DESTRUCTIVE_CANCEL_DISABLED":    ErrCodeDestructiveCancelDisabled,
	"NOT_REVERSIBLE":                 ErrCodeNotReversible,
}

// NormalizeErrorCode converts a domain error code to its API code. Codes that
// are already API codes, or unknown, are returned unchanged.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
