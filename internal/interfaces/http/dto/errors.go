package dto

import "net/http"

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeInvalidCredentials is the single code for every login failure
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeCategoryInUse is used when deleting a category that still has items
	ErrCodeCategoryInUse = "ERR_CATEGORY_IN_USE"
)

// Upload error codes
const (
	// ErrCodeEmptyFile is used when the uploaded file has no content
	ErrCodeEmptyFile = "ERR_EMPTY_FILE"
	// ErrCodeUnsupportedFileType is used for files outside the image whitelist
	ErrCodeUnsupportedFileType = "ERR_UNSUPPORTED_FILE_TYPE"
	// ErrCodeFileTooLarge is used when a file exceeds the byte limit
	ErrCodeFileTooLarge = "ERR_FILE_TOO_LARGE"
	// ErrCodeImageTooLarge is used when an image exceeds the pixel limit
	ErrCodeImageTooLarge = "ERR_IMAGE_TOO_LARGE"
	// ErrCodeInvalidImage is used when the payload is not a decodable image
	ErrCodeInvalidImage = "ERR_INVALID_IMAGE"
)

// Availability error codes
const (
	// ErrCodeUnavailable is used when a backing service is unreachable
	ErrCodeUnavailable = "ERR_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeCategoryInUse: http.StatusConflict,

	ErrCodeEmptyFile:           http.StatusBadRequest,
	ErrCodeUnsupportedFileType: http.StatusUnsupportedMediaType,
	ErrCodeFileTooLarge:        http.StatusRequestEntityTooLarge,
	ErrCodeImageTooLarge:       http.StatusRequestEntityTooLarge,
	ErrCodeInvalidImage:        http.StatusBadRequest,

	ErrCodeUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"CONFLICT":              ErrCodeConflict,
	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"FORBIDDEN":             ErrCodeForbidden,
	"UNAVAILABLE":           ErrCodeUnavailable,
	"CATEGORY_IN_USE":       ErrCodeCategoryInUse,
	"INVALID_CREDENTIALS":   ErrCodeInvalidCredentials,
	"INVALID_CATEGORY_NAME": ErrCodeValidation,
	"INVALID_COLOR":         ErrCodeValidation,
	"INVALID_ITEM":          ErrCodeValidation,
	"INVALID_ITEM_NAME":     ErrCodeValidation,
	"INVALID_PRICE":         ErrCodeValidation,
	"INVALID_OPTION":        ErrCodeValidation,
	"INVALID_SETTING_KEY":   ErrCodeValidation,
	"INVALID_SETTINGS":      ErrCodeValidation,
	"INVALID_EMAIL":         ErrCodeValidation,
	"WEAK_PASSWORD":         ErrCodeValidation,
	"INVALID_KEY":           ErrCodeValidation,
	"EMPTY_FILE":            ErrCodeEmptyFile,
	"UNSUPPORTED_FILE_TYPE": ErrCodeUnsupportedFileType,
	"FILE_TOO_LARGE":        ErrCodeFileTooLarge,
	"IMAGE_TOO_LARGE":       ErrCodeImageTooLarge,
	"INVALID_IMAGE":         ErrCodeInvalidImage,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes pass through as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
