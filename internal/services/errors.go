package services

import "errors"

type ErrorCode string

const (
	ErrorInvalid          ErrorCode = "invalid"
	ErrorNotFound         ErrorCode = "not_found"
	ErrorInsufficientData ErrorCode = "insufficient_data"
	ErrorBadGateway       ErrorCode = "bad_gateway"
)

// ServiceError is the typed failure surfaced to the API layer, which maps
// each code to an HTTP status.
type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewNotFoundError(msg string) error { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewInsufficientDataError(msg string) error {
	return &ServiceError{Code: ErrorInsufficientData, Message: msg}
}
func NewBadGatewayError(msg string) error {
	return &ServiceError{Code: ErrorBadGateway, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

var (
	// ErrUnknownSender means an inbound email could not be matched to a vendor.
	ErrUnknownSender = errors.New("sender not recognized as a vendor")
	// ErrNoMatchingRfp means an inbound email could not be matched to an RFP.
	ErrNoMatchingRfp = errors.New("could not match email to an RFP")
)
