package server

import "net/http"

// ErrorKind classifies every failure the handlers can report
type ErrorKind string

const (
	KindMethodNotAllowed     ErrorKind = "method_not_allowed"
	KindMalformedBody        ErrorKind = "malformed_body"
	KindEmptyForm            ErrorKind = "empty_form"
	KindInvalidEmail         ErrorKind = "invalid_email"
	KindInvalidCitizenStatus ErrorKind = "invalid_citizen_status"
	KindTooManyPhotos        ErrorKind = "too_many_photos"
	KindPersistence          ErrorKind = "persistence_error"
	KindNotFound             ErrorKind = "not_found"
)

var kindStatus = map[ErrorKind]int{
	KindMethodNotAllowed:     http.StatusBadRequest,
	KindMalformedBody:        http.StatusBadRequest,
	KindEmptyForm:            http.StatusBadRequest,
	KindInvalidEmail:         http.StatusBadRequest,
	KindInvalidCitizenStatus: http.StatusBadRequest,
	KindTooManyPhotos:        http.StatusBadRequest,
	KindPersistence:          http.StatusInternalServerError,
	KindNotFound:             http.StatusNotFound,
}

func (k ErrorKind) Status() int {
	if status, ok := kindStatus[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// requestError is returned to the client as-is, so message must never carry
// internal detail.
type requestError struct {
	kind    ErrorKind
	message string
}

func newRequestError(kind ErrorKind, message string) *requestError {
	return &requestError{kind: kind, message: message}
}

func (e *requestError) Error() string {
	return string(e.kind) + ": " + e.message
}

const (
	msgSaved          = "SOS request saved successfully"
	msgEmptyForm      = "No formData was provided"
	msgInvalidEmail   = "The email address provided is not valid"
	msgInvalidCitizen = "usCitizen must be either Yes or No"
	msgTooManyPhotos  = "A maximum of 5 photos can be uploaded"
	msgPersistence    = "Failed to save SOS request"
	msgImageNotFound  = "Image not found. Please check and try again"
	msgDatabaseDown   = "database unavailable"
)
