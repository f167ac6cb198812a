package types

import "errors"

var (
	ErrBlobNotFound          = errors.New("blob not found")
	ErrSubmissionNotInserted = errors.New("sos request was not inserted")
)
