package apperr

import "errors"

type Code string

const (
	CodeNotFound   Code = "NOT_FOUND"
	CodeBadRequest Code = "BAD_REQUEST"
)

// Error is a terminal domain error. The handler layer maps the code to an
// HTTP status; everything else surfaces as an internal error.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func BadRequest(msg string) *Error {
	return &Error{Code: CodeBadRequest, Message: msg}
}

// As unwraps err into *Error when it carries a domain code.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
