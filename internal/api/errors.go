package api

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
)

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

type notFoundError struct {
	msg string
}

func (e notFoundError) Error() string {
	return e.msg
}

func (e notFoundError) Unwrap() error {
	return ErrNotFound
}

func newNotFound(msg string) error {
	return notFoundError{msg: msg}
}
