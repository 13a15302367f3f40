package apierr

import "fmt"

// Error attaches an HTTP status and a stable machine code to an error so
// handlers can surface it without per-call mapping tables.
type Error struct {
	Status int
	Code   string
	Err    error
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return e.Err.Error()
	case e.Code != "":
		return e.Code
	case e.Status != 0:
		return fmt.Sprintf("http %d", e.Status)
	default:
		return "request failed"
	}
}

func (e *Error) Unwrap() error { return e.Err }
