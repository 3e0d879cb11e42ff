package usecase

import "fmt"

// ErrorCode classifies why a reply could not be produced.
type ErrorCode string

const (
	// CodeInvalidMessage means the visitor's message was rejected.
	CodeInvalidMessage ErrorCode = "INVALID_MESSAGE"
	// CodeRepliesUnavailable means the reply set could not be loaded.
	CodeRepliesUnavailable ErrorCode = "REPLIES_UNAVAILABLE"
)

const (
	reasonEmptyMessage   = "empty_message"
	reasonMessageTooLong = "message_too_long"
	reasonLoadReplies    = "ssm_load_error"
)

// Error is a reply failure. Reason is a short snake_case tag for logs.
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("reply: %s (%s)", e.Code, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Retryable reports whether the same message may succeed later.
func (e *Error) Retryable() bool {
	return e != nil && e.Code == CodeRepliesUnavailable
}

func invalidMessage(reason string) *Error {
	return &Error{Code: CodeInvalidMessage, Reason: reason}
}

func repliesUnavailable(err error) *Error {
	return &Error{Code: CodeRepliesUnavailable, Reason: reasonLoadReplies, Err: err}
}
