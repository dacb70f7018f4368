package jenkins

import (
	"errors"
	"fmt"
)

var (
	ErrAuthFailed = errors.New("authentication failed")
	ErrNotFound   = errors.New("job or build not found")
)

// StatusError reports a non-401/404 HTTP failure from Jenkins.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// NetworkError reports a transport-level failure (DNS, connect, TLS, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network or connection error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserError wraps errors with user-facing messages for the MCP and CLI layers.
type UserError struct {
	Message string
	Hint    string
	Err     error
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n\nDetails: %v", e.Err)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// WrapError converts client errors into user-friendly messages.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrAuthFailed) {
		return &UserError{
			Message: "Authentication failed",
			Hint:    "Check the JENKINS_USER and JENKINS_API_TOKEN values for this instance.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrNotFound) {
		return &UserError{
			Message: "Job or build not found",
			Hint:    "Check the job name and build number. Nested jobs use /job/ separators, e.g. Folder/job/my-job.",
			Err:     err,
		}
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return &UserError{
			Message: "Could not reach the Jenkins instance",
			Hint:    "Check the instance URL and your network connection.",
			Err:     err,
		}
	}

	return err
}
