package fetch

import "fmt"

// ConnectionError is a transport-level failure: DNS, refused connection,
// timeout or TLS. No response was usable.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// StatusError is a response with any status other than 200.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status from %s: %d %s", e.URL, e.Code, e.Status)
}

// PayloadError is a response body that is not UTF-8 text or not
// syntactically valid JSON.
type PayloadError struct {
	URL string
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("malformed payload from %s: %v", e.URL, e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}
