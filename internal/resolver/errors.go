package resolver

import (
	"fmt"
	"strings"
)

// TransportError reports a request that failed at the network or HTTP layer:
// connection failure, timeout, cancellation or a non-2xx status.
// StatusCode is zero when no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		if e.Body == "" {
			return fmt.Sprintf("resolver: GET %s returned status %d", e.URL, e.StatusCode)
		}
		return fmt.Sprintf("resolver: GET %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("resolver: GET %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NotFoundError reports a geocoding response with no places for the ZIP code.
type NotFoundError struct {
	ZipCode string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resolver: no places found for ZIP %s", e.ZipCode)
}

// InvalidDataError reports a response that decoded but did not carry the
// required fields with usable types. Fields names every offending JSON field;
// Err chains the underlying decode or coercion failures.
type InvalidDataError struct {
	Reason string
	Fields []string
	Err    error
}

func (e *InvalidDataError) Error() string {
	var b strings.Builder
	b.WriteString("resolver: ")
	b.WriteString(e.Reason)
	if len(e.Fields) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Fields, ", "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *InvalidDataError) Unwrap() error { return e.Err }
