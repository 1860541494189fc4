// Package apierror turns failed API calls into the single display string the
// view-states show to the user.
package apierror

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// UnknownMessage is shown when a failure carries nothing more specific.
const UnknownMessage = "An unknown error occurred!"

// ErrNotFound matches any Error produced by a 404 response.
var ErrNotFound = errors.New("resource not found")

// Kind classifies where a request failed.
type Kind int

const (
	// KindNetwork means no response reached us (dial, TLS, reset, cancelled context).
	KindNetwork Kind = iota + 1
	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP
	// KindDecode means a 2xx body could not be decoded.
	KindDecode
)

// Error is the failure value returned by every resource client call.
// Its Error method yields the normalized display string.
type Error struct {
	Kind       Kind
	Status     int
	StatusText string
	Body       []byte
	Err        error
}

// Network wraps a transport-level failure.
func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

// FromResponse builds an Error for a non-2xx response.
func FromResponse(status int, statusText string, body []byte) *Error {
	if statusText == "" {
		statusText = http.StatusText(status)
	}
	return &Error{Kind: KindHTTP, Status: status, StatusText: statusText, Body: body}
}

// Decode wraps a failure to decode a successful response body.
func Decode(status int, err error) *Error {
	return &Error{Kind: KindDecode, Status: status, Err: err}
}

func (e *Error) Error() string {
	return Normalize(e)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNotFound) work for 404 responses.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindHTTP && e.Status == http.StatusNotFound
}

// Normalize converts any failure into one human-readable string:
//  1. network failures → "Error: <cause>"
//  2. a JSON body with a non-empty "error" field → that value
//  3. a JSON body with a non-empty "message" field → that value
//  4. other HTTP failures → "Error Code: <status>\nMessage: <status text>"
//  5. everything else → UnknownMessage
func Normalize(err error) string {
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return UnknownMessage
	}

	switch e.Kind {
	case KindNetwork:
		cause := ""
		if e.Err != nil {
			cause = e.Err.Error()
		}
		return "Error: " + cause
	case KindHTTP:
		if msg, ok := bodyMessage(e.Body); ok {
			return msg
		}
		return fmt.Sprintf("Error Code: %d\nMessage: %s", e.Status, e.StatusText)
	default:
		return UnknownMessage
	}
}

// bodyMessage extracts the "error" or "message" field of a JSON object body.
func bodyMessage(body []byte) (string, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return "", false
	}
	if msg, ok := fieldText(fields["error"]); ok {
		return msg, true
	}
	return fieldText(fields["message"])
}

// fieldText renders a field value for display. Strings are returned as-is,
// objects carrying a "message" string yield that message, and any other
// non-empty value is returned as its raw JSON text.
func fieldText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}

	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Message != "" {
		return nested.Message, true
	}

	switch string(raw) {
	case "null", "false", "0":
		return "", false
	}
	return string(raw), true
}
