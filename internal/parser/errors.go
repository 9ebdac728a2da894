package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedXML is returned when the document markup cannot be read.
	ErrMalformedXML = errors.New("malformed xml")
	// ErrMissingField is returned when an event lacks a required attribute or element.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidDate is returned when the date attribute does not match DateLayout.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidResponse is returned when the response element is not an integer.
	ErrInvalidResponse = errors.New("invalid response code")
)

// EventError reports which event and field failed to parse.
// Index is the 1-based position of the event in the document.
type EventError struct {
	Index int
	Field string
	Err   error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("event %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *EventError) Unwrap() error {
	return e.Err
}
