package parser

import "time"

// Event is a single access-log entry read from an <event> element.
type Event struct {
	Timestamp    time.Time
	Result       string
	SourceIP     string
	Method       string
	TargetURL    string
	ResponseCode int
}

// NewEvent builds an Event from all of its fields.
func NewEvent(ts time.Time, result, sourceIP, method, targetURL string, responseCode int) Event {
	return Event{
		Timestamp:    ts,
		Result:       result,
		SourceIP:     sourceIP,
		Method:       method,
		TargetURL:    targetURL,
		ResponseCode: responseCode,
	}
}

// Log holds events in the order they appear in the source document.
// Only the parser appends to it.
type Log struct {
	events []Event
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Events returns a copy of the parsed events.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of events in the log.
func (l *Log) Len() int {
	return len(l.events)
}

func (l *Log) append(ev Event) {
	l.events = append(l.events, ev)
}

// Logger is the side channel used to report parse diagnostics.
type Logger interface {
	Errorf(format string, args ...any)
}
