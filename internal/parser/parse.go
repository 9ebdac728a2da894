package parser

import (
	"errors"
	"io"
	"strings"
)

// Outcome describes how much of a document was parsed.
type Outcome int

const (
	// Complete means the whole document was read.
	Complete Outcome = iota
	// Partial means parsing stopped after at least one event.
	Partial
	// Empty means parsing failed before the first event was complete.
	Empty
)

func (o Outcome) String() string {
	switch o {
	case Complete:
		return "complete"
	case Partial:
		return "partial"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// Classify returns the Outcome of a Parse call.
func Classify(l *Log, err error) Outcome {
	if err == nil {
		return Complete
	}
	if l == nil || l.Len() == 0 {
		return Empty
	}
	return Partial
}

// Parse reads every event from r. Parsing stops at the first error: the
// events read so far are returned together with the error, and a single
// diagnostic is written to logger. The returned Log is never nil.
func Parse(r io.Reader, logger Logger) (*Log, error) {
	l := NewLog()
	dec := NewDecoder(r)
	for {
		ev, err := dec.Next()
		if errors.Is(err, io.EOF) {
			err = dec.End()
		}
		if err != nil {
			if logger != nil {
				logger.Errorf("error parsing XML: %v", err)
			}
			return l, err
		}
		if ev == nil {
			return l, nil
		}
		l.append(*ev)
	}
}

// ParseString is Parse over an in-memory document.
func ParseString(doc string, logger Logger) (*Log, error) {
	return Parse(strings.NewReader(doc), logger)
}
