package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/cyra/evlog/internal/parser"
)

// Header is printed once before the event lines.
const Header = "Events in Log:"

// FormatEvent renders ev as a single report line. An empty layout uses
// time.Time's default String form.
func FormatEvent(ev parser.Event, layout string) string {
	ts := ev.Timestamp.String()
	if layout != "" {
		ts = ev.Timestamp.Format(layout)
	}
	return fmt.Sprintf("Date: %s, Result: %s, IP: %s, Method: %s, URL: %s, Response: %d",
		ts, ev.Result, ev.SourceIP, ev.Method, ev.TargetURL, ev.ResponseCode)
}

// Write prints the header followed by one line per event.
func Write(w io.Writer, l *parser.Log, layout string) error {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, ev := range l.Events() {
		b.WriteString(FormatEvent(ev, layout))
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteHeader prints only the header, for streamed output.
func WriteHeader(w io.Writer) error {
	_, err := fmt.Fprintln(w, Header)
	return err
}

// WriteEvent prints a single event line.
func WriteEvent(w io.Writer, ev parser.Event, layout string) error {
	_, err := fmt.Fprintln(w, FormatEvent(ev, layout))
	return err
}
