package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DateLayout matches dates like 27/May/1999:02:32:46. Month names are
// always English, whatever the host locale.
const DateLayout = "02/Jan/2006:15:04:05"

// Example document:
// <log>
//   <event date="27/May/1999:02:32:46" result="success">
//     <ip-from>195.151.62.18</ip-from>
//     <method>GET</method>
//     <url-to>/mise/</url-to>
//     <response>200</response>
//   </event>
// </log>

// eventFields are the child elements read from every event, in check order.
var eventFields = []string{"ip-from", "method", "url-to", "response"}

// pending is an event whose start tag has been read.
type pending struct {
	index  int
	date   *string
	result *string
	fields map[string]*strings.Builder
	done   bool
}

// frame is an open element. ev is set for event elements, text for the
// first occurrence of a field directly below an event.
type frame struct {
	ev   *pending
	text *strings.Builder
}

// Decoder reads events one at a time from an XML stream. Events are found
// at any depth, including inside other events, and come out in the order
// their start tags appear. When a field element is repeated the first one
// is used; its value is all text below it.
type Decoder struct {
	src    *sourceReader
	d      *xml.Decoder
	stack  []frame
	queue  []*pending
	root   bool
	closed bool
	index  int
	err    error
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	src := &sourceReader{r: r}
	return &Decoder{src: src, d: xml.NewDecoder(src)}
}

// sourceReader remembers read failures so they are not mistaken for bad markup.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = err
	}
	return n, err
}

// Next returns the next event, or io.EOF as soon as the root element is
// closed; nothing after the root end tag is read. Use End to check the rest
// of the stream. Failures of the underlying reader are returned wrapped but
// without ErrMalformedXML. After any error the Decoder keeps returning it.
func (d *Decoder) Next() (*Event, error) {
	if d.err != nil {
		return nil, d.err
	}
	ev, err := d.next()
	if err != nil {
		d.err = err
	}
	return ev, err
}

// End reads the rest of the stream once Next has returned io.EOF. Another
// element or non-whitespace text after the root is ErrMalformedXML.
func (d *Decoder) End() error {
	if !d.closed {
		return fmt.Errorf("%w: root element not closed", ErrMalformedXML)
	}
	for {
		tok, err := d.token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("%w: more than one root element", ErrMalformedXML)
		case xml.CharData:
			if !blank(t) {
				return fmt.Errorf("%w: text outside root element", ErrMalformedXML)
			}
		}
	}
}

func (d *Decoder) token() (xml.Token, error) {
	tok, err := d.d.Token()
	if d.src.err != nil {
		return nil, fmt.Errorf("read xml: %w", d.src.err)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	return tok, err
}

func (d *Decoder) next() (*Event, error) {
	for {
		if len(d.queue) > 0 && d.queue[0].done {
			p := d.queue[0]
			d.queue = d.queue[1:]
			return p.event()
		}
		if d.closed {
			return nil, io.EOF
		}

		tok, err := d.token()
		if errors.Is(err, io.EOF) {
			if !d.root {
				return nil, fmt.Errorf("%w: no root element", ErrMalformedXML)
			}
			return nil, fmt.Errorf("%w: unexpected end of input", ErrMalformedXML)
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			d.start(t)
		case xml.EndElement:
			d.end()
		case xml.CharData:
			if len(d.stack) == 0 {
				if !blank(t) {
					return nil, fmt.Errorf("%w: text outside root element", ErrMalformedXML)
				}
				continue
			}
			for _, f := range d.stack {
				if f.text != nil {
					f.text.Write(t)
				}
			}
		}
	}
}

func (d *Decoder) start(t xml.StartElement) {
	d.root = true
	name := t.Name.Local

	var f frame
	if n := len(d.stack); n > 0 {
		if parent := d.stack[n-1].ev; parent != nil && isField(name) {
			if _, seen := parent.fields[name]; !seen {
				f.text = &strings.Builder{}
				parent.fields[name] = f.text
			}
		}
	}

	if name == "event" {
		d.index++
		p := &pending{index: d.index, fields: make(map[string]*strings.Builder, len(eventFields))}
		for _, a := range t.Attr {
			if a.Name.Space != "" {
				continue
			}
			v := a.Value
			switch {
			case a.Name.Local == "date" && p.date == nil:
				p.date = &v
			case a.Name.Local == "result" && p.result == nil:
				p.result = &v
			}
		}
		d.queue = append(d.queue, p)
		f.ev = p
	}

	d.stack = append(d.stack, f)
}

func (d *Decoder) end() {
	n := len(d.stack)
	if ev := d.stack[n-1].ev; ev != nil {
		ev.done = true
	}
	d.stack = d.stack[:n-1]
	if len(d.stack) == 0 {
		d.closed = true
	}
}

func isField(name string) bool {
	for _, f := range eventFields {
		if f == name {
			return true
		}
	}
	return false
}

func blank(b []byte) bool {
	return len(bytes.Trim(b, " \t\r\n\ufeff")) == 0
}

// event validates the collected values. Fields are checked in the order
// date, result, ip-from, method, url-to, response.
func (p *pending) event() (*Event, error) {
	fail := func(field string, err error) error {
		return &EventError{Index: p.index, Field: field, Err: err}
	}

	if p.date == nil {
		return nil, fail("date", ErrMissingField)
	}
	ts, err := parseDate(*p.date)
	if err != nil {
		return nil, fail("date", err)
	}
	if p.result == nil {
		return nil, fail("result", ErrMissingField)
	}

	vals := make(map[string]string, len(eventFields))
	for _, name := range eventFields {
		b, ok := p.fields[name]
		if !ok {
			return nil, fail(name, ErrMissingField)
		}
		vals[name] = b.String()
	}

	raw := vals["response"]
	code, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return nil, fail("response", fmt.Errorf("%w %q: %v", ErrInvalidResponse, raw, err))
	}

	ev := NewEvent(ts, *p.result, vals["ip-from"], vals["method"], vals["url-to"], int(code))
	return &ev, nil
}

// parseDate parses s with DateLayout. Every field must be written at full
// width; time.Parse alone accepts a one-digit hour.
func parseDate(s string) (time.Time, error) {
	ts, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	if !strings.EqualFold(ts.Format(DateLayout), s) {
		return time.Time{}, fmt.Errorf("%w %q: want layout %s", ErrInvalidDate, s, DateLayout)
	}
	return ts, nil
}
