package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/cyra/evlog/internal/logging"
	"github.com/cyra/evlog/internal/logtail"
	"github.com/cyra/evlog/internal/parser"
)

// StartFollow tails the XML log at path and emits each event on events as
// soon as its closing tag is written. The stream ends when the root element
// is closed; the first error is logged and ends it too. events is closed
// when the stream ends or ctx is canceled.
func StartFollow(ctx context.Context, path string, logger *logging.Logger, events chan<- parser.Event) {
	ctx, cancel := context.WithCancel(ctx)
	t := logtail.New(path, logger)
	lines := make(chan string, 100)
	tailErr := make(chan error, 1)

	go func() {
		tailErr <- t.Tail(ctx, lines)
		close(lines)
	}()

	pr, pw := io.Pipe()

	// Feed tailed lines to the decoder. A tail failure surfaces as a read error.
	go func() {
		for {
			select {
			case <-ctx.Done():
				pw.CloseWithError(ctx.Err())
				return
			case line, ok := <-lines:
				if !ok {
					pw.CloseWithError(<-tailErr)
					return
				}
				if _, err := io.WriteString(pw, line); err != nil {
					return
				}
			}
		}
	}()

	go func() {
		defer close(events)
		defer pr.Close()
		defer cancel()

		dec := parser.NewDecoder(pr)
		for {
			ev, err := dec.Next()
			switch {
			case errors.Is(err, io.EOF):
				logger.Infof("end of log %s", path)
				return
			case ctx.Err() != nil:
				return
			case isParseError(err):
				logger.Errorf("error parsing XML: %v", err)
				return
			case err != nil:
				logger.Errorf("follow %s: %v", path, err)
				return
			}

			select {
			case events <- *ev:
			case <-ctx.Done():
				return
			}
		}
	}()
}

func isParseError(err error) bool {
	var evErr *parser.EventError
	return errors.Is(err, parser.ErrMalformedXML) || errors.As(err, &evErr)
}
