package pipeline

import (
	"io"

	"github.com/cyra/evlog/internal/fswatch"
	"github.com/cyra/evlog/internal/logging"
	"github.com/cyra/evlog/internal/parser"
	"github.com/cyra/evlog/internal/report"
)

// Render parses the document in r and prints the report to w. A parse
// failure is logged and the events read before it are still printed; the
// returned error is only set when writing the report fails.
func Render(r io.Reader, layout string, logger *logging.Logger, w io.Writer) (parser.Outcome, error) {
	l, err := parser.Parse(r, logger)
	outcome := parser.Classify(l, err)
	logger.Debugf("parsed %d events (%s)", l.Len(), outcome)

	if err := report.Write(w, l, layout); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// WatchInput calls render every time the input file at path changes.
func WatchInput(path string, logger *logging.Logger, render func()) (stop func(), err error) {
	return fswatch.Watch(path, fswatch.DefaultDebounce, func() {
		logger.Infof("input change detected: %s", path)
		render()
	}, func(err error) {
		logger.Errorf("input watcher error: %v", err)
	})
}
