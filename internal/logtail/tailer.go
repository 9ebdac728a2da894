package logtail

import (
	"context"
	"fmt"

	"github.com/hpcloud/tail"

	"github.com/cyra/evlog/internal/logging"
)

// Tailer streams lines from an XML log file from its first line onward,
// then follows it as new events are appended.
type Tailer struct {
	path   string
	logger *logging.Logger
}

// New creates a new Tailer for the given file path.
func New(path string, logger *logging.Logger) *Tailer {
	return &Tailer{
		path:   path,
		logger: logger,
	}
}

// Tail sends each line (newline restored) to out until ctx is done.
func (t *Tailer) Tail(ctx context.Context, out chan<- string) error {
	cfg := tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Poll:      true,
		Logger:    tail.DiscardingLogger,
	}

	tf, err := tail.TailFile(t.path, cfg)
	if err != nil {
		return fmt.Errorf("tail %s: %w", t.path, err)
	}
	defer tf.Cleanup()

	t.logger.Infof("following %s", t.path)

	for {
		select {
		case <-ctx.Done():
			_ = tf.Stop()
			return ctx.Err()
		case line, ok := <-tf.Lines:
			if !ok {
				return tf.Err()
			}
			if line.Err != nil {
				t.logger.Errorf("tail error: %v", line.Err)
				continue
			}
			select {
			case out <- line.Text + "\n":
			case <-ctx.Done():
				_ = tf.Stop()
				return ctx.Err()
			}
		}
	}
}
