package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/cyra/evlog/internal/config"
	"github.com/cyra/evlog/internal/logging"
	"github.com/cyra/evlog/internal/parser"
	"github.com/cyra/evlog/internal/pipeline"
	"github.com/cyra/evlog/internal/report"
)

var version = "dev" // Set via ldflags: -X main.version=v1.0.0

type options struct {
	configPath  string
	file        string
	follow      bool
	watch       bool
	showVersion bool
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("evlog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "Path to YAML config file (optional)")
	fs.StringVar(&o.file, "file", "", "XML access log to read (default: built-in sample)")
	fs.BoolVar(&o.follow, "follow", false, "Print events as they are appended to the input file")
	fs.BoolVar(&o.watch, "watch", false, "Print the report again whenever the input file changes")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

// apply copies command line overrides onto cfg.
func (o options) apply(cfg *config.Config) {
	if o.file != "" {
		cfg.Input.Path = o.file
	}
	if o.follow {
		cfg.Input.Follow = true
	}
	if o.watch {
		cfg.Input.Watch = true
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, "evlog version", version)
		return 0
	}

	cfg := config.Default()
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "failed to load config: %v\n", err)
			return 1
		}
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid options: %v\n", err)
		return 1
	}

	logger := logging.NewLogger(stderr, cfg.Logging.Level, cfg.Logging.JSON)
	if opts.configPath != "" {
		logger.Debugf("config loaded from %s", opts.configPath)
	}

	switch {
	case cfg.Input.Follow:
		return follow(opts, cfg, logger, stdout)
	case cfg.Input.Watch:
		return watch(opts, cfg, logger, stdout)
	}

	if err := renderFile(cfg.Input.Path, cfg.Report.TimeLayout, logger, stdout); err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	return 0
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(strings.NewReader(sampleLog)), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func renderFile(path, layout string, logger *logging.Logger, w io.Writer) error {
	r, err := openInput(path)
	if err != nil {
		return err
	}
	defer r.Close()

	_, err = pipeline.Render(r, layout, logger, w)
	return err
}

func follow(opts options, cfg *config.Config, logger *logging.Logger, stdout io.Writer) int {
	ctx, cancel := signalContext()
	defer cancel()

	store := config.NewStore(cfg)
	if stop := watchConfig(opts, store, logger, nil); stop != nil {
		defer stop()
	}

	events := make(chan parser.Event, 100)
	pipeline.StartFollow(ctx, cfg.Input.Path, logger, events)

	if err := report.WriteHeader(stdout); err != nil {
		logger.Errorf("write report: %v", err)
		return 1
	}
	for ev := range events {
		if err := report.WriteEvent(stdout, ev, store.Current().Report.TimeLayout); err != nil {
			logger.Errorf("write report: %v", err)
			return 1
		}
	}
	return 0
}

func watch(opts options, cfg *config.Config, logger *logging.Logger, stdout io.Writer) int {
	ctx, cancel := signalContext()
	defer cancel()

	store := config.NewStore(cfg)

	var mu sync.Mutex
	render := func() {
		mu.Lock()
		defer mu.Unlock()
		if err := renderFile(cfg.Input.Path, store.Current().Report.TimeLayout, logger, stdout); err != nil {
			logger.Errorf("%v", err)
		}
	}

	stopInput, err := pipeline.WatchInput(cfg.Input.Path, logger, render)
	if err != nil {
		logger.Errorf("input watcher disabled: %v", err)
		return 1
	}
	defer stopInput()

	if stop := watchConfig(opts, store, logger, func(*config.Config) { render() }); stop != nil {
		defer stop()
	}

	render()
	logger.Infof("watching %s", cfg.Input.Path)

	<-ctx.Done()
	logger.Info("shutting down...")
	return 0
}

// watchConfig keeps store in sync with the config file, if one was given.
func watchConfig(opts options, store *config.Store, logger *logging.Logger, onReload func(*config.Config)) func() {
	if opts.configPath == "" {
		return nil
	}
	stop, err := config.WatchFile(opts.configPath, store, opts.apply, logger, onReload)
	if err != nil {
		logger.Errorf("config watcher disabled: %v", err)
		return nil
	}
	return stop
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(ch)
	}()
	return ctx, cancel
}
