// Package main provides the Aura companion application. It runs an
// interactive terminal chat against an Aura reasoning service, opens a
// companion browser window whose current page is attached to questions as
// context, and can watch the clipboard to capture highlighted text.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mokshitha4/Aura/pkg/capture/page"
	"github.com/Mokshitha4/Aura/pkg/capture/selection"
	appconfig "github.com/Mokshitha4/Aura/pkg/config"
	"github.com/Mokshitha4/Aura/pkg/dispatch"
	"github.com/Mokshitha4/Aura/pkg/history"
	"github.com/Mokshitha4/Aura/pkg/logging"
	"github.com/Mokshitha4/Aura/pkg/session"
	"github.com/Mokshitha4/Aura/pkg/tui"
)

const version = "0.1.0"

// Options holds the command line configuration.
type Options struct {
	Endpoint       string
	ConfigPath     string
	NoContext      bool
	WatchSelection bool
	CaptureText    string
	ShowVersion    bool
}

func main() {
	opts := parseFlags()

	if opts.ShowVersion {
		fmt.Printf("Aura v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		cancel()
		log.Fatalf("Application error: %v", err)
	}
	cancel()
}

func parseFlags() *Options {
	opts := &Options{}

	flag.StringVar(&opts.Endpoint, "endpoint", "", "Aura service base URL (overrides config)")
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to config file (default: ~/.aura/config.yaml)")
	flag.BoolVar(&opts.NoContext, "no-context", false, "Do not attach page content to questions")
	flag.BoolVar(&opts.WatchSelection, "watch-selection", false, "Watch the clipboard and capture copied text")
	flag.StringVar(&opts.CaptureText, "capture", "", "Capture the given text and exit")
	flag.BoolVar(&opts.ShowVersion, "version", false, "Show version and exit")
	flag.Parse()

	return opts
}

func run(ctx context.Context, opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// New falls back to a stderr logger on error, so the handle is always
	// usable.
	logger, _ := logging.New("main")
	defer logger.Close()
	logger.Infof("aura v%s starting, endpoint=%s", version, cfg.Endpoint)

	client, err := dispatch.NewClient(cfg.Endpoint,
		dispatch.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	if err != nil {
		return fmt.Errorf("creating dispatch client: %w", err)
	}

	// One-shot capture does not need history, a browser, or the TUI.
	if opts.CaptureText != "" {
		listener := selection.NewListener(client)
		listener.Capture(ctx, opts.CaptureText)
		return nil
	}

	historyPath, err := history.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolving history path: %w", err)
	}
	store, err := history.NewFileStore(historyPath)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}

	controllerOpts := []session.ControllerOption{
		session.WithIncludeContext(cfg.IncludeContext && !opts.NoContext),
		session.WithContextBudget(cfg.ContextBudget),
	}

	// Token accounting is cosmetic, so a failed encoding load only logs.
	if counter, tcErr := session.NewTokenCounter(); tcErr != nil {
		logger.Warnf("token counter unavailable: %v", tcErr)
	} else {
		controllerOpts = append(controllerOpts, session.WithTokenCounter(counter))
	}

	// The companion browser is optional. When it cannot start, chat still
	// works without page context.
	if cfg.IncludeContext && !opts.NoContext {
		extractor, exErr := page.NewExtractor(cfg.RestrictedURLs)
		if exErr != nil {
			return fmt.Errorf("creating page extractor: %w", exErr)
		}
		if exErr = extractor.Start(); exErr != nil {
			logger.Warnf("companion browser unavailable, continuing without page context: %v", exErr)
		} else {
			defer extractor.Close()
			controllerOpts = append(controllerOpts, session.WithContextExtractor(extractor))
		}
	}

	controller := session.NewController(store, client, controllerOpts...)
	controller.Load()

	if cfg.WatchSelection || opts.WatchSelection {
		listener := selection.NewListener(client,
			selection.WithPollInterval(time.Duration(cfg.SelectionPollMillis)*time.Millisecond))
		go listener.Run(ctx)
	}

	executor := tui.NewExecutor(controller, cfg.Endpoint)
	return executor.Run(ctx)
}

func loadConfig(opts *Options) (*appconfig.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = appconfig.DefaultPath(); err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
	}

	cfg, err := appconfig.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}
	return cfg, nil
}
