// htmseq feeds symbol sequences through an HTM region and reports how well
// it learns to predict them.
//
// Modes:
//   - batch: -text runs the text -passes times, one summary line per pass
//   - interactive: a readline shell stepping the region symbol by symbol
//   - serve: -serve addr streams every tick to websocket clients on /ws
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"
)

const version = "0.3.0"

func main() {
	configPath := flag.String("config", "", "Config file path (default: ./htmseq.yaml)")
	text := flag.String("text", "", "Text to learn, one symbol per character")
	passes := flag.Int("passes", 0, "Number of passes over -text (overrides config)")
	verbosity := flag.Int("verbosity", -1, "Region verbosity 0-5 (overrides config)")
	interactive := flag.Bool("interactive", false, "Open the interactive shell")
	serveAddr := flag.String("serve", "", "Address to stream ticks on, e.g. :8090")
	initConfig := flag.Bool("init", false, "Initialize default config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("htmseq %s\n", version)
		os.Exit(0)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = DefaultConfigPath()
	}

	if *initConfig {
		if err := InitConfig(cfgPath); err != nil {
			fmt.Printf("Failed to initialize config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config initialized at: %s\n", cfgPath)
		os.Exit(0)
	}

	cfg, err := LoadOrDefault(cfgPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *text != "" {
		cfg.Run.Text = *text
	}
	if *passes > 0 {
		cfg.Run.Passes = *passes
	}
	if *verbosity >= 0 {
		cfg.Region.Verbosity = *verbosity
	}
	if *serveAddr != "" {
		cfg.Run.Serve = *serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *interactive); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[htmseq] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config, interactive bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runID := uuid.NewString()
	logger := log.New(os.Stderr, "[htmseq] ", log.LstdFlags)

	r, err := newRunner(cfg, runID, logger, os.Stdout)
	if err != nil {
		return err
	}
	logger.Printf("run %s: %dx%d region, %d input bits", runID, r.region.Width(), r.region.Height(), r.region.InputSize())

	if cfg.Run.Serve != "" {
		hub := NewHub()
		go hub.Run(ctx)
		r.hub = hub

		errc := make(chan error, 1)
		go func() { errc <- serve(ctx, cfg.Run.Serve, hub) }()
		defer func() {
			cancel()
			if err := <-errc; err != nil {
				logger.Printf("server: %v", err)
			}
		}()
	}

	if !interactive && cfg.Run.Text == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		interactive = true
	}

	if interactive {
		sh, err := NewShell(r, cfg.Run.HistoryFile)
		if err != nil {
			return fmt.Errorf("failed to start shell: %w", err)
		}
		return sh.Run(ctx)
	}

	if err := r.runPasses(ctx, cfg.Run.Text, cfg.Run.Passes); err != nil {
		return err
	}
	if cfg.Run.Serve != "" {
		logger.Printf("run finished, still serving; interrupt to stop")
		<-ctx.Done()
	}
	return nil
}
