// Package main is the entry point for the TurtleIDE editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtleide/turtle/internal/app"
	"github.com/turtleide/turtle/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closer, err := app.OpenLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()

	application, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: opts.configPath,
		File:       opts.file,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			application.Quit()
		}
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (default "+config.DefaultPath()+")")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "TurtleIDE - a small editor for scripts\n\n")
		fmt.Fprintf(os.Stderr, "Usage: turtle [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+N new  Ctrl+O open  Ctrl+S save  Ctrl+W save as  Ctrl+Q quit\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+F find  F3 find next  Ctrl+T theme  Ctrl+L language\n")
		fmt.Fprintf(os.Stderr, "  F5 run  F6 run in terminal\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("TurtleIDE %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.file = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: only one file can be opened at a time\n")
		os.Exit(2)
	}

	if opts.configPath == "" {
		opts.configPath = config.DefaultPath()
	}
	return opts
}
