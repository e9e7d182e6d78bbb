package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"NewsBuddy/internal/app"
	"NewsBuddy/internal/config"
	"NewsBuddy/internal/logging"
)

func main() {
	_ = godotenv.Load()

	flag.Usage = usage
	flag.Parse()

	command := "run"
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
	}

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	ctx := context.Background()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	switch command {
	case "init":
		// Schema creation already happened inside app.New.
		logger.Info("database initialized")

	case "fetch":
		count := application.FetchOnce(ctx)
		logger.Info("fetch complete", "new_articles", count)

	case "summarize":
		summary, err := application.Summarize(ctx)
		if err != nil {
			logger.Error("summary generation failed", "error", err)
			os.Exit(1)
		}
		logger.Info("summary generated", "date", summary.Date)

	case "serve":
		if err := application.Serve(signalContext(ctx)); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}

	case "run":
		if err := application.Run(signalContext(ctx)); err != nil {
			logger.Error("application stopped", "error", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		usage()
		os.Exit(2)
	}
}

func signalContext(parent context.Context) context.Context {
	ctx, _ := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	return ctx
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: newsbuddy [command]

Commands:
  init       initialize the database schema and exit
  fetch      fetch articles from all sources once
  summarize  generate today's digest once
  serve      start the web server only
  run        initial fetch, scheduler and web server (default)
`)
}
