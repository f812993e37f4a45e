package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aluiziolira/review-harvester/browser"
	"github.com/aluiziolira/review-harvester/config"
	"github.com/aluiziolira/review-harvester/harvest"
	"github.com/aluiziolira/review-harvester/models"
	"github.com/aluiziolira/review-harvester/output"
	"github.com/aluiziolira/review-harvester/server"
	"github.com/aluiziolira/review-harvester/suggest"
)

func main() {
	defaults := config.DefaultConfig()

	listenAddr := flag.String("addr", config.EnvString("HARVESTER_ADDR", defaults.ListenAddr), "HTTP listen address")
	targetURL := flag.String("url", "", "Harvest this URL once and exit instead of serving HTTP")
	maxReviews := flag.Int("max-reviews", config.EnvInt("HARVESTER_MAX_REVIEWS", defaults.MaxReviewsDefault), "Review cap for the one-shot harvest")
	maxPages := flag.Int("pages", config.EnvInt("HARVESTER_PAGES", defaults.MaxPages), "Maximum pages to paginate through per session")
	ollamaURL := flag.String("ollama-url", config.EnvString("HARVESTER_OLLAMA_URL", defaults.OllamaURL), "Ollama base URL; empty disables selector suggestion")
	ollamaModel := flag.String("ollama-model", config.EnvString("HARVESTER_OLLAMA_MODEL", defaults.OllamaModel), "Ollama model for selector suggestion")
	validate := flag.Bool("validate", config.EnvBool("HARVESTER_VALIDATE", defaults.ValidateReviews), "Validate a sample of harvested reviews with the model")
	headless := flag.Bool("headless", config.EnvBool("HARVESTER_HEADLESS", defaults.Headless), "Run the browser headless")
	settle := flag.Duration("settle", config.EnvDuration("HARVESTER_SETTLE", defaults.SettleInterval), "Wait after scrolls and pagination clicks before re-reading the page")
	navTimeout := flag.Duration("nav-timeout", config.EnvDuration("HARVESTER_NAV_TIMEOUT", defaults.NavigationTimeout), "Page navigation timeout")
	outputFile := flag.String("output", config.EnvString("HARVESTER_OUTPUT", defaults.OutputFile), "Output file for the one-shot harvest (stdout summary only when empty)")
	outputFormat := flag.String("format", config.EnvString("HARVESTER_FORMAT", defaults.OutputFormat), "Output format: csv, json, or dual")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, _ := newLogger(*verbose)
	slog.SetDefault(logger)

	cfg := defaults
	cfg.ListenAddr = *listenAddr
	cfg.MaxPages = *maxPages
	cfg.OllamaURL = *ollamaURL
	cfg.OllamaModel = *ollamaModel
	cfg.ValidateReviews = *validate
	cfg.Headless = *headless
	cfg.SettleInterval = *settle
	cfg.NavigationTimeout = *navTimeout
	cfg.OutputFile = *outputFile
	cfg.OutputFormat = strings.ToLower(*outputFormat)
	cfg.Verbose = *verbose
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chrome, err := browser.NewChrome(ctx, cfg)
	if err != nil {
		slog.Error("starting browser", slog.Any("error", err))
		os.Exit(1)
	}
	defer chrome.Close()

	var suggester suggest.Suggester = suggest.Noop{}
	if cfg.OllamaURL != "" {
		ollama, err := suggest.NewOllama(cfg, logger)
		if err != nil {
			slog.Error("initialising suggestion client", slog.Any("error", err))
			os.Exit(1)
		}
		suggester = ollama
	} else {
		slog.Info("selector suggestion disabled, using fallback selectors")
	}

	metrics := harvest.NewMetrics()
	harvester := harvest.New(cfg, chrome, suggester, metrics, logger)

	if *targetURL != "" {
		runOnce(ctx, cfg, harvester, *targetURL, *maxReviews)
		return
	}

	serve(ctx, cfg, harvester, metrics, logger)
}

func runOnce(ctx context.Context, cfg *config.Config, harvester *harvest.Harvester, targetURL string, maxReviews int) {
	start := time.Now()
	result, err := harvester.Harvest(ctx, targetURL, maxReviews)
	if err != nil {
		slog.Error("harvest failed", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.OutputFile != "" {
		writer, err := output.ForFormat(cfg.OutputFormat, cfg.OutputFile)
		if err != nil {
			slog.Error("creating writer", slog.Any("error", err))
			os.Exit(1)
		}
		if err := writer.Write(result.Reviews); err != nil {
			slog.Error("writing results", slog.Any("error", err))
			os.Exit(1)
		}
		if err := writer.Close(); err != nil {
			slog.Error("close writer", slog.Any("error", err))
			os.Exit(1)
		}
	}

	printSummary(result, time.Since(start), cfg.OutputFile)
}

func serve(ctx context.Context, cfg *config.Config, harvester *harvest.Harvester, metrics *harvest.Metrics, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(cfg, harvester, metrics, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", slog.Any("error", err))
		}
	}()

	slog.Info("serving", slog.String("addr", cfg.ListenAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func printSummary(result *models.HarvestResult, duration time.Duration, outputFile string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Harvest complete")
	fmt.Printf("  Reviews:       %d\n", result.ReviewsCount)
	fmt.Printf("  Pages w/ new:  %d\n", result.PagesWithUniqueReviews)
	fmt.Printf("  Pagination:    %s\n", result.PaginationKind)
	fmt.Printf("  Duration:      %v\n", duration)
	if outputFile != "" {
		fmt.Printf("  Output file:   %s\n", outputFile)
	}
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
