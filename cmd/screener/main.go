package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"RSIScreener/internal/collector"
	"RSIScreener/internal/config"
	"RSIScreener/internal/notifier"
	"RSIScreener/internal/recorder"
	"RSIScreener/internal/screener"
	"RSIScreener/internal/ticker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		configPath   = flag.String("config", "configs/config.yaml", "path to YAML configuration file")
		filePath     = flag.String("file", "", "path to text file containing tickers")
		inline       = flag.String("tickers", "", "symbols to scan (comma- or space-separated)")
		oversold     = flag.Float64("oversold", 30, "RSI oversold threshold")
		overbought   = flag.Float64("overbought", 70, "RSI overbought threshold")
		period       = flag.String("period", "90d", "time period for data (e.g. 90d, 1y)")
		dataInterval = flag.String("data-interval", "1d", "data interval (e.g. 1d, 1h)")
		window       = flag.Int("window", 14, "RSI window length")
		continuous   = flag.Bool("continuous", false, "run continuously")
		pollSeconds  = flag.Int("interval", 300, "seconds between checks in continuous mode")
		limit        = flag.Int("limit", 0, "limit to the first N tickers")
	)
	flag.Parse()

	// Credentials may live in a .env file next to the binary.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	// Flags that were set explicitly override the config file.
	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	if setFlags["oversold"] {
		cfg.Screener.Oversold = *oversold
	}
	if setFlags["overbought"] {
		cfg.Screener.Overbought = *overbought
	}
	if setFlags["period"] {
		cfg.Screener.Period = *period
	}
	if setFlags["data-interval"] {
		cfg.Screener.Interval = *dataInterval
	}
	if setFlags["window"] {
		cfg.Screener.Window = *window
	}
	if setFlags["interval"] {
		cfg.Screener.PollSeconds = *pollSeconds
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	symbols := gatherSymbols(*filePath, *inline, flag.Args())
	if len(symbols) == 0 {
		log.Fatal("[FATAL] no tickers supplied, use -tickers or -file")
	}
	if *limit > 0 && *limit < len(symbols) {
		symbols = symbols[:*limit]
		log.Printf("[INFO] limited to %d tickers: %s", *limit, strings.Join(symbols, ", "))
	}

	// Data source
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewQuoteAPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Notification channels: any with incomplete configuration is skipped.
	var channels []notifier.Channel
	if ch := notifier.NewEmailChannel(cfg.Email); ch != nil {
		channels = append(channels, ch)
	} else {
		log.Println("[WARN] email configuration incomplete, channel disabled")
	}
	if ch := notifier.NewTwilioChannel(cfg.SMS, cfg.Proxy); ch != nil {
		channels = append(channels, ch)
	} else {
		log.Println("[WARN] sms configuration incomplete, channel disabled")
	}
	if ch := notifier.NewWebhookChannel(cfg.Webhook.URL, cfg.Proxy); ch != nil {
		channels = append(channels, ch)
	} else {
		log.Println("[WARN] webhook not configured, channel disabled")
	}
	dispatcher := notifier.NewDispatcher(channels...)
	log.Printf("[INFO] %d notification channel(s) enabled", dispatcher.Channels())

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("[INFO] stop signal received, shutting down...")
		cancel()
	}()

	sc := screener.New(fetcher, dispatcher, rec, screener.Options{
		Period:       cfg.Screener.Period,
		DataInterval: cfg.Screener.Interval,
		Window:       cfg.Screener.Window,
		Oversold:     cfg.Screener.Oversold,
		Overbought:   cfg.Screener.Overbought,
		Poll:         time.Duration(cfg.Screener.PollSeconds) * time.Second,
	})

	if *continuous {
		log.Println("[INFO] RSI screener started in continuous mode (press Ctrl+C to stop)")
		if err := sc.RunContinuous(ctx, symbols); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
		return
	}
	sc.RunOnce(ctx, symbols)
}

// gatherSymbols merges file, flag and positional symbols, deduplicated in
// first-seen order. A missing ticker file is fatal.
func gatherSymbols(filePath, inline string, args []string) []string {
	var symbols []string
	if filePath != "" {
		fromFile, err := ticker.ParseFile(filePath)
		if err != nil {
			log.Fatalf("[FATAL] ticker file: %v", err)
		}
		symbols = append(symbols, fromFile...)
	}
	symbols = append(symbols, ticker.Parse(inline)...)
	symbols = append(symbols, ticker.Parse(strings.Join(args, " "))...)
	return ticker.Dedupe(symbols)
}
