package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"BreakoutTrader/internal/collector"
	"BreakoutTrader/internal/config"
	"BreakoutTrader/internal/credential"
	"BreakoutTrader/internal/fund"
	"BreakoutTrader/internal/gateway"
	"BreakoutTrader/internal/gateway/schwab"
	"BreakoutTrader/internal/logger"
	"BreakoutTrader/internal/metrics"
	"BreakoutTrader/internal/notifier"
	"BreakoutTrader/internal/recorder"
	"BreakoutTrader/internal/scheduler"
	"BreakoutTrader/internal/session"
	"BreakoutTrader/internal/strategy"
)

func main() {
	cmd := &cli.Command{
		Name:  "trader",
		Usage: "Intraday breakout trader",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config",
				Value:   "configs/config.yaml",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Route orders to the in-memory paper gateway",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if code := exitCode(os.Stderr, cmd.Run(ctx, os.Args)); code != 0 {
		stop()
		os.Exit(code)
	}
}

// exitCode reports a startup or run failure on w. The zap logger only exists
// once run has built it, so failures before that go to stderr.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(w, "trader: %v\n", err)
	return 1
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.IsSet("dry-run") {
		cfg.Trading.DryRun = cmd.Bool("dry-run")
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	loc, err := session.LoadLocation(cfg.Session.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}
	lg, err := logger.NewLogger(logger.Options{
		Level:        cfg.Log.Level,
		Dir:          cfg.Log.Dir,
		FileName:     "trader.log",
		MaxSizeMB:    cfg.Log.MaxSizeMB,
		MaxBackups:   cfg.Log.MaxBackups,
		DailyBackups: cfg.Log.DailyBackups,
		Location:     loc,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()
	lg.Info("BreakoutTrader starting",
		zap.Strings("symbols", cfg.Trading.Symbols),
		zap.Bool("dry_run", cfg.Trading.DryRun))

	holidays := cfg.Session.Holidays
	if len(holidays) == 0 {
		holidays = session.DefaultHolidays
	}
	cal, err := session.NewCalendar(loc, holidays)
	if err != nil {
		return fmt.Errorf("init calendar: %w", err)
	}

	broker := schwab.New(schwab.Options{
		BaseURL:           cfg.Broker.BaseURL,
		Timeout:           cfg.Broker.Timeout,
		RetryCount:        cfg.Broker.RetryCount,
		RetryWait:         cfg.Broker.RetryWait,
		RequestsPerSecond: cfg.Broker.RequestsPerSecond,
		Proxy:             cfg.Proxy,
		Location:          loc,
	}, lg.Logger)

	var hours gateway.MarketHours = broker
	if cfg.Session.HoursSource == "static" {
		hours = session.StaticHours{Calendar: cal}
	}

	quotes, err := newQuoteSource(cfg, broker)
	if err != nil {
		return err
	}
	lg.Info("quote source", zap.String("source", quotes.Name()), zap.String("hours", cfg.Session.HoursSource))

	source, err := newCredentialSource(ctx, cfg, broker)
	if err != nil {
		return err
	}

	var orders gateway.OrderGateway = broker
	if cfg.Trading.DryRun {
		orders = gateway.NewPaper(lg.Logger)
		lg.Warn("dry run, orders go to the paper gateway")
	}

	policyMode, err := fund.ParsePolicyMode(cfg.Capital.Policy)
	if err != nil {
		return err
	}
	stopMode, err := strategy.ParseStopMode(cfg.Trading.StopMode)
	if err != nil {
		return err
	}
	tick, err := config.ParseSchedule(cfg.Trading.Tick)
	if err != nil {
		return fmt.Errorf("parse tick: %w", err)
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	var sqlite *recorder.SQLiteRecorder
	if cfg.Database.SQLitePath != "" {
		sqlite, err = recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, lg.Logger)
		if err != nil {
			lg.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		} else {
			rec = sqlite
		}
	}
	defer func() { _ = rec.Close() }()

	var tn notifier.Notifier = notifier.Noop{}
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, lg.Logger)
	}

	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr)
		lg.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	jobs := []scheduler.Job{{
		Name: "log-rotate",
		Spec: cfg.Housekeeping.RotateCron,
		Run:  func(context.Context) error { return lg.RotateDaily() },
	}}
	if sqlite != nil {
		jobs = append(jobs, scheduler.Job{Name: "sqlite-optimize", Spec: cfg.Housekeeping.OptimizeCron, Run: sqlite.Optimize})
	}
	hk := scheduler.NewHousekeeping(ctx, loc, lg.Logger)
	if err := hk.RegisterAll(jobs...); err != nil {
		return err
	}
	hk.Start()
	defer hk.Stop()

	clock := clockwork.NewRealClock()
	tc := scheduler.NewTradeController(scheduler.Params{
		Symbols:     cfg.Trading.Symbols,
		Threshold:   cfg.Trading.Threshold,
		StopLoss:    cfg.Trading.StopLoss,
		StopMode:    stopMode,
		ClearBuffer: cfg.Session.ClearBuffer,
		Tick:        tick,
		WaitOnStart: !cfg.Trading.SkipInitialWait,
	}, scheduler.Deps{
		Clock:       clock,
		Credentials: credential.NewCache(source, lg.Logger),
		Hours:       hours,
		Collector:   collector.NewCollector(quotes, collector.NewPriceBuffer(cfg.Trading.NeighborhoodSize)),
		Orders:      orders,
		Ledger: fund.NewLedger(cfg.Trading.Symbols,
			decimal.NewFromFloat(cfg.Capital.Starting),
			decimal.NewFromFloat(cfg.Capital.CostRate)),
		Policy: fund.Policy{
			Mode:           policyMode,
			GlobalLimit:    decimal.NewFromFloat(cfg.Capital.GlobalLimit),
			SymbolFraction: decimal.NewFromFloat(cfg.Capital.SymbolFraction),
		},
		Waiter: &session.Waiter{
			Clock:       clock,
			Calendar:    cal,
			HorizonDays: cfg.Session.HorizonDays,
			Recheck:     cfg.Session.Recheck,
			Logger:      lg.Logger,
		},
		Recorder: rec,
		Notifier: tn,
		Logger:   lg.Logger,
	})

	if err := tc.Run(ctx); err != nil {
		lg.Error("trade controller failed", zap.Error(err))
		return err
	}
	lg.Info("BreakoutTrader stopped")
	return nil
}

func newQuoteSource(cfg *config.Config, broker *schwab.Client) (collector.QuoteSource, error) {
	switch cfg.Quotes.Source {
	case "yahoo":
		return collector.NewYahooFetcher(cfg.Proxy), nil
	case "polygon":
		f, err := collector.NewPolygonFetcher(cfg.Quotes.PolygonAPIKey)
		if err != nil {
			return nil, fmt.Errorf("init polygon: %w", err)
		}
		return f, nil
	default:
		return broker, nil
	}
}

// newCredentialSource resolves the account through the broker unless the run
// never touches it, in which case the secret's account number is used as is.
func newCredentialSource(ctx context.Context, cfg *config.Config, broker *schwab.Client) (credential.Source, error) {
	var store credential.SecretStore
	switch cfg.Credentials.Source {
	case "env":
		store = credential.NewEnvStore()
	default:
		sm, err := credential.NewSecretsManagerStore(ctx, cfg.Credentials.Region, cfg.Credentials.SecretName)
		if err != nil {
			return nil, fmt.Errorf("init secrets manager: %w", err)
		}
		store = sm
	}

	var resolver credential.AccountResolver = broker
	offline := cfg.Trading.DryRun && cfg.Quotes.Source != "schwab" && cfg.Session.HoursSource == "static"
	if offline {
		resolver = credential.StaticResolver{}
	}
	return credential.NewBrokerSource(store, resolver), nil
}
