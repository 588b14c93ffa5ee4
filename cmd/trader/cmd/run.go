package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rustyeddy/crossbar/banlist"
	"github.com/rustyeddy/crossbar/broker/alpaca"
	"github.com/rustyeddy/crossbar/config"
	"github.com/rustyeddy/crossbar/engine"
	"github.com/rustyeddy/crossbar/feed"
	"github.com/rustyeddy/crossbar/historical"
	"github.com/rustyeddy/crossbar/journal"
	"github.com/rustyeddy/crossbar/market/indicators"
	"github.com/rustyeddy/crossbar/market/strategies"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the crossover engine against a live feed and broker",
	Long: `Connect to the configured market-data feed and brokerage REST
API, subscribe to the given symbols' minute-aggregate channel, and run
the configured strategy variant until interrupted.

Example:
  trader run --config trader.yaml --symbols AAPL,MSFT`,
	RunE: runRun,
}

var (
	runConfigPath string
	runSymbols    string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().StringVarP(&runSymbols, "symbols", "s", "", "comma-separated symbols to subscribe (required)")
	runCmd.MarkFlagRequired("config")
	runCmd.MarkFlagRequired("symbols")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	strategy, err := strategyByVariant(cfg.Strategy.FormulaVariant)
	if err != nil {
		return err
	}

	brk := alpaca.New(cfg.Broker.BaseURL, cfg.Broker.APIKeyID, cfg.Broker.APISecret)

	jrn, err := journalFromConfig(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer jrn.Close()

	bans, err := banlist.Load(cfg.Ban.ListPath)
	if err != nil {
		return fmt.Errorf("load ban list: %w", err)
	}

	var hist indicators.HistoricalFetcher
	if cfg.Broker.Historical != "" {
		hist = historical.New(cfg.Broker.Historical, cfg.Broker.APIKeyID)
	}

	eng := engine.New(cfg, strategy, brk, jrn, bans, hist)

	symbols := strings.Split(runSymbols, ",")
	params := make([]string, len(symbols))
	for i, s := range symbols {
		params[i] = "AM." + strings.TrimSpace(s)
	}

	ws, err := feed.NewWSClient(cfg.Feed.WSURL)
	if err != nil {
		return fmt.Errorf("build feed client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ws.Connect(ctx); err != nil {
		return fmt.Errorf("connect feed: %w", err)
	}
	if err := ws.Subscribe(params...); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer ws.Close()

	fmt.Printf("trader running: strategy=%s symbols=%s\n", strategy.Name(), runSymbols)

	errc := make(chan error, 1)
	go func() { errc <- ws.Run(ctx, eng) }()

	if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("engine: %w", err)
	}
	return <-errc
}

func strategyByVariant(variant string) (strategies.Strategy, error) {
	switch variant {
	case "F1":
		return strategies.F1{}, nil
	case "F3":
		return strategies.F3{}, nil
	case "F4":
		return strategies.F4{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy variant %q", variant)
	}
}

func journalFromConfig(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath, cfg.BarDumpRoot)
	default:
		return journal.NewFileJournal(cfg.BarDumpRoot), nil
	}
}
