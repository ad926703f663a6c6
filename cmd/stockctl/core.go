package main

import (
	"errors"
	"os"
	"time"

	domrepo "StockDesk/internal/domain/repository"
	internalrepo "StockDesk/internal/repository"
	"StockDesk/internal/service/tradeapi"
	"StockDesk/internal/session"
	"StockDesk/internal/usecase"
	"StockDesk/pkg/config"
	applogger "StockDesk/pkg/logger"
	"StockDesk/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

type globalOptions struct {
	configPath string
	baseURL    string
	token      string
	verbose    bool
}

// core holds the gateways and use cases one command invocation needs.
type core struct {
	cfg       *config.Config
	log       *applogger.Logger
	market    *tradeapi.Market
	positions domrepo.Positions
	accounts  domrepo.Accounts
	auth      domrepo.Authenticator
	candles   *usecase.CandlesUseCase
	trades    *usecase.TradeOrchestrator
	token     string
}

func newCore(opts *globalOptions) (*core, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log, err := applogger.New(&applogger.Config{Level: level, Format: "console", Output: "stderr"})
	if err != nil {
		return nil, err
	}

	rec := metrics.NewWithRegistry(prometheus.NewRegistry())
	client := tradeapi.NewClient(cfg, log)
	market := tradeapi.NewMarket(client)
	positions := tradeapi.NewPositions(client, rec)
	accounts := tradeapi.NewAccounts(client)

	token := opts.token
	if token == "" {
		token = os.Getenv("STOCKDESK_TOKEN")
	}

	return &core{
		cfg:       cfg,
		log:       log,
		market:    market,
		positions: positions,
		accounts:  accounts,
		auth:      tradeapi.NewAuth(client),
		candles:   usecase.NewCandlesUseCase(market),
		trades: usecase.NewTradeOrchestrator(
			tradeapi.NewTrading(client), accounts, positions, market,
			internalrepo.NoopJournal{}, rec, log,
		),
		token: token,
	}, nil
}

func loadConfig(opts *globalOptions) (*config.Config, error) {
	if opts.configPath != "" {
		cfg, err := config.LoadWithEnv(opts.configPath)
		if err != nil {
			return nil, err
		}
		if opts.baseURL != "" {
			cfg.Upstream.BaseURL = opts.baseURL
		}
		return cfg, nil
	}
	base := opts.baseURL
	if base == "" {
		base = os.Getenv("STOCKDESK_UPSTREAM_URL")
	}
	if base == "" {
		return nil, errors.New("upstream url required (--base-url, --config or STOCKDESK_UPSTREAM_URL)")
	}
	return config.Default(base)
}

// session wraps the bearer token; commands needing auth fail without one.
func (c *core) session() (*session.Session, error) {
	if c.token == "" {
		return nil, errors.New("token required (--token or STOCKDESK_TOKEN)")
	}
	return session.New("stockctl", c.token, "", time.Now()), nil
}
