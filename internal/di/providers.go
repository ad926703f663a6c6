package di

import (
	"fmt"
	"time"

	"StockDesk/internal/domain/repository"
	"StockDesk/internal/handler/api"
	internalrepo "StockDesk/internal/repository"
	icache "StockDesk/internal/service/cache"
	"StockDesk/internal/service/ratelimit"
	"StockDesk/internal/service/tradeapi"
	"StockDesk/internal/session"
	"StockDesk/internal/usecase"
	pkgcache "StockDesk/pkg/cache"
	"StockDesk/pkg/config"
	xhttp "StockDesk/pkg/http"
	pkgkafka "StockDesk/pkg/kafka"
	applogger "StockDesk/pkg/logger"
	"StockDesk/pkg/metrics"
	"StockDesk/pkg/server"
)

// ProvideLogger builds the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideSessionBackend creates the in-memory or redis session backend.
func ProvideSessionBackend(cfg *config.Config) (pkgcache.Service, func(), error) {
	if cfg.Session.Backend != "redis" {
		mc := pkgcache.NewMemoryCache(pkgcache.WithMemoryCleanup(time.Minute))
		return mc, func() { _ = mc.Close() }, nil
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddr(cfg.Session.Redis.Addr),
		pkgcache.WithRedisPassword(cfg.Session.Redis.Password),
		pkgcache.WithRedisDB(cfg.Session.Redis.DB),
		pkgcache.WithRedisPool(cfg.Session.Redis.PoolSize, cfg.Session.Redis.MinIdleConns, cfg.Session.Redis.PoolTimeout),
		pkgcache.WithRedisPrefix("stockdesk"),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("session redis: %w", err)
	}
	return rc, func() { _ = rc.Close() }, nil
}

// ProvideSessions creates the session store.
func ProvideSessions(backend pkgcache.Service, cfg *config.Config) repository.Sessions {
	return session.NewStore(backend, cfg.Session.TTL)
}

// ProvideMarketCache creates the byte cache fronting public market reads. A
// redis cache on the same instance as the session store shares its client.
func ProvideMarketCache(cfg *config.Config, sessions pkgcache.Service) icache.BytesCache {
	if cfg.Cache.Backend != "redis" {
		return icache.NewTTLCache()
	}
	if rc, ok := sessions.(*pkgcache.RedisCache); ok && cfg.Session.Redis == cfg.Cache.Redis {
		return icache.NewRedisCacheFromClient(rc.Client(), "")
	}
	return icache.NewRedisCache(icache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		PoolSize: cfg.Cache.Redis.PoolSize,
	})
}

// ProvideTradeClient creates the trading API client.
func ProvideTradeClient(cfg *config.Config, log *applogger.Logger) *tradeapi.Client {
	return tradeapi.NewClient(cfg, log)
}

func ProvideMarket(c *tradeapi.Client) *tradeapi.Market { return tradeapi.NewMarket(c) }

// ProvideMarketData layers the cache over the market gateway.
func ProvideMarketData(m *tradeapi.Market, cache icache.BytesCache, cfg *config.Config, log *applogger.Logger) repository.MarketData {
	return tradeapi.NewCachedMarket(m, cache, cfg.Cache.QuoteTTL, cfg.Cache.CandlesTTL, log)
}

func ProvidePopular(m *tradeapi.Market) repository.PopularList { return m }

func ProvidePositions(c *tradeapi.Client, m repository.Metrics) repository.Positions {
	return tradeapi.NewPositions(c, m)
}

func ProvideTrading(c *tradeapi.Client) repository.Trading { return tradeapi.NewTrading(c) }

func ProvideAccounts(c *tradeapi.Client) repository.Accounts { return tradeapi.NewAccounts(c) }

func ProvideAuthenticator(c *tradeapi.Client) repository.Authenticator { return tradeapi.NewAuth(c) }

// ProvideKafkaProducer creates the journal producer, or nil when the journal is off.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Journal.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Journal.Brokers),
		pkgkafka.WithCompression(cfg.Journal.Compression),
		pkgkafka.WithRequiredAcks(cfg.Journal.RequiredAcks),
		pkgkafka.WithBatchTimeout(cfg.Journal.Linger),
		pkgkafka.WithTimeouts(cfg.Journal.WriteTimeout, cfg.Journal.WriteTimeout),
		pkgkafka.WithMaxAttempts(cfg.Journal.MaxAttempts),
		pkgkafka.WithAsync(cfg.Journal.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideTradeJournal journals trades to Kafka, or discards them without a producer.
func ProvideTradeJournal(producer *pkgkafka.Producer, cfg *config.Config) repository.TradeJournal {
	if producer == nil {
		return internalrepo.NoopJournal{}
	}
	return internalrepo.NewKafkaJournal(producer, cfg.Journal.Topic)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Trade.RateCapacity, cfg.Trade.RateRefillPerSec)
}

func ProvideCandles(market repository.MarketData) *usecase.CandlesUseCase {
	return usecase.NewCandlesUseCase(market)
}

func ProvideTradeOrchestrator(
	trading repository.Trading,
	accounts repository.Accounts,
	positions repository.Positions,
	market repository.MarketData,
	journal repository.TradeJournal,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.TradeOrchestrator {
	return usecase.NewTradeOrchestrator(trading, accounts, positions, market, journal, m, log)
}

func ProvideStockPage(
	accounts repository.Accounts,
	positions repository.Positions,
	market repository.MarketData,
	candles *usecase.CandlesUseCase,
	trades *usecase.TradeOrchestrator,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.StockPage {
	return usecase.NewStockPage(accounts, positions, market, candles, trades, m, log, cfg.Page.DefaultPeriod, cfg.Page.DefaultChart)
}

func ProvideDashboard(accounts repository.Accounts, popular repository.PopularList, m repository.Metrics, log *applogger.Logger, cfg *config.Config) *usecase.Dashboard {
	return usecase.NewDashboard(accounts, popular, m, log, cfg.Page.LeaderboardTop, cfg.Page.PopularTop)
}

func ProvideLogin(auth repository.Authenticator, sessions repository.Sessions, log *applogger.Logger) *usecase.Login {
	return usecase.NewLogin(auth, sessions, log)
}

func ProvideSessionGate(login *usecase.Login, page *usecase.StockPage, limiter *ratelimit.Limiter, cfg *config.Config, log *applogger.Logger) *api.SessionGate {
	return api.NewSessionGate(login, page, limiter, cfg.Session.CookieName, cfg.Page.LoginPath, cfg.Session.TTL, log)
}

// ProvideHandlers collects every HTTP handler the server registers.
func ProvideHandlers(
	log *applogger.Logger,
	gate *api.SessionGate,
	page *usecase.StockPage,
	dashboard *usecase.Dashboard,
	login *usecase.Login,
	limiter *ratelimit.Limiter,
	market repository.MarketData,
	cfg *config.Config,
) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewStockEchoHandler(log, page, gate, limiter),
		api.NewDashboardEchoHandler(log, dashboard, gate),
		api.NewAuthEchoHandler(log, login, gate),
		api.NewQuotesHandler(log, market, cfg.Stream.PollInterval, cfg.Stream.MaxBackoff),
	}
}

// ProvideApp assembles the application.
func ProvideApp(cfg *config.Config, log *applogger.Logger, handlers []xhttp.Handler, journal repository.TradeJournal) *server.App {
	return server.New(cfg, log, handlers, journal)
}
