package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aniladanir/board-sms-gateway/internal/authorizer"
	"github.com/aniladanir/board-sms-gateway/internal/cache"
	redisCache "github.com/aniladanir/board-sms-gateway/internal/cache/redis"
	"github.com/aniladanir/board-sms-gateway/internal/domain"
	httpHandler "github.com/aniladanir/board-sms-gateway/internal/handler/http"
	"github.com/aniladanir/board-sms-gateway/internal/persistant/postgresql"
	messageRepo "github.com/aniladanir/board-sms-gateway/internal/repository/message"
	"github.com/aniladanir/board-sms-gateway/internal/repository/rest"
	"github.com/aniladanir/board-sms-gateway/internal/service"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var (
	configFile = flag.String("config", "config.json", "config file path")
)

func main() {
	// create root context
	appCtx, appCtxCancel := context.WithCancel(context.Background())
	defer appCtxCancel()

	// listen for terminate signal
	notifyCtx, stop := signal.NotifyContext(appCtx, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// parse flags
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	// parse config
	config, err := ReadConfigJson(*configFile)
	if err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// initialize external dependencies
	deps, err := initExternalDependencies(notifyCtx, config)
	if err != nil {
		log.Fatalf("failed to initialize external dependencies: %v", err)
	}

	// init authorizer
	auth, err := authorizer.New(config.Codeword, config.AllowedSenders)
	if err != nil {
		log.Fatalf("failed to initialize authorizer: %v", err)
	}
	if len(config.AllowedSenders) == 0 {
		logger.Warn("sender allowlist is empty, every number may use the sms channel")
	}

	// init sms gateway service
	gateway := service.NewSmsGatewayService(
		deps.repo,
		auth,
		deps.dedup,
		config.DedupTTL,
		logger.With(slog.String("component", "smsGateway")),
	)

	// init http handler
	httpHandler := httpHandler.NewHttpHandler(
		fmt.Sprintf(":%d", config.HttpPort),
		gateway,
		logger.With(slog.String("component", "http")),
	)

	logger.Info("sms gateway starting",
		"port", config.HttpPort,
		"store", config.Store.Driver,
		"dedup", deps.dedup != nil)

	wg := sync.WaitGroup{}
	// run http handler
	wg.Go(func() {
		if err := httpHandler.Run(); err != nil {
			logger.Error("http server encountered with an error and closed", "error", err.Error())
		}
		// cancel app context if http handler fails
		appCtxCancel()
	})

	// graceful shutdown
	wg.Go(func() {
		<-notifyCtx.Done()
		logger.Info("application shutting down...")

		shutDownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()

		httpHandler.Shutdown(shutDownCtx)
		deps.close()
	})

	wg.Wait()
	os.Exit(0)
}

type dependencies struct {
	repo  messageRepo.Repository
	dedup cache.Cache
	db    *gorm.DB
	redis *redisCache.RedisCache
}

func (d *dependencies) close() {
	if d.db != nil {
		postgresql.Close(d.db)
	}
	if d.redis != nil {
		d.redis.Close()
	}
}

func initExternalDependencies(ctx context.Context, config *Config) (*dependencies, error) {
	deps := new(dependencies)

	// initialize store
	switch config.Store.Driver {
	case DriverPostgres:
		db, err := postgresql.Initialize(ctx, config.Store.DbConnString, config.MaxConnRetry,
			[]any{&domain.SmsAudit{}, &domain.BoardMessage{}})
		if err != nil {
			return nil, err
		}
		deps.db = db
		deps.repo = messageRepo.NewMessageRepository(db)
	default:
		deps.repo = rest.NewClient(config.Store.BaseURL, config.Store.Credential, config.Store.Timeout)
	}

	// initialize dedup cache
	if config.RedisAddr != "" {
		rCache, err := redisCache.NewRedisCache(ctx, config.RedisAddr, config.MaxConnRetry)
		if err != nil {
			deps.close()
			return nil, err
		}
		deps.redis = rCache
		deps.dedup = rCache
	}

	return deps, nil
}
