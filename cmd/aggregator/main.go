// cmd/aggregator/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tracevista/internal/aggregate"
	"tracevista/internal/common/config"
	"tracevista/internal/common/database"
	"tracevista/internal/common/logger"
	"tracevista/internal/common/observability"
	"tracevista/internal/models"
	"tracevista/internal/providers"
	"tracevista/internal/providers/emailintel"
	"tracevista/internal/providers/records"
	"tracevista/internal/providers/scraperproxy"
	"tracevista/internal/providers/websearch"
	"tracevista/internal/session"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	var (
		subject     = flag.String("subject", "", "subject name for a one-shot investigation")
		city        = flag.String("city", "", "subject city")
		state       = flag.String("state", "", "subject state")
		phone       = flag.String("phone", "", "subject phone")
		email       = flag.String("email", "", "subject email")
		address     = flag.String("address", "", "subject street address")
		sessionID   = flag.String("session", "default", "session identifier")
		metricsAddr = flag.String("metrics-addr", ":9090", "metrics/health listen address")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting aggregator...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment))

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Warn("redis unavailable, session snapshots disabled", zap.Error(err))
		rdb = nil
	}

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	if p, ok := cfg.Providers["records"]; ok && p.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 5, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, records provider disabled", zap.Error(err))
			esClient = nil
		}
	}

	registry := buildRegistry(cfg, esClient, log)

	// --- Metrics/health endpoint ---
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		zapLog.Info("metrics endpoint listening", zap.String("addr", *metricsAddr))
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
			zapLog.Error("metrics endpoint failed", zap.Error(err))
		}
	}()

	if *subject == "" {
		zapLog.Info("no -subject given, idling for metrics scrape; send SIGINT to exit")
		<-ctx.Done()
		return
	}

	sessionCfg := session.Config{
		HistoryLimit:       cfg.Session.HistoryLimit,
		LowResultThreshold: cfg.Aggregation.LowResultThreshold,
	}
	var store *session.Store
	if rdb != nil {
		key := fmt.Sprintf("%s:%s", cfg.Session.KeyPrefix, *sessionID)
		ttl := time.Duration(cfg.Session.TTL) * time.Minute
		store = session.NewRedisStore(sessionCfg, rdb.GetClient(), key, ttl, log)
		if err := store.Load(ctx); err != nil {
			log.Warn("session restore failed, starting fresh", map[string]interface{}{
				"error": err.Error(),
			})
		}
	} else {
		store = session.NewStore(sessionCfg, log)
	}

	orch := aggregate.New(aggregate.FromAppConfig(cfg.Aggregation, cfg.Planner), registry, log)

	params := models.SubjectParams{
		Name:    *subject,
		City:    *city,
		State:   *state,
		Phone:   *phone,
		Email:   *email,
		Address: *address,
	}
	runBudget := models.Budget{
		MaxCost:    cfg.Budget.MaxCost,
		MaxCredits: cfg.Budget.MaxCredits,
	}

	start := time.Now()
	report, err := orch.Run(ctx, params, runBudget)
	if err != nil {
		obs.RecordRun(ctx, "failed")
		zapLog.Fatal("aggregation failed", zap.Error(err))
	}
	status := "completed"
	if report.Partial {
		status = "partial"
	}
	obs.RecordRun(ctx, status)
	obs.RecordRunDuration(ctx, time.Since(start), status)

	store.Dispatch(ctx, session.Action{Type: session.ActionAddResults, Results: report.Results})
	store.Dispatch(ctx, session.Action{Type: session.ActionAddEntities, Entities: report.Entities})
	store.Dispatch(ctx, session.Action{Type: session.ActionAddToHistory, Query: *subject})

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
}

func buildRegistry(cfg *config.Config, esClient *database.ElasticsearchClient, log logger.Logger) *providers.Registry {
	registry := providers.NewRegistry(log)

	if p, ok := cfg.Providers["websearch"]; ok && p.Enabled {
		wc := websearch.DefaultConfig()
		wc.BaseURL = p.BaseURL
		wc.APIKey = p.APIKey
		wc.EngineID = p.EngineID
		wc.MaxResults = p.MaxResults
		if p.CostPerCall > 0 {
			wc.CostPerCall = p.CostPerCall
		}
		wc.Timeout = time.Duration(p.Timeout) * time.Millisecond
		registry.Register(websearch.New(wc, log))
	}

	if p, ok := cfg.Providers["emailintel"]; ok && p.Enabled {
		ec := emailintel.DefaultConfig()
		ec.BaseURL = p.BaseURL
		ec.APIKey = p.APIKey
		ec.MaxResults = p.MaxResults
		if p.CostPerCall > 0 {
			ec.CostPerCall = p.CostPerCall
		}
		ec.Timeout = time.Duration(p.Timeout) * time.Millisecond
		registry.Register(emailintel.New(ec, log))
	}

	if p, ok := cfg.Providers["scraperproxy"]; ok && p.Enabled {
		sc := scraperproxy.DefaultConfig()
		sc.BaseURL = p.BaseURL
		sc.APIKey = p.APIKey
		sc.MaxResults = p.MaxResults
		if p.CostPerCall > 0 {
			sc.CostPerCall = p.CostPerCall
		}
		sc.Timeout = time.Duration(p.Timeout) * time.Millisecond
		registry.Register(scraperproxy.New(sc, log))
	}

	if p, ok := cfg.Providers["records"]; ok && p.Enabled && esClient != nil {
		rc := records.DefaultConfig()
		if p.Index != "" {
			rc.Index = p.Index
		}
		rc.MaxResults = p.MaxResults
		registry.Register(records.New(rc, esClient.Client, log))
	}

	return registry
}
