package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"qaengine/internal/config"
	"qaengine/internal/engine"
	"qaengine/internal/httpapi"
	"qaengine/internal/knowledge"
	"qaengine/internal/mcpserver"
	"qaengine/internal/oracle"
	"qaengine/internal/scheduler"
	"qaengine/internal/snapshot"
)

const (
	exitOK            = 0
	exitConfigError   = 2
	exitStoreCorrupt  = 3
	exitSafetyViolate = 4

	mongoConnectTimeout = 10 * time.Second
)

func main() {
	mode := flag.String("mode", "both", "Server mode: http, mcp, or both")
	envFile := flag.String("env-file", ".env", "Path to an optional .env file")
	httpAddr := flag.String("http-addr", ":8080", "Address for the HTTP observability surface")
	devLogger := flag.Bool("dev-logger", false, "Use zap's development logger instead of production")
	flag.Parse()

	var log *zap.Logger
	var err error
	if *devLogger {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(exitConfigError)
	}
	defer log.Sync()

	os.Exit(run(*mode, *envFile, *httpAddr, log))
}

func run(mode, envFile, httpAddr string, log *zap.Logger) int {
	cfg, err := config.Load(envFile)
	if err != nil {
		log.Error("failed to load configuration", zap.Error(err))
		return exitConfigError
	}

	if err := cfg.Safety.Validate(); err != nil {
		log.Error("safety constraints failed validation", zap.Error(err))
		if errors.Is(err, scheduler.ErrSafetyViolation) {
			return exitSafetyViolate
		}
		return exitConfigError
	}

	log.Info("starting qaengine",
		zap.String("mode", mode),
		zap.Int("workerPoolSize", cfg.WorkerPoolSize),
		zap.Bool("autoTraining", cfg.AutoTrainingEnabled))

	var textOracle oracle.TextOracle
	e := engine.New(cfg, textOracle, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, snapStore, err := connectSnapshotStore(ctx, log)
	if err != nil {
		log.Error("failed to connect snapshot store", zap.Error(err))
		return exitConfigError
	}
	if mongoClient != nil {
		defer mongoClient.Disconnect(context.Background())
	}

	if snapStore != nil {
		if err := snapStore.ImportInto(ctx, e.Store()); err != nil {
			log.Error("knowledge store failed integrity validation on load", zap.Error(err))
			if errors.Is(err, knowledge.ErrCorruptIndex) {
				return exitStoreCorrupt
			}
			return exitConfigError
		}
		log.Info("restored knowledge snapshot", zap.Int("nodes", e.Store().Stats().TotalNodes))
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Start(ctx)
	}()

	switch mode {
	case "http":
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := httpapi.New(e, httpAddr, log).Start(ctx); err != nil {
				log.Error("http server error", zap.Error(err))
			}
		}()

	case "mcp":
		if err := runMCPServer(ctx, e, log); err != nil {
			log.Error("mcp server error", zap.Error(err))
		}

	case "both":
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := httpapi.New(e, httpAddr, log).Start(ctx); err != nil {
				log.Error("http server error", zap.Error(err))
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := runMCPServer(ctx, e, log); err != nil {
				log.Error("mcp server error", zap.Error(err))
			}
		}()

	default:
		log.Error("invalid mode, use: http, mcp, or both", zap.String("mode", mode))
		return exitConfigError
	}

	<-ctx.Done()
	log.Info("shutdown signal received, stopping servers")
	wg.Wait()
	log.Info("shutdown complete")

	return exitOK
}

func runMCPServer(ctx context.Context, e *engine.Engine, log *zap.Logger) error {
	impl := &mcp.Implementation{Name: "qaengine", Version: "1.0.0"}
	server := mcp.NewServer(impl, &mcp.ServerOptions{HasTools: true})

	handler := mcpserver.NewToolHandler(e)
	if err := handler.RegisterToolHandlers(server); err != nil {
		return fmt.Errorf("failed to register mcp tools: %w", err)
	}

	log.Info("mcp server ready (stdio)")
	transport := &mcp.StdioTransport{}
	return server.Run(ctx, transport)
}

// connectSnapshotStore connects to MongoDB and wraps it in a
// snapshot.Store when MONGODB_URI is set. Running without persistence
// configured is a valid mode: the returned store is nil and the engine
// starts from an empty knowledge base.
func connectSnapshotStore(ctx context.Context, log *zap.Logger) (*mongo.Client, *snapshot.Store, error) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Info("MONGODB_URI not set, running without persistence")
		return nil, nil, nil
	}

	database := os.Getenv("MONGODB_DATABASE")
	if database == "" {
		database = "qaengine"
	}

	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	store, err := snapshot.New(connectCtx, client.Database(database))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	log.Info("connected to mongodb", zap.String("database", database))
	return client, store, nil
}
