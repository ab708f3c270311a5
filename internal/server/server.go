// Package server boots the storefront: configuration, connections,
// routes, and the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/maison/app/controllers"
	"github.com/shashiranjanraj/maison/app/routes"
	"github.com/shashiranjanraj/maison/app/services"
	"github.com/shashiranjanraj/maison/config"
	"github.com/shashiranjanraj/maison/pkg/cache"
	"github.com/shashiranjanraj/maison/pkg/database"
	"github.com/shashiranjanraj/maison/pkg/event"
	"github.com/shashiranjanraj/maison/pkg/logger"
	"github.com/shashiranjanraj/maison/pkg/metrics"
	"github.com/shashiranjanraj/maison/pkg/middleware"
	"github.com/shashiranjanraj/maison/pkg/reqid"
	"github.com/shashiranjanraj/maison/pkg/response"
	"github.com/shashiranjanraj/maison/pkg/router"
	"github.com/shashiranjanraj/maison/pkg/storage"
	"github.com/shashiranjanraj/maison/pkg/ws"
)

// StockHub broadcasts stock-level changes to websocket subscribers.
var StockHub = ws.NewHub()

// Start wires everything together and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.Connect(ctx); err != nil {
		return err
	}

	var logSink *logger.MongoHandler
	if config.LogToMongo() {
		logSink = logger.NewMongoHandler(database.Collection(config.LogCollection()))
		logger.SetHandler(logger.NewMultiHandler(logger.Handler(), logSink))
	}

	// Redis and object storage are optional; the store keeps serving
	// without them.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()

	go StockHub.Run()
	registerListeners()

	r := buildRouter()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server: shutdown failed", "error", err)
	}

	event.Flush()
	if logSink != nil {
		logSink.Close()
	}
	return database.Disconnect(shutdownCtx)
}

// registerListeners hooks domain events to the websocket feed and the
// product-list cache.
func registerListeners() {
	event.Listen("stock.changed", func(payload interface{}) {
		StockHub.BroadcastJSON(payload)
		if err := cache.Forget(controllers.ProductListCacheKey); err != nil {
			logger.Warn("server: cache invalidation failed", "error", err)
		}
	})

	event.Listen("order.placed", func(payload interface{}) {
		if o, ok := payload.(services.OrderPlaced); ok {
			logger.Info("order placed",
				"order_id", o.OrderID, "subtotal", o.Subtotal,
				"currency", o.Currency, "lines", o.Lines)
		}
	})
}

// buildRouter assembles the full middleware chain and route table. Split
// from Start so the CLI can print the route table without serving.
func buildRouter() *router.Router {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	r.Get("/", "root", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"message": "Maison storefront API running"})
	})
	r.Get("/healthz", "healthz", healthz)
	r.Handle("/metrics", "metrics", metrics.Handler())
	r.Get("/ws/stock", "ws.stock", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, StockHub)
	})

	routes.RegisterAPI(r)
	return r
}

// Routes exposes the assembled route table for the route:list command.
func Routes() ([]router.RouteInfo, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return buildRouter().Routes(), nil
}

func healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	body := map[string]interface{}{
		"status":   "ok",
		"database": "unavailable",
		"redis":    cache.Connected(),
	}

	if err := database.Ping(ctx); err == nil {
		body["database"] = "ok"
		body["database_name"] = config.MongoDB()
		if names, err := database.CollectionNames(ctx, 20); err == nil {
			body["collections"] = names
		}
	} else {
		body["status"] = "degraded"
	}

	response.Success(w, body)
}
