package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/telalestate/propertydesk/internal/events"
	"github.com/telalestate/propertydesk/internal/handler"
	"github.com/telalestate/propertydesk/internal/idgen"
	"github.com/telalestate/propertydesk/internal/infrastructure/logger"
	"github.com/telalestate/propertydesk/internal/infrastructure/redis"
	"github.com/telalestate/propertydesk/internal/notify"
	"github.com/telalestate/propertydesk/internal/observability/metrics"
	"github.com/telalestate/propertydesk/internal/observability/tracing"
	"github.com/telalestate/propertydesk/internal/repository"
	"github.com/telalestate/propertydesk/internal/security/audit"
	"github.com/telalestate/propertydesk/internal/security/auth"
	"github.com/telalestate/propertydesk/internal/security/middleware"
	"github.com/telalestate/propertydesk/internal/security/ratelimit"
	"github.com/telalestate/propertydesk/internal/service"
	"github.com/telalestate/propertydesk/internal/store"
	"github.com/telalestate/propertydesk/internal/worker"
	"github.com/telalestate/propertydesk/pkg/cache"
	"github.com/telalestate/propertydesk/pkg/config"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting PropertyDesk server", slog.String("environment", cfg.Environment))

	// 3. Initialize tracing (no-op unless an OTLP endpoint is configured)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, log, "propertydesk", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer shutdownTracing(context.Background())

	// 4. Open the data store
	st := store.New(cfg.DataDir, log)
	if _, err := st.Load(); err != nil {
		log.Error("failed to load data store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Dashboard cache: Redis when configured, in-process otherwise
	var dashboardCache cache.Store = cache.New()
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL, log)
		if err != nil {
			log.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		dashboardCache = redisClient
		log.Info("dashboard cache backed by Redis")
	}

	// 6. Initialize repositories
	hub := events.NewHub(log)
	ids := idgen.UUID{}
	propertyRepo := repository.NewPropertyRepository(st, ids, hub, log)
	customerRepo := repository.NewCustomerRepository(st, ids, hub, log)
	receiptRepo := repository.NewReceiptRepository(st, ids, hub, log)
	rentalRepo := repository.NewRentalRepository(st, ids, hub, log)
	contractRepo := repository.NewRentalContractRepository(st, ids, hub, log)
	documentRepo := repository.NewDocumentRepository(st, ids, hub, log)
	userRepo := repository.NewUserRepository(st, ids, log)

	// 7. Initialize services
	joinService := service.NewJoinService(st, log)
	aggregationService := service.NewAggregationService(st, log)

	var sender notify.Sender
	if cfg.SMTPHost != "" {
		sender = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
			ReplyTo:  cfg.EmailReplyTo,
		}, log)
	} else {
		log.Warn("SMTP not configured, reminder emails are logged only")
		sender = &notify.LogSender{Logger: log}
	}
	reminderService := service.NewReminderService(st, sender, log)

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	authService := service.NewAuthService(userRepo, tokenManager, log)

	// 8. Security components
	rateLimiter := ratelimit.NewLimiter(cfg.RateLimitPerMinute, time.Minute)
	auditLogger := audit.NewLogger(log)

	// 9. Initialize handlers
	propertiesHandler := handler.NewPropertiesHandler(propertyRepo, log)
	customersHandler := handler.NewCustomersHandler(customerRepo, log)
	receiptsHandler := handler.NewReceiptsHandler(receiptRepo, joinService, log)
	rentalsHandler := handler.NewRentalsHandler(rentalRepo, log)
	contractsHandler := handler.NewContractsHandler(contractRepo, log)
	documentsHandler := handler.NewDocumentsHandler(documentRepo, log)
	dashboardHandler := handler.NewDashboardHandler(aggregationService, dashboardCache,
		time.Duration(cfg.DashboardCacheTTLSecs)*time.Second, log)
	remindersHandler := handler.NewRemindersHandler(aggregationService, reminderService, log)
	uploadHandler := handler.NewUploadHandler(cfg.UploadsDir, log)
	authHandler := handler.NewAuthHandler(authService, log)
	eventsHandler := handler.NewEventsHandler(hub, log, cfg.CORSAllowedOrigins)
	healthHandler := handler.NewHealthHandler(st, log)

	go dashboardHandler.WatchEvents(ctx, hub)

	// 10. Setup HTTP routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/properties", propertiesHandler.List)
	mux.HandleFunc("POST /api/properties", propertiesHandler.Create)
	mux.HandleFunc("GET /api/properties/{id}", propertiesHandler.Get)
	mux.HandleFunc("PUT /api/properties/{id}", propertiesHandler.Update)
	mux.HandleFunc("DELETE /api/properties/{id}", propertiesHandler.Delete)

	mux.HandleFunc("GET /api/customers", customersHandler.List)
	mux.HandleFunc("POST /api/customers", customersHandler.Create)
	mux.HandleFunc("GET /api/customers/{id}", customersHandler.Get)
	mux.HandleFunc("PUT /api/customers/{id}", customersHandler.Update)
	mux.HandleFunc("DELETE /api/customers/{id}", customersHandler.Delete)

	mux.HandleFunc("GET /api/receipts", receiptsHandler.List)
	mux.HandleFunc("POST /api/receipts", receiptsHandler.Create)
	mux.HandleFunc("GET /api/receipts/{id}", receiptsHandler.Get)
	mux.HandleFunc("PUT /api/receipts/{id}", receiptsHandler.Update)
	mux.HandleFunc("DELETE /api/receipts/{id}", receiptsHandler.Delete)

	mux.HandleFunc("GET /api/rentals", rentalsHandler.List)
	mux.HandleFunc("POST /api/rentals", rentalsHandler.Create)
	mux.HandleFunc("GET /api/rentals/{id}", rentalsHandler.Get)
	mux.HandleFunc("PUT /api/rentals/{id}", rentalsHandler.Update)
	mux.HandleFunc("DELETE /api/rentals/{id}", rentalsHandler.Delete)

	mux.HandleFunc("GET /api/rental-contracts", contractsHandler.List)
	mux.HandleFunc("POST /api/rental-contracts", contractsHandler.Create)
	mux.HandleFunc("GET /api/rental-contracts/{id}", contractsHandler.Get)
	mux.HandleFunc("PUT /api/rental-contracts/{id}", contractsHandler.Update)
	mux.HandleFunc("DELETE /api/rental-contracts/{id}", contractsHandler.Delete)

	mux.HandleFunc("GET /api/documents", documentsHandler.List)
	mux.HandleFunc("POST /api/documents", documentsHandler.Create)
	mux.HandleFunc("GET /api/documents/{id}", documentsHandler.Get)
	mux.HandleFunc("PUT /api/documents/{id}", documentsHandler.Update)
	mux.HandleFunc("DELETE /api/documents/{id}", documentsHandler.Delete)

	mux.HandleFunc("GET /api/dashboard", dashboardHandler.Summary)
	mux.HandleFunc("GET /api/reminders/overdue", remindersHandler.Overdue)
	mux.HandleFunc("POST /api/reminders", remindersHandler.Send)

	mux.HandleFunc("POST /api/upload", uploadHandler.Upload)
	mux.HandleFunc("DELETE /api/upload", uploadHandler.Delete)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/change-password", authHandler.ChangePassword)

	mux.Handle("GET /ws/events", eventsHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)

	// CORS middleware honoring configured origins
	handlerWithCORS := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(cfg.CORSAllowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})

	// Chain middleware: request ID -> JWT -> rate limit -> audit -> metrics -> CORS.
	// JWT runs before the rate limiter and audit log so both see the caller's claims.
	rootHandler := withRequestID(
		middleware.JWTMiddleware(tokenManager, log)(
			middleware.RateLimitMiddleware(rateLimiter, log)(
				middleware.AuditMiddleware(auditLogger)(
					metrics.HTTPMetricsMiddleware(handlerWithCORS),
				),
			),
		),
		log,
	)

	// 11. Start reminder worker in background
	reminderWorker := worker.NewReminderWorker(
		aggregationService,
		reminderService,
		log,
		time.Duration(cfg.ReminderIntervalMinutes)*time.Minute,
	)
	go reminderWorker.Start(ctx)

	// 12. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      otelhttp.NewHandler(rootHandler, "http.server"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("data_dir", cfg.DataDir),
		slog.String("uploads_dir", cfg.UploadsDir),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	cancel() // Stop reminder worker and cache invalidator
	rateLimiter.Stop()
	log.Info("server stopped")
}

// withRequestID attaches a request ID to the context and response headers for traceability
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := generateRequestID()
		w.Header().Set("X-Request-ID", reqID)

		ctx := audit.WithRequestID(r.Context(), reqID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

func generateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("req-%d", time.Now().UnixNano())
}
