package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/PrizePool_Go/internal/contest"
	"github.com/osse101/PrizePool_Go/internal/database"
	"github.com/osse101/PrizePool_Go/internal/eventlog"
	"github.com/osse101/PrizePool_Go/internal/handler"
	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/metrics"
	"github.com/osse101/PrizePool_Go/internal/order"
	"github.com/osse101/PrizePool_Go/internal/payout"
	"github.com/osse101/PrizePool_Go/internal/settlement"
	"github.com/osse101/PrizePool_Go/internal/sse"
)

// Options holds the transport settings of the HTTP server
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	// RatePerSecond <= 0 disables per-IP rate limiting
	RatePerSecond float64
	RateBurst     int
	MaxBodyBytes  int64
}

// Services are the domain services exposed over HTTP
type Services struct {
	Contests    contest.Service
	Orders      order.Service
	Payouts     payout.Service
	Settlements settlement.Service
	EventLog    eventlog.Service
	// Stream is optional; without it the live feed is not mounted
	Stream *sse.Hub
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, dbPool, svc),
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
		},
		dbPool: dbPool,
	}
}

// NewRouter builds the middleware stack and routes
func NewRouter(opts Options, dbPool database.Pool, svc Services) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	var limiter *IPRateLimiter
	if opts.RatePerSecond > 0 {
		limiter = NewIPRateLimiter(opts.RatePerSecond, opts.RateBurst)
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(opts.TrustedProxies, limiter))
	r.Use(RequestSizeLimitMiddleware(maxBody))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	contests := handler.NewContestHandler(svc.Contests)
	settlements := handler.NewSettlementHandler(svc.Settlements)
	orders := handler.NewOrderHandler(svc.Orders)
	payouts := handler.NewPayoutHandler(svc.Payouts)
	events := handler.NewEventLogHandler(svc.EventLog)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/contests", func(r chi.Router) {
			r.Post("/", contests.HandleCreateContest)
			r.Get("/", contests.HandleListContests)
			r.Get("/get", contests.HandleGetContest)
			r.Post("/generate", contests.HandleGeneratePredictions)
			r.Post("/publish", contests.HandleTogglePublish)
			r.Post("/delete", contests.HandleDeleteContest)
			r.Post("/settle", settlements.HandleSettleContest)
			r.Get("/results", settlements.HandleGetResults)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orders.HandlePlaceOrder)
			r.Get("/", orders.HandleListOrders)
			r.Get("/get", orders.HandleGetOrder)
			r.Post("/confirm", orders.HandleConfirmPayment)
			r.Post("/cancel", orders.HandleCancelOrder)
		})

		r.Route("/payouts", func(r chi.Router) {
			r.Post("/", payouts.HandleRequestPayout)
			r.Get("/status", payouts.HandleGetPayoutStatus)
			r.Get("/fee", payouts.HandleQuoteFee)
			r.Get("/balance", payouts.HandleGetBalance)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", events.HandleListEvents)
			if svc.Stream != nil {
				r.Get("/stream", sse.Handler(svc.Stream))
			}
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps streaming responses working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health checks and scrapes are too chatty to log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		log.Debug(LogMsgRequestHeaders, "headers", sanitizeHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

func sanitizeHeaders(h http.Header) http.Header {
	sanitized := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			sanitized[k] = []string{RedactedValue}
		} else {
			sanitized[k] = v
		}
	}
	return sanitized
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
