package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/innatthecape/breakfast-svc/internal/service/models/order"
	"github.com/innatthecape/breakfast-svc/internal/service/models/report"
	"github.com/innatthecape/breakfast-svc/internal/service/services/reportsvc"
	"github.com/innatthecape/breakfast-svc/internal/service/services/tokensvc"
	issuetoken "github.com/innatthecape/breakfast-svc/internal/transport/http/issue_token"
	listdates "github.com/innatthecape/breakfast-svc/internal/transport/http/list_dates"
	listorders "github.com/innatthecape/breakfast-svc/internal/transport/http/list_orders"
	submitorder "github.com/innatthecape/breakfast-svc/internal/transport/http/submit_order"
	"github.com/innatthecape/breakfast-svc/pkg/http/middleware/trace"
	"github.com/innatthecape/breakfast-svc/pkg/logger"
	"github.com/spf13/viper"
)

type orderService interface {
	SubmitOrder(ctx context.Context, sub order.Submission) (order.Record, error)
}

type reportService interface {
	OrdersForDate(ctx context.Context, date string) (reportsvc.DayOrders, error)
	AvailableDates(ctx context.Context) ([]report.DateInfo, error)
	TargetDate(target string) string
}

type tokenService interface {
	Issue(ctx context.Context, recipientEmail string) (tokensvc.IssuedToken, error)
}

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	orderSvc  orderService
	reportSvc reportService
	tokenSvc  tokenService
}

func NewHTTPTransport(orderSvc orderService, reportSvc reportService, tokenSvc tokenService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:    server,
		router:    router,
		orderSvc:  orderSvc,
		reportSvc: reportSvc,
		tokenSvc:  tokenSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/orders", h.submitOrder)
		r.Get("/orders", h.listOrders)
		r.Get("/dates", h.listDates)
		r.Post("/tokens", h.issueToken)
	})
}

func (h *HTTPTransport) submitOrder(w http.ResponseWriter, r *http.Request) {
	submitorder.SubmitOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.reportSvc)
}

func (h *HTTPTransport) listDates(w http.ResponseWriter, r *http.Request) {
	listdates.ListDates(w, r, h.reportSvc)
}

func (h *HTTPTransport) issueToken(w http.ResponseWriter, r *http.Request) {
	issuetoken.IssueToken(w, r, h.tokenSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
