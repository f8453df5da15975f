package reportbot

import (
	"fmt"
	"reportdesk/internal/common"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const WebhookPath = "/webhook/telegram"

type StartHttpServerOpts struct {
	Addr string

	// ApiToken protects the dashboard-facing /api/v1 routes via bearer
	// auth; the webhook route is protected by WebhookSecret instead
	ApiToken string

	// WebhookSecret is compared against Telegram's
	// X-Telegram-Bot-Api-Secret-Token header; mismatches are rejected
	// with a 401 before the body is read
	WebhookSecret string

	Done        chan common.Done
	Service     *Service
	ServiceLogs chan<- common.ServiceLog
}

// StartHttpServer serves the webhook, the dashboard API, healthchecks
// and metrics on a single listener; it blocks until the server exits
func StartHttpServer(opts StartHttpServerOpts) error {
	if opts.Service == nil {
		return fmt.Errorf("failed to receive a service instance")
	}
	if opts.WebhookSecret == "" {
		return fmt.Errorf("failed to receive a webhook secret")
	}
	if opts.ApiToken == "" {
		return fmt.Errorf("failed to receive an api token")
	}

	router := mux.NewRouter()

	router.HandleFunc("/healthz", getHealthcheckHandler()).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	webhookRouter := router.PathPrefix(WebhookPath).Subrouter()
	webhookRouter.Use(mux.MiddlewareFunc(common.GetSecretHeaderMiddleware(
		opts.ServiceLogs,
		"X-Telegram-Bot-Api-Secret-Token",
		opts.WebhookSecret,
	)))
	webhookRouter.HandleFunc("", getWebhookHandler(opts.Service)).Methods("POST")

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(mux.MiddlewareFunc(common.GetBearerAuthMiddleware(opts.ServiceLogs, opts.ApiToken)))
	apiRouter.HandleFunc("/orders", getListOrdersHandler(opts.Service)).Methods("GET")
	apiRouter.HandleFunc("/orders/{orderId}/approve", getResolveOrderHandler(opts.Service, true)).Methods("POST")
	apiRouter.HandleFunc("/orders/{orderId}/reject", getResolveOrderHandler(opts.Service, false)).Methods("POST")
	apiRouter.HandleFunc("/stats", getOrderStatsHandler(opts.Service)).Methods("GET")

	router.NotFoundHandler = common.GetNotFoundHandler()

	server, err := common.NewHttpServer(common.NewHttpServerOpts{
		Addr:        opts.Addr,
		Done:        opts.Done,
		Handler:     router,
		ServiceLogs: opts.ServiceLogs,
	})
	if err != nil {
		return fmt.Errorf("failed to create a http server: %w", err)
	}
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
