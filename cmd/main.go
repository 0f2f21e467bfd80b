package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/moslemp47/vpnpanel1/internal/admin"
	"github.com/moslemp47/vpnpanel1/internal/auth"
	"github.com/moslemp47/vpnpanel1/internal/catalog"
	"github.com/moslemp47/vpnpanel1/internal/config"
	"github.com/moslemp47/vpnpanel1/internal/middleware"
	"github.com/moslemp47/vpnpanel1/internal/orders"
	"github.com/moslemp47/vpnpanel1/internal/providers"
	"github.com/moslemp47/vpnpanel1/internal/subscription"
	"github.com/moslemp47/vpnpanel1/internal/user"
	"github.com/moslemp47/vpnpanel1/internal/utils/db"
)

func main() {
	log := logrus.New()
	cfg := config.Load()

	database, err := db.GetDB()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.AutoMigrate(
		&user.User{},
		&auth.RefreshToken{},
		&catalog.Plan{},
		&orders.Order{},
		&subscription.Subscription{},
	); err != nil {
		log.WithError(err).Fatal("automigrate failed")
	}

	// Repositories
	userRepo := user.NewRepository(database)
	ledger := auth.NewLedger(database)
	planRepo := catalog.NewRepository(database)
	orderRepo := orders.NewRepository(database)
	subRepo := subscription.NewRepository(database)

	// Auth core
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	throttle := auth.NewThrottle(cfg.LoginMaxAttempts, cfg.LoginWindow)
	authService := auth.NewService(userRepo, ledger, issuer, throttle)

	// Upstream panels
	registry := providers.NewRegistry(cfg)

	// Handlers
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(planRepo)
	orderHandler := orders.NewHandler(orderRepo, planRepo, subRepo, cfg.PaymentProvider)
	subHandler := subscription.NewHandler(subRepo, registry)
	adminHandler := admin.NewHandler(subRepo, planRepo, registry)

	// Router
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	// Auth routes
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	r.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST")
	r.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	// Catalog
	r.HandleFunc("/catalog/plans", catalogHandler.ListPlans).Methods("GET")

	// Authenticated routes
	protected := r.NewRoute().Subrouter()
	protected.Use(authService.Middleware)
	protected.HandleFunc("/orders", orderHandler.CreateOrder).Methods("POST")
	protected.HandleFunc("/subscriptions", subHandler.List).Methods("GET")
	protected.HandleFunc("/subscriptions/{id}/usage", subHandler.Usage).Methods("GET")

	// Admin routes
	adminRouter := protected.PathPrefix("/admin").Subrouter()
	adminRouter.Use(auth.RequireAdmin(userRepo))
	adminRouter.HandleFunc("/provision", adminHandler.Provision).Methods("POST")

	// Middleware chain: CORS on the outside, then rate limit, security
	// headers and request logging.
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)

	var handler http.Handler = r
	handler = middleware.RequestLogging(log)(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = limiter.Middleware(handler)
	handler = corsMiddleware.Handler(handler)

	addr := ":" + cfg.HTTPPort
	log.WithField("addr", addr).Infof("%s listening", cfg.AppName)
	log.Fatal(http.ListenAndServe(addr, handler))
}
