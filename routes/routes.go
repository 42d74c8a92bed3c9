package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/controllers"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/middleware"
)

func InitRouter() http.Handler {
	r := mux.NewRouter()

	// Health check endpoint for container health checks
	r.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "az-finance-hub",
		})
	})).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Rate limiter for admin login: 5 attempts per IP per minute
	loginLimiter := middleware.NewIPRateLimiter(5, time.Minute)
	api.Handle("/admin/login", loginLimiter.Middleware(http.HandlerFunc(controllers.Login))).Methods(http.MethodPost)

	// Cron endpoints authenticate with X-CRON-KEY inside the handler
	api.Handle("/cron/status-sweep", http.HandlerFunc(controllers.StatusSweepHandler)).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuthMiddleware)

	admin.Handle("/logout", http.HandlerFunc(controllers.Logout)).Methods(http.MethodPost)

	// Platforms
	admin.Handle("/platforms", http.HandlerFunc(controllers.ListPlatformsHandler)).Methods(http.MethodGet)
	admin.Handle("/platforms", http.HandlerFunc(controllers.CreatePlatformHandler)).Methods(http.MethodPost)

	// Investments
	admin.Handle("/investments", http.HandlerFunc(controllers.ListInvestmentsHandler)).Methods(http.MethodGet)
	admin.Handle("/investments", http.HandlerFunc(controllers.CreateInvestmentHandler)).Methods(http.MethodPost)
	admin.Handle("/investments/estimate", http.HandlerFunc(controllers.EstimateProfitHandler)).Methods(http.MethodGet)
	admin.Handle("/investments/{id:[0-9]+}", http.HandlerFunc(controllers.GetInvestmentHandler)).Methods(http.MethodGet)
	admin.Handle("/investments/{id:[0-9]+}", http.HandlerFunc(controllers.UpdateInvestmentHandler)).Methods(http.MethodPut)
	admin.Handle("/investments/{id:[0-9]+}", http.HandlerFunc(controllers.DeleteInvestmentHandler)).Methods(http.MethodDelete)
	admin.Handle("/investments/{id:[0-9]+}/complete", http.HandlerFunc(controllers.CompleteInvestmentHandler)).Methods(http.MethodPost)

	// Cashflows
	admin.Handle("/cashflows", http.HandlerFunc(controllers.ListCashflowsHandler)).Methods(http.MethodGet)
	admin.Handle("/cashflows/{id:[0-9]+}", http.HandlerFunc(controllers.UpdateCashflowHandler)).Methods(http.MethodPut)

	// Cash pool
	admin.Handle("/cash-balance", http.HandlerFunc(controllers.CashBalanceHandler)).Methods(http.MethodGet)
	admin.Handle("/cash-transactions", http.HandlerFunc(controllers.ListCashTransactionsHandler)).Methods(http.MethodGet)
	admin.Handle("/cash-transactions", http.HandlerFunc(controllers.CreateCashTransactionHandler)).Methods(http.MethodPost)
	admin.Handle("/cash-transactions/{id:[0-9]+}", http.HandlerFunc(controllers.DeleteCashTransactionHandler)).Methods(http.MethodDelete)

	// CORS - origins from CORS_ALLOWED_ORIGINS (comma-separated) or local defaults
	origins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		for _, p := range strings.Split(env, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID", "X-CRON-KEY"}),
		handlers.AllowCredentials(),
	)(r)
}
