package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lv-broker/internal/auth"
	"lv-broker/internal/httputil"
	"lv-broker/internal/instruments"
	"lv-broker/internal/marketdata"
	"lv-broker/internal/orders"
	"lv-broker/internal/portfolio"
	"lv-broker/internal/users"
)

type RouterDeps struct {
	AuthHandler       *auth.Handler
	UserHandler       *users.Handler
	InstrumentHandler *instruments.Handler
	MarketHandler     *marketdata.Handler
	OrderHandler      *orders.Handler
	PortfolioHandler  *portfolio.Handler
	AuthService       *auth.Service
	StreamWS          http.Handler
}

// authed adapts a userID-taking handler to http.HandlerFunc, assuming
// WithAuth already ran.
func authed(h func(http.ResponseWriter, *http.Request, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{Error: "unauthorized"})
			return
		}
		h(w, r, userID)
	}
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS middleware for development
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				origin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Use(SecurityHeaders)
	r.Use(RateLimitMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.AuthHandler.Register)
			r.Post("/login", d.AuthHandler.Login)
		})
		r.Get("/instruments", d.InstrumentHandler.Search)
		r.Get("/marketdata/{id}/latest", d.MarketHandler.Latest)
		r.Get("/marketdata/ws", d.StreamWS.ServeHTTP)
		r.Get("/users", d.UserHandler.Search)
		r.Group(func(r chi.Router) {
			r.Use(WithAuth(d.AuthService))
			r.Get("/me", authed(d.UserHandler.Me))
			r.Patch("/me", authed(d.UserHandler.Patch))
			r.Delete("/me", authed(d.UserHandler.Delete))
			r.Post("/orders", authed(d.OrderHandler.Create))
			r.Get("/orders", authed(d.OrderHandler.List))
			r.Get("/portfolio", authed(d.PortfolioHandler.Get))
		})
	})
	return r
}
