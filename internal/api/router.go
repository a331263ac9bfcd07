package api

import (
	"net/http"
	"time"

	"shopcaster/internal/api/handler"
	"shopcaster/internal/api/middleware"
	"shopcaster/internal/app/service"
	"shopcaster/internal/domain/repository"
	"shopcaster/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	tokenAuth *jwtauth.JWTAuth,
	userRepo repository.UserRepository,
	authService *service.AuthService,
	productService *service.ProductService,
	postService *service.PostService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		// Auth routes (public; logout stays public so it is idempotent)
		authHandler := handler.NewAuthHandler(authService, tokenAuth, cfg)
		api.Route("/auth", authHandler.RegisterRoutes)

		// Product routes (session required)
		productHandler := handler.NewProductHandler(productService, postService)
		api.Route("/products", func(products chi.Router) {
			// Verify parses the session cookie and stashes the outcome in the
			// context; Authenticator turns that into a user or a 401.
			products.Use(jwtauth.Verify(tokenAuth, middleware.SessionTokenFromCookie))
			products.Use(middleware.Authenticator(userRepo))
			productHandler.RegisterRoutes(products)
		})
	})

	return r
}
