package main

import (
	"net/http"

	"blog-backend/internal/config"
	"blog-backend/internal/database"
	"blog-backend/internal/handlers"
	"blog-backend/internal/logger"
	"blog-backend/internal/middleware"
	"blog-backend/internal/services"
	"blog-backend/internal/token"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	db, err := database.Init(cfg.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.Migrate("migrations"); err != nil {
		log.Fatal("Failed to run migrations", "error", err)
	}

	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	authMiddleware := middleware.NewAuthMiddleware(tokens, services.NewUserService(db))

	authHandler := handlers.NewAuthHandler(db, tokens)
	userHandler := handlers.NewUserHandler(db)
	articleHandler := handlers.NewArticleHandler(db)

	router := http.NewServeMux()

	router.HandleFunc("POST /api/auth/register", authHandler.RegisterUser)
	router.HandleFunc("POST /api/auth/login", authHandler.LoginUser)

	router.Handle("GET /api/articles", authMiddleware.OptionalAuth(http.HandlerFunc(articleHandler.ListArticles)))
	router.Handle("GET /api/articles/{id}", authMiddleware.OptionalAuth(http.HandlerFunc(articleHandler.GetArticle)))
	router.Handle("POST /api/articles", authMiddleware.RequireAuth(http.HandlerFunc(articleHandler.CreateArticle)))
	router.Handle("PUT /api/articles/{id}", authMiddleware.RequireAuth(http.HandlerFunc(articleHandler.UpdateArticle)))
	router.Handle("PUT /api/articles/{id}/publish", authMiddleware.RequireAuth(http.HandlerFunc(articleHandler.TogglePublish)))
	router.Handle("DELETE /api/articles/{id}", authMiddleware.RequireAuth(http.HandlerFunc(articleHandler.DeleteArticle)))

	// /api/users/profile is more specific than /api/users/{id}, so the
	// mux routes it first
	router.Handle("GET /api/users/profile", authMiddleware.RequireAuth(http.HandlerFunc(userHandler.GetProfile)))
	router.Handle("PUT /api/users/profile", authMiddleware.RequireAuth(http.HandlerFunc(userHandler.UpdateProfile)))

	router.Handle("GET /api/users", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ListUsers)))
	router.Handle("GET /api/users/{id}", authMiddleware.RequireAuth(http.HandlerFunc(userHandler.GetUser)))
	router.Handle("PUT /api/users/{id}", authMiddleware.RequireAuth(http.HandlerFunc(userHandler.UpdateUser)))
	router.Handle("PUT /api/users/{id}/role", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.UpdateRole)))
	router.Handle("DELETE /api/users/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.SoftDeleteUser)))
	router.Handle("DELETE /api/users/{id}/hard-delete", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.HardDeleteUser)))

	handler := middleware.CORS(cfg.CORSOrigin)(middleware.Logging(log)(router))

	log.Info("Server starting", "addr", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), handler); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
