package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/glum-catalog/backend/internal/auth"
	"github.com/glum-catalog/backend/internal/config"
	"github.com/glum-catalog/backend/internal/db"
	"github.com/glum-catalog/backend/internal/handler"
	"github.com/glum-catalog/backend/internal/service"
)

// @title Glum Catalog API
// @version 1.0
// @description Multi-tenant catalog and account service.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] No .env file loaded: %v", err)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	database := &db.Postgres{Pool: pool}
	if err := database.EnsureUserSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure user schema: %v", err)
	}
	if err := database.EnsureCatalogSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure catalog schema: %v", err)
	}

	hasher := auth.NewPasswordHasher()

	codec, err := auth.NewTokenCodec(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to configure token codec: %v", err)
	}

	mailer := service.NewMailer(service.NewSMTPSender(cfg.Mail), cfg.Mail)
	go mailer.Run(ctx)

	authService, err := auth.NewService(database, hasher, codec, mailer, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to configure auth service: %v", err)
	}

	userService := service.NewUserService(database, hasher, mailer)
	productService := service.NewProductService(database)

	if err := userService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	router := gin.Default()
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins))

	router.GET("/ping", handler.Ping)
	router.GET("/", handler.Root)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)

	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/users/verify-email/:email", userHandler.VerifyEmail)

	protected := v1.Group("")
	protected.Use(handler.SessionGuard(authService))
	{
		// Lookup routes keep a static segment before each path parameter so
		// none of them collides with a sibling wildcard in the route tree.
		users := protected.Group("/users")
		users.POST("", handler.RequireRole("SYSTEM_USER"), userHandler.Create)
		users.GET("", userHandler.List)
		users.GET("/id/:id", userHandler.GetByID)
		users.GET("/email/:email", userHandler.GetByEmail)
		users.GET("/phone/:phone", userHandler.GetByPhone)
		users.PUT("/id/:id", userHandler.Update)

		products := protected.Group("/products")
		products.GET("", productHandler.Summary)
		products.POST("", productHandler.Create)
		products.GET("/:id", productHandler.GetByID)
		products.PUT("/:id", productHandler.Update)
		products.DELETE("/:id", productHandler.Delete)

		protected.GET("/categories", productHandler.Categories)
	}

	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
