package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"plateful/backend/internal/auth"
	"plateful/backend/internal/config"
	"plateful/backend/internal/database"
	"plateful/backend/internal/handlers"
	"plateful/backend/internal/middleware"
	"plateful/backend/internal/repository/mongodb"
	"plateful/backend/internal/services"
	"plateful/backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting Plateful API server...")

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		l.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(ctx)

	if err := db.EnsureIndexes(ctx); err != nil {
		l.Fatalf("Failed to create indexes: %v", err)
	}
	l.Info("Successfully connected to MongoDB")

	// Optional response cache for the upstream recipe API.
	var cache *services.ResponseCache
	if cfg.RedisURL != "" {
		cache, err = services.NewResponseCache(cfg.RedisURL, time.Hour, l)
		if err != nil {
			l.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer cache.Close()
		l.Info("Upstream response cache enabled")
	}

	spoonacular := services.NewSpoonacularClient(cfg.SpoonacularBaseURL, cfg.SpoonacularAPIKey, cache, l)
	images := services.NewImageHost(cfg.ImageHostUploadURL, cfg.ImageHostPreset, l)

	verifier, err := auth.NewVerifier(auth.Options{
		JWKSURL:  cfg.AuthJWKSURL,
		Audience: cfg.AuthAudience,
		Issuer:   cfg.AuthIssuer,
	}, l)
	if err != nil {
		l.Fatalf("Failed to initialize token verifier: %v", err)
	}

	h := handlers.New(
		mongodb.NewCollectionRepository(db),
		mongodb.NewMealPlanRepository(db),
		mongodb.NewFavoriteRepository(db),
		mongodb.NewShoppingListRepository(db),
		spoonacular,
		images,
		l,
	)

	router := gin.Default()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	router.Use(middleware.CORS(), middleware.Metrics())

	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		protected := api.Group("/").Use(middleware.Auth(verifier, cfg.AllowUserHeader, l))
		{
			// COLLECTION ROUTES
			protected.GET("/collections", h.ListCollections)
			protected.POST("/collections", h.CreateCollection)
			protected.GET("/collections/:id", h.GetCollection)
			protected.PUT("/collections/:id", h.UpdateCollection)
			protected.DELETE("/collections/:id", h.DeleteCollection)
			protected.POST("/collections/:id/items", h.AddCollectionItem)
			protected.DELETE("/collections/:id/items", h.RemoveCollectionItemByRecipe)
			protected.DELETE("/collections/:id/items/:itemId", h.RemoveCollectionItem)

			// MEAL PLAN ROUTES
			protected.GET("/meal-plan", h.GetMealPlan)
			protected.POST("/meal-plan", h.AddMealPlanItem)
			protected.DELETE("/meal-plan/items/:itemId", h.RemoveMealPlanItem)

			// FAVORITE ROUTES
			protected.GET("/recipes/favorites", h.ListFavorites)
			protected.POST("/recipes/favorites", h.AddFavorite)
			protected.DELETE("/recipes/favorites/:recipeId", h.RemoveFavorite)

			// RECIPE PROXY ROUTES
			protected.GET("/recipes/search", h.SearchRecipes)
			protected.GET("/recipes/autocomplete", h.AutocompleteRecipes)
			protected.GET("/recipes/:id/summary", h.GetRecipeSummary)
			protected.GET("/recipes/:id/similar", h.GetSimilarRecipes)
			protected.GET("/food/wine/pairing", h.GetWinePairing)
			protected.GET("/food/wine/dishes", h.GetWineDishes)

			// SHOPPING LIST ROUTES
			protected.GET("/shopping-lists", h.ListShoppingLists)
			protected.POST("/shopping-lists", h.CreateShoppingList)
			protected.GET("/shopping-lists/:id", h.GetShoppingList)
			protected.PUT("/shopping-lists/:id", h.UpdateShoppingList)
			protected.DELETE("/shopping-lists/:id", h.DeleteShoppingList)

			// UPLOAD ROUTE
			protected.POST("/upload", h.UploadImage)
		}
	}

	l.Infof("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		l.Fatalf("Failed to run server: %v", err)
	}
}
