package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"plateful/backend/internal/auth"
	"plateful/backend/internal/middleware"
	"plateful/backend/internal/services"
	"plateful/backend/pkg/logger"
)

type testEnv struct {
	router        *gin.Engine
	collections   *fakeCollections
	mealPlans     *fakeMealPlans
	favorites     *fakeFavorites
	shoppingLists *fakeShoppingLists
	handler       *Handler
}

// newTestEnv builds the full route table against fake repositories and an
// optional upstream recipe API double.
func newTestEnv(t *testing.T, upstream http.HandlerFunc) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	l := logger.New("error")

	upstreamURL := "http://127.0.0.1:1"
	if upstream != nil {
		server := httptest.NewServer(upstream)
		t.Cleanup(server.Close)
		upstreamURL = server.URL
	}

	env := &testEnv{
		collections:   newFakeCollections(),
		mealPlans:     newFakeMealPlans(),
		favorites:     newFakeFavorites(),
		shoppingLists: newFakeShoppingLists(),
	}
	env.handler = New(
		env.collections,
		env.mealPlans,
		env.favorites,
		env.shoppingLists,
		services.NewSpoonacularClient(upstreamURL, "test-key", nil, l),
		nil,
		l,
	)

	verifier, err := auth.NewVerifier(auth.Options{}, l)
	require.NoError(t, err)

	h := env.handler
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})
	router.Use(middleware.CORS())

	api := router.Group("/api/v1")
	protected := api.Group("/").Use(middleware.Auth(verifier, true, l))
	{
		protected.GET("/collections", h.ListCollections)
		protected.POST("/collections", h.CreateCollection)
		protected.GET("/collections/:id", h.GetCollection)
		protected.PUT("/collections/:id", h.UpdateCollection)
		protected.DELETE("/collections/:id", h.DeleteCollection)
		protected.POST("/collections/:id/items", h.AddCollectionItem)
		protected.DELETE("/collections/:id/items", h.RemoveCollectionItemByRecipe)
		protected.DELETE("/collections/:id/items/:itemId", h.RemoveCollectionItem)

		protected.GET("/meal-plan", h.GetMealPlan)
		protected.POST("/meal-plan", h.AddMealPlanItem)
		protected.DELETE("/meal-plan/items/:itemId", h.RemoveMealPlanItem)

		protected.GET("/recipes/favorites", h.ListFavorites)
		protected.POST("/recipes/favorites", h.AddFavorite)
		protected.DELETE("/recipes/favorites/:recipeId", h.RemoveFavorite)

		protected.GET("/recipes/search", h.SearchRecipes)
		protected.GET("/recipes/autocomplete", h.AutocompleteRecipes)
		protected.GET("/recipes/:id/summary", h.GetRecipeSummary)
		protected.GET("/recipes/:id/similar", h.GetSimilarRecipes)
		protected.GET("/food/wine/pairing", h.GetWinePairing)
		protected.GET("/food/wine/dishes", h.GetWineDishes)

		protected.GET("/shopping-lists", h.ListShoppingLists)
		protected.POST("/shopping-lists", h.CreateShoppingList)
		protected.GET("/shopping-lists/:id", h.GetShoppingList)
		protected.PUT("/shopping-lists/:id", h.UpdateShoppingList)
		protected.DELETE("/shopping-lists/:id", h.DeleteShoppingList)

		protected.POST("/upload", h.UploadImage)
	}

	env.router = router
	return env
}

// do performs a request as the given user via the X-User-Id fallback.
func (e *testEnv) do(method, path, body, userID string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
