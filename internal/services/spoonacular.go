package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrQuotaExceeded reports that the upstream recipe API refused the call
// because the daily usage allowance is exhausted. Callers map it to HTTP
// 402 so clients can tell quota exhaustion from other upstream failures.
var ErrQuotaExceeded = errors.New("recipe API quota exceeded")

// SpoonacularClient is a thin wrapper around the Spoonacular REST API.
// Responses are returned as raw JSON and forwarded to clients unmodified.
type SpoonacularClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *ResponseCache
	logger  *logrus.Logger
}

// NewSpoonacularClient creates a client. cache may be nil.
func NewSpoonacularClient(baseURL, apiKey string, cache *ResponseCache, logger *logrus.Logger) *SpoonacularClient {
	return &SpoonacularClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		logger:  logger,
	}
}

type upstreamError struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// get performs a GET against the upstream, consulting the cache first. The
// cache key excludes the API key.
func (c *SpoonacularClient) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}

	cacheKey := "spoonacular:" + path + "?" + params.Encode()
	if cached, ok := c.cache.Get(ctx, cacheKey); ok {
		return cached, nil
	}

	params.Set("apiKey", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recipe API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe API response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusPaymentRequired {
			return nil, ErrQuotaExceeded
		}
		var ue upstreamError
		if err := json.Unmarshal(body, &ue); err == nil && strings.Contains(strings.ToLower(ue.Message), "limit") {
			return nil, ErrQuotaExceeded
		}
		c.logger.WithFields(logrus.Fields{"status": resp.StatusCode, "path": path}).Error("recipe API error")
		return nil, fmt.Errorf("recipe API returned status %d", resp.StatusCode)
	}

	c.cache.Set(ctx, cacheKey, body)
	return body, nil
}

// SearchRecipes proxies a complex search. Every filter in extra is
// forwarded verbatim; page is translated to an offset of page*10.
func (c *SpoonacularClient) SearchRecipes(ctx context.Context, searchTerm string, page int, extra url.Values) (json.RawMessage, error) {
	params := url.Values{}
	for key, vals := range extra {
		for _, v := range vals {
			params.Add(key, v)
		}
	}
	params.Set("query", searchTerm)
	params.Set("number", "10")
	params.Set("offset", strconv.Itoa(page*10))
	params.Set("addRecipeInformation", "true")
	return c.get(ctx, "/recipes/complexSearch", params)
}

// Autocomplete returns up to number title completions for query.
func (c *SpoonacularClient) Autocomplete(ctx context.Context, query string, number int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("number", strconv.Itoa(number))
	return c.get(ctx, "/recipes/autocomplete", params)
}

// Summary returns the short HTML summary of a recipe.
func (c *SpoonacularClient) Summary(ctx context.Context, recipeID string) (json.RawMessage, error) {
	return c.get(ctx, "/recipes/"+recipeID+"/summary", nil)
}

// Similar returns up to number recipes similar to the given one.
func (c *SpoonacularClient) Similar(ctx context.Context, recipeID string, number int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(number))
	return c.get(ctx, "/recipes/"+recipeID+"/similar", params)
}

// WinePairing suggests wines for a food, optionally capped by price.
func (c *SpoonacularClient) WinePairing(ctx context.Context, food, maxPrice string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("food", food)
	if maxPrice != "" {
		params.Set("maxPrice", maxPrice)
	}
	return c.get(ctx, "/food/wine/pairing", params)
}

// WineDishes suggests dishes that go with a wine.
func (c *SpoonacularClient) WineDishes(ctx context.Context, wine string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("wine", wine)
	return c.get(ctx, "/food/wine/dishes", params)
}

// RecipeInfoBulk fetches full information for a set of recipe ids in one
// upstream call.
func (c *SpoonacularClient) RecipeInfoBulk(ctx context.Context, ids []int) (json.RawMessage, error) {
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = strconv.Itoa(id)
	}
	params := url.Values{}
	params.Set("ids", strings.Join(strIDs, ","))
	return c.get(ctx, "/recipes/informationBulk", params)
}
