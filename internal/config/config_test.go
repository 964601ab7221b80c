package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("SPOONACULAR_API_KEY", "test-key")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
		assert.Equal(t, "test-key", cfg.SpoonacularAPIKey)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "plateful", cfg.DBName)
		assert.Equal(t, "https://api.spoonacular.com", cfg.SpoonacularBaseURL)
		assert.True(t, cfg.AllowUserHeader)
	})

	t.Run("MissingMongoURI", func(t *testing.T) {
		t.Setenv("MONGO_URI", "")
		t.Setenv("SPOONACULAR_API_KEY", "test-key")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MONGO_URI")
	})

	t.Run("MissingSpoonacularKey", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("SPOONACULAR_API_KEY", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SPOONACULAR_API_KEY")
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("SPOONACULAR_API_KEY", "test-key")
		t.Setenv("PORT", "9999")
		t.Setenv("DB_NAME", "plateful_test")
		t.Setenv("AUTH_ALLOW_USER_HEADER", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9999", cfg.Port)
		assert.Equal(t, "plateful_test", cfg.DBName)
		assert.False(t, cfg.AllowUserHeader)
	})
}
