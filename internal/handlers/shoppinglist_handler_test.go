package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plateful/backend/internal/models"
)

func createShoppingList(t *testing.T, env *testEnv, userID, body string) models.ShoppingList {
	t.Helper()
	w := env.do(http.MethodPost, "/api/v1/shopping-lists", body, userID)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.ShoppingList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func TestCreateShoppingList(t *testing.T) {
	env := newTestEnv(t, nil)

	created := createShoppingList(t, env, "user-a",
		`{"name":"Week 32","items":[{"name":"Tomatoes","quantity":4,"unit":"pcs","category":"produce"}]}`)
	assert.Equal(t, "Week 32", created.Name)
	assert.Equal(t, "user-a", created.UserID)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "Tomatoes", created.Items[0].Name)
}

func TestCreateShoppingListRequiresName(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/shopping-lists", `{"items":[]}`, "user-a")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListShoppingListsScopedByOwner(t *testing.T) {
	env := newTestEnv(t, nil)
	createShoppingList(t, env, "user-a", `{"name":"Mine"}`)

	w := env.do(http.MethodGet, "/api/v1/shopping-lists", "", "user-a")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mine")

	w = env.do(http.MethodGet, "/api/v1/shopping-lists", "", "user-b")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"shoppingLists":[]`)
}

func TestGetShoppingListScopedByOwner(t *testing.T) {
	env := newTestEnv(t, nil)
	created := createShoppingList(t, env, "user-a", `{"name":"Mine"}`)

	w := env.do(http.MethodGet, "/api/v1/shopping-lists/"+created.ID.Hex(), "", "user-a")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/shopping-lists/"+created.ID.Hex(), "", "user-b")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateShoppingListReplacesContents(t *testing.T) {
	env := newTestEnv(t, nil)
	created := createShoppingList(t, env, "user-a",
		`{"name":"Before","items":[{"name":"Milk","quantity":1,"unit":"l"}]}`)

	w := env.do(http.MethodPut, "/api/v1/shopping-lists/"+created.ID.Hex(),
		`{"name":"After","items":[],"completed":true}`, "user-a")
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.ShoppingList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "After", updated.Name)
	assert.Empty(t, updated.Items)
	assert.True(t, updated.Completed)
}

func TestUpdateShoppingListScopedByOwner(t *testing.T) {
	env := newTestEnv(t, nil)
	created := createShoppingList(t, env, "user-a", `{"name":"Mine"}`)

	w := env.do(http.MethodPut, "/api/v1/shopping-lists/"+created.ID.Hex(), `{"name":"Taken"}`, "user-b")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteShoppingList(t *testing.T) {
	env := newTestEnv(t, nil)
	created := createShoppingList(t, env, "user-a", `{"name":"Short-lived"}`)

	w := env.do(http.MethodDelete, "/api/v1/shopping-lists/"+created.ID.Hex(), "", "user-b")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodDelete, "/api/v1/shopping-lists/"+created.ID.Hex(), "", "user-a")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodGet, "/api/v1/shopping-lists/"+created.ID.Hex(), "", "user-a")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
