package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetActiveFilter(t *testing.T) {
	env := setupTestEnv(t)

	rr := env.do(t, http.MethodPut, "/ui/filter", map[string]string{"filter": "dessert"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "dessert", env.store.ActiveFilter())

	// category filters do not narrow the list by default
	resp := decode[recipeListResponse](t, env.do(t, http.MethodGet, "/recipes", nil))
	assert.Len(t, resp.Recipes, 3)
}

func TestSetActiveFilterAcceptsUnknownValues(t *testing.T) {
	env := setupTestEnv(t)

	rr := env.do(t, http.MethodPut, "/ui/filter", map[string]string{"filter": "spicy"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "spicy", env.store.ActiveFilter())

	rr = env.do(t, http.MethodPut, "/ui/filter", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "spicy", env.store.ActiveFilter())
}

func TestClearSearchTerm(t *testing.T) {
	env := setupTestEnv(t)
	env.store.SetSearchTerm("salad")

	rr := env.do(t, http.MethodPut, "/ui/search", map[string]string{"term": ""})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, env.store.SearchTerm())
}
