package tests

import (
	"net/http"
	"testing"

	"salestrack/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// The resource segments are singular. A client built against the documented
// paths must resolve every endpoint.
func TestRegisteredRoutePaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := router.New(testConfig(), nil, nil)

	registered := make(map[string]bool)
	for _, ri := range r.Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}

	for _, want := range []string{
		http.MethodGet + " /health",
		http.MethodPost + " /token",
		http.MethodPost + " /token/refresh",
		http.MethodGet + " /v1/article",
		http.MethodGet + " /v1/article/:id",
		http.MethodPost + " /v1/article",
		http.MethodPut + " /v1/article/:id",
		http.MethodPatch + " /v1/article/:id",
		http.MethodDelete + " /v1/article/:id",
		http.MethodGet + " /v1/sale",
		http.MethodGet + " /v1/sale/:id",
		http.MethodPost + " /v1/sale",
		http.MethodPut + " /v1/sale/:id",
		http.MethodPatch + " /v1/sale/:id",
		http.MethodDelete + " /v1/sale/:id",
		http.MethodGet + " /v1/category",
		http.MethodPost + " /v1/category",
		http.MethodPut + " /v1/category/:id",
		http.MethodDelete + " /v1/category/:id",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}

	for path := range registered {
		assert.NotContains(t, path, "/v1/articles")
		assert.NotContains(t, path, "/v1/sales")
		assert.NotContains(t, path, "/v1/categories")
	}
}
