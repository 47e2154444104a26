package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type ctxKey struct{}

func TestProfilingLabels(t *testing.T) {
	tests := []struct {
		method, route string
		want          []string
	}{
		{"GET", "/api/v1/shipments/:id/items", []string{"method", "GET", "route", "/api/v1/shipments/:id/items", "resource", "shipments"}},
		{"POST", "/api/v1/remits", []string{"method", "POST", "route", "/api/v1/remits", "resource", "remits"}},
		{"GET", "/health", []string{"method", "GET", "route", "/health", "resource", "health"}},
		{"GET", "", []string{"method", "GET"}},
		{"", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, ProfilingLabels(tt.method, tt.route))
		})
	}
}

func TestIsVersionSegment(t *testing.T) {
	assert.True(t, isVersionSegment("v1"))
	assert.True(t, isVersionSegment("V12"))
	assert.False(t, isVersionSegment("v"))
	assert.False(t, isVersionSegment("vx"))
	assert.False(t, isVersionSegment("products"))
}

func TestProfilingWithConfig_LabelsRequestContext(t *testing.T) {
	router := gin.New()
	router.Use(ProfilingWithConfig(DefaultProfilingConfig()))

	var resource string
	router.GET("/api/v1/products/:sku", func(c *gin.Context) {
		resource, _ = pprof.Label(c.Request.Context(), ProfilingLabelResource)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/TK1-FOOT", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "products", resource)
}

func TestProfilingWithConfig_SkipsAndDisabled(t *testing.T) {
	for name, cfg := range map[string]ProfilingConfig{
		"skip path": DefaultProfilingConfig(),
		"disabled":  {Enabled: false},
	} {
		t.Run(name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ctxKey{}, "kept"))
				c.Next()
			})
			router.Use(ProfilingWithConfig(cfg))

			var labelled bool
			var kept any
			router.GET("/health", func(c *gin.Context) {
				_, labelled = pprof.Label(c.Request.Context(), ProfilingLabelMethod)
				kept = c.Request.Context().Value(ctxKey{})
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.False(t, labelled)
			assert.Equal(t, "kept", kept)
		})
	}
}
