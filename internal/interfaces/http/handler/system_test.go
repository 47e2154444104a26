package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/codops/backend/internal/application/catalog"
	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pingerFunc func() error

func (f pingerFunc) Ping() error { return f() }

func TestSystemHandler_Health(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/health", nil)
	requireStatus(t, http.StatusOK, w)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "cod-test", resp.Name)
	assert.Equal(t, "ok", resp.Database)
	assert.NotEmpty(t, resp.GoVersion)
}

func TestSystemHandler_HealthDegraded(t *testing.T) {
	engine := gin.New()
	NewSystemHandler("cod-test", "test", pingerFunc(func() error {
		return errors.New("database is locked")
	})).Register(engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	requireStatus(t, http.StatusServiceUnavailable, w)
	info := decodeError(t, w)
	assert.Equal(t, "SERVICE_UNAVAILABLE", info.Code)
	assert.Contains(t, w.Body.String(), `"database":"unreachable"`)
}

func TestBaseHandler_UnexpectedErrorIsHidden(t *testing.T) {
	repo := new(testutil.MockProductRepository)
	repo.On("FindAll", mock.Anything).Return([]catalog.Product(nil), errors.New("disk I/O error"))

	engine := gin.New()
	products := catalogapp.NewProductService(repo, nil)
	engine.GET("/products", NewProductHandler(products, nil, nil).List)

	req := httptest.NewRequest(http.MethodGet, "/products", nil).WithContext(context.Background())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	requireStatus(t, http.StatusInternalServerError, w)
	info := decodeError(t, w)
	assert.Equal(t, "INTERNAL_ERROR", info.Code)
	require.NotContains(t, w.Body.String(), "disk I/O")
	repo.AssertExpectations(t)
}
