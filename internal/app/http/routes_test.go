package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"company-portal/config"
	"company-portal/internal/payments"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &payments.Service{}, nil)
	return r
}

func TestGoogleRoutesRegisteredOnlyWhenConfigured(t *testing.T) {
	orig := config.GOOGLE_CLIENT_ID
	defer func() { config.GOOGLE_CLIENT_ID = orig }()

	config.GOOGLE_CLIENT_ID = ""
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	config.GOOGLE_CLIENT_ID = "test-client-id"
	r = newTestRouter()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	assert.Equal(t, http.StatusFound, w.Code)
}
