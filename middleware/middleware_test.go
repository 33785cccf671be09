package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-ordering-api/logger"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(j *JWT) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(logger.Discard()))
	g := r.Group("/", j.AuthRequired(), RoleRequired(models.RoleCustomer))
	g.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "role": GetRole(c)})
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	j := NewJWT([]byte("secret"))
	r := newRouter(j)

	customer, err := j.GenerateToken(&models.User{ID: 3, Phone: "0912", Role: models.RoleCustomer})
	require.NoError(t, err)
	manager, err := j.GenerateToken(&models.User{ID: 4, Role: models.RoleManager})
	require.NoError(t, err)
	expired, err := (&JWT{Secret: []byte("secret"), TTL: -time.Minute}).GenerateToken(&models.User{ID: 3, Role: models.RoleCustomer})
	require.NoError(t, err)
	forged, err := NewJWT([]byte("other")).GenerateToken(&models.User{ID: 3, Role: models.RoleCustomer})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized},
		{"wrong role", "Bearer " + manager, http.StatusForbidden},
		{"customer", "Bearer " + customer, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(logger.NewWithWriter("test", &buf)))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, logger.RequestID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
	assert.Contains(t, buf.String(), `"status":200`)
}
