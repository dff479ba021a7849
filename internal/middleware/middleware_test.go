package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkpost/internal/logger"
	"inkpost/internal/models"
	"inkpost/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(CurrentUserKey, user)
		}
		c.Next()
	}
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}

	r := gin.New()
	r.Use(RequestID(log))
	r.GET("/", func(c *gin.Context) {
		logger.FromContext(c.Request.Context()).Info().Msg("inside")
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("generated", func(t *testing.T) {
		buf.Reset()
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
		assert.Contains(t, buf.String(), id)
	})

	t.Run("reused", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)
		w := serve(r, req)
		assert.Equal(t, id, w.Header().Get(RequestIDHeader))
	})

	t.Run("garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "evil\nvalue")
		w := serve(r, req)
		assert.NotEqual(t, "evil\nvalue", w.Header().Get(RequestIDHeader))
		_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}

	r := gin.New()
	r.Use(RequestID(log), Logger())
	r.GET("/boom", func(c *gin.Context) { c.String(http.StatusInternalServerError, "x") })

	serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"path":"/boom"`)
	assert.Contains(t, out, `"status":500`)
}

func TestAuthRequired(t *testing.T) {
	build := func(user *models.User) *gin.Engine {
		r := gin.New()
		r.Use(withUser(user), AuthRequired())
		r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
		return r
	}

	w := serve(build(nil), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = serve(build(&models.User{ID: 1}), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminOnly(t *testing.T) {
	gate := services.NewGate([]uint{1})

	tests := []struct {
		name   string
		user   *models.User
		denied gin.HandlerFunc
		code   int
		body   string
	}{
		{name: "anonymous", user: nil, code: http.StatusForbidden},
		{name: "regular user", user: &models.User{ID: 2}, code: http.StatusForbidden},
		{
			name:   "custom denial",
			user:   &models.User{ID: 2},
			denied: func(c *gin.Context) { c.String(http.StatusForbidden, "nope") },
			code:   http.StatusForbidden,
			body:   "nope",
		},
		{name: "admin", user: &models.User{ID: 1}, code: http.StatusOK, body: "reached"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			r := gin.New()
			r.Use(withUser(tt.user), AdminOnly(gate, tt.denied))
			r.GET("/", func(c *gin.Context) {
				reached = true
				c.String(http.StatusOK, "reached")
			})

			w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.code == http.StatusOK, reached)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}
