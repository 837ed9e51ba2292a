package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"causes-api/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// echoSubject reports the subject the middleware chain resolved
func echoSubject(c *gin.Context) {
	c.String(http.StatusOK, c.GetString(auth.SubjectKey))
}

func TestAuthentication(t *testing.T) {
	verifier := auth.NewTokenVerifier("secret", "causes-api")
	valid, err := verifier.Issue("user-1", time.Hour)
	require.NoError(t, err)
	expired, err := verifier.Issue("user-1", -time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.Use(RequestID(), Authentication(verifier, quietLogger()))
	router.GET("/", echoSubject)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "no header", header: "", want: ""},
		{name: "valid", header: "Bearer " + valid, want: "user-1"},
		{name: "lowercase scheme", header: "bearer " + valid, want: "user-1"},
		{name: "expired", header: "Bearer " + expired, want: ""},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", want: ""},
		{name: "no token", header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestAuthenticationWithoutVerifier(t *testing.T) {
	router := gin.New()
	router.Use(Authentication(nil, quietLogger()))
	router.GET("/", echoSubject)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Body.String())
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}

func TestRateLimiter(t *testing.T) {
	router := gin.New()
	router.Use(RateLimiter(0.001, 1, quietLogger()))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimiterDisabled(t *testing.T) {
	router := gin.New()
	router.Use(RateLimiter(0, 0, quietLogger()))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.OPTIONS("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(quietLogger()))
	router.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Unexpected server error")
}
