package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/config"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/infrastructure/cache"
	"github.com/sangkips/stockroom-api/internal/presentation/http/handler"
	"github.com/sangkips/stockroom-api/pkg/logger"
	"github.com/sangkips/stockroom-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func corsRouter() (*gin.Engine, *bool) {
	reached := false
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}))
	r.GET("/api/v1/products", func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})
	return r, &reached
}

func TestCORSPreflightFromAllowedOrigin(t *testing.T) {
	r, _ := corsRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Len(t, w.Header().Values("Access-Control-Allow-Origin"), 1)
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	r, reached := corsRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := serve(r, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, *reached)
}

func TestCORSPassesRequestsWithoutOrigin(t *testing.T) {
	r, reached := corsRouter()

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *reached)
}

type authFixture struct {
	router  *gin.Engine
	jwt     *utils.JWTManager
	revoked *cache.MemoryRevocationStore
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		jwt:     utils.NewJWTManager("test-secret", time.Hour),
		revoked: cache.NewMemoryRevocationStore(),
	}
	f.router = gin.New()
	protected := f.router.Group("", AuthMiddleware(f.jwt, f.revoked))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": handler.GetUserID(c).String(),
			"role":    handler.GetUserRole(c),
		})
	})
	protected.GET("/admin", RequireRole(enum.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return f
}

func (f *authFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return serve(f.router, req)
}

func TestAuthMiddleware(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()
	token, err := f.jwt.GenerateAccessToken(userID, "jane", "cashier")
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.get("/me", "").Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.get("/me", "not-a-token").Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w := f.get("/me", token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
		assert.Contains(t, w.Body.String(), `"role":"cashier"`)
	})

	t.Run("role gate", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, f.get("/admin", token).Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		claims, err := f.jwt.ValidateAccessToken(token)
		require.NoError(t, err)
		require.NoError(t, f.revoked.Revoke(t.Context(), claims.TokenID(), time.Minute))

		w := f.get("/me", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "revoked")
	})
}

func TestRequireRoleAdmitsListedRole(t *testing.T) {
	f := newAuthFixture()
	token, err := f.jwt.GenerateAccessToken(uuid.New(), "root", "admin")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, f.get("/admin", token).Code)
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	from := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusOK, from("10.0.0.1"))
	assert.Equal(t, http.StatusOK, from("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, from("10.0.0.1"))
	assert.Equal(t, http.StatusOK, from("10.0.0.2"))
	assert.Equal(t, 2, rl.Size())
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfigFor(10, time.Minute))
	start := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return start }
	rl.getLimiter("ip:10.0.0.1")

	rl.now = func() time.Time { return start.Add(11 * time.Minute) }
	rl.getLimiter("ip:10.0.0.2")
	rl.cleanup()

	assert.Equal(t, 1, rl.Size())
}

func TestLoggerMiddlewareSetsRequestID(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(LoggerMiddleware(logger.Nop()))
	r.GET("/", func(c *gin.Context) {
		seen = logger.RequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := serve(r, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-123", seen)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestLoggerMiddlewareLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(LoggerMiddleware(&logger.Logger{SugaredLogger: zap.New(core).Sugar()}))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/forbidden", func(c *gin.Context) { c.Status(http.StatusForbidden) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/forbidden", "/missing", "/broken"} {
		serve(r, httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 4)
	want := []zapcore.Level{zap.InfoLevel, zap.InfoLevel, zap.InfoLevel, zap.ErrorLevel}
	for i, e := range entries {
		assert.Equal(t, want[i], e.Level, e.ContextMap()["path"])
	}
	assert.EqualValues(t, http.StatusNotFound, entries[2].ContextMap()["status"])
}

func TestSecureHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecureHeaders(false))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
