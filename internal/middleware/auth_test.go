package middleware

import (
	"athena_backend/internal/config"
	"athena_backend/internal/model"
	"athena_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func signedToken(t *testing.T, cfg *config.Config, user *model.User) string {
	t.Helper()
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	require.NoError(t, err)
	return token
}

// 签发与解析走同一套 Claims，中间件把能力值放进上下文
func TestAuthMiddlewareRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	ordinanceID := uint(3)
	user := &model.User{
		BaseModel:            model.BaseModel{ID: 7},
		Email:                "trainee@example.com",
		Role:                 model.Trainee,
		EducationOrdinanceID: &ordinanceID,
	}

	router := gin.New()
	router.Use(AuthMiddleware(cfg))
	router.GET("/whoami", func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		require.NotNil(t, claims)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, model.Trainee, claims.Role)
		assert.Equal(t, uint(3), claims.OrdinanceID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, cfg, user))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// query 参数形式的令牌同样被接受
	req = httptest.NewRequest(http.MethodGet, "/whoami?token="+signedToken(t, cfg, user), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	router := gin.New()
	router.Use(AuthMiddleware(cfg))
	router.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	// 缺少令牌
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 其他密钥签发的令牌
	other := testConfig()
	other.JWT.Secret = "some-other-secret"
	token := signedToken(t, other, &model.User{BaseModel: model.BaseModel{ID: 1}, Role: model.Trainee})

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	router := gin.New()
	router.Use(AuthMiddleware(cfg))
	coachOnly := router.Group("", RoleMiddleware(model.Coach))
	coachOnly.GET("/coach", func(c *gin.Context) { c.Status(http.StatusOK) })

	coachToken := signedToken(t, cfg, &model.User{BaseModel: model.BaseModel{ID: 1}, Role: model.Coach})
	traineeToken := signedToken(t, cfg, &model.User{BaseModel: model.BaseModel{ID: 2}, Role: model.Trainee})

	req := httptest.NewRequest(http.MethodGet, "/coach", nil)
	req.Header.Set("Authorization", "Bearer "+coachToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/coach", nil)
	req.Header.Set("Authorization", "Bearer "+traineeToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
