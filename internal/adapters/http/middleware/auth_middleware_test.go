package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/config"
	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	repositories.UserRepository
	users map[uint]*models.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", TTLMinutes: 60}}
	repo := &stubUserRepo{users: map[uint]*models.User{
		1: {ID: 1, FirstName: "Field", LastName: "Operator", Role: string(domain.RoleOperator)},
	}}
	authSvc := services.NewAuthService(repo, nil, cfg)

	app := fiber.New()
	app.Get("/protected", AuthMiddleware(cfg, authSvc), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("name").(string))
	})
	app.Get("/admin", AuthMiddleware(cfg, authSvc), SuperAdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app, cfg
}

func request(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app, _ := newTestApp(t)
	resp := request(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app, _ := newTestApp(t)
	resp := request(t, app, "/protected", "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	app, cfg := newTestApp(t)

	token, err := jwt.GenerateToken(1, string(domain.RoleOperator), cfg.JWT.Secret, -time.Minute)
	require.NoError(t, err)

	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	app, cfg := newTestApp(t)

	token, err := jwt.GenerateToken(99, string(domain.RoleOperator), cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)

	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	app, cfg := newTestApp(t)

	token, err := jwt.GenerateToken(1, string(domain.RoleOperator), cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)

	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoles_Forbidden(t *testing.T) {
	app, cfg := newTestApp(t)

	// operator token against a super-admin route
	token, err := jwt.GenerateToken(1, string(domain.RoleOperator), cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)

	resp := request(t, app, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
