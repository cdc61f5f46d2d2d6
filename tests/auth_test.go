package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salestrack/internal/apierror"
	"salestrack/internal/dto"
	"salestrack/internal/middleware"
	"salestrack/internal/model"
	"salestrack/internal/policy"
	"salestrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, repo *stubUserRepo, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{Email: email, PasswordHash: string(hash), Active: true}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestTokenIssuesPair(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "seller@test.local", "hunter22")
	svc := service.NewAuthService(repo, testConfig())

	resp, err := svc.Token(context.Background(), dto.TokenRequest{
		Email: "seller@test.local", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, user.ID.String(), resp.User.ID)
}

func TestTokenRejectsBadPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "seller@test.local", "hunter22")
	svc := service.NewAuthService(repo, testConfig())

	_, err := svc.Token(context.Background(), dto.TokenRequest{
		Email: "seller@test.local", Password: "wrong",
	})
	assert.ErrorIs(t, err, apierror.ErrUnauthenticated)
}

func TestTokenRejectsUnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, testConfig())

	_, err := svc.Token(context.Background(), dto.TokenRequest{
		Email: "nobody@test.local", Password: "hunter22",
	})
	assert.ErrorIs(t, err, apierror.ErrUnauthenticated)
}

func TestRefreshRotatesPair(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "seller@test.local", "hunter22")
	svc := service.NewAuthService(repo, testConfig())

	first, err := svc.Token(context.Background(), dto.TokenRequest{
		Email: "seller@test.local", Password: "hunter22",
	})
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)
}

func TestRefreshRejectsInactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "seller@test.local", "hunter22")
	svc := service.NewAuthService(repo, testConfig())

	pair, err := svc.Token(context.Background(), dto.TokenRequest{
		Email: "seller@test.local", Password: "hunter22",
	})
	require.NoError(t, err)

	user.Active = false
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, apierror.ErrUnauthenticated)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, testConfig())

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, apierror.ErrUnauthenticated)
}

// ── Middleware ────────────────────────────────────────────────────────────────

func signTestToken(t *testing.T, secret, userID string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   "seller@test.local",
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func authTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/p", middleware.JWTAuth(secret))
	protected.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	open := r.Group("/o",
		middleware.JWTAuthOptional(secret),
		middleware.Authorize(policy.All(policy.CreateOnly, policy.IsAuthenticatedOrReadOnly)),
	)
	open.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	open.POST("", func(c *gin.Context) { c.Status(http.StatusCreated) })
	open.DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	r := authTestRouter("secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// token signed with another secret
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/p/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "other-secret", "u", time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	r := authTestRouter("secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "secret", "u", time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	r := authTestRouter("secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "secret", "u", -time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Anonymous callers may read an open catalog but get 401 on writes; an
// authenticated caller may create but never delete.
func TestOptionalAuthWithCreateOnlyPolicy(t *testing.T) {
	r := authTestRouter("secret")
	token := signTestToken(t, "secret", "u", time.Hour)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/o", nil))
	assert.Equal(t, http.StatusOK, w.Code, "anonymous read")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/o", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "anonymous create")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/o", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, "authenticated create")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/o/123", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code, "delete is never allowed")
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, testConfig())

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "seller@test.local", Password: "longenough",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "seller@test.local", Password: "longenough",
	})
	assert.ErrorIs(t, err, apierror.ErrValidation)
}
