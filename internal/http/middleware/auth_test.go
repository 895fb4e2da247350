package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/http/middleware"
	"github.com/kishorefa/Sainxt-platform-backend/internal/token"
)

type stubUserRepo struct {
	users map[string]domain.User
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	user, ok := s.users[email]
	if !ok {
		return domain.User{}, domain.ErrUnknownAccount
	}
	return user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id bson.ObjectID) (domain.User, error) {
	return domain.User{}, domain.ErrUnknownAccount
}

func (s *stubUserRepo) Insert(ctx context.Context, user domain.User) (bson.ObjectID, error) {
	return bson.ObjectID{}, nil
}

func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, email, hash string) error {
	return nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]domain.User, error) { return nil, nil }

func (s *stubUserRepo) Count(ctx context.Context, userType string) (int64, error) { return 0, nil }

func newGuardedRouter(codec *token.Codec, users *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := &middleware.Auth{Codec: codec, Users: users}

	r := gin.New()
	r.GET("/me", auth.RequireSession, func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	r.GET("/admin", auth.RequireSession, auth.RequireUserType(domain.UserTypeAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func issue(t *testing.T, codec *token.Codec, email, userType string, ttl time.Duration) string {
	t.Helper()
	tok, err := codec.EncodeSession(token.SessionClaims{Email: email, UserType: userType, SubjectID: "1"}, ttl)
	require.NoError(t, err)
	return tok
}

func TestRequireSessionResolvesUser(t *testing.T) {
	codec := token.NewCodec("guard-secret")
	users := &stubUserRepo{users: map[string]domain.User{
		"asha@example.com": {Email: "asha@example.com", UserType: domain.UserTypeIndividual},
	}}
	r := newGuardedRouter(codec, users)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, codec, "asha@example.com", domain.UserTypeIndividual, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "asha@example.com")
}

func TestRequireSessionRejectsMissingAndMalformed(t *testing.T) {
	codec := token.NewCodec("guard-secret")
	r := newGuardedRouter(codec, &stubUserRepo{users: map[string]domain.User{}})

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireSessionRejectsExpiredToken(t *testing.T) {
	codec := token.NewCodec("guard-secret")
	users := &stubUserRepo{users: map[string]domain.User{
		"asha@example.com": {Email: "asha@example.com"},
	}}
	r := newGuardedRouter(codec, users)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, codec, "asha@example.com", domain.UserTypeIndividual, 0))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "expired")
}

func TestRequireSessionReturns404ForDeletedAccount(t *testing.T) {
	codec := token.NewCodec("guard-secret")
	r := newGuardedRouter(codec, &stubUserRepo{users: map[string]domain.User{}})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, codec, "gone@example.com", domain.UserTypeIndividual, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireUserTypeBlocksWrongRole(t *testing.T) {
	codec := token.NewCodec("guard-secret")
	users := &stubUserRepo{users: map[string]domain.User{
		"user@example.com":  {Email: "user@example.com", UserType: domain.UserTypeIndividual},
		"admin@example.com": {Email: "admin@example.com", UserType: domain.UserTypeAdmin},
	}}
	r := newGuardedRouter(codec, users)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, codec, "user@example.com", domain.UserTypeIndividual, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, codec, "admin@example.com", domain.UserTypeAdmin, time.Hour))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
