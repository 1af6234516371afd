package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kraken/internal/auth"
	"kraken/internal/middleware"
	"kraken/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const jwtSecret = "test-secret-key"

// Простое хранилище пользователей для middleware
type stubUsers map[uuid.UUID]*model.User

func (s stubUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	return s[id], nil
}

type failingUsers struct{}

func (failingUsers) GetByID(context.Context, uuid.UUID) (*model.User, error) {
	return nil, assert.AnError
}

func setupRouter(users middleware.UserLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// Защищенный маршрут
	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(auth.NewTokenManager(jwtSecret, time.Hour), users))

	protected.GET("/resource", func(c *gin.Context) {
		userID, exists := c.Get(middleware.UserIDKey)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
			return
		}
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Access granted",
			"user_id":  userID,
			"username": user.Username,
		})
	})

	return r
}

func signedUser(t *testing.T) (*model.User, string) {
	t.Helper()
	user := &model.User{ID: uuid.New(), Username: "alice"}
	token, err := auth.NewTokenManager(jwtSecret, time.Hour).Generate(user.ID.String())
	assert.NoError(t, err)
	user.Token = token
	return user, token
}

func doRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	// Arrange
	user, token := signedUser(t)
	router := setupRouter(stubUsers{user.ID: user})

	// Act
	resp := doRequest(router, "Bearer "+token)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), user.ID.String())
	assert.Contains(t, resp.Body.String(), "alice")
}

func TestJWTAuthMiddleware_NoAuthHeader(t *testing.T) {
	router := setupRouter(stubUsers{})

	resp := doRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header is required")
}

func TestJWTAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	router := setupRouter(stubUsers{})

	resp := doRequest(router, "InvalidFormat token123")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header format must be Bearer {token}")
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupRouter(stubUsers{})

	resp := doRequest(router, "Bearer invalid-token")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}

func TestJWTAuthMiddleware_TokenWithInvalidUserID(t *testing.T) {
	router := setupRouter(stubUsers{})

	// Токен с недействительным форматом ID пользователя
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-valid-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(jwtSecret))

	resp := doRequest(router, "Bearer "+tokenString)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid user ID in token")
}

func TestJWTAuthMiddleware_UnknownUser(t *testing.T) {
	_, token := signedUser(t)
	router := setupRouter(stubUsers{})

	resp := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "User not found")
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	// Пользователь залогинился заново, старый токен больше не действует
	user, oldToken := signedUser(t)
	user.Token = "newer-token"
	router := setupRouter(stubUsers{user.ID: user})

	resp := doRequest(router, "Bearer "+oldToken)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Token has been revoked")
}

func TestJWTAuthMiddleware_StoreFailure(t *testing.T) {
	_, token := signedUser(t)
	router := setupRouter(failingUsers{})

	resp := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
