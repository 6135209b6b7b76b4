package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mockinterview/internal/model"
	"github.com/lshigami/mockinterview/internal/service"
	"github.com/stretchr/testify/assert"
)

type stubTokens struct{}

func (stubTokens) Issue(userID uint) (string, error) { return "", nil }

func (stubTokens) Parse(token string) (uint, error) {
	switch token {
	case "good":
		return 1, nil
	case "orphan":
		return 99, nil
	case "broken-db":
		return 2, nil
	}
	return 0, service.ErrInvalidToken
}

type stubAuth struct{}

func (stubAuth) Signup(name, email, password string) (*model.User, error) { return nil, nil }
func (stubAuth) Login(email, password string) (string, error)             { return "", nil }

func (stubAuth) CurrentUser(userID uint) (*model.User, error) {
	switch userID {
	case 1:
		return &model.User{ID: 1, Name: "Ada"}, nil
	case 2:
		return nil, errors.New("connection refused")
	}
	return nil, service.ErrUserNotFound
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireAuth(stubTokens{}, stubAuth{}), func(ctx *gin.Context) {
		id, _ := CurrentUserID(ctx)
		user, _ := CurrentUser(ctx)
		ctx.JSON(http.StatusOK, gin.H{"id": id, "name": user.Name})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"no scheme", "good", http.StatusUnauthorized},
		{"basic scheme", "Basic good", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"deleted user", "Bearer orphan", http.StatusUnauthorized},
		{"lookup failure", "Bearer broken-db", http.StatusUnauthorized},
	}
	r := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"id":1,"name":"Ada"}`, w.Body.String())
			} else {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
				assert.Contains(t, w.Body.String(), `"message"`)
			}
		})
	}
}
