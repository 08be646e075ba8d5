package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/wardlink/admin-api/pkg/auth"
	apperrors "github.com/wardlink/admin-api/pkg/errors"
)

type stubTokens struct{}

func (stubTokens) GenerateAccessToken(uuid.UUID, string, string) (string, error) {
	return "", errors.New("not implemented")
}

func (stubTokens) ValidateToken(token string) (*auth.Claims, error) {
	if token != "good" {
		return nil, errors.New("signature invalid")
	}
	return &auth.Claims{UserID: uuid.NewString(), Email: "admin@clinic.test", Role: "admin"}, nil
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	return r
}

func TestErrorHandlerMapsAppErrorStatus(t *testing.T) {
	r := newTestEngine()
	r.GET("/missing", func(c *gin.Context) {
		c.Error(apperrors.NewNotFound("admission", nil))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "admission not found")
}

func TestErrorHandlerDefaultsToInternal(t *testing.T) {
	r := newTestEngine()
	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("db gone"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthenticateRejectsMissingAndBadTokens(t *testing.T) {
	r := newTestEngine()
	authn := NewAuthMiddleware(stubTokens{})
	r.GET("/secure", authn.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer bad")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
