package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/wardlink/admin-api/pkg/errors"
)

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	return w
}

func TestRespondErrorMapsTaxonomy(t *testing.T) {
	w := record(func(c *gin.Context) {
		RespondError(c, apperrors.NewNotFound("patient", nil))
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "patient not found")

	w = record(func(c *gin.Context) {
		RespondError(c, apperrors.NewConflict("admission is already discharged", nil))
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = record(func(c *gin.Context) {
		RespondError(c, apperrors.Unauthorized(errors.New("expired")))
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRespondErrorDefaultsToInternal(t *testing.T) {
	w := record(func(c *gin.Context) {
		RespondError(c, errors.New("connection reset"))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
