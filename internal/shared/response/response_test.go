package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-paye/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewBatchMeta(t *testing.T) {
	meta := response.NewBatchMeta(5, 2)

	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 3, meta.Succeeded)
	assert.Equal(t, 2, meta.Failed)
}

func TestError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "bad", nil)

	var env map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, false, env["ok"])
	assert.Equal(t, "INVALID_INPUT", env["error"].(map[string]any)["code"])
}

func TestAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Attachment(c, http.StatusOK, "text/csv", "results.csv", []byte("a,b\n"))

	assert.Equal(t, `attachment; filename="results.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", w.Body.String())
}
