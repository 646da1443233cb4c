package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseBoolQuery(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		def      bool
		expected bool
		ok       bool
	}{
		{name: "absent uses default", url: "/", def: true, expected: true, ok: true},
		{name: "empty uses default", url: "/?title=", def: true, expected: true, ok: true},
		{name: "false", url: "/?title=false", def: true, expected: false, ok: true},
		{name: "one", url: "/?title=1", def: false, expected: true, ok: true},
		{name: "garbage", url: "/?title=maybe", def: true, expected: false, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", tt.url, nil)

			value, ok := parseBoolQuery(c, "title", tt.def)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, value)
			if !tt.ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), "invalid title")
			}
		})
	}
}

func TestRequireParam(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "stille_nacht_W"}}

	id, ok := requireParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, "stille_nacht_W", id)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)

	_, ok = requireParam(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondHelpers(t *testing.T) {
	tests := []struct {
		name    string
		respond func(c *gin.Context)
		status  int
		body    string
	}{
		{name: "not found", respond: func(c *gin.Context) { respondNotFound(c, "song") }, status: http.StatusNotFound, body: "song not found"},
		{name: "internal", respond: func(c *gin.Context) { respondInternalError(c, errors.New("boom"), "test") }, status: http.StatusInternalServerError, body: "internal server error"},
		{name: "custom", respond: func(c *gin.Context) { respondError(c, http.StatusConflict, "busy") }, status: http.StatusConflict, body: "busy"},
		{name: "success", respond: func(c *gin.Context) { respondSuccess(c, "done") }, status: http.StatusOK, body: "done"},
		{name: "validation", respond: func(c *gin.Context) { respondValidationError(c, errors.New("field required")) }, status: http.StatusBadRequest, body: "validation_failed"},
		{name: "nil list", respond: func(c *gin.Context) { respondList[string](c, nil) }, status: http.StatusOK, body: `"data":[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.respond(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}
