package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	durationUseCase "github.com/columbia6/time/internal/domain/usecase/duration"
	"github.com/columbia6/time/internal/infrastructure/adapter/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// performRequest runs one request against the router and captures the response
func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newDurationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewDurationHandler(durationUseCase.NewDurationUseCase(logger.NewNoopLogger()), logger.NewNoopLogger())

	router := gin.New()
	router.POST("/duration/format", h.Format)
	router.POST("/duration/parse", h.Parse)
	return router
}

func TestDurationHandlerFormat(t *testing.T) {
	router := newDurationRouter()

	t.Run("should format milliseconds into a duration string", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/duration/format", `{"milliseconds": 5500}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5s500ms", decodeBody(t, w)["result"])
	})

	t.Run("should format zero milliseconds", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/duration/format", `{"milliseconds": 0}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0ms", decodeBody(t, w)["result"])
	})

	t.Run("should reject a request without milliseconds", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/duration/format", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["error"], "Invalid request format")
	})

	t.Run("should reject malformed JSON", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/duration/format", `{"milliseconds": `)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDurationHandlerParse(t *testing.T) {
	router := newDurationRouter()

	t.Run("should parse a duration string into milliseconds", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/duration/parse", `{"input": "1h 30m"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(5400000), decodeBody(t, w)["milliseconds"])
	})

	t.Run("should report an unparsable string by default", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/duration/parse", `{"input": "not a duration"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, float64(4001), decodeBody(t, w)["code"])
	})

	t.Run("should answer null for an unparsable string in silent mode", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/duration/parse", `{"input": "not a duration", "silent": true}`)

		assert.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		value, present := body["milliseconds"]
		assert.True(t, present)
		assert.Nil(t, value)
	})
}
