package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/supplyfinder/pkg/log"
	"github.com/weiawesome/supplyfinder/pkg/record"
	"github.com/weiawesome/supplyfinder/pkg/response"
	"github.com/weiawesome/supplyfinder/supplier-service/internal/registry"
	"github.com/weiawesome/supplyfinder/supplier-service/internal/service"
)

var kroger = record.Record{ID: 1, URL: "localhost:10933", Name: "Kroger", Location: "Ann Arbor, MI"}

func newRouter(reg *registry.Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(log.GinMiddleware(zerolog.Nop()))
	NewHandler(service.NewLookupService(reg)).RegisterRoutes(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeRecord(t *testing.T, w *httptest.ResponseRecorder) record.Record {
	t.Helper()
	var env struct {
		Success bool          `json:"success"`
		Data    record.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success)
	return env.Data
}

func TestHandler_GetRecord(t *testing.T) {
	r := newRouter(registry.New(kroger))

	w := do(r, http.MethodGet, "/api/v1/records/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, kroger, decodeRecord(t, w))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(r, http.MethodGet, "/api/v1/records/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var env response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestHandler_GetRecordBadID(t *testing.T) {
	r := newRouter(registry.New(kroger))

	for _, id := range []string{"0", "-1", "abc", "4294967296"} {
		w := do(r, http.MethodGet, "/api/v1/records/"+id, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "id %s", id)
	}
}

func TestHandler_UpsertThenGet(t *testing.T) {
	reg := registry.New(kroger)
	r := newRouter(reg)

	w := do(r, http.MethodPut, "/api/v1/records/2", `{"url":"localhost:10934","name":"Meijer","location":"Ypsilanti, MI"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := reg.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Meijer", got.Name)

	w = do(r, http.MethodGet, "/api/v1/records/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, got, decodeRecord(t, w))
}

func TestHandler_UpsertRejectsIncompleteBody(t *testing.T) {
	r := newRouter(registry.New())

	w := do(r, http.MethodPut, "/api/v1/records/2", `{"location":"nowhere"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ListAndHealth(t *testing.T) {
	r := newRouter(registry.New(kroger))

	w := do(r, http.MethodGet, "/api/v1/records", "")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data []record.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, []record.Record{kroger}, env.Data)

	w = do(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","records":1}`, w.Body.String())
}

func TestHandler_GetRecordCanceledRequest(t *testing.T) {
	r := newRouter(registry.New(kroger))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/records/1", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, StatusClientClosedRequest, w.Code)
	var env response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CANCELED", env.Error.Code)
}
