package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	applogger "github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var quietLogger = applogger.NewNoopLogger()

func perform(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	switch v := body.(type) {
	case nil:
	case string:
		payload = []byte(v)
	default:
		payload, _ = json.Marshal(v)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

type countingObserver struct {
	results map[string]int
}

func (o *countingObserver) IncPriceQuote(result string) {
	if o.results == nil {
		o.results = make(map[string]int)
	}
	o.results[result]++
}

