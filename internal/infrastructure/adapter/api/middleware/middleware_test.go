package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	mcore "github.com/amirhossein-jamali/vending-sync/mocks/port/core"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordedRequest struct {
	method string
	route  string
	status int
}

type recordingObserver struct {
	requests []recordedRequest
}

func (o *recordingObserver) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	o.requests = append(o.requests, recordedRequest{method: method, route: route, status: status})
}

func TestErrorHandler(t *testing.T) {
	// Arrange
	logger := mcore.NewMockLogger(t)
	logger.On("Error", "Panic recovered in API request", mock.MatchedBy(func(fields map[string]any) bool {
		return fields["error"] == "boom" && fields["path"] == "/explode"
	})).Once()

	router := gin.New()
	router.Use(ErrorHandler(logger))
	router.GET("/explode", func(c *gin.Context) { panic("boom") })

	// Act
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/explode", nil))

	// Assert
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":5000,"message":"Internal server error"}`, rec.Body.String())
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
		msg    string
	}{
		{"Success", http.StatusOK, "Info", "Request processed"},
		{"Client error", http.StatusNotFound, "Warn", "Request rejected"},
		{"Server error", http.StatusBadGateway, "Error", "Request failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			logger := mcore.NewMockLogger(t)
			logger.On(tc.level, tc.msg, mock.MatchedBy(func(fields map[string]any) bool {
				return fields["status"] == tc.status && fields["route"] == "/items/:id"
			})).Once()

			router := gin.New()
			router.Use(Logger(logger))
			router.GET("/items/:id", func(c *gin.Context) { c.Status(tc.status) })

			// Act
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

			// Assert
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestMetrics(t *testing.T) {
	// Arrange
	observer := &recordingObserver{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	// Act
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/7", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	// Assert
	assert.Equal(t, []recordedRequest{
		{method: http.MethodGet, route: "/items/:id", status: http.StatusNoContent},
		{method: http.MethodGet, route: "unmatched", status: http.StatusNotFound},
	}, observer.requests)
}
