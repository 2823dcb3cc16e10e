package blotter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newListContext(w *httptest.ResponseRecorder, query string) *gin.Context {
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/blotter?"+query, nil)
	return ctx
}

func TestGetAllStatusFilterValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _, _ := newTestService(time.Now())
	handler := NewHandler(svc)

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"unknown status rejected", "status=Bogus", http.StatusBadRequest},
		{"known status accepted", "status=Under+Investigation", http.StatusOK},
		{"cfa issued accepted", "status=CFA+Issued", http.StatusOK},
		{"empty status accepted", "", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetAll(newListContext(w, tc.query))
			if w.Code != tc.expected {
				t.Errorf("expected status code %d, got %d", tc.expected, w.Code)
			}
		})
	}
}
