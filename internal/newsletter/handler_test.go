package newsletter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(scriptURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(scriptURL).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestSubscribeForwardsEmailAndPassesBodyThrough(t *testing.T) {
	var got subscribeRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode upstream request: %v", err)
		}
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer upstream.Close()

	router := newTestRouter(upstream.URL)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscribe", strings.NewReader(`{"email":"ada@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got.Email != "ada@example.com" {
		t.Fatalf("forwarded email = %q", got.Email)
	}
	if rec.Body.String() != `{"result":"success"}` {
		t.Fatalf("body = %q, want upstream body verbatim", rec.Body.String())
	}
}

func TestSubscribeRejectsMissingEmail(t *testing.T) {
	router := newTestRouter("http://example.invalid")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscribe", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSubscribeWithoutScriptURL(t *testing.T) {
	router := newTestRouter("")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscribe", strings.NewReader(`{"email":"ada@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}
