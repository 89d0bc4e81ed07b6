package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func apiKeyRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", APIKey(secret), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func TestAPIKey(t *testing.T) {
	r := apiKeyRouter("secret")

	cases := []struct {
		name string
		key  string
		want int
	}{
		{"missing", "", 401},
		{"wrong", "nope", 401},
		{"valid", "secret", 200},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		if tc.key != "" {
			req.Header.Set("X-API-Key", tc.key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("%s key: expected %d got %d", tc.name, tc.want, w.Code)
		}
	}
}

func TestAPIKeyRejectsBeforeHandler(t *testing.T) {
	called := false
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", APIKey("secret"), func(c *gin.Context) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if called {
		t.Fatal("handler ran without a valid key")
	}
	if w.Body.String() != `{"error":"Invalid API key"}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
