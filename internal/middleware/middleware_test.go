package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/01moynul/stockroom-golang/internal/auth"
	"github.com/01moynul/stockroom-golang/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAdminAuth(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	router := gin.New()
	router.GET("/admin", AdminAuth(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("admin"))
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	token, err := tokens.GenerateToken("root")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "root", w.Body.String())
}

func TestSessionPersistsAcrossRequests(t *testing.T) {
	store := session.NewMemoryStore()
	router := gin.New()
	router.Use(Session(store, time.Hour, false))
	router.POST("/set", func(c *gin.Context) {
		CurrentSession(c).Set("CART-ID", "42")
		c.Status(http.StatusNoContent)
	})
	router.GET("/get", func(c *gin.Context) {
		v, _ := CurrentSession(c).Get("CART-ID")
		c.String(http.StatusOK, v)
	})

	// First request issues a cookie and stores the value.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/set", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	stored, err := store.Load(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "42", stored["CART-ID"])

	// The same cookie sees the same session.
	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "42", w.Body.String())

	// A forged, non-uuid cookie gets a fresh session.
	req = httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Body.String())
}
