package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek/library-api/pkg/auth"
	"github.com/bibliotek/library-api/pkg/middleware"
)

func TestJwtAuthentication(t *testing.T) {
	t.Parallel()
	tokens := auth.NewManager(auth.Config{JWTKey: "test-signing-key", TTL: time.Hour})
	token, err := tokens.IssueToken(7, "max@lib.io")
	require.NoError(t, err)

	e := echo.New()
	e.GET("/secure", func(c echo.Context) error {
		claims, ok := auth.FromContext(c.Request().Context())
		require.True(t, ok)
		return c.JSON(http.StatusOK, claims.UserID)
	}, middleware.JwtAuthentication(tokens))

	var tests = []struct {
		name         string
		header       string
		expectedCode int
	}{
		{name: "ok", header: "Bearer " + token, expectedCode: http.StatusOK},
		{name: "err. no header", header: "", expectedCode: http.StatusUnauthorized},
		{name: "err. not bearer", header: "Basic dXNlcg==", expectedCode: http.StatusUnauthorized},
		{name: "err. bad token", header: "Bearer garbage", expectedCode: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/secure", http.NoBody)
			if tt.header != "" {
				r.Header.Set(middleware.AuthorizationHeader, tt.header)
			}
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)
			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
