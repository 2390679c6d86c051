package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const testSecret = "test-secret"

func newProtectedRouter(secret string) *gin.Engine {
	r := gin.New()
	r.GET("/v1/ping", AuthRequired(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextSubject))
	})
	return r
}

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	valid, err := NewGenerator(testSecret, time.Hour).GenerateToken("cli")
	require.NoError(t, err)
	otherSecret, err := NewGenerator("other-secret", time.Hour).GenerateToken("cli")
	require.NoError(t, err)
	expired, err := NewGenerator(testSecret, -time.Hour).GenerateToken("cli")
	require.NoError(t, err)
	wrongIssuer := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject: "cli", Issuer: "someone-else", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	hs512 := signed(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.RegisteredClaims{
		Subject: "cli", Issuer: Issuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", secret: testSecret, header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "cli"},
		{name: "no header", secret: testSecret, wantStatus: http.StatusUnauthorized},
		{name: "basic auth", secret: testSecret, header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "bearer lowercase", secret: testSecret, header: "bearer " + valid, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", secret: testSecret, header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
		{name: "signed with another secret", secret: testSecret, header: "Bearer " + otherSecret, wantStatus: http.StatusUnauthorized},
		{name: "expired", secret: testSecret, header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "wrong issuer", secret: testSecret, header: "Bearer " + wrongIssuer, wantStatus: http.StatusUnauthorized},
		{name: "unexpected algorithm", secret: testSecret, header: "Bearer " + hs512, wantStatus: http.StatusUnauthorized},
		{name: "server misconfigured", secret: "", header: "Bearer " + valid, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newProtectedRouter(tt.secret).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
