package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	ts := TokenService{Secret: []byte("s3cret"), Issuer: "practicehub", Duration: time.Hour}

	tok, exp, err := ts.Sign("cms-webhook", ScopeRevalidate)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, ScopeRevalidate, claims.Scope)
	assert.Equal(t, "cms-webhook", claims.Subject)
	assert.Equal(t, "practicehub", claims.Issuer)
}

func TestParseRejects(t *testing.T) {
	ts := TokenService{Secret: []byte("s3cret"), Issuer: "practicehub", Duration: time.Hour}

	other := TokenService{Secret: []byte("other"), Issuer: "practicehub", Duration: time.Hour}
	tok, _, err := other.Sign("x", ScopeRevalidate)
	require.NoError(t, err)
	_, err = ts.Parse(tok)
	assert.Error(t, err, "wrong secret")

	foreign := TokenService{Secret: []byte("s3cret"), Issuer: "someone-else", Duration: time.Hour}
	tok, _, err = foreign.Sign("x", ScopeRevalidate)
	require.NoError(t, err)
	_, err = ts.Parse(tok)
	assert.Error(t, err, "wrong issuer")

	expired := TokenService{Secret: []byte("s3cret"), Issuer: "practicehub", Duration: -time.Minute}
	tok, _, err = expired.Sign("x", ScopeRevalidate)
	require.NoError(t, err)
	_, err = ts.Parse(tok)
	assert.Error(t, err, "expired")

	_, err = ts.Parse("not-a-token")
	assert.Error(t, err)
}

func TestRequireScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := TokenService{Secret: []byte("s3cret"), Issuer: "practicehub", Duration: time.Hour}

	r := gin.New()
	r.POST("/hook", RequireScope(ts, ScopeRevalidate), func(c *gin.Context) {
		c.String(http.StatusOK, MustGetClaims(c).Subject)
	})

	good, _, err := ts.Sign("cms-webhook", ScopeRevalidate)
	require.NoError(t, err)
	weak, _, err := ts.Sign("reader", "read")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"wrong scope", "Bearer " + weak, http.StatusForbidden},
		{"ok", "Bearer " + good, http.StatusOK},
		{"lowercase scheme", "bearer " + good, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/hook", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "cms-webhook", w.Body.String())
			}
		})
	}
}
