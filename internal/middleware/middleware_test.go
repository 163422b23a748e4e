package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myhealth-server/internal/config"
	"myhealth-server/internal/i18n"
	"myhealth-server/internal/models"
	"myhealth-server/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "access",
		JWTRefreshSecret:          "refresh",
		JWTExpirationMinutes:      5,
		JWTRefreshExpirationHours: 1,
	}
}

func TestLocaleMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(LocaleMiddleware(i18n.French))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, string(GetLocale(c))) })

	tests := []struct {
		name   string
		cookie string
		query  string
		accept string
		want   string
	}{
		{name: "fallback", want: "fr"},
		{name: "accept language", accept: "en-GB,en;q=0.9", want: "en"},
		{name: "unsupported accept", accept: "de-DE", want: "fr"},
		{name: "query beats header", query: "fr", accept: "en", want: "fr"},
		{name: "cookie beats query", cookie: "en", query: "fr", want: "en"},
		{name: "bad cookie ignored", cookie: "xx", query: "en", want: "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/"
			if tt.query != "" {
				target += "?lang=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestGetLocale_Default(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, i18n.Default, GetLocale(c))
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Role: models.RoleDoctor}
	user.ID = "doc-1"
	access, refresh, err := utils.GenerateTokens(user, cfg)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(cfg), RoleAuthMiddleware(models.RoleDoctor), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		role, _ := GetUserRoleFromContext(c)
		c.String(http.StatusOK, id+"/"+string(role))
	})

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"bad scheme", "Basic " + access, http.StatusUnauthorized},
		{"refresh token rejected", "Bearer " + refresh, http.StatusUnauthorized},
		{"valid", "Bearer " + access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "doc-1/doctor", w.Body.String())
			}
		})
	}
}

func TestRoleAuthMiddleware_Forbidden(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Role: models.RolePatient}
	user.ID = "pat-1"
	access, _, err := utils.GenerateTokens(user, cfg)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/doctor", AuthMiddleware(cfg), RoleAuthMiddleware(models.RoleDoctor), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/doctor", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
