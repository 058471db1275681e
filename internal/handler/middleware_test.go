package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisMukonin/Project-Portfolio/internal/service"
)

const testSecret = "test-secret"

func testAuthService() *service.AuthService {
	return service.NewAuthService(nil, nil, service.AuthConfig{JWTSecret: testSecret})
}

func signToken(t *testing.T, userID uuid.UUID, tokenType string, exp time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"type": tokenType,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(exp).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func invokeJWT(t *testing.T, authorization string) (uuid.UUID, bool, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var gotID uuid.UUID
	var gotOK bool
	next := func(c echo.Context) error {
		gotID, gotOK = GetUserID(c)
		return nil
	}

	err := JWTAuth(testAuthService())(next)(c)
	return gotID, gotOK, err
}

func TestJWTAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, userID, "access", 15*time.Minute)

	gotID, ok, err := invokeJWT(t, "Bearer "+token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userID, gotID)
}

func TestJWTAuth_Rejections(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + signToken(t, userID, "access", -time.Minute)},
		{"refresh token on access route", "Bearer " + signToken(t, userID, "refresh", time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := invokeJWT(t, tt.authorization)
			assert.Error(t, err)
			assert.False(t, ok)
		})
	}
}

func TestPathUUID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")

	id := uuid.New()
	c.SetParamValues(id.String())
	got, err := pathUUID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	c.SetParamValues("not-a-uuid")
	_, err = pathUUID(c, "id")
	assert.Error(t, err)
}
