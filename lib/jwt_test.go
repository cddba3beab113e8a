package lib

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"digistore_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSubject = TokenSubject{ID: 42, Username: "admin", Name: "Admin", Role: structs.RoleSuperAdmin}

func TestGenerateAndParseToken(t *testing.T) {
	token, claims, err := GenerateToken(testSubject, "secret", "digistore", time.Hour)
	require.NoError(t, err)

	parsed, err := ParseToken(token, "secret")
	require.NoError(t, err)

	assert.Equal(t, int64(42), parsed.Sub)
	assert.Equal(t, "admin", parsed.Username)
	assert.Equal(t, structs.RoleSuperAdmin, parsed.Role)
	assert.Equal(t, claims.Jti, parsed.Jti)
	assert.Equal(t, claims.Exp.Unix(), parsed.Exp.Unix())
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := GenerateToken(testSubject, "secret", "digistore", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("not-a-token", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	token, _, err := GenerateToken(testSubject, "secret", "digistore", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer abc.def")
	token, err := ExtractToken(r, "admin_token")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Basic xyz")
	_, err = ExtractToken(r, "admin_token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	r = httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "admin_token", Value: "from-cookie"})
	token, err = ExtractToken(r, "admin_token")
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", token)

	_, err = ExtractToken(httptest.NewRequest("GET", "/", nil), "admin_token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123", 4)
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "password123"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}
