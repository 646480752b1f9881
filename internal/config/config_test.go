package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddr(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("APP_PORT", "")
	assert.Equal(t, ":8080", Addr())

	t.Setenv("APP_PORT", "9000")
	assert.Equal(t, ":9000", Addr())

	t.Setenv("APP_ADDR", "localhost:7000")
	assert.Equal(t, "localhost:7000", Addr())
}

func TestTreeSettings(t *testing.T) {
	t.Setenv("TREE_NAME", "")
	assert.Equal(t, "default", TreeName())
	t.Setenv("TREE_NAME", "inventory")
	assert.Equal(t, "inventory", TreeName())

	t.Setenv("TREE_RESTORE", "0")
	assert.False(t, RestoreOnStart())
	t.Setenv("TREE_RESTORE", "1")
	assert.True(t, RestoreOnStart())

	t.Setenv("CORS_ORIGINS", " https://a.example, ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, AllowedOrigins())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BSTREE_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("BSTREE_TEST_VALUE", "")
	os.Unsetenv("BSTREE_TEST_VALUE")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("BSTREE_TEST_VALUE"))
}

func TestDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("POSTGRES_HOST", "")
	os.Unsetenv("POSTGRES_HOST")

	_, err := DbURL()
	assert.ErrorIs(t, err, ErrNoDatabase)

	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USER", "tree")
	t.Setenv("POSTGRES_PASSWORD", "p@ss word")
	t.Setenv("POSTGRES_DB", "trees")
	t.Setenv("POSTGRES_PORT", "6543")

	dbURL, err := DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://tree:p%40ss%20word@db:6543/trees?sslmode=disable", dbURL)

	t.Setenv("POSTGRES_PORT", "not a port")
	_, err = NewDatabase()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://other/db")
	dbURL, err = DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://other/db", dbURL)
}

func writePublicKey(t *testing.T, key *rsa.PrivateKey) string {
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func TestJWT(t *testing.T) {
	t.Setenv("JWT_PUBLIC_KEY", "")
	os.Unsetenv("JWT_PUBLIC_KEY")
	t.Setenv("JWT_PUBLIC_KEY_FILE", "")
	os.Unsetenv("JWT_PUBLIC_KEY_FILE")

	_, err := NewJWT()
	assert.ErrorIs(t, err, ErrAuthDisabled)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	t.Setenv("JWT_PUBLIC_KEY", writePublicKey(t, key))

	j, err := NewJWT()
	require.NoError(t, err)

	sign := func(exp time.Time) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
			Subject:   "writer",
			ExpiresAt: jwt.NewNumericDate(exp),
		}).SignedString(key)
		require.NoError(t, err)
		return token
	}

	claims, err := j.Verify(sign(time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "writer", claims.Subject)

	_, err = j.Verify(sign(time.Now().Add(-time.Hour)))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = j.Verify("garbage")
	assert.Error(t, err)
}

func TestWebSocketOrigins(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Origin", "https://a.example")

	assert.True(t, NewWebSocket(nil).Upgrader.CheckOrigin(r))
	assert.True(t, NewWebSocket([]string{"https://a.example"}).Upgrader.CheckOrigin(r))
	assert.False(t, NewWebSocket([]string{"https://b.example"}).Upgrader.CheckOrigin(r))
}
