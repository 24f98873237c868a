package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shandysiswandi/passlab/internal/account/scheme"
	"github.com/shandysiswandi/passlab/internal/pkg/config"
	"github.com/shandysiswandi/passlab/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type successEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Message string            `json:"message"`
	Error   map[string]string `json:"error"`
}

const testConfig = `
app:
  server:
    http:
      address: "127.0.0.1:0"
      read_timeout_seconds: 5
      read_header_timeout_seconds: 5
      write_timeout_seconds: 5
      idle_timeout_seconds: 5
    cors: ["http://localhost:3000"]
instrument:
  enabled: false
  service_name: passlab-test
  log_mask_fields: [password, digest, salt, authorization]
account:
  default_scheme: salted-hmac
hash:
  hmac:
    secret: abcdefg
  bcrypt:
    cost: 4
store:
  driver: bolt
  bolt:
    path: %s
`

// startApp boots the whole service on a random port backed by a bolt file.
func startApp(t *testing.T) string {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := []byte(testConfig)
	body = bytes.Replace(body, []byte("%s"), []byte(filepath.Join(dir, "passlab.db")), 1)
	require.NoError(t, os.WriteFile(cfgPath, body, 0o600))
	t.Setenv("CONFIG_PATH", cfgPath)

	a := New()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	errChan := a.Serve(l)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Stop(ctx)
		assert.ErrorIs(t, <-errChan, http.ErrServerClosed)
	})

	return "http://" + l.Addr().String()
}

func doJSON(t *testing.T, method, url string, payload any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		require.NoError(t, json.NewEncoder(buf).Encode(payload))
		reqBody = buf
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := (&http.Client{Timeout: 5 * time.Second}).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBody
}

func TestApp_EnrollAndLogin(t *testing.T) {
	base := startApp(t)

	status, body := doJSON(t, http.MethodGet, base+"/health", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, http.MethodPost, base+"/api/v1/account/signup",
		map[string]string{"username": "Peter Oh", "password": "my-secret", "scheme": "bcrypt"})
	require.Equal(t, http.StatusCreated, status, string(body))

	var env successEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	assert.JSONEq(t, `{"username":"Peter Oh","scheme":"bcrypt"}`, string(env.Data))

	status, body = doJSON(t, http.MethodPost, base+"/api/v1/account/login",
		map[string]string{"username": "Peter Oh", "password": "my-secret"})
	assert.Equal(t, http.StatusOK, status, string(body))

	status, body = doJSON(t, http.MethodPost, base+"/api/v1/account/login",
		map[string]string{"username": "Peter Oh", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	var errEnv errorEnvelope
	require.NoError(t, json.Unmarshal(body, &errEnv))
	assert.Equal(t, "invalid username or password", errEnv.Message)

	status, body = doJSON(t, http.MethodPost, base+"/api/v1/account/signup",
		map[string]string{"username": "", "password": "my-secret"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NoError(t, json.Unmarshal(body, &errEnv))
	assert.Contains(t, errEnv.Error, "username")
}

func TestNewSchemeRegistry(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte("account:\n  default_scheme: argon2id\n"))
	require.NoError(t, err)

	reg, err := newSchemeRegistry(cfg, hash.NewCryptoSalt())
	require.NoError(t, err)
	assert.Equal(t, scheme.NameArgon2id, reg.Default())
	assert.Len(t, reg.Names(), 6)

	cfg, err = config.NewViperFromBytes("yaml", []byte("account:\n  default_scheme: md5\n"))
	require.NoError(t, err)
	_, err = newSchemeRegistry(cfg, hash.NewCryptoSalt())
	assert.ErrorIs(t, err, scheme.ErrUnknownScheme)

	cfg, err = config.NewViperFromBytes("yaml", []byte("app:\n  name: passlab\n"))
	require.NoError(t, err)
	reg, err = newSchemeRegistry(cfg, hash.NewCryptoSalt())
	require.NoError(t, err)
	assert.Equal(t, scheme.NameSaltedHMAC, reg.Default())
}
