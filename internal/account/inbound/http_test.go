package inbound

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/account/outbound/store"
	"github.com/shandysiswandi/passlab/internal/account/scheme"
	"github.com/shandysiswandi/passlab/internal/account/usecase"
	"github.com/shandysiswandi/passlab/internal/pkg/clock"
	"github.com/shandysiswandi/passlab/internal/pkg/hash"
	"github.com/shandysiswandi/passlab/internal/pkg/instrument"
	"github.com/shandysiswandi/passlab/internal/pkg/router"
	"github.com/shandysiswandi/passlab/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type downStore struct{}

func (downStore) FindOne(context.Context, entity.Filter) (*entity.UserCredential, error) {
	return nil, errors.New("connection refused")
}

func (downStore) Upsert(context.Context, entity.UserCredential) error {
	return errors.New("connection refused")
}

func (downStore) Close() error { return nil }

func newServer(t *testing.T, repo store.Store) http.Handler {
	t.Helper()

	reg, err := scheme.NewRegistry(scheme.NameSaltedHMAC,
		scheme.NewSaltedHMAC(hash.NewCryptoSalt()),
		scheme.NewBcrypt(4, ""),
	)
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	uc := usecase.New(usecase.Dependency{
		Store:      repo,
		Schemes:    reg,
		Validator:  v,
		Clock:      clock.New(),
		Instrument: instrument.NewNoop(),
	})

	r := router.NewRouter(router.Config{Instrument: instrument.NewNoop()})
	RegisterHTTPEndpoint(r, uc)
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSignupAndLogin(t *testing.T) {
	h := newServer(t, store.NewMemory())

	rec := do(h, http.MethodPost, "/api/v1/account/signup", `{"username":"Peter Oh","password":"my-secret"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Account enrolled","data":{"username":"Peter Oh","scheme":"salted-hmac"}}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "digest")
	assert.NotContains(t, rec.Body.String(), "salt\"")

	rec = do(h, http.MethodPost, "/api/v1/account/login", `{"username":"Peter Oh","password":"my-secret"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Login successful","data":{"username":"Peter Oh"}}`, rec.Body.String())

	wrong := do(h, http.MethodPost, "/api/v1/account/login", `{"username":"Peter Oh","password":"nope"}`)
	unknown := do(h, http.MethodPost, "/api/v1/account/login", `{"username":"John Smith","password":"my-secret"}`)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, `{"message":"invalid username or password"}`, wrong.Body.String())
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestSignup_Errors(t *testing.T) {
	h := newServer(t, store.NewMemory())

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "malformed", body: `{"username":`, wantCode: http.StatusBadRequest},
		{name: "unknown field", body: `{"username":"a","password":"b","digest":"c"}`, wantCode: http.StatusBadRequest},
		{name: "empty password", body: `{"username":"Peter Oh","password":""}`, wantCode: http.StatusUnprocessableEntity},
		{name: "unknown scheme", body: `{"username":"Peter Oh","password":"x","scheme":"md5"}`, wantCode: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, http.MethodPost, "/api/v1/account/signup", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestStoreUnavailable(t *testing.T) {
	h := newServer(t, downStore{})

	rec := do(h, http.MethodPost, "/api/v1/account/signup", `{"username":"Peter Oh","password":"my-secret"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")

	rec = do(h, http.MethodPost, "/api/v1/account/login", `{"username":"Peter Oh","password":"my-secret"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSchemes(t *testing.T) {
	h := newServer(t, store.NewMemory())

	rec := do(h, http.MethodGet, "/api/v1/account/schemes", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"request has been successfully","data":{"schemes":["bcrypt","salted-hmac"],"default":"salted-hmac"}}`, rec.Body.String())
}
