package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(maxAttempts int) *mux.Router {
	users := newFakeUserRepo()
	ledger := newFakeLedger()
	issuer := NewTokenIssuer("test-secret", "HS256", 30*time.Minute, 7*24*time.Hour)
	throttle := NewThrottle(maxAttempts, 300*time.Second)
	handler := NewHandler(NewService(users, ledger, issuer, throttle))

	r := mux.NewRouter()
	r.HandleFunc("/auth/signup", handler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", handler.Login).Methods("POST")
	r.HandleFunc("/auth/me", handler.Me).Methods("GET")
	r.HandleFunc("/auth/refresh", handler.Refresh).Methods("POST")
	r.HandleFunc("/auth/logout", handler.Logout).Methods("POST")
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodePair(t *testing.T, rec *httptest.ResponseRecorder) TokenPair {
	t.Helper()
	var pair TokenPair
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pair))
	return pair
}

func TestHandler_SignupLoginRefreshFlow(t *testing.T) {
	router := newTestRouter(5)
	creds := map[string]string{"email": "a@x.com", "password": "secret1"}

	rec := doJSON(t, router, "POST", "/auth/signup", creds, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	signupPair := decodePair(t, rec)
	assert.Equal(t, "bearer", signupPair.TokenType)

	rec = doJSON(t, router, "POST", "/auth/login", creds, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	loginPair := decodePair(t, rec)
	assert.NotEqual(t, signupPair.RefreshToken, loginPair.RefreshToken)

	// Rotate the signup chain once.
	rec = doJSON(t, router, "POST", "/auth/refresh",
		map[string]string{"refresh_token": signupPair.RefreshToken}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rotated := decodePair(t, rec)
	assert.NotEqual(t, signupPair.RefreshToken, rotated.RefreshToken)

	// Replaying the stale token is a 401.
	rec = doJSON(t, router, "POST", "/auth/refresh",
		map[string]string{"refresh_token": signupPair.RefreshToken}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_SignupValidation(t *testing.T) {
	router := newTestRouter(5)

	rec := doJSON(t, router, "POST", "/auth/signup",
		map[string]string{"email": "a@x.com", "password": "five5"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, "POST", "/auth/signup",
		map[string]string{"email": "a@x.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "POST", "/auth/signup",
		map[string]string{"email": "a@x.com", "password": "whatever7"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_LoginFailures(t *testing.T) {
	router := newTestRouter(5)

	rec := doJSON(t, router, "POST", "/auth/signup",
		map[string]string{"email": "a@x.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "POST", "/auth/login",
		map[string]string{"email": "a@x.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, "POST", "/auth/login",
		map[string]string{"email": "nobody@x.com", "password": "secret1"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_LoginThrottle(t *testing.T) {
	// httptest requests share one RemoteAddr, i.e. one throttle key.
	router := newTestRouter(3)

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, "POST", "/auth/login",
			map[string]string{"email": "nobody@x.com", "password": "wrong"}, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i+1)
	}

	rec := doJSON(t, router, "POST", "/auth/login",
		map[string]string{"email": "nobody@x.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestHandler_Me(t *testing.T) {
	router := newTestRouter(5)

	rec := doJSON(t, router, "POST", "/auth/signup",
		map[string]string{"email": "a@x.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pair := decodePair(t, rec)

	rec = doJSON(t, router, "GET", "/auth/me", nil,
		map[string]string{"Authorization": "Bearer " + pair.AccessToken})
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]uint
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, uint(1), body["user_id"])

	// Refresh tokens are accepted as bearer identity too.
	rec = doJSON(t, router, "GET", "/auth/me", nil,
		map[string]string{"Authorization": "Bearer " + pair.RefreshToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "GET", "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, "GET", "/auth/me", nil,
		map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_LogoutNeverFails(t *testing.T) {
	router := newTestRouter(5)

	rec := doJSON(t, router, "POST", "/auth/signup",
		map[string]string{"email": "a@x.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pair := decodePair(t, rec)

	for _, token := range []string{pair.RefreshToken, pair.RefreshToken, "garbage", ""} {
		rec := doJSON(t, router, "POST", "/auth/logout",
			map[string]string{"refresh_token": token}, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "logged out", body["message"])
	}

	// The logged-out token is dead for refresh purposes.
	rec = doJSON(t, router, "POST", "/auth/refresh",
		map[string]string{"refresh_token": pair.RefreshToken}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_ErrorBodiesAreGeneric(t *testing.T) {
	router := newTestRouter(5)

	rec := doJSON(t, router, "POST", "/auth/refresh",
		map[string]string{"refresh_token": "garbage"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrInvalidToken.Error(), body["detail"])
	assert.NotContains(t, fmt.Sprint(body), "signature")
}
