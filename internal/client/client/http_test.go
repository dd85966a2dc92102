package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gymmi-app/gymmi/internal/client/models"
	"github.com/gymmi-app/gymmi/internal/netx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	hc, err := netx.NewHTTPClient(netx.Options{})
	require.NoError(t, err)

	c, err := NewHTTPClient(ts.URL, "/api/v1", hc, nil)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "127.0.0.1:8000", "ftp://host", "http://", "://bad"} {
		_, err := NewHTTPClient(u, "/api/v1", nil, nil)
		assert.ErrorIs(t, err, ErrInvalidURL, u)
	}
}

func TestNewHTTPClient_BaseURL(t *testing.T) {
	c, err := NewHTTPClient("http://127.0.0.1:8000/", "/api/v1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000/api/v1", c.BaseURL())
}

func TestLogin_Success(t *testing.T) {
	var got models.LoginRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"access_token":"tok123","token_type":"bearer"}`)
	})

	tr, err := c.Login(context.Background(), "a@b.co", "Abcdefg1")
	require.NoError(t, err)
	assert.Equal(t, "tok123", tr.AccessToken)
	assert.Equal(t, "bearer", tr.TokenType)
	assert.Equal(t, models.LoginRequest{Email: "a@b.co", Password: "Abcdefg1"}, got)
}

func TestLogin_BackendDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"detail":"Incorrect email or password"}`)
	})

	_, err := c.Login(context.Background(), "a@b.co", "Abcdefg1")

	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Incorrect email or password", se.Message)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_ValidationDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity,
			`{"detail":[{"type":"value_error","loc":["body","email"],"msg":"value is not a valid email address","input":"x"}]}`)
	})

	_, err := c.Login(context.Background(), "x", "y")

	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "email: value is not a valid email address", se.Message)
}

func TestLogin_UndecodableBodies(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"error without detail", http.StatusInternalServerError, `Internal Server Error`},
		{"error with odd detail", http.StatusBadRequest, `{"detail":{"x":1}}`},
		{"ok without token", http.StatusOK, `{"token_type":"bearer"}`},
		{"ok with garbage", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			_, err := c.Login(context.Background(), "a@b.co", "Abcdefg1")
			require.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestLogin_ConnectionRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	c, err := NewHTTPClient("http://"+addr, "/api/v1", nil, nil)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "a@b.co", "Abcdefg1")

	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, MsgCannotConnect, se.Message)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Zero(t, se.Status)
}

func TestLogin_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Login(ctx, "a@b.co", "Abcdefg1")

	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, MsgTimeout, se.Message)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRegister_SendsOnlyPresentFields(t *testing.T) {
	var raw map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		writeJSON(w, http.StatusOK, `{"id":5,"email":"a@b.co","name":"Anna","is_active":true,"goal":"GET_ENERGY"}`)
	})

	req := models.NewRegisterRequest("a@b.co", "Abcdefg1", models.Profile{
		Name: models.Ptr("Anna"),
		Goal: models.Ptr(models.GoalGetEnergy),
	})
	rr, err := c.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"email": "a@b.co", "password": "Abcdefg1", "name": "Anna", "goal": "GET_ENERGY",
	}, raw)
	assert.Equal(t, int64(5), rr.ID)
	assert.Equal(t, models.GoalGetEnergy, *rr.Goal)
	assert.Empty(t, rr.AccessToken)
}

func TestRegister_BackendDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"detail":"Email already registered"}`)
	})

	_, err := c.Register(context.Background(), models.RegisterRequest{Email: "a@b.co", Password: "Abcdefg1"})

	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Email already registered", se.Message)
}

func TestRegister_UnknownEnumIsInvalidResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":5,"email":"a@b.co","is_active":true,"diet":"KETO"}`)
	})

	_, err := c.Register(context.Background(), models.RegisterRequest{Email: "a@b.co", Password: "Abcdefg1"})
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestMe_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"Not authenticated"}`, ErrUnauthorized},
		{"not found", http.StatusNotFound, `{"detail":"User not found"}`, ErrProfileNotFound},
		{"server error", http.StatusInternalServerError, `oops`, ErrInvalidResponse},
		{"bad body", http.StatusOK, `{"id":"x"}`, ErrInvalidResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			_, err := c.Me(context.Background(), "tok")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMe_NotFoundIsInvalidResponse(t *testing.T) {
	assert.True(t, errors.Is(ErrProfileNotFound, ErrInvalidResponse))
}

func TestMe_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"id":1,"email":"a@b.co","name":null,"is_active":true}`)
	})

	u, err := c.Me(context.Background(), "tok123")
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: 1, Email: "a@b.co", IsActive: true}, u)
}

func TestMe_MissingToken(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.Me(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidURL)
	assert.False(t, called)
}

func TestCheckEmail(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/check-email", r.URL.Path)
		gotQuery = r.URL.Query().Get("email")
		if gotQuery == "taken+1@b.co" {
			writeJSON(w, http.StatusOK, `{"exists":true}`)
			return
		}
		writeJSON(w, http.StatusNotFound, `{"detail":"nope"}`)
	})

	exists, err := c.CheckEmail(context.Background(), "taken+1@b.co")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "taken+1@b.co", gotQuery)

	exists, err = c.CheckEmail(context.Background(), "free@b.co")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			writeJSON(w, http.StatusOK, `{"message":"Welcome to Gymmi API"}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	require.NoError(t, c.Ping(context.Background()))
}

func TestPing_BadStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestServerError_Unwrap(t *testing.T) {
	backend := &ServerError{Message: "detail", Status: 400}
	assert.Nil(t, backend.Unwrap())
	assert.Equal(t, "detail", backend.Error())

	cause := errors.New("reset")
	netErr := &ServerError{Message: MsgCannotConnect, Err: cause}
	assert.ErrorIs(t, netErr, ErrUnavailable)
	assert.ErrorIs(t, netErr, cause)
}
