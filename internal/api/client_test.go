package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, WithHTTPClient(srv.Client()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestNewRequest_Headers(t *testing.T) {
	c := NewClient("https://auth.example.com/")

	req, err := c.NewRequest(context.Background(), http.MethodPost, PathLogin, Credentials{Username: "alice", Password: "pw"}, "T1")
	require.NoError(t, err)

	assert.Equal(t, "https://auth.example.com/api/auth/login", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer T1", req.Header.Get("Authorization"))
	_, err = uuid.Parse(req.Header.Get(HeaderRequestID))
	assert.NoError(t, err)

	req, err = c.NewRequest(context.Background(), http.MethodGet, PathMe, nil, "")
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("Content-Type"))
}

func TestLogin_Success(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathLogin, r.URL.Path)
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, Credentials{Username: "alice", Password: "right"}, creds)
		writeJSON(w, http.StatusOK, AuthResponse{Success: true, Token: "T1", Username: "alice"})
	})

	resp, err := c.Login(context.Background(), Credentials{Username: "alice", Password: "right"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "T1", resp.Token)
	assert.Equal(t, "alice", resp.Username)
}

func TestLogin_ApplicationFailureOn4xx(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": true, "message": "bad password"})
	})

	resp, err := c.Login(context.Background(), Credentials{Username: "alice", Password: "wrong"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "bad password", resp.Message)
}

func TestLogin_ServerError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html><body><h1>502 Bad Gateway</h1></body></html>"))
	})

	_, err := c.Login(context.Background(), Credentials{})
	require.Error(t, err)
	assert.True(t, IsServerError(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "502 Bad Gateway", se.Message)
	assert.NotEmpty(t, se.RequestID)
}

func TestLogin_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, WithTimeout(time.Second))
	_, err := c.Login(context.Background(), Credentials{})
	require.Error(t, err)
	assert.False(t, IsUnauthorized(err))
	assert.False(t, IsServerError(err))
}

func TestLogin_UndecodableSuccess(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := c.Login(context.Background(), Credentials{})
	assert.Error(t, err)
}

func TestDeleteAccount_UnauthorizedWithoutBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.DeleteAccount(context.Background(), "T1")
	assert.True(t, IsUnauthorized(err))
}

func TestMe(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         any
		wantProfile  *UserProfile
		unauthorized bool
	}{
		{
			name:        "ok",
			status:      http.StatusOK,
			body:        UserProfile{Username: "alice", Enabled: true, RoleName: "USER"},
			wantProfile: &UserProfile{Username: "alice", Enabled: true, RoleName: "USER"},
		},
		{
			name:         "unauthorized",
			status:       http.StatusUnauthorized,
			body:         map[string]string{"error": "token expired"},
			unauthorized: true,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   map[string]string{"message": "Utilisateur non trouvé"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, PathMe, r.URL.Path)
				writeJSON(w, tt.status, tt.body)
			})

			profile, err := c.Me(context.Background(), "T1")
			if tt.wantProfile != nil {
				require.NoError(t, err)
				assert.Equal(t, tt.wantProfile, profile)
				return
			}
			require.Error(t, err)
			assert.Nil(t, profile)
			assert.Equal(t, tt.unauthorized, IsUnauthorized(err))
		})
	}
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "nope", errorText("application/json; charset=utf-8", []byte(`{"message":"nope"}`)))
	assert.Equal(t, "denied", errorText("application/json", []byte(`{"error":"denied"}`)))
	assert.Equal(t, "Down", errorText("text/html; charset=utf-8", []byte("<p>Down</p>")))
	assert.Equal(t, "plain", errorText("text/plain", []byte(" plain \n")))
}
