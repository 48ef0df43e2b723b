package auth_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lexirealty/homestead/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn(t *testing.T) {
	t.Parallel()

	t.Run("success - session returned", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
			assert.Equal(t, "testKey", r.URL.Query().Get("key"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alex@example.com", body["email"])
			assert.Equal(t, true, body["returnSecureToken"])

			_, _ = w.Write([]byte(`{"localId": "uid-1", "email": "alex@example.com", "idToken": "token-abc"}`))
		}))
		defer server.Close()

		client := auth.NewClient(server.URL, "testKey", slog.Default())

		session, err := client.SignIn(t.Context(), "alex@example.com", "hunter2")

		require.NoError(t, err)
		assert.Equal(t, "uid-1", session.UserID)
		assert.Equal(t, "alex@example.com", session.Email)
		assert.Equal(t, "token-abc", session.IDToken)
	})

	t.Run("error - credentials rejected", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": {"message": "INVALID_PASSWORD"}}`))
		}))
		defer server.Close()

		client := auth.NewClient(server.URL, "testKey", slog.Default())

		_, err := client.SignIn(t.Context(), "alex@example.com", "wrong")

		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
		require.ErrorContains(t, err, "INVALID_PASSWORD")
	})

	t.Run("error - provider failure without detail", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := auth.NewClient(server.URL, "testKey", slog.Default())

		_, err := client.SignIn(t.Context(), "alex@example.com", "hunter2")

		require.Error(t, err)
		require.NotErrorIs(t, err, auth.ErrInvalidCredentials)
		require.ErrorContains(t, err, "identity provider returned status 502")
	})
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	t.Run("success - account created", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/accounts:signUp", r.URL.Path)

			_, _ = w.Write([]byte(`{"localId": "uid-2", "email": "new@example.com", "idToken": "token-new"}`))
		}))
		defer server.Close()

		client := auth.NewClient(server.URL, "testKey", slog.Default())

		session, err := client.SignUp(t.Context(), "new@example.com", "hunter2")

		require.NoError(t, err)
		assert.Equal(t, "uid-2", session.UserID)
	})

	t.Run("error - email already exists", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": {"message": "EMAIL_EXISTS"}}`))
		}))
		defer server.Close()

		client := auth.NewClient(server.URL, "testKey", slog.Default())

		_, err := client.SignUp(t.Context(), "new@example.com", "hunter2")

		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
		require.ErrorContains(t, err, "EMAIL_EXISTS")
	})
}
