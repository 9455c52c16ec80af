package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "http://localhost:8000", New("http://localhost:8000/").BaseURL())
}

func TestLogin_PostsFormAndDecodesRawToken(t *testing.T) {
	expires := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "Passw0rd1", r.PostForm.Get("password"))
		assert.Empty(t, r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, map[string]any{"access_token": "tok", "token_type": "bearer", "expires_at": expires})
	}))
	defer server.Close()

	token, err := New(server.URL).Login(context.Background(), "alice", "Passw0rd1")

	require.NoError(t, err)
	assert.Equal(t, "tok", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.True(t, expires.Equal(token.ExpiresAt))
}

func TestMe_SendsBearerAndUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{"id": "u-1", "username": "alice", "is_active": true},
			"meta": map[string]any{"request_id": "r-1"},
		})
	}))
	defer server.Close()

	user, err := New(server.URL).Me(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsActive)
}

func TestErrors_DecodeEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(*APIError) bool
	}{
		{"unauthorized", http.StatusUnauthorized, (*APIError).IsUnauthorized},
		{"forbidden", http.StatusForbidden, (*APIError).IsForbidden},
		{"not found", http.StatusNotFound, (*APIError).IsNotFound},
		{"conflict", http.StatusConflict, (*APIError).IsConflict},
		{"unavailable", http.StatusServiceUnavailable, (*APIError).IsRetriable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]any{
					"error": map[string]any{"code": "SOME_CODE", "message": "went wrong"},
					"meta":  map[string]any{"request_id": "r-1"},
				})
			}))
			defer server.Close()

			_, err := New(server.URL).GetItem(context.Background(), "tok", "id-1")

			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "SOME_CODE", apiErr.Code)
			assert.True(t, tt.check(apiErr))
			assert.Equal(t, "SOME_CODE: went wrong", apiErr.Error())
		})
	}
}

func TestErrors_SessionRejection(t *testing.T) {
	tests := []struct {
		name string
		err  APIError
		want bool
	}{
		{"unauthorized", APIError{StatusCode: http.StatusUnauthorized, Code: "INVALID_TOKEN"}, true},
		{"inactive account", APIError{StatusCode: http.StatusBadRequest, Code: CodeInactiveAccount}, true},
		{"validation", APIError{StatusCode: http.StatusBadRequest, Code: "VALIDATION_FAILED"}, false},
		{"forbidden", APIError{StatusCode: http.StatusForbidden, Code: "NOT_OWNER"}, false},
		{"unavailable", APIError{StatusCode: http.StatusServiceUnavailable, Code: "AUTH_UNAVAILABLE"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.IsSessionRejection())
		})
	}
}

func TestErrors_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL).Health(context.Background())

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestUpdateItem_SendsOnlySetFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/items/id-1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"quantity": float64(7)}, body)

		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"id": "id-1", "name": "Laptop", "quantity": 7, "price": 10}})
	}))
	defer server.Close()

	quantity := 7
	item, err := New(server.URL).UpdateItem(context.Background(), "tok", "id-1", &ItemPatch{Quantity: &quantity})

	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)
}

func TestDeleteItem_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	assert.NoError(t, New(server.URL).DeleteItem(context.Background(), "tok", "id-1"))
}
