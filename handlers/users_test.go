package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftboard/driftboard-backend/models"
)

func TestCheckUsernameAvailable(t *testing.T) {
	api, store := newTestAPI()
	require.NoError(t, store.UpsertUser(context.Background(),
		models.User{ID: "u1", Username: "alice"}))

	w := httptest.NewRecorder()
	api.CheckUsername(w, httptest.NewRequest("GET", "/api/username/check?u=alice", nil))
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, false, resp.Data.(map[string]interface{})["available"])

	w = httptest.NewRecorder()
	api.CheckUsername(w, httptest.NewRequest("GET", "/api/username/check?u=bob", nil))
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	assert.Equal(t, true, resp.Data.(map[string]interface{})["available"])
}

func TestCheckUsernameRejectsBadInput(t *testing.T) {
	api, _ := newTestAPI()

	for _, username := range []string{"", "ab", "UPPER", "has-dash", "bad!chars"} {
		w := httptest.NewRecorder()
		api.CheckUsername(w, httptest.NewRequest("GET", "/api/username/check?u="+username, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, "username %q", username)
	}
}

func TestSessionCreatesProfile(t *testing.T) {
	api, store := newTestAPI()

	w := httptest.NewRecorder()
	api.Session(w, authedRequest(t, "POST", "/api/session", "u1", nil, nil))
	require.Equal(t, http.StatusOK, w.Code)

	user, err := store.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", user.Email)
	assert.Equal(t, "u1", user.Username) // seeded from the email local part
}

func TestUpdateMeRejectsTakenUsername(t *testing.T) {
	api, store := newTestAPI()
	require.NoError(t, store.UpsertUser(context.Background(), models.User{ID: "u1", Username: "alice"}))
	require.NoError(t, store.UpsertUser(context.Background(), models.User{ID: "u2", Username: "bob"}))

	w := httptest.NewRecorder()
	api.UpdateMe(w, authedRequest(t, "PUT", "/api/me", "u2",
		map[string]string{"username": "alice", "display_name": "Bob"}, nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateMeChangesProfile(t *testing.T) {
	api, store := newTestAPI()
	require.NoError(t, store.UpsertUser(context.Background(), models.User{ID: "u1", Username: "alice"}))

	w := httptest.NewRecorder()
	api.UpdateMe(w, authedRequest(t, "PUT", "/api/me", "u1",
		map[string]string{"username": "alice_2", "display_name": "Alice"}, nil))
	require.Equal(t, http.StatusOK, w.Code)

	user, err := store.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice_2", user.Username)
	assert.Equal(t, "Alice", user.DisplayName)
}
