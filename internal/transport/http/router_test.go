package httptransport_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodtime/internal/achievement"
	"goodtime/internal/friendship"
	"goodtime/internal/game"
	"goodtime/internal/league"
	"goodtime/internal/settings"
	"goodtime/internal/task"
	httptransport "goodtime/internal/transport/http"
	"goodtime/internal/user"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userStore := user.NewInMemoryStore()
	cfg := settings.NewService(settings.NewInMemoryStore())
	users := user.NewService(userStore)
	tasks := task.NewService(task.NewInMemoryStore())
	boards := league.NewService(userStore, cfg, league.NewInMemoryHallOfFame())
	friendships := friendship.NewService(friendship.NewInMemoryStore(), userStore)
	games := game.NewService(userStore, tasks, cfg, achievement.NewCatalog())

	router := httptransport.NewRouter(httptransport.Deps{
		Users:       users,
		Tasks:       tasks,
		Game:        games,
		League:      boards,
		Friendships: friendships,
		Metrics:     nil,
		Logger:      logger,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, userID string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func register(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var view struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &view)
	return view.ID
}

func TestTaskFlow(t *testing.T) {
	srv := newTestServer(t)
	userID := register(t, srv, "alice")

	resp := doJSON(t, http.MethodPost, srv.URL+"/tasks", userID, map[string]string{
		"name":        "water-plants",
		"description": "Water every plant at home",
		"difficulty":  "Hard",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		XPReward int `json:"xp_reward"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, 100, created.XPReward)

	resp = doJSON(t, http.MethodPost, srv.URL+"/tasks/water-plants/complete", userID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var completion struct {
		XPGained   int      `json:"xp_gained"`
		Level      int      `json:"level"`
		StreakDays int      `json:"streak_days"`
		Unlocked   []string `json:"unlocked_achievements"`
	}
	decodeBody(t, resp, &completion)
	// 100 task xp plus at least the 50 xp first-task badge.
	assert.GreaterOrEqual(t, completion.XPGained, 150)
	assert.Equal(t, 2, completion.Level)
	assert.Equal(t, 1, completion.StreakDays)
	assert.Contains(t, completion.Unlocked, "COMPLETE_1_TASK")

	// Completing the same task again maps the conflict to 409.
	resp = doJSON(t, http.MethodPost, srv.URL+"/tasks/water-plants/complete", userID, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestValidationMapsTo400(t *testing.T) {
	srv := newTestServer(t)
	userID := register(t, srv, "alice")

	resp := doJSON(t, http.MethodPost, srv.URL+"/tasks", userID, map[string]string{
		"name":        "Run",
		"description": "Go for a short run",
		"difficulty":  "Easy",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "validation", body.Error)
}

func TestIdentityHeaderRequired(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/league/top", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminRoutesNeedAdminRole(t *testing.T) {
	srv := newTestServer(t)
	userID := register(t, srv, "alice")

	resp := doJSON(t, http.MethodPut, srv.URL+"/admin/league/thresholds", userID, map[string]int{
		"silver": 100, "gold": 200, "platinum": 300, "diamond": 400,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestFriendFlow(t *testing.T) {
	srv := newTestServer(t)
	aliceID := register(t, srv, "alice")
	bobID := register(t, srv, "bob")

	resp := doJSON(t, http.MethodPost, srv.URL+"/friends/requests", aliceID, map[string]string{"username": "bob"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sent struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &sent)

	resp = doJSON(t, http.MethodPost, srv.URL+"/friends/requests/"+sent.ID+"/respond", bobID, map[string]bool{"accept": true})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/friends", aliceID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var friends []struct {
		Username string `json:"username"`
	}
	decodeBody(t, resp, &friends)
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].Username)
}
