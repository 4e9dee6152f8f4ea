package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/tripclient/apiclient/apitest"
	apierrors "github.com/kbukum/tripclient/errors"
)

// workspace is a config file and token location shared across runs.
type workspace struct {
	dir        string
	configPath string
	tokenPath  string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	ws := workspace{
		dir:        dir,
		configPath: filepath.Join(dir, "config.yml"),
		tokenPath:  filepath.Join(dir, "token"),
	}
	yml := fmt.Sprintf(`environment: development
api:
  base_url: %s
session:
  token_file: %s
logging:
  level: disabled
`, apitest.BaseURL, ws.tokenPath)
	require.NoError(t, os.WriteFile(ws.configPath, []byte(yml), 0o600))
	return ws
}

func (ws workspace) run(t *testing.T, tr *apitest.Transport, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(&app{doer: tr})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", ws.configPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	root := newRootCmd(&app{})
	require.Equal(t, "tripctl", root.Use)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"login", "logout", "register", "whoami", "prefs", "routes", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestVersionCmd(t *testing.T) {
	ws := newWorkspace(t)
	out, err := ws.run(t, apitest.New(), "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "tripclient "), out)
}

func TestLoginThenWhoami(t *testing.T) {
	ws := newWorkspace(t)
	tr := apitest.New().
		On(http.MethodPost, "/auth/login", apitest.RawJSON(200, `{"access_token":"t1","token_type":"bearer"}`)).
		On(http.MethodGet, "/auth/me", apitest.RawJSON(200, `{"id":3,"username":"ada","email":"ada@example.com"}`))

	out, err := ws.run(t, tr, "login", "-u", "ada", "-p", "pw")
	require.NoError(t, err)
	require.Equal(t, "Logged in as ada\n", out)

	saved, err := os.ReadFile(ws.tokenPath)
	require.NoError(t, err)
	require.Equal(t, "t1", strings.TrimSpace(string(saved)))

	login := tr.Calls()[0]
	require.JSONEq(t, `{"username":"ada","password":"pw"}`, string(login.Body))
	require.True(t, strings.HasPrefix(login.Header.Get("User-Agent"), "tripclient/"))
	require.NotEmpty(t, login.Header.Get("X-Request-ID"))

	out, err = ws.run(t, tr, "whoami")
	require.NoError(t, err)
	require.Equal(t, "ada <ada@example.com>\n", out)

	me, ok := tr.LastCall()
	require.True(t, ok)
	require.Equal(t, "Bearer t1", me.Header.Get("Authorization"))

	out, err = ws.run(t, tr, "logout")
	require.NoError(t, err)
	require.Equal(t, "Logged out\n", out)
	_, err = os.Stat(ws.tokenPath)
	require.True(t, os.IsNotExist(err))
}

func TestLogin_PasswordFromEnv(t *testing.T) {
	ws := newWorkspace(t)
	t.Setenv(passwordEnv, "from-env")
	tr := apitest.New().On(http.MethodPost, "/auth/login", apitest.RawJSON(200, `{"access_token":"t1"}`))

	_, err := ws.run(t, tr, "login", "-u", "ada")
	require.NoError(t, err)

	call, _ := tr.LastCall()
	require.JSONEq(t, `{"username":"ada","password":"from-env"}`, string(call.Body))
}

func TestDebugFlag(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	yml := fmt.Sprintf("api:\n  base_url: %s\nsession:\n  token_file: %s\nlogging:\n  level: warn\n",
		apitest.BaseURL, filepath.Join(dir, "token"))
	require.NoError(t, os.WriteFile(configPath, []byte(yml), 0o600))

	a := &app{doer: apitest.New()}
	root := newRootCmd(a)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", configPath, "--debug", "logout"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	require.True(t, a.cfg.Debug)
	assert.Equal(t, "warn", a.cfg.Logging.Level)
	assert.Equal(t, "debug", a.cfg.LoggerConfig().Level)
}

func TestLogin_JSONOutputOmitsToken(t *testing.T) {
	ws := newWorkspace(t)
	tr := apitest.New().On(http.MethodPost, "/auth/login",
		apitest.RawJSON(200, `{"access_token":"secret-token","token_type":"bearer"}`))

	out, err := ws.run(t, tr, "login", "-u", "ada", "-p", "pw", "-o", "json")
	require.NoError(t, err)
	assert.NotContains(t, out, "secret-token")
	assert.NotContains(t, out, "access_token")
	assert.JSONEq(t, fmt.Sprintf(`{"username":"ada","token_type":"bearer","token_file":%q}`, ws.tokenPath), out)
}

func TestLogin_Unauthorized(t *testing.T) {
	ws := newWorkspace(t)
	tr := apitest.New().On(http.MethodPost, "/auth/login",
		apitest.RawJSON(401, `{"detail":"Incorrect username or password"}`))

	_, err := ws.run(t, tr, "login", "-u", "ada", "-p", "bad")
	require.Error(t, err)
	require.True(t, apierrors.IsUnauthorized(err))
	require.Equal(t, "Incorrect username or password. (UNAUTHORIZED, HTTP 401)", errorMessage(err))

	_, statErr := os.Stat(ws.tokenPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestWhoami_NotSignedIn(t *testing.T) {
	ws := newWorkspace(t)
	tr := apitest.New()

	_, err := ws.run(t, tr, "whoami")
	require.ErrorContains(t, err, "not signed in")
	require.Empty(t, tr.Calls())
}

func TestRegister_Conflict(t *testing.T) {
	ws := newWorkspace(t)
	tr := apitest.New().On(http.MethodPost, "/auth/register",
		apitest.RawJSON(409, `{"detail":"Username already exists"}`))

	_, err := ws.run(t, tr, "register", "-u", "ada", "--email", "ada@example.com", "-p", "long-enough")
	require.Error(t, err)
	require.Equal(t, "Username already exists (CONFLICT, HTTP 409)", errorMessage(err))
}

func TestPrefsSet_MergesOverMissing(t *testing.T) {
	ws := newWorkspace(t)
	tr := apitest.New().
		On(http.MethodGet, "/preferences", apitest.RawJSON(404, `{"detail":"Not found"}`)).
		On(http.MethodPut, "/preferences", apitest.RawJSON(200, `{"travel_mode":"transit","max_walk_minutes":10,"interests":["food","art"]}`))

	out, err := ws.run(t, tr, "prefs", "set", "--mode", "transit", "--max-walk", "10", "--interest", "food", "--interest", "art")
	require.NoError(t, err)
	require.Contains(t, out, "mode:           transit")
	require.Contains(t, out, "interests:      food, art")

	put, _ := tr.LastCall()
	var body map[string]any
	require.NoError(t, json.Unmarshal(put.Body, &body))
	require.Equal(t, "transit", body["travel_mode"])
	require.EqualValues(t, 10, body["max_walk_minutes"])
	require.Equal(t, false, body["avoid_tolls"])
}

func TestPrefsSet_InvalidMode(t *testing.T) {
	ws := newWorkspace(t)
	tr := apitest.New().On(http.MethodGet, "/preferences", apitest.RawJSON(200, `{}`))

	_, err := ws.run(t, tr, "prefs", "set", "--mode", "boat")
	require.Error(t, err)
	require.True(t, apierrors.IsValidation(err))
	require.Len(t, tr.Calls(), 1)
}

func TestRoutesSearch_JSON(t *testing.T) {
	ws := newWorkspace(t)
	tr := apitest.New().On(http.MethodPost, "/routes/search", apitest.RawJSON(200, `{
		"itineraries": [{
			"id": 1, "summary": "Bus", "duration_minutes": 25,
			"depart_at": "2024-06-01T08:00:00Z", "arrive_at": "2024-06-01T08:25:00Z",
			"ai_notes": "Sit on the left for the view.",
			"legs": [{"mode": "transit", "from": "A", "to": "B"}]
		}]
	}`))

	out, err := ws.run(t, tr, "routes", "search", "A", "B", "--depart", "2024-06-01T08:00", "-o", "json")
	require.NoError(t, err)

	var res struct {
		Itineraries []struct {
			Summary  string `json:"summary"`
			AINotes  string `json:"ai_notes"`
			DepartAt string `json:"depart_at"`
		} `json:"itineraries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Itineraries, 1)
	require.Equal(t, "Bus", res.Itineraries[0].Summary)
	require.Equal(t, "2024-06-01T08:00:00Z", res.Itineraries[0].DepartAt)

	call, _ := tr.LastCall()
	require.JSONEq(t, `{"origin":"A","destination":"B","depart_at":"2024-06-01T08:00:00Z"}`, string(call.Body))
}

func TestRoutesSearch_Text(t *testing.T) {
	ws := newWorkspace(t)
	tr := apitest.New().On(http.MethodPost, "/routes/search", apitest.RawJSON(200, `{
		"itineraries": [{
			"id": "x", "summary": "Walk", "duration_minutes": 90,
			"legs": [{"mode": "walking", "from": "A", "to": "B"}],
			"ai_notes": "Bring water."
		}]
	}`))

	out, err := ws.run(t, tr, "routes", "search", "A", "B")
	require.NoError(t, err)
	require.Equal(t, "1. Walk (1h30m0s)\n   - walking: A -> B\n   note: Bring water.\n", out)
}

func TestRoutesSearch_NetworkFailure(t *testing.T) {
	ws := newWorkspace(t)
	tr := apitest.New().FailNetwork(http.MethodPost, "/routes/search")

	_, err := ws.run(t, tr, "routes", "search", "A", "B")
	require.Error(t, err)
	require.True(t, apierrors.IsNetwork(err))
	require.Equal(t, apierrors.MessageNetwork+" (NETWORK_ERROR)", errorMessage(err))
}

func TestInvalidOutputFormat(t *testing.T) {
	ws := newWorkspace(t)
	_, err := ws.run(t, apitest.New(), "prefs", "get", "-o", "yaml")
	require.ErrorContains(t, err, "--output")
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"status error", apierrors.FromStatus(404, ""), "Resource not found. (NOT_FOUND, HTTP 404)"},
		{"no status", apierrors.Unknown(errors.New("x")), apierrors.MessageUnknown + " (UNKNOWN_ERROR)"},
		{"plain error", errors.New("plain"), "plain"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, errorMessage(tc.err))
		})
	}
}
