package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mergington.GO/api"
	"mergington.GO/config"
	"mergington.GO/core/events"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte("<html><title>Mergington High School</title></html>"), 0o644))
	return &config.Config{
		Port:            "0",
		StaticDir:       dir,
		CacheTTL:        time.Minute,
		ShutdownTimeout: time.Second,
	}
}

func testServer(t *testing.T) *echo.Echo {
	t.Helper()
	s, err := NewServices(testConfig(t), zap.NewNop(), events.NopPublisher{})
	require.NoError(t, err)
	return New(s)
}

func do(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type activityJSON struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func getActivities(t *testing.T, e *echo.Echo) map[string]activityJSON {
	t.Helper()
	rec := do(e, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]activityJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func signupPath(activity, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/signup?email=" + url.QueryEscape(email)
}

func participantPath(activity, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/participants/" + url.PathEscape(email)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRoot_RedirectsToStatic(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodGet, "/")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/static/index.html", rec.Header().Get("Location"))

	rec = do(e, http.MethodGet, "/static/index.html")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mergington High School")
}

func TestGetActivities(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Duration-ms"))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	body := rec.Body.String()
	assert.Less(t, strings.Index(body, `"Chess Club"`), strings.Index(body, `"Robotics Club"`))

	acts := getActivities(t, e)
	require.Len(t, acts, 9)
	chess := acts["Chess Club"]
	assert.Equal(t, "Learn strategies and compete in chess tournaments", chess.Description)
	assert.Equal(t, "Fridays, 3:30 PM - 5:00 PM", chess.Schedule)
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)
}

func TestSignup(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodPost, signupPath("Chess Club", "new@x.edu"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Signed up new@x.edu for Chess Club"}`, rec.Body.String())

	chess := getActivities(t, e)["Chess Club"]
	require.Len(t, chess.Participants, 3)
	assert.Equal(t, "new@x.edu", chess.Participants[2])

	rec = do(e, http.MethodPost, signupPath("Chess Club", "new@x.edu"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Student is already signed up", decodeError(t, rec).Detail)
	assert.Len(t, getActivities(t, e)["Chess Club"].Participants, 3)
}

func TestSignup_UnknownActivity(t *testing.T) {
	e := testServer(t)
	before := getActivities(t, e)

	rec := do(e, http.MethodPost, signupPath("NonexistentClub", "test@mergington.edu"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Activity not found", body.Detail)
	assert.Equal(t, "ACTIVITY_NOT_FOUND", body.Code)
	assert.Equal(t, before, getActivities(t, e))
}

func TestSignup_MissingEmail(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodPost, "/activities/Chess%20Club/signup")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Code)
}

func TestDeleteParticipant(t *testing.T) {
	e := testServer(t)
	before := getActivities(t, e)

	rec := do(e, http.MethodPost, signupPath("Art Studio", "remove@mergington.edu"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodDelete, participantPath("Art Studio", "remove@mergington.edu"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Removed remove@mergington.edu from Art Studio"}`, rec.Body.String())

	assert.Equal(t, before, getActivities(t, e))

	rec = do(e, http.MethodDelete, participantPath("Art Studio", "remove@mergington.edu"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteParticipant_NotSignedUp(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodDelete, participantPath("Chess Club", "notreal@mergington.edu"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Student is not signed up for this activity", body.Detail)
	assert.Equal(t, "PARTICIPANT_NOT_FOUND", body.Code)
}

func TestDeleteParticipant_UnknownActivity(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodDelete, participantPath("Nope", "michael@mergington.edu"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Activity not found", decodeError(t, rec).Detail)
}

func TestDeleteParticipant_EscapedEmail(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodPost, signupPath("Chess Club", "a+b@x.edu"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodDelete, "/activities/Chess%20Club/participants/a%2Bb%40x.edu")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, getActivities(t, e)["Chess Club"].Participants, "a+b@x.edu")
}

func TestDeleteParticipant_PercentInEmail(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodPost, signupPath("Chess Club", "100%41@x.edu"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, getActivities(t, e)["Chess Club"].Participants, "100%41@x.edu")

	rec = do(e, http.MethodDelete, participantPath("Chess Club", "100%41@x.edu"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Removed 100%41@x.edu from Chess Club"}`, rec.Body.String())
	assert.NotContains(t, getActivities(t, e)["Chess Club"].Participants, "100%41@x.edu")
}

func TestSignup_EmailNotRewritten(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodPost, signupPath("Chess Club", " michael@mergington.edu"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu", " michael@mergington.edu"},
		getActivities(t, e)["Chess Club"].Participants)

	rec = do(e, http.MethodDelete, participantPath("Chess Club", " michael@mergington.edu"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"},
		getActivities(t, e)["Chess Club"].Participants)
}

func TestUnknownRoute(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decodeError(t, rec).Detail)
}

func TestHealth(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","activities":9}`, rec.Body.String())
}

func TestMetrics(t *testing.T) {
	e := testServer(t)
	do(e, http.MethodPost, signupPath("Robotics Club", "bot@x.edu"))

	rec := do(e, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `activity_signups_total{activity="Robotics Club"}`)
}

func TestPlayground(t *testing.T) {
	e := testServer(t)
	rec := do(e, http.MethodGet, "/playground")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), "endpoint: '/graphql'")
}

func TestGraphQL(t *testing.T) {
	e := testServer(t)
	body := `{"query":"mutation { signup(activity: \"Chess Club\", email: \"gql@x.edu\") { message } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"signup":{"message":"Signed up gql@x.edu for Chess Club"}}}`, rec.Body.String())
	assert.Contains(t, getActivities(t, e)["Chess Club"].Participants, "gql@x.edu")
}
