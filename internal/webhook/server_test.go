package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncallops/groupwatch/internal/change"
	"github.com/oncallops/groupwatch/internal/report"
)

type eventSink struct {
	mu     sync.Mutex
	events []report.Event
}

func (s *eventSink) ReportChanges(context.Context, report.RunInfo, []change.Change) error {
	return nil
}

func (s *eventSink) ReportViolations(context.Context, report.RunInfo, []report.GroupViolations) error {
	return nil
}

func (s *eventSink) ReportEvent(_ context.Context, event report.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func post(t *testing.T, handler http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGitHubEvent(t *testing.T) {
	sink := &eventSink{}
	srv := NewServer(":0", sink)

	rec := post(t, srv.Handler(), "/hooks/github", `{
		"action": "opened",
		"sender": {"login": "octocat"},
		"repository": {"full_name": "corp/infra"}
	}`, map[string]string{"X-GitHub-Event": "pull_request"})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, sink.events, 1)

	event := sink.events[0]
	assert.Equal(t, "github", event.Source)
	assert.Equal(t, "pull_request", event.Type)
	assert.Equal(t, "octocat", event.Actor)
	assert.Equal(t, "corp/infra opened", event.Summary)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.ReceivedAt.IsZero())
}

func TestSlackURLVerificationEchoesChallenge(t *testing.T) {
	sink := &eventSink{}
	srv := NewServer(":0", sink)

	rec := post(t, srv.Handler(), "/hooks/slack",
		`{"type": "url_verification", "challenge": "abc123"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "abc123", resp["challenge"])
	assert.Empty(t, sink.events, "handshake is not a recordable event")
}

func TestSlackEvent(t *testing.T) {
	sink := &eventSink{}
	srv := NewServer(":0", sink)

	rec := post(t, srv.Handler(), "/hooks/slack", `{
		"type": "event_callback",
		"event": {"type": "message", "user": "U123", "text": "deploy done"}
	}`, nil)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "slack", sink.events[0].Source)
	assert.Equal(t, "message", sink.events[0].Type)
	assert.Equal(t, "U123", sink.events[0].Actor)
}

func TestNotionEvent(t *testing.T) {
	sink := &eventSink{}
	srv := NewServer(":0", sink)

	rec := post(t, srv.Handler(), "/hooks/notion", `{
		"type": "page.updated",
		"entity": {"id": "page-1", "type": "page"},
		"authors": [{"id": "user-1"}]
	}`, nil)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "notion", sink.events[0].Source)
	assert.Equal(t, "page.updated", sink.events[0].Type)
	assert.Equal(t, "user-1", sink.events[0].Actor)
}

func TestMalformedPayloadRejected(t *testing.T) {
	sink := &eventSink{}
	srv := NewServer(":0", sink)

	rec := post(t, srv.Handler(), "/hooks/github", `{broken`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sink.events)
}

func TestHealthz(t *testing.T) {
	srv := NewServer(":0", &eventSink{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
