package clockify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clockify-cli/internal/domain"
)

func TestClient_ListTimeEntries(t *testing.T) {
	fs, hs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/workspaces/ws1/user/u1/time-entries" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, `[
			{"id":"e2","description":"Running","projectId":"p1","billable":true,"tagIds":["t1"],
			 "timeInterval":{"start":"2025-08-01T10:00:00Z","end":null}},
			{"id":"e1","description":"Done","projectId":null,
			 "timeInterval":{"start":"2025-08-01T08:00:00Z","end":"2025-08-01T09:30:00Z","duration":"PT1H30M"}}
		]`)
	})
	c := newTestClient(t, hs.URL, testKey)

	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	entries, err := c.ListTimeEntries(context.Background(), "ws1", "u1", domain.EntryFilter{Start: from, End: from.Add(24 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "e2", entries[0].ID)
	assert.True(t, entries[0].Running())
	assert.Equal(t, []string{"t1"}, entries[0].TagIDs)
	assert.True(t, entries[0].Billable)
	assert.False(t, entries[1].Running())
	assert.Equal(t, 90*time.Minute, entries[1].Duration(time.Now()))
	assert.Empty(t, entries[1].ProjectID)

	calls := fs.calls()
	require.Len(t, calls, 1)
	q, err := url.ParseQuery(calls[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-01T00:00:00Z", q.Get("start"))
	assert.Equal(t, "2025-08-02T00:00:00Z", q.Get("end"))
	assert.Equal(t, "1", q.Get("page"))
}

func TestClient_ListTimeEntriesPages(t *testing.T) {
	fs, hs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		n := entriesPageSize
		if r.URL.Query().Get("page") == "2" {
			n = 3
		}
		items := make([]string, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, fmt.Sprintf(`{"id":"e%d","timeInterval":{"start":"2025-08-01T08:00:00Z","end":"2025-08-01T09:00:00Z"}}`, i))
		}
		writeJSON(w, http.StatusOK, "["+strings.Join(items, ",")+"]")
	})
	c := newTestClient(t, hs.URL, testKey)

	entries, err := c.ListTimeEntries(context.Background(), "ws1", "u1", domain.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, entriesPageSize+3)

	calls := fs.calls()
	require.Len(t, calls, 2)
	assert.NotContains(t, calls[0].Query, "start=")
}

func TestClient_ListTimeEntriesWarnsAtPageLimit(t *testing.T) {
	fs, hs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		items := make([]string, 0, entriesPageSize)
		for i := 0; i < entriesPageSize; i++ {
			items = append(items, fmt.Sprintf(`{"id":"e%d","timeInterval":{"start":"2025-08-01T08:00:00Z","end":"2025-08-01T09:00:00Z"}}`, i))
		}
		writeJSON(w, http.StatusOK, "["+strings.Join(items, ",")+"]")
	})
	var logs bytes.Buffer
	p, _ := newFakePacer(DefaultMinInterval)
	c, err := NewClient(hs.URL, staticKey{key: testKey}, slog.New(slog.NewTextHandler(&logs, nil)), WithPacer(p))
	require.NoError(t, err)
	c.maxPages = 2

	entries, err := c.ListTimeEntries(context.Background(), "ws1", "u1", domain.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 2*entriesPageSize)
	assert.Len(t, fs.calls(), 2)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "truncated at page limit")
}

func TestClient_StartTimer(t *testing.T) {
	now := time.Date(2025, 8, 1, 9, 15, 42, 123, time.FixedZone("CEST", 2*3600))
	fs, hs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"id":"e9","description":"Deep work","timeInterval":{"start":"2025-08-01T07:15:42Z","end":null}}`)
	})
	c := newTestClient(t, hs.URL, testKey, WithClock(func() time.Time { return now }))

	e, err := c.StartTimer(context.Background(), "ws1", domain.EntryInput{Description: "  Deep work\n", ProjectID: "p1", Billable: true})
	require.NoError(t, err)
	assert.True(t, e.Running())

	calls := fs.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/workspaces/ws1/time-entries", calls[0].Path)
	assert.Equal(t, "application/json", calls[0].Header.Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &body))
	assert.Equal(t, "2025-08-01T07:15:42Z", body["start"])
	assert.NotContains(t, body, "end")
	assert.Equal(t, "Deep work", body["description"])
	assert.Equal(t, "p1", body["projectId"])
	assert.Equal(t, true, body["billable"])
}

func TestClient_WritesRejectUnsafeTextLocally(t *testing.T) {
	fs, hs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{}`)
	})
	c := newTestClient(t, hs.URL, testKey)
	ctx := context.Background()

	_, err := c.StartTimer(ctx, "ws1", domain.EntryInput{Description: "<script>x</script>"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = c.CreateProject(ctx, "ws1", domain.NewProject{Name: "   "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = c.CreateTask(ctx, "ws1", "p1", "a\x00b")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	start := time.Now()
	end := start.Add(-time.Minute)
	_, err = c.CreateTimeEntry(ctx, "ws1", domain.EntryInput{Start: start, End: &end})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Empty(t, fs.calls())
}

func TestClient_WorkspaceRequired(t *testing.T) {
	fs, hs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {})
	c := newTestClient(t, hs.URL, testKey)
	ctx := context.Background()

	_, err := c.ListProjects(ctx, "")
	assert.True(t, errors.Is(err, domain.ErrNoWorkspace))
	_, err = c.ListTimeEntries(ctx, "", "u1", domain.EntryFilter{})
	assert.True(t, errors.Is(err, domain.ErrNoWorkspace))
	err = c.DeleteTimeEntry(ctx, "", "e1")
	assert.True(t, errors.Is(err, domain.ErrNoWorkspace))
	assert.Empty(t, fs.calls())
}

func TestClient_UpdateAndDeleteEntry(t *testing.T) {
	fs, hs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			writeJSON(w, http.StatusOK, `{"id":"e1","timeInterval":{"start":"2025-08-01T08:00:00Z","end":"2025-08-01T09:00:00Z"}}`)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	c := newTestClient(t, hs.URL, testKey)
	ctx := context.Background()

	start := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	e, err := c.UpdateTimeEntry(ctx, "ws1", "e1", domain.EntryInput{Start: start, End: &end, TagIDs: []string{"t1"}})
	require.NoError(t, err)
	assert.False(t, e.Running())

	require.NoError(t, c.DeleteTimeEntry(ctx, "ws1", "e1"))

	calls := fs.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "/workspaces/ws1/time-entries/e1", calls[0].Path)
	assert.Contains(t, calls[0].Body, `"end":"2025-08-01T09:00:00Z"`)
	assert.Contains(t, calls[0].Body, `"tagIds":["t1"]`)
	assert.Equal(t, http.MethodDelete, calls[1].Method)
}

func TestClient_ProjectsAndTasks(t *testing.T) {
	fs, hs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/workspaces/ws1/projects":
			writeJSON(w, http.StatusOK, `[{"id":"p1","name":"Website","clientName":"ACME","color":"#03A9F4","billable":true}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/workspaces/ws1/projects":
			writeJSON(w, http.StatusCreated, `{"id":"p2","name":"Mobile"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/workspaces/ws1/projects/p1/tasks":
			writeJSON(w, http.StatusOK, `[{"id":"t1","name":"Design","projectId":"p1","status":"ACTIVE"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/workspaces/ws1/projects/p1/tasks":
			writeJSON(w, http.StatusCreated, `{"id":"t2","name":"Build","projectId":"p1","status":"ACTIVE"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	c := newTestClient(t, hs.URL, testKey)
	ctx := context.Background()

	projects, err := c.ListProjects(ctx, "ws1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "ACME", projects[0].ClientName)

	p, err := c.CreateProject(ctx, "ws1", domain.NewProject{Name: " Mobile ", Color: "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, "p2", p.ID)

	tasks, err := c.ListTasks(ctx, "ws1", "p1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Design", tasks[0].Name)

	task, err := c.CreateTask(ctx, "ws1", "p1", "Build")
	require.NoError(t, err)
	assert.Equal(t, "t2", task.ID)

	calls := fs.calls()
	require.Len(t, calls, 4)
	assert.Contains(t, calls[1].Body, `"name":"Mobile"`)
	assert.Contains(t, calls[1].Body, `"color":"#FF0000"`)
}
