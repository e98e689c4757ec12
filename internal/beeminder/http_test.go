package beeminder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewHTTPClient(srv.URL, "secret-token", nil)
	c.retryBase = time.Millisecond
	return c
}

func TestGoals_DecodesAndAuthenticates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/users/me/goals.json", r.URL.Path)
		require.Equal(t, "secret-token", r.URL.Query().Get("auth_token"))
		w.Write([]byte(`[{"slug":"pushups","title":"Pushups","safebuf":2,"limsum":"+10 in 2 days","lastday":1735689600}]`))
	})

	goals, err := c.Goals(context.Background())
	require.NoError(t, err)
	require.Len(t, goals, 1)
	require.Equal(t, "pushups", goals[0].Slug)
	require.Equal(t, 2, goals[0].Safebuf)
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), goals[0].LastdayTime())
}

func TestArchivedGoals_UsesArchivedPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me/goals/archived.json", r.URL.Path)
		w.Write([]byte(`[]`))
	})

	goals, err := c.ArchivedGoals(context.Background())
	require.NoError(t, err)
	require.Empty(t, goals)
}

func TestDatapoints_SortAndCountParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me/goals/pushups/datapoints.json", r.URL.Path)
		require.Equal(t, "timestamp", r.URL.Query().Get("sort"))
		require.Equal(t, "20", r.URL.Query().Get("count"))
		w.Write([]byte(`[{"id":"dp1","timestamp":1735729845,"value":1.5,"comment":"morning"}]`))
	})

	dps, err := c.Datapoints(context.Background(), "pushups", "timestamp", 20)
	require.NoError(t, err)
	require.Len(t, dps, 1)
	require.Equal(t, "dp1", dps[0].ID)
	require.Equal(t, 1.5, dps[0].Value)
	require.Equal(t, "morning", dps[0].Comment)
	require.Equal(t, time.Unix(1735729845, 0).UTC(), dps[0].Timestamp)
}

func TestDatapoints_NoCountMeansNoLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("count"))
		w.Write([]byte(`[]`))
	})

	_, err := c.Datapoints(context.Background(), "pushups", "timestamp", 0)
	require.NoError(t, err)
}

func TestCreateDatapoint_PostsFormValues(t *testing.T) {
	ts := time.Unix(1735729845, 0).UTC()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/me/goals/pushups/datapoints.json", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "secret-token", r.PostForm.Get("auth_token"))
		require.Equal(t, "2.5", r.PostForm.Get("value"))
		require.Equal(t, "felt good", r.PostForm.Get("comment"))
		require.Equal(t, "1735729845", r.PostForm.Get("timestamp"))
		require.Equal(t, "req-1", r.PostForm.Get("requestid"))
		w.Write([]byte(`{"id":"new"}`))
	})

	err := c.CreateDatapoint(context.Background(), "pushups", NewDatapoint{
		Timestamp: &ts,
		Value:     2.5,
		Comment:   "felt good",
		RequestID: "req-1",
	})
	require.NoError(t, err)
}

func TestUpdateDatapoint_PutsAllFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/users/me/goals/pushups/datapoints/dp1.json", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "3", r.PostForm.Get("value"))
		// comment is sent even when empty so it can be cleared
		require.True(t, r.PostForm.Has("comment"))
		require.Equal(t, "", r.PostForm.Get("comment"))
		w.Write([]byte(`{"id":"dp1"}`))
	})

	err := c.UpdateDatapoint(context.Background(), "pushups", DatapointUpdate{
		ID:        "dp1",
		Timestamp: time.Unix(1735729845, 0),
		Value:     3,
	})
	require.NoError(t, err)
}

func TestDeleteDatapoint(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/users/me/goals/pushups/datapoints/dp1.json", r.URL.Path)
		w.Write([]byte(`{"id":"dp1"}`))
	})

	require.NoError(t, c.DeleteDatapoint(context.Background(), "pushups", "dp1"))
}

func TestDo_ClientErrorIsNotRetried(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":{"message":"no such goal"}}`))
	})

	_, err := c.Goals(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, calls)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "no such goal", apiErr.Message)
}

func TestDo_ServerErrorIsRetried(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	})

	_, err := c.Goals(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Goals(context.Background())
	require.Error(t, err)
	require.Equal(t, 1+maxRetries, calls)
}

func TestParseAPIError_StringEnvelope(t *testing.T) {
	apiErr := parseAPIError(422, []byte(`{"errors":"bad value"}`))
	require.Equal(t, "bad value", apiErr.Message)
	require.Contains(t, apiErr.Error(), "status 422")
}

func TestParseAPIError_UnstructuredBody(t *testing.T) {
	apiErr := parseAPIError(500, []byte("  gateway exploded \n"))
	require.Equal(t, "gateway exploded", apiErr.Message)
}
