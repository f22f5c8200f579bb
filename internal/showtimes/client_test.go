package showtimes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const feedBody = `[
	{
		"auditorium": "5",
		"filmTitle": "Interstellar",
		"startTime": "19:30",
		"seatRows": {
			"A": "110",
			"B": "001",
		},
	},
]`

func newFeedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_ParsesFeedWithTrailingCommas(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, feedBody)
	client := NewHTTPClient(srv.URL, time.Second)

	doc, err := client.FetchShowtime(context.Background())

	require.NoError(t, err)
	require.Equal(t, "5", doc.Auditorium)
	require.Equal(t, "Interstellar", doc.FilmTitle)
	require.Equal(t, "19:30", doc.StartTime)
	require.Equal(t, map[string]string{"A": "110", "B": "001"}, doc.SeatRows)
}

func TestHTTPClient_TakesFirstDocument(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, `[
		{"auditorium": "1", "filmTitle": "First", "startTime": "18:00", "seatRows": {"A": "0"}},
		{"auditorium": "2", "filmTitle": "Second", "startTime": "21:00", "seatRows": {"A": "1"}}
	]`)
	client := NewHTTPClient(srv.URL, time.Second)

	doc, err := client.FetchShowtime(context.Background())

	require.NoError(t, err)
	require.Equal(t, "First", doc.FilmTitle)
}

func TestHTTPClient_EmptyArrayIsMalformed(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, `[]`)
	client := NewHTTPClient(srv.URL, time.Second)

	_, err := client.FetchShowtime(context.Background())

	require.ErrorIs(t, err, ErrMalformedResponse)
	require.True(t, IsTransient(err))
}

func TestHTTPClient_InvalidJSONIsMalformed(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, `{"not": "an array"`)
	client := NewHTTPClient(srv.URL, time.Second)

	_, err := client.FetchShowtime(context.Background())

	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestHTTPClient_NotFoundIsTransientStatusError(t *testing.T) {
	// The feed 404s while a new document is being published; that must be
	// classified as retryable, not terminal.
	srv := newFeedServer(t, http.StatusNotFound, `not here`)
	client := NewHTTPClient(srv.URL, time.Second)

	_, err := client.FetchShowtime(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.Code)
	require.True(t, IsTransient(err))
}

func TestHTTPClient_ServerErrorIsTransient(t *testing.T) {
	srv := newFeedServer(t, http.StatusInternalServerError, ``)
	client := NewHTTPClient(srv.URL, time.Second)

	_, err := client.FetchShowtime(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestHTTPClient_NetworkErrorIsTransient(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, feedBody)
	srv.Close()
	client := NewHTTPClient(srv.URL, time.Second)

	_, err := client.FetchShowtime(context.Background())

	require.Error(t, err)
	require.False(t, errors.Is(err, ErrMalformedResponse))
	require.True(t, IsTransient(err))
}

func TestHTTPClient_ContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	t.Cleanup(func() {
		close(blocked)
		srv.Close()
	})

	client := NewHTTPClient(srv.URL, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchShowtime(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
