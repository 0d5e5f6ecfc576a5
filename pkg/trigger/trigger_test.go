package trigger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/radshield/radshield-web/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_PostsEvent(t *testing.T) {
	received := make(chan Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var ev Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		received <- ev
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	ok := Call(srv.URL, Event{Type: "quote.submitted", Reference: "Q-1", Locale: "fr"}, httpclient.NewStandardClient())

	assert.True(t, ok)
	ev := <-received
	assert.Equal(t, "quote.submitted", ev.Type)
	assert.Equal(t, "Q-1", ev.Reference)
	assert.False(t, ev.SentAt.IsZero())
}

func TestCall_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	assert.False(t, Call(srv.URL, Event{Type: "contact.submitted"}, httpclient.NewStandardClient()))
}

func TestCallAsync_SkipsEmptyURL(t *testing.T) {
	// nil client would panic if it were used
	CallAsync("", Event{Type: "quote.submitted"}, nil)
}

func TestCallAsync_Delivers(t *testing.T) {
	hit := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit <- struct{}{}
	}))
	defer srv.Close()

	CallAsync(srv.URL, Event{Type: "quote.submitted"}, httpclient.NewStandardClient())

	select {
	case <-hit:
	case <-time.After(2 * time.Second):
		t.Fatal("trigger was not called")
	}
}
