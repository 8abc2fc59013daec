package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kanban-board-api/internal/events"
)

func TestWebhookClient_Send(t *testing.T) {
	received := make(chan events.Event, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "s3cret", r.Header.Get("X-Webhook-Secret"))

		var event events.Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		received <- event
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	c := NewWebhookClient(server.URL, "s3cret", time.Second, zap.NewNop(), nil)
	err := c.Send(context.Background(), events.Event{Type: events.TypeTaskMoved, ProjectID: "proj-1", EntityID: "task-1"})

	require.NoError(t, err)
	got := <-received
	assert.Equal(t, events.TypeTaskMoved, got.Type)
	assert.Equal(t, "task-1", got.EntityID)
}

func TestWebhookClient_SendNonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewWebhookClient(server.URL, "", time.Second, zap.NewNop(), nil)
	err := c.Send(context.Background(), events.Event{Type: events.TypeProjectCreated, ProjectID: "proj-1"})

	assert.ErrorContains(t, err, "503")
}

func TestWebhookClient_RunDeliversPublished(t *testing.T) {
	received := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event events.Event
		_ = json.NewDecoder(r.Body).Decode(&event)
		received <- event.Type
	}))
	defer server.Close()

	c := NewWebhookClient(server.URL, "", time.Second, zap.NewNop(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	events.Multi{events.NopPublisher{}, c}.Publish(events.Event{Type: events.TypeColumnCreated, ProjectID: "proj-1"})

	select {
	case got := <-received:
		assert.Equal(t, events.TypeColumnCreated, got)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not delivered")
	}
}
