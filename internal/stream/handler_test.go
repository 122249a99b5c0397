package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tapline/internal/events"
)

func TestWebsocketSubscriberReceivesAckAndEvents(t *testing.T) {
	hub := newTestHub(3)
	srv := httptest.NewServer(NewHandler(hub, nil))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ack struct {
		Event string `json:"event"`
		Data  struct {
			MenuVersion uint64 `json:"menuVersion"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &ack))
	assert.Equal(t, events.TypeConnectionAck, ack.Event)
	assert.Equal(t, uint64(3), ack.Data.MenuVersion)

	hub.Broadcast(testEvent{N: 42})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err = conn.ReadMessage()
	require.NoError(t, err)

	var env struct {
		Event string    `json:"event"`
		Data  testEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &env))
	assert.Equal(t, 42, env.Data.N)
}

func TestWebsocketDisconnectUnregisters(t *testing.T) {
	hub := newTestHub(1)
	srv := httptest.NewServer(NewHandler(hub, nil))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 10*time.Millisecond)
}
