package chart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/model"
)

func testHub() *Hub {
	// No redraw pause in tests
	return NewHubWithConfig(nil, HubConfig{SendBuffer: 8, WriteTimeout: time.Second})
}

func testSnapshot() model.WindowSnapshot {
	return model.WindowSnapshot{
		Timestamps: []time.Time{
			time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 10, 0, 5, 0, time.UTC),
		},
		Sentiments: []float64{0.5, -0.2},
	}
}

func TestNewFrame(t *testing.T) {
	frame := NewFrame(testSnapshot())

	assert.Equal(t, Title, frame.Title)
	assert.Equal(t, XAxisLabel, frame.XLabel)
	assert.Equal(t, YAxisLabel, frame.YLabel)
	assert.Equal(t, []string{"2024-01-01 10:00:00", "2024-01-01 10:00:05"}, frame.Timestamps)
	assert.Equal(t, []float64{0.5, -0.2}, frame.Sentiments)
}

func TestRedrawStoresLastFrame(t *testing.T) {
	hub := testHub()

	assert.Nil(t, hub.LastFrame())

	hub.Redraw(testSnapshot())

	var frame Frame
	require.NoError(t, json.Unmarshal(hub.LastFrame(), &frame))
	assert.Len(t, frame.Sentiments, 2)
	assert.Equal(t, -0.2, frame.Sentiments[1])
}

func TestHubBroadcastRoundTrip(t *testing.T) {
	hub := testHub()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.Redraw(testSnapshot())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame Frame
	require.NoError(t, json.Unmarshal(data, &frame))
	assert.Equal(t, Title, frame.Title)
	assert.Equal(t, []float64{0.5, -0.2}, frame.Sentiments)
}

func TestRegisterDeliversLastFrame(t *testing.T) {
	hub := testHub()
	hub.Redraw(testSnapshot())

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Late joiner gets the current frame without waiting for the next point
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-01-01 10:00:05")
}

func TestShowStaysUpUntilCancelled(t *testing.T) {
	hub := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		hub.Show(ctx)
		close(done)
	}()

	// The final frame stays on display until the show context is cancelled
	select {
	case <-done:
		t.Fatal("Show returned before cancellation")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Show did not return after cancellation")
	}
}

func TestShowClosesClientsOnCancel(t *testing.T) {
	hub := testHub()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		hub.Show(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Show did not return after context cancellation")
	}

	assert.Equal(t, 0, hub.ClientCount())
}
