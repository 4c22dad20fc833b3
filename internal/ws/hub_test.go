package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T, hub *Hub, adSpaceID int64) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.ServeWS(adSpaceID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

// ServeWS registers on the server goroutine; wait for it.
func waitForSubscriber(t *testing.T, hub *Hub, adSpaceID int64) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for hub.SubscriberCount(adSpaceID) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 1, hub.SubscriberCount(adSpaceID))
}

func TestHub_BroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialTestHub(t, hub, 1)
	waitForSubscriber(t, hub, 1)

	hub.BroadcastSlot(1, "2026-03-14_09:00", "booked")

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var update SlotUpdate
	require.NoError(t, conn.ReadJSON(&update))

	assert.Equal(t, KindSlot, update.Kind)
	assert.Equal(t, int64(1), update.AdSpaceID)
	assert.Equal(t, "2026-03-14_09:00", update.SlotKey)
	assert.Equal(t, "booked", update.Status)
}

func TestHub_RefreshCarriesNoSlotKey(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialTestHub(t, hub, 1)
	waitForSubscriber(t, hub, 1)

	hub.BroadcastRefresh(1)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var update SlotUpdate
	require.NoError(t, conn.ReadJSON(&update))

	assert.Equal(t, KindRefresh, update.Kind)
	assert.Equal(t, int64(1), update.AdSpaceID)
	assert.Empty(t, update.SlotKey)
	assert.Empty(t, update.Status)
}

func TestHub_BroadcastIsScopedToSpace(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialTestHub(t, hub, 2)
	waitForSubscriber(t, hub, 2)

	hub.BroadcastSlot(1, "2026-03-14_09:00", "booked")

	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var update SlotUpdate
	assert.Error(t, conn.ReadJSON(&update))
}

func TestHub_DisconnectRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialTestHub(t, hub, 3)
	waitForSubscriber(t, hub, 3)

	conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.SubscriberCount(3) != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 0, hub.SubscriberCount(3))
}

// Broadcasts arrive from many request goroutines at once; the write
// pump must keep the single-writer rule of the websocket intact.
func TestHub_ConcurrentBroadcastsShareOneWriter(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialTestHub(t, hub, 1)
	waitForSubscriber(t, hub, 1)

	received := make(chan int)
	go func() {
		n := 0
		for {
			conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
			var update SlotUpdate
			if err := conn.ReadJSON(&update); err != nil {
				received <- n
				return
			}
			assert.Equal(t, int64(1), update.AdSpaceID)
			assert.Equal(t, "2026-03-14_09:00", update.SlotKey)
			n++
		}
	}()

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				hub.BroadcastSlot(1, "2026-03-14_09:00", "booked")
			}
		}()
	}
	wg.Wait()

	// Slow clients only lose frames, they are never dropped.
	assert.Greater(t, <-received, 0)
	assert.Equal(t, 1, hub.SubscriberCount(1))
}
