package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient captures sent messages
type mockClient struct {
	id       string
	sub      *subscription
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id string, entities ...EntityType) *mockClient {
	return &mockClient{
		id:       id,
		sub:      newSubscription(entities),
		messages: make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) Wants(entity EntityType) bool {
	return m.sub.wants(entity)
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, len(m.messages))
	copy(copied, m.messages)
	return copied
}

func waitForMessages(t *testing.T, c *mockClient, n int) [][]byte {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(c.GetMessages()) >= n
	}, time.Second, 5*time.Millisecond)
	return c.GetMessages()
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1")
	client2 := newMockClient("client-2")

	hub.Register(client1)
	hub.Register(client2)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount())

	// Unregistering twice is a no-op
	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1")
	client2 := newMockClient("client-2")
	hub.Register(client1)
	hub.Register(client2)

	hub.Broadcast(NotificationCreated(map[string]interface{}{"id": float64(7)}))

	msgs1 := waitForMessages(t, client1, 1)
	msgs2 := waitForMessages(t, client2, 1)
	assert.Len(t, msgs1, 1)
	assert.Len(t, msgs2, 1)
	assert.Contains(t, string(msgs1[0]), `"type":"notification.created"`)
}

func TestHub_UnregisteredClientReceivesNothing(t *testing.T) {
	hub := NewHub()

	kept := newMockClient("kept")
	gone := newMockClient("gone")
	hub.Register(kept)
	hub.Register(gone)
	hub.Unregister(gone)

	hub.Broadcast(GoalUpdated(map[string]interface{}{"id": float64(1)}))

	waitForMessages(t, kept, 1)
	assert.Empty(t, gone.GetMessages())
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := newMockClient(string(rune('a' + i)))
			hub.Register(c)
			hub.Broadcast(TransactionCreated(map[string]interface{}{"id": float64(i)}))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, hub.ClientCount())
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()

	assert.NotPanics(t, func() {
		hub.Broadcast(BudgetCreated(map[string]interface{}{"id": float64(1)}))
	})
}

func TestHub_BroadcastRespectsSubscriptions(t *testing.T) {
	hub := NewHub()
	all := newMockClient("all")
	alertsOnly := newMockClient("alerts", EntityTypeNotification)
	hub.Register(all)
	hub.Register(alertsOnly)

	hub.Broadcast(BudgetUpdated(map[string]int{"id": 1}))
	hub.Broadcast(NotificationCreated(map[string]int{"id": 2}))

	waitForMessages(t, all, 2)
	got := waitForMessages(t, alertsOnly, 1)
	assert.Contains(t, string(got[0]), `"notification.created"`)

	// give a stray budget event time to arrive, then confirm it never did
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, alertsOnly.GetMessages(), 1)
}
