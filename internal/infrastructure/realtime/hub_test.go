package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrica-erp/fabrica-api/pkg/logger"
)

func testHub() *Hub {
	return NewHub(logger.New(logger.Config{Env: "development", Level: "error"}))
}

// subscribe registra un cliente de test directamente en el run loop
// (sin conexión WebSocket: solo nos interesa el canal send).
func subscribe(h *Hub, buffer int) *client {
	c := &client{send: make(chan []byte, buffer)}
	h.register <- c
	return c
}

func receive(t *testing.T, c *client) Envelope {
	t.Helper()
	select {
	case frame, ok := <-c.send:
		require.True(t, ok, "el canal del suscriptor no debe estar cerrado")
		var env Envelope
		require.NoError(t, json.Unmarshal(frame, &env))
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("timeout esperando un frame del hub")
		return Envelope{}
	}
}

// ──────────────────────────────────────────────────────────────────────────────

func TestBroadcast_TodosLosSuscriptoresEnOrdenFIFO(t *testing.T) {
	h := testHub()
	a := subscribe(h, 64)
	b := subscribe(h, 64)

	h.Broadcast("workorder_created", map[string]string{"id": "o-1"})
	h.Broadcast("workorder_updated", map[string]string{"id": "o-1"})
	h.Broadcast("workorder_updated", map[string]string{"id": "o-2"})

	for _, c := range []*client{a, b} {
		first := receive(t, c)
		second := receive(t, c)
		third := receive(t, c)

		assert.Equal(t, "workorder_created", first.Event)
		assert.Equal(t, "workorder_updated", second.Event)
		assert.Equal(t, "workorder_updated", third.Event)

		// El payload viaja dentro del envelope {event, data}.
		data, ok := third.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "o-2", data["id"])
	}
}

func TestBroadcast_ClienteLentoSeDesconectaSinFrenarAlResto(t *testing.T) {
	h := testHub()
	slow := subscribe(h, 1)  // no drena: su buffer se llena con el primer frame
	fast := subscribe(h, 64) // drena normalmente

	h.Broadcast("workorder_updated", map[string]string{"id": "o-1"})
	h.Broadcast("workorder_updated", map[string]string{"id": "o-2"})
	h.Broadcast("workorder_updated", map[string]string{"id": "o-3"})

	// El rápido recibe todo.
	for i := 0; i < 3; i++ {
		receive(t, fast)
	}

	// Al lento el hub le cierra el canal: tras el frame que le cupo en el
	// buffer, la siguiente lectura encuentra el canal cerrado.
	<-slow.send
	select {
	case _, ok := <-slow.send:
		assert.False(t, ok, "el canal del cliente lento debe quedar cerrado")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout esperando el cierre del canal del cliente lento")
	}
}

func TestBroadcast_SinSuscriptoresNoBloquea(t *testing.T) {
	h := testHub()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.Broadcast("workorder_updated", map[string]int{"n": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast no debe bloquear aunque nadie escuche")
	}
}
