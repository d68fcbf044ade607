package realtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/realtime"
)

func TestPublish_NoBloqueaSinRun(t *testing.T) {
	hub := realtime.NewHub(nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			hub.Publish(dto.OrderEvent{Type: "status", OrderID: "o-1", Status: "confirmed", At: time.Now()})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish bloqueó con el buffer lleno")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestRun_TerminaAlCancelar(t *testing.T) {
	hub := realtime.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	hub.Publish(dto.OrderEvent{Type: "created", OrderID: "o-2"})
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
}
